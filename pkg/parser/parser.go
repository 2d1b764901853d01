// Package parser turns source files into module models.
//
// Reading the annotations out of Lua sources is delegated: either an
// external command prints a JSON model for each file ([CommandParser]), or
// the sources are model files already ([ModelParser]).
//
//	p, err := parser.New(cfg.Parser.Command)
//	m, err := p.Parse(ctx, "lua/jnvim/buffer.lua", src)
package parser

import (
	"context"

	"github.com/matzehuels/refdoc/pkg/model"
)

// Parser produces the model of one source file.
type Parser interface {
	// Parse returns the model of the file at path whose content is src.
	Parse(ctx context.Context, path string, src []byte) (*model.Module, error)
}

// New returns a CommandParser for a non-empty command line and a
// ModelParser otherwise.
func New(command string) (Parser, error) {
	if command == "" {
		return ModelParser{}, nil
	}
	return NewCommandParser(command)
}
