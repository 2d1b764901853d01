package parser

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/model"
)

// ModelParser decodes sources that are model files: YAML for ".yaml" and
// ".yml" paths, JSON for everything else.
type ModelParser struct{}

// Parse decodes src.
func (ModelParser) Parse(_ context.Context, path string, src []byte) (*model.Module, error) {
	var (
		m   *model.Module
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = model.DecodeYAML(bytes.NewReader(src))
	default:
		m, err = model.DecodeJSON(bytes.NewReader(src))
	}
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return m, nil
}
