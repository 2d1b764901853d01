package parser

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/model"
)

// FilePlaceholder is replaced by the source path in command arguments.
const FilePlaceholder = "{file}"

// CommandParser runs an external program per file. The source is written
// to its stdin and a JSON model is read from its stdout. When no argument
// contains [FilePlaceholder], the path is appended as the last argument.
type CommandParser struct {
	name string
	args []string
}

// NewCommandParser splits command with shell quoting rules.
func NewCommandParser(command string) (*CommandParser, error) {
	words, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parser.command %q", command)
	}
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "parser.command is empty")
	}
	return &CommandParser{name: words[0], args: words[1:]}, nil
}

// String returns the command line, re-quoted.
func (p *CommandParser) String() string {
	return shellquote.Join(append([]string{p.name}, p.args...)...)
}

// Args returns the argument list used for path.
func (p *CommandParser) Args(path string) []string {
	args := make([]string, len(p.args))
	substituted := false
	for i, a := range p.args {
		if strings.Contains(a, FilePlaceholder) {
			a = strings.ReplaceAll(a, FilePlaceholder, path)
			substituted = true
		}
		args[i] = a
	}
	if !substituted {
		args = append(args, path)
	}
	return args
}

// Parse runs the command for path.
func (p *CommandParser) Parse(ctx context.Context, path string, src []byte) (*model.Module, error) {
	cmd := exec.CommandContext(ctx, p.name, p.Args(path)...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "%s: %s", path, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", path)
	}

	m, err := model.DecodeJSON(&stdout)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s: parser output", path)
	}
	return m, nil
}
