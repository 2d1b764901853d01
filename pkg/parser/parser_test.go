package parser

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/model"
)

const jsonModel = `{
  "name": "jnvim.buffer",
  "functions": [
    {"name": "current", "returns": [{"type": {"kind": "custom", "name": "jnvim.Buffer"}}]}
  ]
}`

const yamlModel = `
name: jnvim.buffer
functions:
  - name: current
    returns:
      - type: {kind: custom, name: jnvim.Buffer}
`

func TestNewSelectsParser(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, ModelParser{}, p)

	p, err = New("luadoc --json")
	require.NoError(t, err)
	assert.IsType(t, &CommandParser{}, p)

	_, err = New(`luadoc "unterminated`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestModelParser(t *testing.T) {
	ctx := context.Background()
	for _, tt := range []struct {
		path string
		src  string
	}{
		{"lua/buffer.json", jsonModel},
		{"lua/buffer.yaml", yamlModel},
		{"lua/buffer.YML", yamlModel},
	} {
		t.Run(tt.path, func(t *testing.T) {
			m, err := ModelParser{}.Parse(ctx, tt.path, []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, "jnvim.buffer", m.Name)
			require.Len(t, m.Functions, 1)
			assert.Equal(t, model.Custom{Name: "jnvim.Buffer"}, m.Functions[0].Returns[0].Type)
		})
	}
}

func TestModelParserErrorsKeepCode(t *testing.T) {
	_, err := ModelParser{}.Parse(context.Background(), "bad.json", []byte("{"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeParse))
	assert.Contains(t, err.Error(), "bad.json")

	_, err = ModelParser{}.Parse(context.Background(), "bad.json",
		[]byte(`{"name":"m","functions":[{"name":"f","params":[{"name":"x","type":{"kind":"tuple"}}]}]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModel))
}

func TestCommandParserArgs(t *testing.T) {
	p, err := NewCommandParser(`luadoc --format 'json model' --input={file}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"--format", "json model", "--input=lua/a.lua"}, p.Args("lua/a.lua"))

	p, err = NewCommandParser("luadoc --json")
	require.NoError(t, err)
	assert.Equal(t, []string{"--json", "lua/a.lua"}, p.Args("lua/a.lua"))
	assert.Equal(t, "luadoc --json", p.String())
}

func TestCommandParserReadsStdout(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	// "cat -" echoes stdin, so the source itself is the model.
	p, err := NewCommandParser("cat {file}")
	require.NoError(t, err)

	m, err := p.Parse(context.Background(), "-", []byte(jsonModel))
	require.NoError(t, err)
	assert.Equal(t, "jnvim.buffer", m.Name)
}

func TestCommandParserFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p, err := NewCommandParser(`sh -c 'echo boom >&2; exit 3' {file}`)
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), filepath.Join("lua", "a.lua"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeParse))
	assert.Contains(t, err.Error(), "boom")
}

func TestCommandParserBadOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p, err := NewCommandParser(`sh -c 'echo not-json' {file}`)
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), "a.lua", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeParse))
}
