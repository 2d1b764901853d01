package typestr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/model"
	"github.com/matzehuels/refdoc/pkg/symbols"
)

func testRenderer() *Renderer {
	idx := symbols.Build([]symbols.Located{{
		Module: &model.Module{
			Name: "jnvim.buffer",
			Classes: []*model.Class{{
				Name:    "jnvim.Buffer",
				Methods: []*model.Function{{Name: "detach"}},
			}},
		},
		URL: "api/buffer",
	}})
	return New(symbols.NewLinker(idx, symbols.DefaultExternalRules()))
}

func TestRenderScalars(t *testing.T) {
	r := testRenderer()
	tests := []struct {
		name string
		typ  model.Type
		want string
	}{
		{"any", model.Any{}, "any"},
		{"number", model.Number{}, "number"},
		{"string", model.String{}, "string"},
		{"boolean keeps published label", model.Boolean{}, "string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.typ, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBooleanName(t *testing.T) {
	r := testRenderer()
	r.BooleanName = "boolean"
	got, err := r.Render(model.Boolean{}, false)
	require.NoError(t, err)
	assert.Equal(t, "boolean", got)

	r.BooleanName = ""
	got, err = r.Render(model.Boolean{}, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultBooleanName, got)
}

func TestRenderCallable(t *testing.T) {
	r := testRenderer()
	tests := []struct {
		name string
		typ  model.Callable
		want string
	}{
		{
			name: "single return is bare",
			typ:  model.Callable{Args: []model.Type{model.Number{}, model.String{}}, Returns: []model.Type{model.Any{}}},
			want: "function(number, string):any",
		},
		{
			name: "multiple returns are parenthesized",
			typ:  model.Callable{Returns: []model.Type{model.Number{}, model.String{}}},
			want: "function():(number, string)",
		},
		{
			name: "no returns",
			typ:  model.Callable{Args: []model.Type{model.Any{}}},
			want: "function(any):()",
		},
		{
			name: "nested callable",
			typ: model.Callable{
				Args:    []model.Type{model.Callable{Args: []model.Type{model.Number{}}, Returns: []model.Type{model.String{}}}},
				Returns: []model.Type{model.Number{}},
			},
			want: "function(function(number):string):number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.typ, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderCallableReturnSuffix(t *testing.T) {
	r := New(nil)
	one, err := r.Render(model.Callable{Returns: []model.Type{model.Custom{Name: "A"}}}, true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(one, ":A"), one)

	two, err := r.Render(model.Callable{Returns: []model.Type{model.Custom{Name: "A"}, model.Custom{Name: "B"}}}, true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(two, ":(A, B)"), two)
}

func TestRenderCustomLinks(t *testing.T) {
	r := testRenderer()

	linked, err := r.Render(model.Custom{Name: "jnvim.Buffer"}, true)
	require.NoError(t, err)
	assert.Equal(t, "<a href='/api/buffer/#buffer'>Buffer</a>", linked)

	plain, err := r.Render(model.Custom{Name: "jnvim.Buffer"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Buffer", plain)

	unknown, err := r.Render(model.Custom{Name: "table<string, any>"}, true)
	require.NoError(t, err)
	assert.Equal(t, "table<string, any>", unknown)
}

func TestRenderFunctionRef(t *testing.T) {
	r := testRenderer()
	got, err := r.Render(model.FunctionRef{ID: "jnvim.Buffer.detach"}, true)
	require.NoError(t, err)
	assert.Equal(t, "<a href='/api/buffer/#detach'>detach</a>", got)

	got, err = r.Render(model.Callable{Args: []model.Type{model.Custom{Name: "jnvim.Buffer"}}}, true)
	require.NoError(t, err)
	assert.Equal(t, "function(<a href='/api/buffer/#buffer'>Buffer</a>):()", got)
}

func TestRenderWithoutResolver(t *testing.T) {
	got, err := New(nil).Render(model.Custom{Name: "jnvim.Buffer"}, true)
	require.NoError(t, err)
	assert.Equal(t, "jnvim.Buffer", got)
}

func TestRenderMissingType(t *testing.T) {
	r := testRenderer()

	_, err := r.Render(nil, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModel))

	_, err = r.Render(model.Callable{Args: []model.Type{nil}}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModel))
}

func TestJoin(t *testing.T) {
	r := testRenderer()
	got, err := r.Join([]model.Type{model.Number{}, model.Custom{Name: "jnvim.Buffer"}}, false)
	require.NoError(t, err)
	assert.Equal(t, "number, Buffer", got)

	got, err = r.Join(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = r.Join([]model.Type{model.Any{}, nil}, false)
	require.Error(t, err)
}
