package pipeline

import (
	"context"
	goio "io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/refdoc/pkg/cache"
	"github.com/matzehuels/refdoc/pkg/config"
	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/io"
	"github.com/matzehuels/refdoc/pkg/model"
)

const classModel = `{
  "name": "jnvim.ClassName",
  "is_class_mod": true,
  "classes": [{
    "name": "jnvim.ClassName",
    "methods": [{
      "name": "foo",
      "params": [{"name": "x", "type": {"kind": "number"}}],
      "returns": [{"type": {"kind": "string"}}]
    }]
  }]
}`

// aaa.json sorts first and refers to a symbol of zzz.json.
const firstModel = `{
  "name": "jnvim.aaa",
  "functions": [{"name": "run", "short_desc": "Calls jnvim.zzz.helper."}]
}`

const lastModel = `{
  "name": "jnvim.zzz",
  "functions": [{"name": "helper"}]
}`

type project struct {
	root string
	cfg  *config.Config
}

func newProject(t *testing.T, files map[string]string) *project {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, "lua", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	cfg := config.Default()
	cfg.Source.Root = filepath.Join(root, "lua")
	cfg.Source.Extension = ".json"
	cfg.Output.Root = filepath.Join(root, "doc", "api")
	cfg.Output.SiteRoot = filepath.Join(root, "doc")
	return &project{root: root, cfg: cfg}
}

func (p *project) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(p.root, "doc", "api", filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(goio.Discard))
}

func TestExecuteClassModule(t *testing.T) {
	p := newProject(t, map[string]string{"jnvim/classname.json": classModel})

	result, err := quietRunner(nil).Execute(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Stats.Sources)
	assert.Equal(t, 1, result.Stats.Written)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "api/jnvim/classname", result.Documents[0].Source.URL)

	out := p.read(t, "jnvim/classname.md")
	assert.True(t, strings.HasPrefix(out, "# ClassName\n"), out)
	assert.Contains(t, out, "## Methods")
	assert.Contains(t, out, "### foo()")
	assert.Contains(t, out, "function ClassName:foo(x: number) -> string")
	assert.Contains(t, out, "<code>number</code>")
	assert.Contains(t, out, "<code>string</code>")
}

func TestExecuteLinksAcrossModules(t *testing.T) {
	p := newProject(t, map[string]string{
		"jnvim/aaa.json": firstModel,
		"jnvim/zzz.json": lastModel,
	})

	_, err := quietRunner(nil).Execute(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)

	out := p.read(t, "jnvim/aaa.md")
	assert.Contains(t, out, "Calls <a href='/api/jnvim/zzz/#helper'>helper</a>.")
}

func TestExecuteIsIdempotent(t *testing.T) {
	p := newProject(t, map[string]string{
		"jnvim/aaa.json": firstModel,
		"jnvim/zzz.json": lastModel,
	})
	r := quietRunner(nil)

	_, err := r.Execute(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)
	first := p.read(t, "jnvim/aaa.md")

	result, err := r.Execute(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.Written)
	assert.Equal(t, 2, result.Stats.Unchanged)
	for _, d := range result.Documents {
		assert.Equal(t, io.Unchanged, d.Status)
	}
	assert.Equal(t, first, p.read(t, "jnvim/aaa.md"))
}

func TestExecuteCheckMode(t *testing.T) {
	p := newProject(t, map[string]string{"jnvim/zzz.json": lastModel})
	r := quietRunner(nil)

	// Nothing generated yet: everything is stale and nothing is written.
	result, err := r.Execute(context.Background(), Options{Config: p.cfg, Check: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeStale))
	require.NotNil(t, result)
	require.Len(t, result.Stale, 1)
	assert.Contains(t, result.Stale[0].Diff, "+# jnvim.zzz")
	_, statErr := os.Stat(filepath.Join(p.root, "doc", "api", "jnvim", "zzz.md"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = r.Execute(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)

	result, err = r.Execute(context.Background(), Options{Config: p.cfg, Check: true})
	require.NoError(t, err)
	assert.Empty(t, result.Stale)
}

func TestExecuteUsesModelCache(t *testing.T) {
	p := newProject(t, map[string]string{"jnvim/zzz.json": lastModel})
	fc, err := cache.NewFileCache(filepath.Join(p.root, "cache"))
	require.NoError(t, err)
	counter := &countingParser{}
	r := quietRunner(fc)

	result, err := r.Execute(context.Background(), Options{Config: p.cfg, Parser: counter})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CacheInfo.Misses)
	assert.Equal(t, 1, counter.calls)

	result, err = r.Execute(context.Background(), Options{Config: p.cfg, Parser: counter})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CacheInfo.Hits)
	assert.Equal(t, 1, counter.calls, "cached model should skip the parser")

	_, err = r.Execute(context.Background(), Options{Config: p.cfg, Parser: counter, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 2, counter.calls)
}

func TestExecuteParseError(t *testing.T) {
	p := newProject(t, map[string]string{"jnvim/bad.json": `{"name": "m", "functions": [{"name": "f", "params": [{"name": "x"}]}]}`})

	_, err := quietRunner(nil).Execute(context.Background(), Options{Config: p.cfg})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModel), "got %v", err)
}

func TestExecuteInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Extension = "json"

	_, err := quietRunner(nil).Execute(context.Background(), Options{Config: cfg})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestExecuteCancelled(t *testing.T) {
	p := newProject(t, map[string]string{"jnvim/zzz.json": lastModel})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner(nil).Execute(ctx, Options{Config: p.cfg})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex(t *testing.T) {
	p := newProject(t, map[string]string{
		"jnvim/aaa.json": firstModel,
		"jnvim/zzz.json": lastModel,
	})

	idx, err := quietRunner(nil).Index(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())
	got := idx.Lookup("jnvim.zzz.helper")
	require.Len(t, got, 1)
	assert.Equal(t, "/api/jnvim/zzz/#helper", got[0].URL)

	_, err = os.Stat(filepath.Join(p.root, "doc"))
	assert.True(t, os.IsNotExist(err), "index must not write documents")
}

// countingParser decodes model files and counts invocations.
type countingParser struct {
	calls int
}

func (p *countingParser) Parse(ctx context.Context, path string, src []byte) (*model.Module, error) {
	p.calls++
	return model.DecodeJSON(strings.NewReader(string(src)))
}

// A class module may declare more than one class, e.g. a helper enum.
const classWithEnumModel = `{
  "name": "jnvim.Win",
  "is_class_mod": true,
  "classes": [
    {"name": "jnvim.Win", "methods": [{"name": "close", "short_desc": "Closes jnvim.Win.Kind windows."}]},
    {"name": "jnvim.Win.Kind", "is_enum": true, "fields": [{"name": "FLOAT"}]}
  ]
}`

func TestExecuteClassModuleWithExtraEnum(t *testing.T) {
	p := newProject(t, map[string]string{
		"jnvim/win.json": classWithEnumModel,
		"jnvim/zzz.json": lastModel,
	})

	result, err := quietRunner(nil).Execute(context.Background(), Options{Config: p.cfg})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.Written)

	out := p.read(t, "jnvim/win.md")
	assert.True(t, strings.HasPrefix(out, "# Win\n"), out)
	assert.Contains(t, out, "### close()")
	assert.Contains(t, out, "<a href='/api/jnvim/win/#kind'>Kind</a>")
	assert.Len(t, result.Index.Lookup("jnvim.Win.Kind.FLOAT"), 1)

	assert.Contains(t, p.read(t, "jnvim/zzz.md"), "# jnvim.zzz")
}

func TestExecuteWriteFailure(t *testing.T) {
	p := newProject(t, map[string]string{
		"jnvim/aaa.json": firstModel,
		"other/zzz.json": lastModel,
	})
	// A regular file where the output directory should be.
	blocked := filepath.Join(p.root, "doc", "api", "other")
	require.NoError(t, os.MkdirAll(filepath.Dir(blocked), 0755))
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0644))

	result, err := quietRunner(nil).Execute(context.Background(), Options{Config: p.cfg})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIO), "got %v", err)
	assert.Contains(t, err.Error(), "other/zzz.json")

	require.NotNil(t, result)
	assert.Equal(t, 1, result.Stats.Written)
	assert.Contains(t, p.read(t, "jnvim/aaa.md"), "helper")
}

// breakingParser decodes model files and gives one module a parameter
// without a type, which fails rendering.
type breakingParser struct {
	module string
}

func (p breakingParser) Parse(ctx context.Context, path string, src []byte) (*model.Module, error) {
	m, err := model.DecodeJSON(strings.NewReader(string(src)))
	if err != nil {
		return nil, err
	}
	if m.Name == p.module {
		m.Functions = append(m.Functions, &model.Function{
			Name:       "broken",
			Visibility: model.Public,
			Params:     []*model.Param{{Name: "x"}},
		})
	}
	return m, nil
}

func TestExecuteContinuesAfterRenderError(t *testing.T) {
	p := newProject(t, map[string]string{
		"jnvim/aaa.json": firstModel,
		"jnvim/zzz.json": lastModel,
	})

	result, err := quietRunner(nil).Execute(context.Background(), Options{
		Config: p.cfg,
		Parser: breakingParser{module: "jnvim.aaa"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModel), "got %v", err)

	require.NotNil(t, result)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "jnvim.zzz", result.Documents[0].Module)
	_, statErr := os.Stat(filepath.Join(p.root, "doc", "api", "jnvim", "aaa.md"))
	assert.True(t, os.IsNotExist(statErr))
}
