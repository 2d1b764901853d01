package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/refdoc/pkg/errors"
)

func testLayout(root string) Layout {
	return Layout{
		SourceRoot:      filepath.Join(root, "lua"),
		SourceExtension: ".lua",
		OutputRoot:      filepath.Join(root, "doc", "api"),
		OutputExtension: ".md",
		SiteRoot:        filepath.Join(root, "doc"),
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	l := testLayout(root)
	touch(t, filepath.Join(root, "lua", "jnvim", "window.lua"))
	touch(t, filepath.Join(root, "lua", "jnvim", "buffer.lua"))
	touch(t, filepath.Join(root, "lua", "init.lua"))
	touch(t, filepath.Join(root, "lua", "README.md"))
	touch(t, filepath.Join(root, "lua", ".hidden", "skip.lua"))

	got, err := Discover(l)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "init.lua", got[0].Rel)
	assert.Equal(t, "jnvim/buffer.lua", got[1].Rel)
	assert.Equal(t, "jnvim/window.lua", got[2].Rel)

	b := got[1]
	assert.Equal(t, filepath.Join(root, "lua", "jnvim", "buffer.lua"), b.Path)
	assert.Equal(t, filepath.Join(root, "doc", "api", "jnvim", "buffer.md"), b.OutPath)
	assert.Equal(t, "api/jnvim/buffer", b.URL)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(testLayout(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestLocate(t *testing.T) {
	l := Layout{
		SourceRoot:      "lua",
		SourceExtension: ".lua",
		OutputRoot:      "doc/api",
		OutputExtension: ".md",
		SiteRoot:        "doc",
	}

	src, err := l.Locate("jnvim/ui/window.lua")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("lua/jnvim/ui/window.lua"), src.Path)
	assert.Equal(t, filepath.FromSlash("doc/api/jnvim/ui/window.md"), src.OutPath)
	assert.Equal(t, "api/jnvim/ui/window", src.URL)

	_, err = l.Locate("../escape.lua")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))

	l.SiteRoot = "site"
	_, err = l.Locate("a.lua")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}

func TestLocateSameRoots(t *testing.T) {
	l := Layout{SourceRoot: "src", SourceExtension: ".yaml", OutputRoot: "docs", OutputExtension: ".md", SiteRoot: "docs"}
	src, err := l.Locate("buffer.yaml")
	require.NoError(t, err)
	assert.Equal(t, "buffer", src.URL)
}

func TestContains(t *testing.T) {
	l := testLayout("/p")
	assert.True(t, l.Contains("/p/lua/a/b.lua"))
	assert.False(t, l.Contains("/p/lua/a/b.txt"))
	assert.False(t, l.Contains("/p/other/b.lua"))
}
