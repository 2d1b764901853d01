// Package source discovers the files to document and maps each one to its
// output document.
//
// With source root "lua", output root "doc/api" and site root "doc":
//
//	lua/jnvim/buffer.lua → doc/api/jnvim/buffer.md, URL "api/jnvim/buffer"
//
// URLs are relative to the site root, slash separated and without suffix;
// they are what the symbol index links to.
package source

import (
	stderrors "errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/refdoc/pkg/errors"
)

// Layout describes where sources live and where documents go.
type Layout struct {
	SourceRoot      string
	SourceExtension string
	OutputRoot      string
	OutputExtension string
	SiteRoot        string
}

// Source is one discovered file.
type Source struct {
	Path    string // path on disk
	Rel     string // slash-separated path below the source root
	OutPath string // document path on disk
	URL     string // document URL below the site root, without suffix
}

// Discover walks the source root and returns every file with the source
// extension, sorted by relative path.
func Discover(l Layout) ([]Source, error) {
	if err := errors.ValidateRoot("source root", l.SourceRoot); err != nil {
		return nil, err
	}
	var out []Source
	err := filepath.WalkDir(l.SourceRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != l.SourceRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), l.SourceExtension) {
			return nil
		}
		rel, err := filepath.Rel(l.SourceRoot, p)
		if err != nil {
			return err
		}
		src, err := l.Locate(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src.Path = p
		out = append(out, src)
		return nil
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source root %s", l.SourceRoot)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "scan %s", l.SourceRoot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rel < out[j].Rel })
	return out, nil
}

// Locate maps a slash-separated path below the source root to its source,
// output path and URL.
func (l Layout) Locate(rel string) (Source, error) {
	if err := errors.ValidatePath(rel); err != nil {
		return Source{}, err
	}
	stem := strings.TrimSuffix(rel, l.SourceExtension)
	outRel := stem + l.OutputExtension
	outPath := filepath.Join(l.OutputRoot, filepath.FromSlash(outRel))

	siteRel, err := filepath.Rel(l.SiteRoot, filepath.Join(l.OutputRoot, filepath.FromSlash(stem)))
	if err != nil {
		return Source{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "%s is not below the site root", rel)
	}
	url := path.Clean(filepath.ToSlash(siteRel))
	if url == ".." || strings.HasPrefix(url, "../") {
		return Source{}, errors.New(errors.ErrCodeInvalidPath, "%s maps outside the site root", rel)
	}

	return Source{
		Path:    filepath.Join(l.SourceRoot, filepath.FromSlash(rel)),
		Rel:     rel,
		OutPath: outPath,
		URL:     url,
	}, nil
}

// Contains reports whether path is a source file below the root.
func (l Layout) Contains(p string) bool {
	if !strings.HasSuffix(p, l.SourceExtension) {
		return false
	}
	rel, err := filepath.Rel(l.SourceRoot, p)
	if err != nil {
		return false
	}
	return errors.ValidatePath(filepath.ToSlash(rel)) == nil
}
