package io

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/matzehuels/refdoc/pkg/errors"
)

// Status is the outcome of writing one document.
type Status string

const (
	Written   Status = "written"
	Unchanged Status = "unchanged"
	Stale     Status = "stale"
)

// WriteFile writes data to path unless the file already holds exactly data.
func WriteFile(path string, data []byte) (Status, error) {
	stale, _, err := Compare(path, data)
	if err != nil {
		return "", err
	}
	if !stale {
		return Unchanged, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create temp file for %s", path)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "chmod %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "rename into %s", path)
	}
	return Written, nil
}

// Compare reports whether the file at path differs from data, and returns
// its current content. A missing file is stale with empty content.
func Compare(path string, data []byte) (stale bool, current []byte, err error) {
	current, err = os.ReadFile(path)
	if os.IsNotExist(err) {
		return true, nil, nil
	}
	if err != nil {
		return false, nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return !bytes.Equal(current, data), current, nil
}

// Diff returns a unified diff from old to new, labelled with path.
func Diff(path string, old, new []byte) string {
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(new)),
		FromFile: path + " (on disk)",
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("--- %s: diff failed: %v\n", path, err)
	}
	return out
}
