package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/refdoc/pkg/symbols"
)

// WriteIndexJSON encodes the index entries as JSON and writes them to w,
// in precedence order.
func WriteIndexJSON(idx *symbols.Index, w io.Writer) error {
	entries := idx.Entries()
	if entries == nil {
		entries = []symbols.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportIndexJSON writes the index to a JSON file at path.
// This is a convenience wrapper around [WriteIndexJSON] for file-based output.
func ExportIndexJSON(idx *symbols.Index, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteIndexJSON(idx, f)
}
