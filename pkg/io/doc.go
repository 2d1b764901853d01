// Package io writes generated documents and symbol indexes to disk.
//
// # Documents
//
// [WriteFile] is the only way the generator touches the output tree. It
// creates parent directories, skips files whose content is already
// identical, and replaces changed files atomically through a temporary
// file and a rename, so a crashed run never leaves a truncated document.
//
//	status, err := io.WriteFile("doc/api/jnvim/buffer.md", data)
//	// status is io.Written or io.Unchanged
//
// # Staleness
//
// [Compare] reports whether a file on disk matches freshly rendered
// content, and [Diff] produces a unified diff between the two for the
// check mode of the CLI:
//
//	stale, old, err := io.Compare(path, data)
//	if stale {
//	    fmt.Print(io.Diff(path, old, data))
//	}
//
// # Index Export
//
// [WriteIndexJSON] encodes a symbol index as a JSON array of
// {"id", "name", "url"} objects in precedence order.
package io
