// Package symbols builds the global symbol index and resolves symbol
// mentions in text into links.
//
// # Index
//
// An [Index] is a flat, ordered list of [Entry] values, one per documented
// symbol: modules, classes, methods, module functions, enum members and
// synthesized properties. Entries are sorted by descending identifier
// length so that a longer identifier always takes precedence over a
// shorter one it contains:
//
//	jnvim.Buffer.on_change   → on_change
//	jnvim.Buffer             → Buffer
//	jnvim                    → jnvim
//
// The index is built once, from every module of a run, before any
// document is rendered. It is read-only afterwards.
//
// # Linking
//
// A [Linker] is compiled from an index and a set of [ExternalRule] values.
// [Linker.Link] rewrites identifiers into anchor tags and then applies the
// external rules; [Linker.Label] rewrites identifiers into their display
// names for contexts that cannot hold links, such as code blocks.
// Text produced by a replacement is never scanned again.
package symbols
