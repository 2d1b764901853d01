// Package render turns one annotated module into a Markdown document.
//
// # Overview
//
// A [Renderer] is created once per run from the global symbol linker and
// then renders modules independently:
//
//	linker := symbols.NewLinker(index, symbols.DefaultExternalRules())
//	r := render.New(linker, render.Options{CodeLanguage: "lua"})
//	doc, err := r.Module(module)
//	out := doc.String()
//
// Rendering is deterministic: the same module and index always produce the
// same bytes.
//
// # Document Layout
//
// A module that wraps a single class renders that class as the page. Any
// other module renders as:
//
//	# jnvim.ui
//	## Enums
//	### Mode          (member table)
//	## Methods
//	### open()        (signature, parameters, returns, notes, usage)
//	## Classes
//	### Window
//	#### Constructor
//	#### Fields
//	#### Properties  (name, type, access, description)
//	#### Methods
//	##### close()
//
// Header levels are passed down explicitly as a depth argument; a nested
// section is always rendered at its parent's depth plus one.
//
// # Links
//
// Every free-text field goes through [symbols.Linker.Link]. Types in
// tables are linked; types inside signature code blocks are shortened to
// their display names instead, since code blocks cannot hold links.
// Private functions and private constructors are omitted entirely.
package render
