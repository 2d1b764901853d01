package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/refdoc/pkg/markdown"
	"github.com/matzehuels/refdoc/pkg/model"
	"github.com/matzehuels/refdoc/pkg/properties"
	"github.com/matzehuels/refdoc/pkg/symbols"
	"github.com/matzehuels/refdoc/pkg/typestr"
)

// DefaultCodeLanguage is the info string of generated code blocks.
const DefaultCodeLanguage = "lua"

// topLevel is the header level of a document title.
const topLevel = 1

// Options configures rendering.
type Options struct {
	CodeLanguage string // code block language, DefaultCodeLanguage when empty
	BooleanName  string // label for boolean types, typestr.DefaultBooleanName when empty
}

// Renderer renders modules against a fixed symbol index. It holds no
// per-document state and may be reused for every module of a run.
type Renderer struct {
	linker *symbols.Linker
	types  *typestr.Renderer
	lang   string
}

// New creates a renderer resolving links through linker.
func New(linker *symbols.Linker, opts Options) *Renderer {
	types := typestr.New(linker)
	if opts.BooleanName != "" {
		types.BooleanName = opts.BooleanName
	}
	lang := opts.CodeLanguage
	if lang == "" {
		lang = DefaultCodeLanguage
	}
	return &Renderer{linker: linker, types: types, lang: lang}
}

// heading overrides a class's title block when a class module folds its
// own description into the class page.
type heading struct {
	short string
	desc  string
}

// Module renders m as a complete document.
func (r *Renderer) Module(m *model.Module) (*markdown.Document, error) {
	doc := markdown.New()

	// A class module documents its first class; a class module without
	// classes renders as a plain module.
	if m.IsClassMod && len(m.Classes) > 0 {
		c := m.Classes[0]
		h := heading{short: first(m.ShortDesc, c.ShortDesc), desc: first(m.Desc, c.Desc)}
		if c.IsEnum {
			r.enum(doc, c, topLevel, h)
			return doc, nil
		}
		if err := r.class(doc, c, topLevel, h); err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		return doc, nil
	}

	doc.Add(markdown.Header{Level: topLevel, Text: m.Name})
	r.prose(doc, m.ShortDesc)
	r.prose(doc, m.Desc)
	doc.Add(markdown.HorizontalRule{})

	if err := r.moduleSections(doc, m, topLevel+1); err != nil {
		return nil, fmt.Errorf("module %s: %w", m.Name, err)
	}
	return doc, nil
}

func (r *Renderer) moduleSections(doc *markdown.Document, m *model.Module, depth int) error {
	if enums := m.Enums(); len(enums) > 0 {
		doc.Add(markdown.Header{Level: depth, Text: "Enums"})
		for _, e := range enums {
			r.enum(doc, e, depth+1, heading{short: e.ShortDesc, desc: e.Desc})
		}
	}

	if len(m.Functions) > 0 {
		doc.Add(markdown.Header{Level: depth, Text: "Methods"})
		for _, fn := range m.Functions {
			if err := r.function(doc, fn, depth+1, ""); err != nil {
				return err
			}
		}
	}

	if classes := m.PlainClasses(); len(classes) > 0 {
		doc.Add(markdown.Header{Level: depth, Text: "Classes"})
		for _, c := range classes {
			if err := r.class(doc, c, depth+1, heading{short: c.ShortDesc, desc: c.Desc}); err != nil {
				return err
			}
		}
	}
	return nil
}

// =============================================================================
// Classes and Enums
// =============================================================================

func (r *Renderer) class(doc *markdown.Document, c *model.Class, depth int, h heading) error {
	name := c.ShortName()
	doc.Add(markdown.Header{Level: depth, Text: name})
	r.prose(doc, h.short)
	r.prose(doc, h.desc)

	if err := r.classSections(doc, c, depth+1); err != nil {
		return fmt.Errorf("class %s: %w", c.Name, err)
	}
	return nil
}

func (r *Renderer) classSections(doc *markdown.Document, c *model.Class, depth int) error {
	name := c.ShortName()

	if ctor := c.Constructor(); ctor != nil && !ctor.IsPrivate() {
		doc.Add(markdown.Header{Level: depth, Text: "Constructor"})
		if err := r.constructor(doc, ctor, name); err != nil {
			return err
		}
	}

	if len(c.Fields) > 0 {
		doc.Add(markdown.Header{Level: depth, Text: "Fields"})
	}

	props, err := properties.Synthesize(c, func(types []model.Type) (string, error) {
		return r.types.Join(types, true)
	})
	if err != nil {
		return err
	}
	if len(props) > 0 {
		doc.Add(markdown.Header{Level: depth, Text: "Properties"})
		rows := make([][]string, len(props))
		for i, p := range props {
			rows[i] = []string{
				"```" + p.Name + "```",
				"<code>" + p.Type + "</code>",
				p.Access(),
				r.linker.Link(p.Desc),
			}
		}
		doc.Add(markdown.Table{
			Header: []string{"Name", "Type", "Access", "Description"},
			Rows:   rows,
			Align:  []markdown.Align{markdown.AlignCenter, markdown.AlignCenter, markdown.AlignCenter, markdown.AlignLeft},
		})
	}

	if methods := documentedMethods(c); len(methods) > 0 {
		doc.Add(markdown.Header{Level: depth, Text: "Methods"})
		for _, m := range methods {
			if err := r.function(doc, m, depth+1, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// documentedMethods returns the public methods that are neither accessors
// nor the constructor.
func documentedMethods(c *model.Class) []*model.Function {
	var out []*model.Function
	for _, m := range c.Methods {
		if model.IsAccessor(m.Name) || m.IsPrivate() || m.Name == model.ConstructorName {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (r *Renderer) enum(doc *markdown.Document, c *model.Class, depth int, h heading) {
	doc.Add(markdown.Header{Level: depth, Text: c.ShortName()})
	r.prose(doc, h.short)
	r.prose(doc, h.desc)

	rows := make([][]string, len(c.Fields))
	for i, f := range c.Fields {
		rows[i] = []string{"```" + f.Name + "```", r.linker.Link(f.Desc)}
	}
	doc.Add(markdown.Table{
		Header: []string{"Member", "Description"},
		Rows:   rows,
		Align:  []markdown.Align{markdown.AlignLeft, markdown.AlignLeft},
	})
}

// =============================================================================
// Functions
// =============================================================================

// function renders a function section. owner is the class short name for
// methods and empty for module functions.
func (r *Renderer) function(doc *markdown.Document, fn *model.Function, depth int, owner string) error {
	if fn.IsPrivate() {
		return nil
	}

	args, returns, err := r.signature(fn)
	if err != nil {
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}

	scope := ""
	if owner != "" {
		if fn.IsStatic {
			scope = owner + "."
		} else {
			scope = owner + ":"
		}
	}

	doc.Add(markdown.Header{Level: depth, Text: fn.Name + "()"})
	r.prose(doc, fn.ShortDesc)
	doc.Add(markdown.Bold{Text: "Signature"})
	doc.Add(markdown.Code{Lang: r.lang, Text: fmt.Sprintf("function %s%s(%s) -> %s", scope, fn.Name, args, returns)})

	if err := r.params(doc, fn); err != nil {
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}
	if err := r.returns(doc, fn); err != nil {
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}
	r.notesAndUsage(doc, fn)
	doc.Add(markdown.HorizontalRule{})
	return nil
}

func (r *Renderer) constructor(doc *markdown.Document, ctor *model.Function, owner string) error {
	args, _, err := r.signature(ctor)
	if err != nil {
		return fmt.Errorf("constructor: %w", err)
	}

	doc.Add(markdown.Bold{Text: "Signature"})
	doc.Add(markdown.Code{Lang: r.lang, Text: owner + "(" + args + ")"})

	if err := r.params(doc, ctor); err != nil {
		return fmt.Errorf("constructor: %w", err)
	}
	r.notesAndUsage(doc, ctor)
	return nil
}

// signature returns the argument list and the return list of fn, with
// types shortened to display names. A function without returns yields "nil".
func (r *Renderer) signature(fn *model.Function) (args, returns string, err error) {
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		t, err := r.types.Render(p.Type, false)
		if err != nil {
			return "", "", fmt.Errorf("param %s: %w", p.Name, err)
		}
		parts[i] = p.Name + ": " + t
	}
	args = strings.Join(parts, ", ")

	if len(fn.Returns) == 0 {
		return args, "nil", nil
	}
	rets := make([]model.Type, len(fn.Returns))
	for i, ret := range fn.Returns {
		rets[i] = ret.Type
	}
	returns, err = r.types.Join(rets, false)
	if err != nil {
		return "", "", fmt.Errorf("returns: %w", err)
	}
	return args, returns, nil
}

func (r *Renderer) params(doc *markdown.Document, fn *model.Function) error {
	if len(fn.Params) == 0 {
		return nil
	}
	rows := make([][]string, len(fn.Params))
	for i, p := range fn.Params {
		t, err := r.types.Render(p.Type, true)
		if err != nil {
			return fmt.Errorf("param %s: %w", p.Name, err)
		}
		name := "```" + p.Name + "```"
		if !p.IsOpt {
			name += "*"
		}
		rows[i] = []string{name, "<code>" + t + "</code>", r.linker.Link(p.Desc), p.DefaultValue}
	}
	doc.Add(markdown.Table{
		Header: []string{"Parameter", "Type", "Description", "Default"},
		Rows:   rows,
		Align:  []markdown.Align{markdown.AlignLeft, markdown.AlignLeft, markdown.AlignLeft, markdown.AlignLeft},
	})
	return nil
}

func (r *Renderer) returns(doc *markdown.Document, fn *model.Function) error {
	if len(fn.Returns) == 0 {
		return nil
	}
	rows := make([][]string, len(fn.Returns))
	for i, ret := range fn.Returns {
		t, err := r.types.Render(ret.Type, true)
		if err != nil {
			return fmt.Errorf("return %d: %w", i, err)
		}
		rows[i] = []string{"<code>" + t + "</code>", r.linker.Link(ret.Desc)}
	}
	doc.Add(markdown.Table{
		Header: []string{"Returns", "Description"},
		Rows:   rows,
		Align:  []markdown.Align{markdown.AlignLeft, markdown.AlignLeft},
	})
	return nil
}

func (r *Renderer) notesAndUsage(doc *markdown.Document, fn *model.Function) {
	if fn.Desc != "" {
		doc.Add(markdown.Bold{Text: "Notes"})
		r.prose(doc, fn.Desc)
	}
	if fn.Usage != "" {
		doc.Add(markdown.Bold{Text: "Usage"})
		doc.Add(markdown.Code{Lang: r.lang, Text: fn.Usage})
	}
}

// prose adds a linked paragraph, skipping empty text.
func (r *Renderer) prose(doc *markdown.Document, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	doc.Add(markdown.Paragraph{Text: r.linker.Link(text)})
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
