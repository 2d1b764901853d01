// Package typestr renders type annotations as display text.
//
//	Any                          → any
//	Number                       → number
//	String                       → string
//	Callable([number], [string]) → function(number):string
//	Callable([], [A, B])         → function():(A, B)
//	Custom("pkg.Buffer")         → pkg.Buffer, resolved through the linker
//
// Boolean renders as [DefaultBooleanName] unless configured otherwise.
package typestr

import (
	"strings"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/model"
)

// DefaultBooleanName is the label used for boolean annotations. Published
// documentation has always shown booleans as "string"; set
// Renderer.BooleanName to "boolean" to opt out.
const DefaultBooleanName = "string"

// Resolver rewrites symbol identifiers inside a rendered type name.
// *symbols.Linker implements it.
type Resolver interface {
	Link(text string) string
	Label(text string) string
}

// Renderer turns types into display strings.
type Renderer struct {
	Resolver    Resolver // optional; names pass through unchanged when nil
	BooleanName string   // defaults to DefaultBooleanName
}

// New creates a renderer resolving names through r.
func New(r Resolver) *Renderer {
	return &Renderer{Resolver: r, BooleanName: DefaultBooleanName}
}

// Render returns the display text of t. With link set, custom type names
// and function references become links; otherwise they are shortened to
// their display names. A nil type, anywhere in t, is reported as an
// INVALID_MODEL error.
func (r *Renderer) Render(t model.Type, link bool) (string, error) {
	w := &writer{r: r, link: link}
	w.write(t)
	if w.err != nil {
		return "", w.err
	}
	return w.b.String(), nil
}

// Join renders each type and joins them with ", ".
func (r *Renderer) Join(types []model.Type, link bool) (string, error) {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		s, err := r.Render(t, link)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

// writer is the TypeVisitor that does the rendering.
type writer struct {
	r    *Renderer
	link bool
	b    strings.Builder
	err  error
}

func (w *writer) write(t model.Type) {
	if w.err != nil {
		return
	}
	if t == nil {
		w.err = errors.New(errors.ErrCodeInvalidModel, "type annotation is missing")
		return
	}
	t.Accept(w)
}

func (w *writer) VisitAny(model.Any)       { w.b.WriteString("any") }
func (w *writer) VisitNumber(model.Number) { w.b.WriteString("number") }
func (w *writer) VisitString(model.String) { w.b.WriteString("string") }

func (w *writer) VisitBoolean(model.Boolean) {
	name := w.r.BooleanName
	if name == "" {
		name = DefaultBooleanName
	}
	w.b.WriteString(name)
}

func (w *writer) VisitCallable(t model.Callable) {
	w.b.WriteString("function(")
	for i, a := range t.Args {
		if i > 0 {
			w.b.WriteString(", ")
		}
		w.write(a)
	}
	w.b.WriteString("):")
	if len(t.Returns) == 1 {
		w.write(t.Returns[0])
		return
	}
	w.b.WriteByte('(')
	for i, ret := range t.Returns {
		if i > 0 {
			w.b.WriteString(", ")
		}
		w.write(ret)
	}
	w.b.WriteByte(')')
}

func (w *writer) VisitCustom(t model.Custom)           { w.b.WriteString(w.resolve(t.Name)) }
func (w *writer) VisitFunctionRef(t model.FunctionRef) { w.b.WriteString(w.resolve(t.ID)) }

func (w *writer) resolve(name string) string {
	switch {
	case w.r.Resolver == nil:
		return name
	case w.link:
		return w.r.Resolver.Link(name)
	default:
		return w.r.Resolver.Label(name)
	}
}
