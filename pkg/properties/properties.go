// Package properties folds property accessor methods into descriptors.
//
// A class exposes a property "name" through methods following the
// accessor convention:
//
//	properties.name.get   getter, its return types give the property type
//	properties.name.set   setter, its parameter types are the fallback type
//
// [Synthesize] produces one [Descriptor] per distinct property name. The
// symbol index uses the same convention ([model.ParseAccessor]) to emit
// one entry per property; the two never share state.
package properties

import (
	"strings"

	"github.com/matzehuels/refdoc/pkg/model"
)

// Access modes.
const (
	ReadOnly  = "read-only"
	ReadWrite = "read/write"
	WriteOnly = "write-only"
)

// Descriptor is a property synthesized from its accessors.
type Descriptor struct {
	Name string
	Type string // rendered type, empty when the accessors carry none
	Desc string // getter and setter descriptions, concatenated
	Get  bool
	Set  bool
}

// Access returns the access mode derived from the accessors present.
func (d Descriptor) Access() string {
	switch {
	case d.Get && !d.Set:
		return ReadOnly
	case d.Get && d.Set:
		return ReadWrite
	default:
		return WriteOnly
	}
}

// TypeFormatter renders a list of types as one display string.
// (*typestr.Renderer).Join satisfies it once bound to a link mode.
type TypeFormatter func(types []model.Type) (string, error)

// Synthesize returns the class's properties in order of first appearance.
func Synthesize(c *model.Class, format TypeFormatter) ([]Descriptor, error) {
	var out []Descriptor
	pos := make(map[string]int)

	for _, m := range c.Methods {
		name, kind, ok := model.ParseAccessor(m.Name)
		if !ok {
			continue
		}
		i, seen := pos[name]
		if !seen {
			i = len(out)
			pos[name] = i
			out = append(out, Descriptor{Name: name})
		}
		d := &out[i]

		if kind == model.Getter {
			d.Get = true
			t, err := format(returnTypes(m))
			if err != nil {
				return nil, err
			}
			d.Type = t
		} else {
			d.Set = true
			if d.Type == "" {
				t, err := format(paramTypes(m))
				if err != nil {
					return nil, err
				}
				d.Type = t
			}
		}
		d.Desc = appendDesc(d.Desc, m.ShortDesc, m.Desc)
	}
	return out, nil
}

// appendDesc joins the non-empty parts with single spaces.
func appendDesc(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func returnTypes(f *model.Function) []model.Type {
	out := make([]model.Type, len(f.Returns))
	for i, r := range f.Returns {
		out[i] = r.Type
	}
	return out
}

func paramTypes(f *model.Function) []model.Type {
	out := make([]model.Type, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}
