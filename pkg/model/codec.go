package model

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/refdoc/pkg/errors"
)

// =============================================================================
// Wire Types
// =============================================================================

type moduleWire struct {
	Name       string          `json:"name" yaml:"name"`
	ShortDesc  string          `json:"short_desc,omitempty" yaml:"short_desc,omitempty"`
	Desc       string          `json:"desc,omitempty" yaml:"desc,omitempty"`
	Functions  []*functionWire `json:"functions,omitempty" yaml:"functions,omitempty"`
	Classes    []*classWire    `json:"classes,omitempty" yaml:"classes,omitempty"`
	IsClassMod bool            `json:"is_class_mod,omitempty" yaml:"is_class_mod,omitempty"`
}

type classWire struct {
	Name      string          `json:"name" yaml:"name"`
	ShortDesc string          `json:"short_desc,omitempty" yaml:"short_desc,omitempty"`
	Desc      string          `json:"desc,omitempty" yaml:"desc,omitempty"`
	Methods   []*functionWire `json:"methods,omitempty" yaml:"methods,omitempty"`
	Fields    []*Field        `json:"fields,omitempty" yaml:"fields,omitempty"`
	IsEnum    bool            `json:"is_enum,omitempty" yaml:"is_enum,omitempty"`
}

type functionWire struct {
	Name       string        `json:"name" yaml:"name"`
	Visibility Visibility    `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	IsStatic   bool          `json:"is_static,omitempty" yaml:"is_static,omitempty"`
	Params     []*paramWire  `json:"params,omitempty" yaml:"params,omitempty"`
	Returns    []*returnWire `json:"returns,omitempty" yaml:"returns,omitempty"`
	ShortDesc  string        `json:"short_desc,omitempty" yaml:"short_desc,omitempty"`
	Desc       string        `json:"desc,omitempty" yaml:"desc,omitempty"`
	Usage      string        `json:"usage,omitempty" yaml:"usage,omitempty"`
}

type paramWire struct {
	Name         string    `json:"name" yaml:"name"`
	Type         *typeWire `json:"type" yaml:"type"`
	IsOpt        bool      `json:"is_opt,omitempty" yaml:"is_opt,omitempty"`
	DefaultValue string    `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Desc         string    `json:"desc,omitempty" yaml:"desc,omitempty"`
}

type returnWire struct {
	Type *typeWire `json:"type" yaml:"type"`
	Desc string    `json:"desc,omitempty" yaml:"desc,omitempty"`
}

type typeWire struct {
	Kind    string      `json:"kind" yaml:"kind"`
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	ID      string      `json:"id,omitempty" yaml:"id,omitempty"`
	Args    []*typeWire `json:"args,omitempty" yaml:"args,omitempty"`
	Returns []*typeWire `json:"returns,omitempty" yaml:"returns,omitempty"`
}

// =============================================================================
// Decoding
// =============================================================================

// DecodeJSON reads a JSON module model from r.
func DecodeJSON(r io.Reader) (*Module, error) {
	var w moduleWire
	dec := json.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode json model")
	}
	return w.toModel()
}

// DecodeYAML reads a YAML module model from r.
func DecodeYAML(r io.Reader) (*Module, error) {
	var w moduleWire
	if err := yaml.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode yaml model")
	}
	return w.toModel()
}

func (w *moduleWire) toModel() (*Module, error) {
	m := &Module{
		Name:       w.Name,
		ShortDesc:  w.ShortDesc,
		Desc:       w.Desc,
		IsClassMod: w.IsClassMod,
	}
	for _, fw := range w.Functions {
		f, err := fw.toModel()
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", w.Name, err)
		}
		m.Functions = append(m.Functions, f)
	}
	for _, cw := range w.Classes {
		c := &Class{
			Name:      cw.Name,
			ShortDesc: cw.ShortDesc,
			Desc:      cw.Desc,
			Fields:    cw.Fields,
			IsEnum:    cw.IsEnum,
		}
		for _, fw := range cw.Methods {
			f, err := fw.toModel()
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", cw.Name, err)
			}
			c.Methods = append(c.Methods, f)
		}
		m.Classes = append(m.Classes, c)
	}
	return m, nil
}

func (w *functionWire) toModel() (*Function, error) {
	f := &Function{
		Name:       w.Name,
		Visibility: w.Visibility,
		IsStatic:   w.IsStatic,
		ShortDesc:  w.ShortDesc,
		Desc:       w.Desc,
		Usage:      w.Usage,
	}
	if f.Visibility == "" {
		f.Visibility = Public
	}
	for _, pw := range w.Params {
		t, err := pw.Type.toType()
		if err != nil {
			return nil, fmt.Errorf("function %s: param %s: %w", w.Name, pw.Name, err)
		}
		f.Params = append(f.Params, &Param{
			Name:         pw.Name,
			Type:         t,
			IsOpt:        pw.IsOpt,
			DefaultValue: pw.DefaultValue,
			Desc:         pw.Desc,
		})
	}
	for i, rw := range w.Returns {
		t, err := rw.Type.toType()
		if err != nil {
			return nil, fmt.Errorf("function %s: return %d: %w", w.Name, i, err)
		}
		f.Returns = append(f.Returns, &Return{Type: t, Desc: rw.Desc})
	}
	return f, nil
}

func (w *typeWire) toType() (Type, error) {
	if w == nil {
		return nil, errors.New(errors.ErrCodeInvalidModel, "missing type")
	}
	switch w.Kind {
	case KindAny:
		return Any{}, nil
	case KindBoolean:
		return Boolean{}, nil
	case KindNumber:
		return Number{}, nil
	case KindString:
		return String{}, nil
	case KindCustom:
		return Custom{Name: w.Name}, nil
	case KindFunction:
		return FunctionRef{ID: w.ID}, nil
	case KindCallable:
		c := Callable{}
		for _, a := range w.Args {
			t, err := a.toType()
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, t)
		}
		for _, r := range w.Returns {
			t, err := r.toType()
			if err != nil {
				return nil, err
			}
			c.Returns = append(c.Returns, t)
		}
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidModel, "unknown type kind %q", w.Kind)
	}
}

// =============================================================================
// Encoding
// =============================================================================

// EncodeJSON writes m as JSON. The output round-trips through [DecodeJSON].
func EncodeJSON(m *Module, w io.Writer) error {
	out, err := fromModule(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func fromModule(m *Module) (*moduleWire, error) {
	w := &moduleWire{
		Name:       m.Name,
		ShortDesc:  m.ShortDesc,
		Desc:       m.Desc,
		IsClassMod: m.IsClassMod,
	}
	for _, f := range m.Functions {
		fw, err := fromFunction(f)
		if err != nil {
			return nil, err
		}
		w.Functions = append(w.Functions, fw)
	}
	for _, c := range m.Classes {
		cw := &classWire{
			Name:      c.Name,
			ShortDesc: c.ShortDesc,
			Desc:      c.Desc,
			Fields:    c.Fields,
			IsEnum:    c.IsEnum,
		}
		for _, f := range c.Methods {
			fw, err := fromFunction(f)
			if err != nil {
				return nil, err
			}
			cw.Methods = append(cw.Methods, fw)
		}
		w.Classes = append(w.Classes, cw)
	}
	return w, nil
}

func fromFunction(f *Function) (*functionWire, error) {
	w := &functionWire{
		Name:       f.Name,
		Visibility: f.Visibility,
		IsStatic:   f.IsStatic,
		ShortDesc:  f.ShortDesc,
		Desc:       f.Desc,
		Usage:      f.Usage,
	}
	for _, p := range f.Params {
		tw, err := fromType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("function %s: param %s: %w", f.Name, p.Name, err)
		}
		w.Params = append(w.Params, &paramWire{
			Name:         p.Name,
			Type:         tw,
			IsOpt:        p.IsOpt,
			DefaultValue: p.DefaultValue,
			Desc:         p.Desc,
		})
	}
	for _, r := range f.Returns {
		tw, err := fromType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}
		w.Returns = append(w.Returns, &returnWire{Type: tw, Desc: r.Desc})
	}
	return w, nil
}

// typeEncoder builds the wire form of a type through the visitor, so the
// encoder is checked for exhaustiveness like every other consumer.
type typeEncoder struct {
	out *typeWire
	err error
}

func fromType(t Type) (*typeWire, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidModel, "missing type")
	}
	e := &typeEncoder{}
	t.Accept(e)
	return e.out, e.err
}

func (e *typeEncoder) VisitAny(Any)         { e.out = &typeWire{Kind: KindAny} }
func (e *typeEncoder) VisitBoolean(Boolean) { e.out = &typeWire{Kind: KindBoolean} }
func (e *typeEncoder) VisitNumber(Number)   { e.out = &typeWire{Kind: KindNumber} }
func (e *typeEncoder) VisitString(String)   { e.out = &typeWire{Kind: KindString} }
func (e *typeEncoder) VisitCustom(t Custom) { e.out = &typeWire{Kind: KindCustom, Name: t.Name} }

func (e *typeEncoder) VisitFunctionRef(t FunctionRef) {
	e.out = &typeWire{Kind: KindFunction, ID: t.ID}
}

func (e *typeEncoder) VisitCallable(t Callable) {
	w := &typeWire{Kind: KindCallable}
	for _, a := range t.Args {
		aw, err := fromType(a)
		if err != nil {
			e.err = err
			return
		}
		w.Args = append(w.Args, aw)
	}
	for _, r := range t.Returns {
		rw, err := fromType(r)
		if err != nil {
			e.err = err
			return
		}
		w.Returns = append(w.Returns, rw)
	}
	e.out = w
}
