package model

import "strings"

// Visibility is the declared visibility of a function or method.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// ConstructorName is the method name that marks a class constructor.
const ConstructorName = "init"

// Module is one parsed source file.
type Module struct {
	Name       string
	ShortDesc  string
	Desc       string
	Functions  []*Function
	Classes    []*Class
	IsClassMod bool // the module documents a single class
}

// Class is a documented class or enumeration. Name is dotted (e.g. "pkg.Type").
type Class struct {
	Name      string
	ShortDesc string
	Desc      string
	Methods   []*Function
	Fields    []*Field
	IsEnum    bool
}

// Function is a module-level function or a class method.
type Function struct {
	Name       string
	Visibility Visibility
	IsStatic   bool
	Params     []*Param
	Returns    []*Return
	ShortDesc  string
	Desc       string
	Usage      string
}

// Param is a single function parameter.
type Param struct {
	Name         string
	Type         Type
	IsOpt        bool
	DefaultValue string
	Desc         string
}

// Return is a single return value.
type Return struct {
	Type Type
	Desc string
}

// Field is an enum member or a plain class field.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Desc string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// ShortName returns the last dotted segment of the class name.
func (c *Class) ShortName() string {
	return LastSegment(c.Name)
}

// Constructor returns the method named "init", or nil.
func (c *Class) Constructor() *Function {
	for _, m := range c.Methods {
		if m.Name == ConstructorName {
			return m
		}
	}
	return nil
}

// IsPrivate reports whether the function is declared private.
func (f *Function) IsPrivate() bool {
	return f.Visibility == Private
}

// Enums returns the module's enum classes in declaration order.
func (m *Module) Enums() []*Class {
	var out []*Class
	for _, c := range m.Classes {
		if c.IsEnum {
			out = append(out, c)
		}
	}
	return out
}

// PlainClasses returns the module's non-enum classes in declaration order.
func (m *Module) PlainClasses() []*Class {
	var out []*Class
	for _, c := range m.Classes {
		if !c.IsEnum {
			out = append(out, c)
		}
	}
	return out
}

// LastSegment returns the part of a dotted name after the final dot.
func LastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
