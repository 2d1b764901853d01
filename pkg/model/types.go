package model

// Type is a typed-value annotation. The set of implementations is closed;
// use Accept with a [TypeVisitor] to dispatch on the variant.
type Type interface {
	Accept(v TypeVisitor)
	isType()
}

// TypeVisitor handles every [Type] variant. Adding a variant adds a method
// here, which breaks every visitor until it handles the new case.
type TypeVisitor interface {
	VisitAny(Any)
	VisitBoolean(Boolean)
	VisitNumber(Number)
	VisitString(String)
	VisitCallable(Callable)
	VisitCustom(Custom)
	VisitFunctionRef(FunctionRef)
}

// Any is the untyped annotation.
type Any struct{}

// Boolean is a boolean annotation.
type Boolean struct{}

// Number is a numeric annotation.
type Number struct{}

// String is a string annotation.
type String struct{}

// Callable is a function type with argument and return types.
type Callable struct {
	Args    []Type
	Returns []Type
}

// Custom refers to a user-defined type by name, usually a class.
type Custom struct {
	Name string
}

// FunctionRef refers to a documented function by id.
type FunctionRef struct {
	ID string
}

func (t Any) Accept(v TypeVisitor)         { v.VisitAny(t) }
func (t Boolean) Accept(v TypeVisitor)     { v.VisitBoolean(t) }
func (t Number) Accept(v TypeVisitor)      { v.VisitNumber(t) }
func (t String) Accept(v TypeVisitor)      { v.VisitString(t) }
func (t Callable) Accept(v TypeVisitor)    { v.VisitCallable(t) }
func (t Custom) Accept(v TypeVisitor)      { v.VisitCustom(t) }
func (t FunctionRef) Accept(v TypeVisitor) { v.VisitFunctionRef(t) }

func (Any) isType()         {}
func (Boolean) isType()     {}
func (Number) isType()      {}
func (String) isType()      {}
func (Callable) isType()    {}
func (Custom) isType()      {}
func (FunctionRef) isType() {}

// Type kinds used by the wire format.
const (
	KindAny      = "any"
	KindBoolean  = "boolean"
	KindNumber   = "number"
	KindString   = "string"
	KindCallable = "callable"
	KindCustom   = "custom"
	KindFunction = "function"
)
