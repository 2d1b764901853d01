// Package model defines the annotation model consumed by refdoc.
//
// The model is produced by an external source-annotation parser and is
// treated as immutable input: refdoc never validates the parser's grammar,
// it only reads the tree.
//
// # Structure
//
//	Module
//	  ├── Functions []*Function
//	  └── Classes   []*Class
//	        ├── Methods []*Function
//	        └── Fields  []*Field
//
// A [Module] with IsClassMod set documents its first class; further
// classes are still indexed. A [Class]
// with IsEnum set is an enumeration whose members are its fields.
//
// # Types
//
// [Type] is a closed set of variants: [Any], [Boolean], [Number], [String],
// [Callable], [Custom] and [FunctionRef]. Consumers dispatch through
// [TypeVisitor], which has one method per variant, so a new variant cannot
// be added without every visitor being updated.
//
// # Accessors
//
// Methods named "properties.<name>.get" and "properties.<name>.set" are
// property accessors. [ParseAccessor] is the single place the naming
// convention is decoded.
//
// # Wire Format
//
// [DecodeJSON], [DecodeYAML] and [EncodeJSON] convert between the model
// and its serialized form. Types are tagged by a "kind" field:
//
//	{"kind": "callable", "args": [{"kind": "number"}], "returns": [{"kind": "string"}]}
//	{"kind": "custom", "name": "jnvim.Buffer"}
//	{"kind": "function", "id": "jnvim.Buffer.on_change"}
package model
