package model

import "strings"

// accessorPrefix starts every property accessor method name.
const accessorPrefix = "properties"

// AccessorKind tells a property getter from a setter.
type AccessorKind int

const (
	Getter AccessorKind = iota
	Setter
)

// IsAccessor reports whether a method name follows the property accessor
// convention. Such methods are folded into properties and never documented
// as methods.
func IsAccessor(name string) bool {
	return strings.HasPrefix(name, accessorPrefix)
}

// ParseAccessor decodes "properties.<name>.get" and "properties.<name>.set".
// The property name is the middle segment; a final "get" marks a getter and
// any other final segment a setter. ok is false for non-accessor names and
// for accessor names too short to carry a property name.
func ParseAccessor(name string) (property string, kind AccessorKind, ok bool) {
	if !IsAccessor(name) {
		return "", 0, false
	}
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return "", 0, false
	}
	property = parts[len(parts)-2]
	if parts[len(parts)-1] == "get" {
		return property, Getter, true
	}
	return property, Setter, true
}
