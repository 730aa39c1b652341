package mython

// ValueKind enumerates the runtime value variants.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindClass
	KindInstance
)

// Value is a handle to a runtime object. The zero Value is None. Numbers,
// strings, and booleans are value-typed and owned per holder; classes and
// instances are carried behind pointers, so every holder of the same
// instance observes the same fields.
type Value struct {
	kind ValueKind
	data any
}
