package mython

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindClass:
		return "Class"
	case KindInstance:
		return "ClassInstance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Truthy reports the truthiness of a value: None is false, booleans carry
// their own truth, numbers are true when nonzero, strings when non-empty,
// classes and instances are always true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.data.(bool)
	case KindNumber:
		return v.data.(int64) != 0
	case KindString:
		return v.data.(string) != ""
	default:
		return true
	}
}

// String renders the value for the host. Instances render as an identity
// token without consulting __str__; use Execution-backed printing (print,
// str(), Session.Format) for dunder-aware output.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.data.(bool) {
			return "True"
		}
		return "False"
	case KindNumber:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindString:
		return v.data.(string)
	case KindClass:
		return "Class " + v.data.(*Class).Name()
	case KindInstance:
		inst := v.data.(*Instance)
		return fmt.Sprintf("<%s instance at %p>", inst.Class().Name(), inst)
	default:
		return fmt.Sprintf("value(%d)", int(v.kind))
	}
}
