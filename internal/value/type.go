// Package value implements the value algebra of spec.md §4.3: a tagged
// sum of unit, boolean, integer, array, tuple, structure, and enumeration
// values, each wrapping the scalar wires of internal/gadgets, with a
// uniform operation-dispatch surface driven by the left-hand operand's
// kind and a type check against the right-hand one. Per spec.md §9's
// design note, this is a flat variant with per-kind free functions, not
// an inheritance tree.
package value

import (
	"fmt"
	"strings"
)

// Kind enumerates the seven value variants of spec.md §3.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindInt
	KindArray
	KindTuple
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Type is a recursive type descriptor (spec.md §3, "Type descriptor").
// Equality is structural and witness-independent: it never consults a
// Value, only the shape of two Types.
type Type struct {
	Kind Kind

	// KindInt, KindEnum
	Bits   uint
	Signed bool // meaningless for KindEnum, which is always unsigned

	// KindArray
	Elem   *Type
	Length int

	// KindTuple
	Elems []Type

	// KindStruct: FieldNames and FieldTypes are parallel, insertion-ordered.
	FieldNames []string
	FieldTypes []Type
}

func Unit() Type { return Type{Kind: KindUnit} }
func Bool() Type { return Type{Kind: KindBool} }
func Int(bits uint, signed bool) Type {
	return Type{Kind: KindInt, Bits: bits, Signed: signed}
}
func Enum(bits uint) Type { return Type{Kind: KindEnum, Bits: bits} }
func Array(elem Type, length int) Type {
	return Type{Kind: KindArray, Elem: &elem, Length: length}
}
func Tuple(elems ...Type) Type {
	return Type{Kind: KindTuple, Elems: elems}
}
func Struct(names []string, types []Type) Type {
	return Type{Kind: KindStruct, FieldNames: names, FieldTypes: types}
}

// Equal reports whether t and other describe the same type, structurally.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindUnit, KindBool:
		return true
	case KindInt, KindEnum:
		return t.Bits == other.Bits && (t.Kind == KindEnum || t.Signed == other.Signed)
	case KindArray:
		return t.Length == other.Length && t.Elem.Equal(*other.Elem)
	case KindTuple:
		if len(t.Elems) != len(other.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	case KindStruct:
		if len(t.FieldNames) != len(other.FieldNames) {
			return false
		}
		for i := range t.FieldNames {
			if t.FieldNames[i] != other.FieldNames[i] || !t.FieldTypes[i].Equal(other.FieldTypes[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		sign := "u"
		if t.Signed {
			sign = "i"
		}
		return fmt.Sprintf("%s%d", sign, t.Bits)
	case KindEnum:
		return fmt.Sprintf("enum%d", t.Bits)
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.Length)
	case KindTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindStruct:
		parts := make([]string, len(t.FieldNames))
		for i, n := range t.FieldNames {
			parts[i] = fmt.Sprintf("%s: %s", n, t.FieldTypes[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}
