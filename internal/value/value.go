package value

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/gadgets"
	"github.com/Epiisteme/zinc/internal/scalar"
)

// Value is a tagged runtime value (spec.md §3). Scalar kinds (bool, int,
// enum) carry a single gadgets.Wire; aggregate kinds carry element
// Values. Per spec.md §9 ("Sharing of allocated variables"), copying a
// Value copies its Wire's linear combination, never re-allocates the
// underlying witness variable — Go's value semantics on Wire (a struct
// of an LC and a big.Int pointer treated as immutable) give this for
// free.
type Value struct {
	Type Type

	Wire gadgets.Wire // KindBool, KindInt, KindEnum

	Elements []Value // KindArray, KindTuple, KindStruct (parallel to Type.FieldNames)
}

// Unit returns the single unit value.
func Unit() Value {
	return Value{Type: Type{Kind: KindUnit}}
}

// BoolConst builds a compile-time-known boolean value.
func BoolConst(v bool) Value {
	return Value{Type: Bool(), Wire: gadgets.BoolConst(v)}
}

// AllocBool allocates a fresh witness boolean.
func AllocBool(ns *scalar.Namespace, label string, v bool) (Value, error) {
	w, err := gadgets.BoolAlloc(ns, label, v)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

// IntConst builds a compile-time-known integer value.
func IntConst(bits uint, signed bool, v *big.Int) Value {
	return Value{Type: Int(bits, signed), Wire: gadgets.ConstWire(v, bits, signed)}
}

// AllocInt allocates a fresh witness integer, unconstrained in range —
// callers that need the range guaranteed should route the value through
// an operation (e.g. Add, Cast) that calls gadgets.RangeCheck.
func AllocInt(ns *scalar.Namespace, bits uint, signed bool, v *big.Int) Value {
	w := gadgets.AllocWire(ns, v, bits, signed)
	return Value{Type: Int(bits, signed), Wire: w}
}

// AllocInputBool allocates a public-input boolean (spec.md §4.1,
// "allocate-input"), for the VM's input(type) instruction.
func AllocInputBool(ns *scalar.Namespace, label string, v bool) (Value, error) {
	w, err := gadgets.BoolAllocInput(ns, label, v)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

// AllocInputInt allocates a public-input integer.
func AllocInputInt(ns *scalar.Namespace, bits uint, signed bool, v *big.Int) Value {
	w := gadgets.AllocWireInput(ns, v, bits, signed)
	return Value{Type: Int(bits, signed), Wire: w}
}

// AllocInputEnum allocates a public-input enumeration discriminant.
func AllocInputEnum(ns *scalar.Namespace, bits uint, discriminant *big.Int) Value {
	w := gadgets.AllocWireInput(ns, discriminant, bits, false)
	return Value{Type: Enum(bits), Wire: w}
}

// AllocEnum allocates a private-witness enumeration discriminant.
func AllocEnum(ns *scalar.Namespace, bits uint, discriminant *big.Int) Value {
	w := gadgets.AllocWire(ns, discriminant, bits, false)
	return Value{Type: Enum(bits), Wire: w}
}

// EnumConst builds a compile-time-known enumeration discriminant.
func EnumConst(bits uint, discriminant *big.Int) Value {
	return Value{Type: Enum(bits), Wire: gadgets.ConstWire(discriminant, bits, false)}
}

// NewArray builds an array value; elements must already share elemType.
func NewArray(elemType Type, elements []Value) Value {
	return Value{Type: Array(elemType, len(elements)), Elements: elements}
}

// NewTuple builds a tuple value from its elements in order.
func NewTuple(elements []Value) Value {
	types := make([]Type, len(elements))
	for i, e := range elements {
		types[i] = e.Type
	}
	return Value{Type: Tuple(types...), Elements: elements}
}

// NewStruct builds a structure value; names and elements are parallel and
// insertion-ordered, matching the type's field order (spec.md §3).
func NewStruct(names []string, elements []Value) Value {
	types := make([]Type, len(elements))
	for i, e := range elements {
		types[i] = e.Type
	}
	return Value{Type: Struct(names, types), Elements: elements}
}

// IsZero reports a boolean or 1-bit integer's concrete witness value,
// used by the VM to decide control flow (jumpif) and assertion outcomes
// — the only place a program's runtime behavior is allowed to depend on
// a witness value directly rather than through cselect (spec.md §9).
func (v Value) IsZero() bool {
	return v.Wire.Val.Sign() == 0
}
