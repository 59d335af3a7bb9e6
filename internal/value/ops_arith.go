package value

import (
	"github.com/Epiisteme/zinc/internal/gadgets"
	"github.com/Epiisteme/zinc/internal/scalar"
)

// Add, Subtract, Multiply, Divide, Modulo, and Negate implement the
// arithmetic operations, defined only on matching integers (spec.md
// §4.3). Operand order matches the value layer's contract: the VM pops
// the right operand first for non-commutative ops and passes it as b.
func Add(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Add(ns, label, a.Wire, b.Wire, a.Type.Bits, a.Type.Signed)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: a.Type, Wire: w}, nil
}

func Subtract(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Sub(ns, label, a.Wire, b.Wire, a.Type.Bits, a.Type.Signed)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: a.Type, Wire: w}, nil
}

func Multiply(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Mul(ns, label, a.Wire, b.Wire, a.Type.Bits, a.Type.Signed)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: a.Type, Wire: w}, nil
}

func Divide(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	q, _, err := gadgets.DivMod(ns, label, a.Wire, b.Wire, a.Type.Bits, a.Type.Signed)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: a.Type, Wire: q}, nil
}

func Modulo(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	_, r, err := gadgets.DivMod(ns, label, a.Wire, b.Wire, a.Type.Bits, a.Type.Signed)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: a.Type, Wire: r}, nil
}

// Negate implements unary negation, defined only on signed integers
// (spec.md §4.2).
func Negate(ns *scalar.Namespace, label string, a Value) (Value, error) {
	w, err := gadgets.Negate(ns, label, a.Wire, a.Type.Bits)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: a.Type, Wire: w}, nil
}

// Cast implements integer-to-integer casts with a new width and
// signedness (spec.md §4.3, §9).
func Cast(ns *scalar.Namespace, label string, a Value, newBits uint, newSigned bool) (Value, error) {
	if err := expectInt(a); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Cast(ns, label, a.Wire, newBits, newSigned)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Int(newBits, newSigned), Wire: w}, nil
}

func expectInt(v Value) error {
	return expectMatchingInt(v, v)
}
