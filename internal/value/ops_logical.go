package value

import (
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/gadgets"
	"github.com/Epiisteme/zinc/internal/scalar"
)

func expectBool(v Value) error {
	if v.Type.Kind != KindBool {
		return diag.NewUnlocated(diag.ExpectedBoolean, "expected boolean, got %s", v.Type)
	}
	return nil
}

// Not implements the logical NOT operation, defined only on booleans
// (spec.md §4.3).
func Not(a Value) (Value, error) {
	if err := expectBool(a); err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: gadgets.Not(a.Wire)}, nil
}

// And implements logical AND, defined only on booleans.
func And(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectBool(a); err != nil {
		return Value{}, err
	}
	if err := expectBool(b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.And(ns, label, a.Wire, b.Wire)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

// Or implements logical OR, defined only on booleans.
func Or(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectBool(a); err != nil {
		return Value{}, err
	}
	if err := expectBool(b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Or(ns, label, a.Wire, b.Wire)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

// Xor implements logical XOR, defined only on booleans.
func Xor(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectBool(a); err != nil {
		return Value{}, err
	}
	if err := expectBool(b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Xor(ns, label, a.Wire, b.Wire)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}
