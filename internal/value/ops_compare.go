package value

import (
	"fmt"

	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/gadgets"
	"github.com/Epiisteme/zinc/internal/scalar"
)

func checkScalarKindsMatch(a, b Value) error {
	if a.Type.Kind != b.Type.Kind {
		return diag.NewUnlocated(diag.TypeMismatch, "operand kinds differ: %s vs %s", a.Type, b.Type)
	}
	if a.Type.Kind == KindInt && (a.Type.Bits != b.Type.Bits || a.Type.Signed != b.Type.Signed) {
		return diag.NewUnlocated(diag.TypeMismatch, "operand types differ: %s vs %s", a.Type, b.Type)
	}
	return nil
}

// Equals implements equals, structurally defined on unit, booleans,
// integers, and — by element-wise AND-fold — arrays, tuples, and
// structures (spec.md §4.3). Mismatched structure is a type error, never
// a constraint-level falsehood.
func Equals(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if !a.Type.Equal(b.Type) {
		return Value{}, diag.NewUnlocated(diag.TypeMismatch, "equals: operand types differ: %s vs %s", a.Type, b.Type)
	}
	switch a.Type.Kind {
	case KindUnit:
		return BoolConst(true), nil
	case KindBool, KindInt, KindEnum:
		w, err := gadgets.Equals(ns, label, a.Wire, b.Wire)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: Bool(), Wire: w}, nil
	case KindArray, KindTuple, KindStruct:
		acc := BoolConst(true)
		for i := range a.Elements {
			elemEq, err := Equals(ns, fmt.Sprintf("%s[%d]", label, i), a.Elements[i], b.Elements[i])
			if err != nil {
				return Value{}, err
			}
			acc, err = And(ns, fmt.Sprintf("%s.fold[%d]", label, i), acc, elemEq)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil
	default:
		return Value{}, diag.NewUnlocated(diag.TypeMismatch, "equals: unsupported kind %s", a.Type.Kind)
	}
}

// NotEquals implements not_equals as the negation of Equals.
func NotEquals(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	eq, err := Equals(ns, label, a, b)
	if err != nil {
		return Value{}, err
	}
	return Not(eq)
}

func expectMatchingInt(a, b Value) error {
	if a.Type.Kind != KindInt {
		return diag.NewUnlocated(diag.ExpectedInteger, "expected integer, got %s", a.Type)
	}
	return checkScalarKindsMatch(a, b)
}

// Greater, GreaterEquals, Lesser, and LesserEquals implement the ordered
// comparisons, defined only on matching integers (spec.md §4.3).
func Greater(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Gt(ns, label, a.Wire, b.Wire, a.Type.Bits)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

func GreaterEquals(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Ge(ns, label, a.Wire, b.Wire, a.Type.Bits)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

func Lesser(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Lt(ns, label, a.Wire, b.Wire, a.Type.Bits)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}

func LesserEquals(ns *scalar.Namespace, label string, a, b Value) (Value, error) {
	if err := expectMatchingInt(a, b); err != nil {
		return Value{}, err
	}
	w, err := gadgets.Le(ns, label, a.Wire, b.Wire, a.Type.Bits)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Bool(), Wire: w}, nil
}
