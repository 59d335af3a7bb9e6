package value

import (
	"fmt"

	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/gadgets"
	"github.com/Epiisteme/zinc/internal/scalar"
)

// Select implements cselect(c, t, f): the arithmetization replacement for
// branching over values (spec.md §4.2, §6, §9). Both t and f are fully
// constrained regardless of c's concrete value — for aggregates, that
// means every element of both arms, recursively.
func Select(ns *scalar.Namespace, label string, c, t, f Value) (Value, error) {
	if err := expectBool(c); err != nil {
		return Value{}, err
	}
	if !t.Type.Equal(f.Type) {
		return Value{}, diag.NewUnlocated(diag.TypeMismatch, "cselect: branch types differ: %s vs %s", t.Type, f.Type)
	}
	switch t.Type.Kind {
	case KindUnit:
		return Unit(), nil
	case KindBool, KindInt, KindEnum:
		w, err := gadgets.Select(ns, label, c.Wire, t.Wire, f.Wire)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t.Type, Wire: w}, nil
	case KindArray, KindTuple, KindStruct:
		elements := make([]Value, len(t.Elements))
		for i := range t.Elements {
			elem, err := Select(ns, fmt.Sprintf("%s[%d]", label, i), c, t.Elements[i], f.Elements[i])
			if err != nil {
				return Value{}, err
			}
			elements[i] = elem
		}
		return Value{Type: t.Type, Elements: elements}, nil
	default:
		return Value{}, diag.NewUnlocated(diag.TypeMismatch, "cselect: unsupported kind %s", t.Type.Kind)
	}
}
