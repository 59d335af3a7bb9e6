package value

import (
	"github.com/Epiisteme/zinc/internal/diag"
)

func expectAggregate(v Value) error {
	switch v.Type.Kind {
	case KindArray, KindTuple, KindStruct:
		return nil
	default:
		return diag.NewUnlocated(diag.ExpectedAggregate, "expected an array, tuple, or structure, got %s", v.Type)
	}
}

// Index returns the i-th element of an array or tuple (spec.md §4.3,
// "element access ... by index for arrays/tuples").
func Index(v Value, i int) (Value, error) {
	if err := expectAggregate(v); err != nil {
		return Value{}, err
	}
	if v.Type.Kind == KindStruct {
		return Value{}, diag.NewUnlocated(diag.ExpectedAggregate, "structures are indexed by name, not position")
	}
	if i < 0 || i >= len(v.Elements) {
		return Value{}, diag.NewUnlocated(diag.MemoryOutOfBounds, "index %d out of bounds for length %d", i, len(v.Elements))
	}
	return v.Elements[i], nil
}

// Update returns a copy of v with its i-th element replaced by newElem.
// Per spec.md §9, this copies the element slice (and linear combinations
// within it), never the underlying allocated variables.
func Update(v Value, i int, newElem Value) (Value, error) {
	if err := expectAggregate(v); err != nil {
		return Value{}, err
	}
	if v.Type.Kind == KindStruct {
		return Value{}, diag.NewUnlocated(diag.ExpectedAggregate, "structures are updated by name, not position")
	}
	if i < 0 || i >= len(v.Elements) {
		return Value{}, diag.NewUnlocated(diag.MemoryOutOfBounds, "index %d out of bounds for length %d", i, len(v.Elements))
	}
	if v.Type.Kind == KindArray && !newElem.Type.Equal(*v.Type.Elem) {
		return Value{}, diag.NewUnlocated(diag.TypeMismatch, "array element type mismatch: %s vs %s", newElem.Type, *v.Type.Elem)
	}
	out := make([]Value, len(v.Elements))
	copy(out, v.Elements)
	out[i] = newElem
	return Value{Type: v.Type, Elements: out}, nil
}

// Field returns the named field of a structure.
func Field(v Value, name string) (Value, error) {
	if v.Type.Kind != KindStruct {
		return Value{}, diag.NewUnlocated(diag.ExpectedAggregate, "expected a structure, got %s", v.Type)
	}
	for i, n := range v.Type.FieldNames {
		if n == name {
			return v.Elements[i], nil
		}
	}
	return Value{}, diag.NewUnlocated(diag.TypeMismatch, "no field named %q", name)
}

// UpdateField returns a copy of v with its named field replaced.
func UpdateField(v Value, name string, newElem Value) (Value, error) {
	if v.Type.Kind != KindStruct {
		return Value{}, diag.NewUnlocated(diag.ExpectedAggregate, "expected a structure, got %s", v.Type)
	}
	for i, n := range v.Type.FieldNames {
		if n == name {
			if !newElem.Type.Equal(v.Type.FieldTypes[i]) {
				return Value{}, diag.NewUnlocated(diag.TypeMismatch, "field %q type mismatch: %s vs %s", name, newElem.Type, v.Type.FieldTypes[i])
			}
			out := make([]Value, len(v.Elements))
			copy(out, v.Elements)
			out[i] = newElem
			return Value{Type: v.Type, Elements: out}, nil
		}
	}
	return Value{}, diag.NewUnlocated(diag.TypeMismatch, "no field named %q", name)
}

// Len returns the element count of an array or tuple, or the field count
// of a structure.
func Len(v Value) (int, error) {
	if err := expectAggregate(v); err != nil {
		return 0, err
	}
	return len(v.Elements), nil
}

// Iterate exposes an aggregate's elements in declared order, for bytecode
// generators that lower a source-language `for` loop over an array or
// tuple into a fixed sequence of element accesses (no dynamic iteration
// exists at the VM level: loop bounds are always statically known —
// spec.md §1 Non-goals, "recursion with dynamic depth").
func Iterate(v Value) ([]Value, error) {
	if err := expectAggregate(v); err != nil {
		return nil, err
	}
	return v.Elements, nil
}
