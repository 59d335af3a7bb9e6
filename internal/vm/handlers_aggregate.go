package vm

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/value"
)

// The handlers in this file implement the supplemented aggregate
// instructions (bytecode.OpMakeArray .. OpLen) — see opcodes.go's
// doc comment on why a runnable VM needs a way to materialize and
// address a whole array, tuple, or structure as a single stack value.

// opMakeArray handles make_array(n, elem_type_idx): pops n elements
// (pushed left-to-right, so the last-pushed element sits on top and is
// popped first) and pushes the assembled array, checking every element
// against the declared element type.
func (m *vm) opMakeArray(r *bytecode.Reader) (int, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	elemTypeIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(elemTypeIdx) >= len(m.program.Types) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "type index %d out of range", elemTypeIdx)
	}
	elemT := m.program.Types[elemTypeIdx]
	elems := make([]value.Value, n)
	for i := int(n) - 1; i >= 0; i-- {
		v, err := m.stack.Pop()
		if err != nil {
			return 0, err
		}
		if !v.Type.Equal(elemT) {
			return 0, diag.NewUnlocated(diag.TypeMismatch, "make_array: element %d has type %s, expected %s", i, v.Type, elemT)
		}
		elems[i] = v
	}
	m.stack.Push(value.NewArray(elemT, elems))
	return r.PC, nil
}

// opMakeTuple handles make_tuple(n): pops n elements, possibly of
// differing types, and pushes the assembled tuple.
func (m *vm) opMakeTuple(r *bytecode.Reader) (int, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	elems := make([]value.Value, n)
	for i := int(n) - 1; i >= 0; i-- {
		v, err := m.stack.Pop()
		if err != nil {
			return 0, err
		}
		elems[i] = v
	}
	m.stack.Push(value.NewTuple(elems))
	return r.PC, nil
}

// opMakeStruct handles make_struct(name_list_idx): pops one element per
// declared field name (pushed in declaration order, so the last field is
// popped first) and pushes the assembled structure.
func (m *vm) opMakeStruct(r *bytecode.Reader) (int, error) {
	nameListIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(nameListIdx) >= len(m.program.NameLists) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "name list index %d out of range", nameListIdx)
	}
	names := m.program.NameLists[nameListIdx]
	elems := make([]value.Value, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		v, err := m.stack.Pop()
		if err != nil {
			return 0, err
		}
		elems[i] = v
	}
	m.stack.Push(value.NewStruct(names, elems))
	return r.PC, nil
}

// opIndex handles index(i): pops an array or tuple and pushes its i-th
// element.
func (m *vm) opIndex(r *bytecode.Reader) (int, error) {
	i, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	agg, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	result, err := value.Index(agg, int(i))
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}

// opUpdateIndex handles update_index(i): pops the replacement element and
// the aggregate (in that order, the replacement having been pushed
// last), and pushes a copy of the aggregate with that element replaced.
func (m *vm) opUpdateIndex(r *bytecode.Reader) (int, error) {
	i, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	newElem, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	agg, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	result, err := value.Update(agg, int(i), newElem)
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}

// opFieldGet handles field_get(name_idx): pops a structure and pushes the
// named field.
func (m *vm) opFieldGet(r *bytecode.Reader) (int, error) {
	nameIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(nameIdx) >= len(m.program.Names) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "name index %d out of range", nameIdx)
	}
	name := m.program.Names[nameIdx]
	agg, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	result, err := value.Field(agg, name)
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}

// opUpdateField handles update_field(name_idx): pops the replacement
// value and the structure, and pushes a copy with that field replaced.
func (m *vm) opUpdateField(r *bytecode.Reader) (int, error) {
	nameIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(nameIdx) >= len(m.program.Names) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "name index %d out of range", nameIdx)
	}
	name := m.program.Names[nameIdx]
	newElem, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	agg, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	result, err := value.UpdateField(agg, name, newElem)
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}

// opLen handles len: pops an array, tuple, or structure and pushes its element count
// as an unsigned 32-bit integer constant.
func (m *vm) opLen(r *bytecode.Reader) (int, error) {
	agg, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	n, err := value.Len(agg)
	if err != nil {
		return 0, err
	}
	m.stack.Push(value.IntConst(32, false, big.NewInt(int64(n))))
	return r.PC, nil
}
