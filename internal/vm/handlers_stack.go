package vm

import (
	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/value"
)

// opPushConst handles push_const(idx): looks up the interned scalar
// constant and pushes it without allocating a witness variable (spec.md
// §4.1 — a constant is a cheaper reference kind than an allocated
// variable). Aggregate constants are not supported; the bytecode
// generator must build them with make_array/make_tuple/make_struct over
// their pushed scalar elements.
func (m *vm) opPushConst(r *bytecode.Reader, start int) (int, error) {
	idx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(idx) >= len(m.program.Constants) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "constant index %d out of range", idx)
	}
	c := m.program.Constants[idx]
	v, err := buildConstant(c)
	if err != nil {
		return 0, err
	}
	m.stack.Push(v)
	return r.PC, nil
}

func buildConstant(c bytecode.Constant) (value.Value, error) {
	switch c.Type.Kind {
	case value.KindUnit:
		return value.Unit(), nil
	case value.KindBool:
		return value.BoolConst(c.Raw.Sign() != 0), nil
	case value.KindInt:
		return value.IntConst(c.Type.Bits, c.Type.Signed, c.Raw), nil
	case value.KindEnum:
		return value.EnumConst(c.Type.Bits, c.Raw), nil
	default:
		return value.Value{}, diag.NewUnlocated(diag.TypeMismatch, "push_const does not support aggregate type %s", c.Type)
	}
}

// currentBase returns the memory offset local slot 0 of the active call
// frame maps to — 0 at the top level, where load/store address memory
// directly (spec.md §3, §4.4).
func (m *vm) currentBase() int {
	if m.calls.Depth() == 0 {
		return 0
	}
	f, _ := m.calls.Top()
	return f.Base
}

// opLoad handles load(i): reads frame-relative local slot i.
func (m *vm) opLoad(r *bytecode.Reader) (int, error) {
	i, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	v, err := m.mem.Load(m.currentBase() + int(i))
	if err != nil {
		return 0, err
	}
	m.stack.Push(v)
	return r.PC, nil
}

// opStore handles store(i): writes the popped top of stack to
// frame-relative local slot i.
func (m *vm) opStore(r *bytecode.Reader) (int, error) {
	i, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	v, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	if err := m.mem.Store(m.currentBase()+int(i), v); err != nil {
		return 0, err
	}
	return r.PC, nil
}

// opLoadSequence handles load_sequence(base, n): base is an absolute
// memory offset, unlike load/store's frame-relative index, since bulk
// array transfer names its own region explicitly rather than through the
// active frame.
func (m *vm) opLoadSequence(r *bytecode.Reader) (int, error) {
	base, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	vs, err := m.mem.LoadSequence(int(base), int(n))
	if err != nil {
		return 0, err
	}
	for _, v := range vs {
		m.stack.Push(v)
	}
	return r.PC, nil
}

// opStoreSequence handles store_sequence(base, n): pops n values and
// writes them starting at absolute offset base, first-popped landing at
// the highest address (memory.Memory.StoreSequence).
func (m *vm) opStoreSequence(r *bytecode.Reader) (int, error) {
	base, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	popped := make([]value.Value, n)
	for i := uint32(0); i < n; i++ {
		v, err := m.stack.Pop()
		if err != nil {
			return 0, err
		}
		popped[i] = v
	}
	if err := m.mem.StoreSequence(int(base), popped); err != nil {
		return 0, err
	}
	return r.PC, nil
}
