package vm

import (
	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/memory"
	"github.com/Epiisteme/zinc/internal/value"
)

// opJump handles jump(δ): an unconditional relative jump. δ is relative
// to the offset immediately following the instruction's own operand, so
// δ=0 is a no-op and the bytecode generator never has to account for the
// instruction's own encoded length.
func (m *vm) opJump(r *bytecode.Reader) (int, error) {
	delta, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	return r.PC + int(delta), nil
}

// opJumpIf handles jumpif(δ): pops a boolean and branches on its concrete
// witness value (spec.md §4.2 — this and assert are the only places a
// run's control flow may depend on a witness value directly, since PC
// selection itself cannot be arithmetized).
func (m *vm) opJumpIf(r *bytecode.Reader) (int, error) {
	delta, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	fallthroughPC := r.PC
	c, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	if c.Type.Kind != value.KindBool {
		return 0, diag.NewUnlocated(diag.ExpectedBoolean, "jumpif: expected boolean, got %s", c.Type)
	}
	if !c.IsZero() {
		return fallthroughPC + int(delta), nil
	}
	return fallthroughPC, nil
}

// opCall handles call(addr, args, locals): pops `args` values already on
// the stack (pushed left-to-right, so first-popped is the rightmost
// argument), lands them at the new frame's base..base+args-1 via the
// same first-popped-to-highest-address convention store_sequence uses,
// and jumps to the callee's entry point. The new frame's base is
// memory's current watermark, so it never collides with a live caller's
// locals (spec.md §3 "Call frame", §4.4).
func (m *vm) opCall(r *bytecode.Reader) (int, error) {
	addr, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	args, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	locals, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	argVals := make([]value.Value, args)
	for i := uint32(0); i < args; i++ {
		v, err := m.stack.Pop()
		if err != nil {
			return 0, err
		}
		argVals[i] = v
	}
	base := m.mem.Watermark()
	if err := m.mem.StoreSequence(base, argVals); err != nil {
		return 0, err
	}
	if err := m.calls.Push(memory.CallFrame{ReturnPC: r.PC, Base: base, Locals: int(locals)}); err != nil {
		return 0, err
	}
	return int(addr), nil
}

// opReturn handles return(n): pops the active call frame and resumes at
// its return address. n — the number of values the callee leaves for its
// caller — is carried in the encoding for the bytecode generator's own
// bookkeeping; the VM does not need to act on it, since those values
// already sit at the correct depth on the shared data stack by
// construction.
func (m *vm) opReturn(r *bytecode.Reader) (int, error) {
	if _, err := r.ReadUint32(); err != nil {
		return 0, err
	}
	frame, err := m.calls.Pop()
	if err != nil {
		return 0, err
	}
	return frame.ReturnPC, nil
}

// opCSelect handles cselect: pops (if_false, if_true, condition) — the
// reverse of their push order — and pushes the selected value, with both
// arms fully constrained regardless of which one is selected (spec.md
// §4.2, §9).
func (m *vm) opCSelect(r *bytecode.Reader, start int) (int, error) {
	f, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	t, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	c, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	ns := m.insNS(start, bytecode.OpCSelect)
	result, err := value.Select(ns, bytecode.OpCSelect.String(), c, t, f)
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}
