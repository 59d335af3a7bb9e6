package vm

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/scalar"
	"github.com/Epiisteme/zinc/internal/value"
)

// noMessage marks assert's message operand as absent.
const noMessage = ^uint32(0)

// opInput handles input(type_idx, is_public): allocates the next value
// from the appropriate input vector (spec.md §6's run interface keeps
// public_inputs and witness_inputs as separate vectors; is_public selects
// which one this allocation draws from and whether the resulting variable
// is recorded as a public input).
func (m *vm) opInput(r *bytecode.Reader, start int) (int, error) {
	typeIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	isPublic, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(typeIdx) >= len(m.program.Types) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "type index %d out of range", typeIdx)
	}
	t := m.program.Types[typeIdx]

	var raw *big.Int
	public := isPublic != 0
	if public {
		if m.pubIdx >= len(m.publicInputs) {
			return 0, diag.NewUnlocated(diag.MalformedInstruction, "not enough public inputs supplied")
		}
		raw = m.publicInputs[m.pubIdx]
		m.pubIdx++
	} else {
		if m.witIdx >= len(m.witnessInputs) {
			return 0, diag.NewUnlocated(diag.MalformedInstruction, "not enough witness inputs supplied")
		}
		raw = m.witnessInputs[m.witIdx]
		m.witIdx++
	}

	ns := m.insNS(start, bytecode.OpInput)
	label := bytecode.OpInput.String()
	v, err := m.allocateInput(ns, label, t, raw, public)
	if err != nil {
		return 0, err
	}
	m.stack.Push(v)
	return r.PC, nil
}

func (m *vm) allocateInput(ns *scalar.Namespace, label string, t value.Type, raw *big.Int, public bool) (value.Value, error) {
	switch t.Kind {
	case value.KindBool:
		b := raw.Sign() != 0
		if public {
			return value.AllocInputBool(ns, label, b)
		}
		return value.AllocBool(ns, label, b)
	case value.KindInt:
		if public {
			return value.AllocInputInt(ns, t.Bits, t.Signed, raw), nil
		}
		return value.AllocInt(ns, t.Bits, t.Signed, raw), nil
	case value.KindEnum:
		if public {
			return value.AllocInputEnum(ns, t.Bits, raw), nil
		}
		return value.AllocEnum(ns, t.Bits, raw), nil
	default:
		return value.Value{}, diag.NewUnlocated(diag.TypeMismatch, "input does not support aggregate type %s", t)
	}
}

// opOutput handles output(type_idx): pops the top of stack, checks it
// against the declared output type, and records it (spec.md §6's run
// interface returns the declared outputs alongside the backend).
func (m *vm) opOutput(r *bytecode.Reader) (int, error) {
	typeIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if int(typeIdx) >= len(m.program.Types) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "type index %d out of range", typeIdx)
	}
	t := m.program.Types[typeIdx]
	v, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	if !v.Type.Equal(t) {
		return 0, diag.NewUnlocated(diag.TypeMismatch, "output: declared type %s does not match value type %s", t, v.Type)
	}
	m.outputs = append(m.outputs, v)
	return r.PC, nil
}

// opAssert handles assert(message_idx): pops a boolean and enforces it
// equals 1 (spec.md §4.2). A legitimate assertion failure is reported as
// a typed AssertionFailed error before any constraint is emitted — routing
// it instead through Namespace.Enforce would misreport it as the
// constraint backend's own internal consistency check failing, which is
// reserved for actual gadget bugs, not expected program behavior.
// message_idx is noMessage when the source program supplied no message.
func (m *vm) opAssert(r *bytecode.Reader, start int) (int, error) {
	msgIdx, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	b, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	if b.Type.Kind != value.KindBool {
		return 0, diag.NewUnlocated(diag.ExpectedBoolean, "assert: expected boolean, got %s", b.Type)
	}
	if b.IsZero() {
		msg := "assertion failed"
		if msgIdx != noMessage && int(msgIdx) < len(m.program.Names) {
			msg = m.program.Names[msgIdx]
		}
		return 0, diag.NewUnlocated(diag.AssertionFailed, "%s", msg)
	}
	ns := m.insNS(start, bytecode.OpAssert)
	one := scalar.Const(scalar.One())
	if err := ns.Enforce(one, one, b.Wire.LC, bytecode.OpAssert.String()); err != nil {
		return 0, err
	}
	return r.PC, nil
}
