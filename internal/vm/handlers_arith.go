package vm

import (
	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/value"
)

// opBinary handles every binary arithmetic, logical, and comparison
// instruction. Per spec.md §4.5, operands are pushed left-then-right, so
// the right operand sits on top of the stack and is popped first.
func (m *vm) opBinary(op bytecode.OpCode, r *bytecode.Reader, start int) (int, error) {
	b, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	a, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	ns := m.insNS(start, op)
	label := op.String()

	var result value.Value
	switch op {
	case bytecode.OpAdd:
		result, err = value.Add(ns, label, a, b)
	case bytecode.OpSub:
		result, err = value.Subtract(ns, label, a, b)
	case bytecode.OpMul:
		result, err = value.Multiply(ns, label, a, b)
	case bytecode.OpDiv:
		result, err = value.Divide(ns, label, a, b)
	case bytecode.OpMod:
		result, err = value.Modulo(ns, label, a, b)
	case bytecode.OpAnd:
		result, err = value.And(ns, label, a, b)
	case bytecode.OpOr:
		result, err = value.Or(ns, label, a, b)
	case bytecode.OpXor:
		result, err = value.Xor(ns, label, a, b)
	case bytecode.OpEq:
		result, err = value.Equals(ns, label, a, b)
	case bytecode.OpNe:
		result, err = value.NotEquals(ns, label, a, b)
	case bytecode.OpLt:
		result, err = value.Lesser(ns, label, a, b)
	case bytecode.OpLe:
		result, err = value.LesserEquals(ns, label, a, b)
	case bytecode.OpGt:
		result, err = value.Greater(ns, label, a, b)
	case bytecode.OpGe:
		result, err = value.GreaterEquals(ns, label, a, b)
	default:
		return 0, diag.NewUnlocated(diag.UnknownOpcode, "opBinary called with non-binary opcode %s", op)
	}
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}

// opUnary handles neg and not, the two unary value operations.
func (m *vm) opUnary(op bytecode.OpCode, r *bytecode.Reader, start int) (int, error) {
	a, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	ns := m.insNS(start, op)
	label := op.String()

	var result value.Value
	switch op {
	case bytecode.OpNeg:
		result, err = value.Negate(ns, label, a)
	case bytecode.OpNot:
		result, err = value.Not(a)
	default:
		return 0, diag.NewUnlocated(diag.UnknownOpcode, "opUnary called with non-unary opcode %s", op)
	}
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}

// opCast handles cast(width, signed): a fixed-width operand for the new
// bit width, followed by a 0/1 flag for the new signedness.
func (m *vm) opCast(r *bytecode.Reader, start int) (int, error) {
	width, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	signedFlag, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	a, err := m.stack.Pop()
	if err != nil {
		return 0, err
	}
	ns := m.insNS(start, bytecode.OpCast)
	result, err := value.Cast(ns, bytecode.OpCast.String(), a, uint(width), signedFlag != 0)
	if err != nil {
		return 0, err
	}
	m.stack.Push(result)
	return r.PC, nil
}
