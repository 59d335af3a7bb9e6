// Package vm implements the instruction dispatch loop of spec.md §4.5: a
// stack machine that reads one instruction at a time from a bytecode.Program,
// advances its program counter, and invokes a handler that pops and
// pushes internal/value.Values while interleaving witness generation and
// constraint emission through internal/scalar and internal/gadgets.
package vm

import (
	"fmt"
	"math/big"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/memory"
	"github.com/Epiisteme/zinc/internal/scalar"
	"github.com/Epiisteme/zinc/internal/value"
)

// Hook lets a caller observe execution without affecting it — the seam
// internal/tracehttp uses to broadcast a live instruction trace. A Hook
// must not mutate anything it is handed.
type Hook interface {
	OnStep(pc int, op bytecode.OpCode, stackDepth int)
}

type noopHook struct{}

func (noopHook) OnStep(int, bytecode.OpCode, int) {}

// NoopHook is a Hook that observes nothing, used when the caller does
// not want trace streaming.
var NoopHook Hook = noopHook{}

// vm holds one run's exclusive state: a constraint system, data stack,
// memory, and call stack, owned by this run alone (spec.md §5).
type vm struct {
	program *bytecode.Program
	sys     *scalar.System
	ns      *scalar.Namespace

	stack *memory.Stack
	mem   *memory.Memory
	calls *memory.CallStack

	outputs []value.Value

	publicInputs  []*big.Int
	witnessInputs []*big.Int
	pubIdx        int
	witIdx        int

	hook Hook
}

// Run implements the core's run interface (spec.md §6): executes program
// against the given public and private witness inputs, and returns the
// declared outputs plus the fully populated constraint system. A fresh
// scalar.System is created and owned exclusively by this call; nothing
// is shared across concurrent Run calls (spec.md §5).
func Run(program *bytecode.Program, publicInputs, witnessInputs []*big.Int, hook Hook) ([]value.Value, *scalar.System, error) {
	if hook == nil {
		hook = NoopHook
	}
	sys := scalar.NewSystem()
	m := &vm{
		program:       program,
		sys:           sys,
		ns:            sys.Root(),
		stack:         memory.NewStack(),
		mem:           memory.NewMemory(),
		calls:         memory.NewCallStack(program.MaxCallDepth),
		publicInputs:  publicInputs,
		witnessInputs: witnessInputs,
		hook:          hook,
	}
	outputs, err := m.loop()
	if err != nil {
		return nil, sys, err
	}
	return outputs, sys, nil
}

// loop is the dispatch loop proper (spec.md §4.5).
func (m *vm) loop() ([]value.Value, error) {
	pc := m.program.EntryOffset
	for {
		start := pc
		r := bytecode.NewReader(m.program.Code, pc)
		op, err := r.ReadOp()
		if err != nil {
			return nil, m.locate(err, start)
		}
		next, err := m.dispatch(op, r, start)
		if err != nil {
			return nil, m.locate(err, start)
		}
		m.hook.OnStep(start, op, m.stack.Depth())
		if op == bytecode.OpExit {
			return m.outputs, nil
		}
		pc = next
	}
}

// label derives an instruction's diagnostic namespace label from its
// opcode and program counter (spec.md §4.6).
func (m *vm) label(start int, op bytecode.OpCode) string {
	return fmt.Sprintf("pc%d_%s", start, op)
}

// insNS returns the namespace under which instruction `start`'s gadget and
// value operations should be emitted.
func (m *vm) insNS(start int, op bytecode.OpCode) *scalar.Namespace {
	return m.ns.Namespace(m.label(start, op))
}

func (m *vm) loc(pc int) diag.Location {
	d := m.program.Debug[pc]
	return diag.Location{PC: pc, File: d.File, Line: d.Line, Column: d.Column}
}

// locate stamps a program counter onto an error raised deep in the
// value/gadget layers (spec.md §4.6), or wraps a plain error from the
// scalar backend's defensive consistency check as ConstraintBackendError.
func (m *vm) locate(err error, pc int) error {
	if de, ok := err.(*diag.Error); ok {
		return de.At(m.loc(pc))
	}
	return diag.Wrap(err, m.loc(pc), "constraint backend failure")
}

// dispatch invokes the handler for op and returns the next program
// counter. Most handlers simply return r.PC (the offset past their fixed
// operands); control-flow handlers compute a different target.
func (m *vm) dispatch(op bytecode.OpCode, r *bytecode.Reader, start int) (int, error) {
	switch op {
	case bytecode.OpPushConst:
		return m.opPushConst(r, start)
	case bytecode.OpDup:
		return r.PC, m.stack.Dup()
	case bytecode.OpSwap:
		k, err := r.ReadUint32()
		if err != nil {
			return 0, err
		}
		return r.PC, m.stack.Swap(int(k))
	case bytecode.OpPop:
		k, err := r.ReadUint32()
		if err != nil {
			return 0, err
		}
		return r.PC, m.stack.Drop(int(k))
	case bytecode.OpLoad:
		return m.opLoad(r)
	case bytecode.OpStore:
		return m.opStore(r)
	case bytecode.OpLoadSequence:
		return m.opLoadSequence(r)
	case bytecode.OpStoreSequence:
		return m.opStoreSequence(r)
	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod,
		bytecode.OpAnd, bytecode.OpOr, bytecode.OpXor,
		bytecode.OpEq, bytecode.OpNe, bytecode.OpLt, bytecode.OpLe, bytecode.OpGt, bytecode.OpGe:
		return m.opBinary(op, r, start)
	case bytecode.OpNeg, bytecode.OpNot:
		return m.opUnary(op, r, start)
	case bytecode.OpCast:
		return m.opCast(r, start)
	case bytecode.OpJump:
		return m.opJump(r)
	case bytecode.OpJumpIf:
		return m.opJumpIf(r)
	case bytecode.OpCall:
		return m.opCall(r)
	case bytecode.OpReturn:
		return m.opReturn(r)
	case bytecode.OpCSelect:
		return m.opCSelect(r, start)
	case bytecode.OpInput:
		return m.opInput(r, start)
	case bytecode.OpOutput:
		return m.opOutput(r)
	case bytecode.OpAssert:
		return m.opAssert(r, start)
	case bytecode.OpExit:
		return r.PC, nil
	case bytecode.OpMakeArray:
		return m.opMakeArray(r)
	case bytecode.OpMakeTuple:
		return m.opMakeTuple(r)
	case bytecode.OpMakeStruct:
		return m.opMakeStruct(r)
	case bytecode.OpIndex:
		return m.opIndex(r)
	case bytecode.OpUpdateIndex:
		return m.opUpdateIndex(r)
	case bytecode.OpFieldGet:
		return m.opFieldGet(r)
	case bytecode.OpUpdateField:
		return m.opUpdateField(r)
	case bytecode.OpLen:
		return m.opLen(r)
	default:
		return 0, diag.NewUnlocated(diag.UnknownOpcode, "unknown opcode %d", byte(op))
	}
}
