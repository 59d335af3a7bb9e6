package vm

import (
	"math/big"
	"testing"

	"github.com/kr/pretty"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/value"
)

// buildSignedToUnsignedCast assembles: push_const(-1 as i8) -> cast(u8) -> output(u8).
// This is spec.md §9 scenario 4 under the bit-pattern-reinterpretation
// resolution: `let x: i8 = -1; output x as u8;` must yield 255, not an error.
func buildSignedToUnsignedCast() *bytecode.Program {
	p := bytecode.NewProgram()
	i8 := value.Int(8, true)
	u8 := value.Int(8, false)
	constIdx := p.AddConstant(i8, big.NewInt(-1))
	typeIdxU8 := p.AddType(u8)

	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(constIdx)

	p.WriteOp(bytecode.OpCast)
	p.WriteUint32(8)
	p.WriteUint32(0) // signedFlag = false (unsigned)

	p.WriteOp(bytecode.OpOutput)
	p.WriteUint32(typeIdxU8)

	p.WriteOp(bytecode.OpExit)
	return p
}

func TestCastSignedToUnsignedIsBitPatternReinterpretation(t *testing.T) {
	p := buildSignedToUnsignedCast()
	outputs, sys, err := Run(p, nil, nil, NoopHook)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	if got := outputs[0].Wire.Val; got.Cmp(big.NewInt(255)) != 0 {
		t.Errorf("output = %s, want 255", got)
	}
	if sys.NumVariables() == 0 {
		// the sign-bit decomposition inside Cast must allocate at least
		// the bit-decomposition witnesses.
		t.Errorf("expected cast to allocate constraint-system variables")
	}
}

// buildAssertProgram pushes a boolean constant and asserts it.
func buildAssertProgram(v bool) *bytecode.Program {
	p := bytecode.NewProgram()
	b := value.Bool()
	raw := big.NewInt(0)
	if v {
		raw = big.NewInt(1)
	}
	constIdx := p.AddConstant(b, raw)
	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(constIdx)
	p.WriteOp(bytecode.OpAssert)
	p.WriteUint32(noMessage)
	p.WriteOp(bytecode.OpExit)
	return p
}

func TestAssertTrueEmitsConstraintAndSucceeds(t *testing.T) {
	p := buildAssertProgram(true)
	_, sys, err := Run(p, nil, nil, NoopHook)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sys.Constraints()) == 0 {
		t.Errorf("expected assert(true) to emit a constraint")
	}
}

func TestAssertFalseFailsWithoutEmittingConstraint(t *testing.T) {
	p := buildAssertProgram(false)
	_, sys, err := Run(p, nil, nil, NoopHook)
	if err == nil {
		t.Fatalf("expected assertion failure, got nil error")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Kind != diag.AssertionFailed {
		t.Errorf("error kind = %v, want AssertionFailed", de.Kind)
	}
	if len(sys.Constraints()) != 0 {
		t.Errorf("expected no constraint emitted on a failed assertion, got %d", len(sys.Constraints()))
	}
}

// buildArithProgram computes 3 + 4 and outputs it as an unsigned 8-bit int.
func buildArithProgram() *bytecode.Program {
	p := bytecode.NewProgram()
	u8 := value.Int(8, false)
	aIdx := p.AddConstant(u8, big.NewInt(3))
	bIdx := p.AddConstant(u8, big.NewInt(4))
	outIdx := p.AddType(u8)

	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(aIdx)
	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(bIdx)
	p.WriteOp(bytecode.OpAdd)
	p.WriteOp(bytecode.OpOutput)
	p.WriteUint32(outIdx)
	p.WriteOp(bytecode.OpExit)
	return p
}

func TestArithAddDeterministic(t *testing.T) {
	p := buildArithProgram()
	out1, sys1, err := Run(p, nil, nil, NoopHook)
	if err != nil {
		t.Fatalf("run 1: %v", err)
	}
	out2, sys2, err := Run(p, nil, nil, NoopHook)
	if err != nil {
		t.Fatalf("run 2: %v", err)
	}
	if out1[0].Wire.Val.Cmp(big.NewInt(7)) != 0 {
		t.Errorf("3+4 = %s, want 7", out1[0].Wire.Val)
	}
	if len(sys1.Constraints()) != len(sys2.Constraints()) {
		t.Errorf("non-deterministic constraint count across identical runs: %d vs %d",
			len(sys1.Constraints()), len(sys2.Constraints()))
	}
	if diff := pretty.Diff(sys1.Witness(), sys2.Witness()); len(diff) != 0 {
		t.Errorf("identical runs produced different witnesses:\n%s", pretty.Sprint(diff))
	}
}

// buildAggregateProgram builds a 3-element u8 array, reads element 1, and
// outputs it, exercising the supplemented make_array/index opcodes.
func buildAggregateProgram() *bytecode.Program {
	p := bytecode.NewProgram()
	u8 := value.Int(8, false)
	elemTypeIdx := p.AddType(u8)
	outTypeIdx := p.AddType(u8)

	for _, n := range []int64{10, 20, 30} {
		idx := p.AddConstant(u8, big.NewInt(n))
		p.WriteOp(bytecode.OpPushConst)
		p.WriteUint32(idx)
	}
	p.WriteOp(bytecode.OpMakeArray)
	p.WriteUint32(3)
	p.WriteUint32(elemTypeIdx)

	p.WriteOp(bytecode.OpIndex)
	p.WriteUint32(1)

	p.WriteOp(bytecode.OpOutput)
	p.WriteUint32(outTypeIdx)
	p.WriteOp(bytecode.OpExit)
	return p
}

func TestAggregateMakeArrayAndIndex(t *testing.T) {
	p := buildAggregateProgram()
	outputs, _, err := Run(p, nil, nil, NoopHook)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := outputs[0].Wire.Val; got.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("array[1] = %s, want 20", got)
	}
}

// pcHook records the start PC of every instruction OnStep sees, so a test
// can compare the instruction sequence two runs actually took.
type pcHook struct{ pcs []int }

func (h *pcHook) OnStep(pc int, op bytecode.OpCode, stackDepth int) {
	h.pcs = append(h.pcs, pc)
}

// buildCSelectProgram assembles spec.md §8 scenario 3, compiled via
// cselect rather than a branch: push the condition, then the true-arm and
// false-arm as witness inputs (so both are allocated variables, not bare
// constants), cselect, output. Operands are pushed condition, true-arm,
// false-arm — the reverse of cselect's pop order.
func buildCSelectProgram(cond bool) *bytecode.Program {
	p := bytecode.NewProgram()
	u8 := value.Int(8, false)
	boolType := value.Bool()
	u8TypeIdx := p.AddType(u8)

	raw := big.NewInt(0)
	if cond {
		raw = big.NewInt(1)
	}
	condIdx := p.AddConstant(boolType, raw)
	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(condIdx)

	p.WriteOp(bytecode.OpInput)
	p.WriteUint32(u8TypeIdx)
	p.WriteUint32(0) // witness, not public

	p.WriteOp(bytecode.OpInput)
	p.WriteUint32(u8TypeIdx)
	p.WriteUint32(0)

	p.WriteOp(bytecode.OpCSelect)

	p.WriteOp(bytecode.OpOutput)
	p.WriteUint32(u8TypeIdx)
	p.WriteOp(bytecode.OpExit)
	return p
}

// TestCSelectChoosesTrueArmAllocatesBothArmsNoDivergentPC is spec.md §8
// scenario 3: `let c = true; output if c { 10u8 } else { 20u8 };` compiled
// via cselect must output the true arm, allocate both arms regardless of
// which one is selected, and never let the condition's witness value
// change which instruction runs next.
func TestCSelectChoosesTrueArmAllocatesBothArmsNoDivergentPC(t *testing.T) {
	trueArm, falseArm := big.NewInt(10), big.NewInt(20)

	pTrue := buildCSelectProgram(true)
	trueHook := &pcHook{}
	outputsTrue, sysTrue, err := Run(pTrue, nil, []*big.Int{trueArm, falseArm}, trueHook)
	if err != nil {
		t.Fatalf("run (cond=true): %v", err)
	}
	if got := outputsTrue[0].Wire.Val; got.Cmp(trueArm) != 0 {
		t.Errorf("cselect(true, 10, 20) = %s, want 10", got)
	}

	pFalse := buildCSelectProgram(false)
	falseHook := &pcHook{}
	outputsFalse, sysFalse, err := Run(pFalse, nil, []*big.Int{trueArm, falseArm}, falseHook)
	if err != nil {
		t.Fatalf("run (cond=false): %v", err)
	}
	if got := outputsFalse[0].Wire.Val; got.Cmp(falseArm) != 0 {
		t.Errorf("cselect(false, 10, 20) = %s, want 20", got)
	}

	// Both arms must be allocated witness variables (from the two input()
	// instructions) whichever branch is selected, and cselect's own output
	// allocation and constraint must be present in both runs identically —
	// only the witness differs, never the instruction sequence.
	if sysTrue.NumVariables() != sysFalse.NumVariables() {
		t.Errorf("NumVariables differs by condition: %d (true) vs %d (false)",
			sysTrue.NumVariables(), sysFalse.NumVariables())
	}
	if sysTrue.NumVariables() < 3 {
		t.Errorf("expected at least 3 allocated variables (two arms + select output), got %d",
			sysTrue.NumVariables())
	}
	if len(sysTrue.Constraints()) != len(sysFalse.Constraints()) {
		t.Errorf("constraint count differs by condition: %d (true) vs %d (false)",
			len(sysTrue.Constraints()), len(sysFalse.Constraints()))
	}

	// No divergent PC: cselect must fall through to the same next
	// instruction regardless of the witness value of its condition, so
	// the two runs must visit exactly the same PC sequence.
	if len(trueHook.pcs) != len(falseHook.pcs) {
		t.Fatalf("instruction count differs by condition: %d (true) vs %d (false)",
			len(trueHook.pcs), len(falseHook.pcs))
	}
	for i := range trueHook.pcs {
		if trueHook.pcs[i] != falseHook.pcs[i] {
			t.Errorf("pc sequence diverged at step %d: %d (true) vs %d (false)",
				i, trueHook.pcs[i], falseHook.pcs[i])
		}
	}
}

// buildOverflowProgram is spec.md §8 scenario 2: u8 200+100 overflows.
func buildOverflowProgram() *bytecode.Program {
	p := bytecode.NewProgram()
	u8 := value.Int(8, false)
	aIdx := p.AddConstant(u8, big.NewInt(200))
	bIdx := p.AddConstant(u8, big.NewInt(100))
	outIdx := p.AddType(u8)

	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(aIdx)
	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(bIdx)
	p.WriteOp(bytecode.OpAdd)
	p.WriteOp(bytecode.OpOutput)
	p.WriteUint32(outIdx)
	p.WriteOp(bytecode.OpExit)
	return p
}

func TestOverflowThroughVMReportsLocatedOverflowError(t *testing.T) {
	p := buildOverflowProgram()
	_, _, err := Run(p, nil, nil, NoopHook)
	if err == nil {
		t.Fatalf("expected an overflow error")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Kind != diag.Overflow {
		t.Errorf("kind = %v, want Overflow", de.Kind)
	}
	// the add instruction is the third instruction in the program (after
	// the two push_const instructions); its PC must be stamped onto the
	// error, not left zero-valued.
	if de.Location.PC == 0 {
		t.Errorf("expected a non-zero located PC for the add instruction, got %+v", de.Location)
	}
}

// buildDivisionByZeroProgram is spec.md §8 scenario 5: u16 7/0.
func buildDivisionByZeroProgram() *bytecode.Program {
	p := bytecode.NewProgram()
	u16 := value.Int(16, false)
	aIdx := p.AddConstant(u16, big.NewInt(7))
	bIdx := p.AddConstant(u16, big.NewInt(0))
	outIdx := p.AddType(u16)

	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(aIdx)
	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(bIdx)
	p.WriteOp(bytecode.OpDiv)
	p.WriteOp(bytecode.OpOutput)
	p.WriteUint32(outIdx)
	p.WriteOp(bytecode.OpExit)
	return p
}

func TestDivisionByZeroThroughVMReportsLocatedError(t *testing.T) {
	p := buildDivisionByZeroProgram()
	_, _, err := Run(p, nil, nil, NoopHook)
	if err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Kind != diag.DivisionByZero {
		t.Errorf("kind = %v, want DivisionByZero", de.Kind)
	}
	if de.Location.PC == 0 {
		t.Errorf("expected a non-zero located PC for the div instruction, got %+v", de.Location)
	}
}
