package runner

import (
	"context"
	"math/big"
	"testing"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/value"
)

func addConstProgram(a, b int64) *bytecode.Program {
	p := bytecode.NewProgram()
	u16 := value.Int(16, false)
	aIdx := p.AddConstant(u16, big.NewInt(a))
	bIdx := p.AddConstant(u16, big.NewInt(b))
	outIdx := p.AddType(u16)

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

func failingAssertProgram() *bytecode.Program {
	p := bytecode.NewProgram()
	b := value.Bool()
	idx := p.AddConstant(b, big.NewInt(0))
	p.WriteOp(bytecode.OpPushConst)
	p.WriteUint32(idx)
	p.WriteOp(bytecode.OpAssert)
	p.WriteUint32(^uint32(0))
	p.WriteOp(bytecode.OpExit)
	return p
}

func TestRunBatchRunsJobsIndependently(t *testing.T) {
	jobs := []Job{
		NewJob(addConstProgram(1, 2), nil, nil, nil),
		NewJob(addConstProgram(10, 20), nil, nil, nil),
		NewJob(addConstProgram(100, 200), nil, nil, nil),
	}
	results, err := RunBatch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []int64{3, 30, 300}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d failed: %v", i, r.Err)
		}
		if got := r.Outputs[0].Wire.Val; got.Cmp(big.NewInt(want[i])) != 0 {
			t.Errorf("job %d output = %s, want %d", i, got, want[i])
		}
		if r.ID == "" {
			t.Errorf("job %d missing a run identity", i)
		}
	}
}

func TestRunBatchSurfacesFirstFailureWithoutLosingOtherResults(t *testing.T) {
	jobs := []Job{
		NewJob(addConstProgram(1, 2), nil, nil, nil),
		NewJob(failingAssertProgram(), nil, nil, nil),
	}
	results, err := RunBatch(context.Background(), jobs, 0)
	if err == nil {
		t.Fatalf("expected the batch to surface the failing job's error")
	}
	if results[0].Err != nil {
		t.Errorf("job 0 should have succeeded, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Errorf("job 1 should have failed")
	}
}
