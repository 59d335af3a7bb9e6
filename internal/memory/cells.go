package memory

import (
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/value"
)

// cell is a memory cell: a value, or an absence marker for a slot never
// written (spec.md §3, "Memory cell").
type cell struct {
	present bool
	value   value.Value
}

// Memory is the VM's frame-indexed memory: a vector indexed by
// non-negative absolute offsets, growing on demand as higher offsets are
// addressed (spec.md §3, §4.4). Its watermark is one past the maximal
// index written during a run.
type Memory struct {
	cells     []cell
	watermark int
}

// NewMemory returns an empty memory with no addressed cells.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ensure(i int) {
	if i >= len(m.cells) {
		grown := make([]cell, i+1)
		copy(grown, m.cells)
		m.cells = grown
	}
	if i+1 > m.watermark {
		m.watermark = i + 1
	}
}

// Store writes v at absolute offset i.
func (m *Memory) Store(i int, v value.Value) error {
	if i < 0 {
		return diag.NewUnlocated(diag.MemoryOutOfBounds, "store at negative offset %d", i)
	}
	m.ensure(i)
	m.cells[i] = cell{present: true, value: v}
	return nil
}

// Load reads the value at absolute offset i, or MemoryOutOfBounds if the
// cell was never written.
func (m *Memory) Load(i int) (value.Value, error) {
	if i < 0 || i >= len(m.cells) || !m.cells[i].present {
		return value.Value{}, diag.NewUnlocated(diag.MemoryOutOfBounds, "load of unwritten offset %d", i)
	}
	return m.cells[i].value, nil
}

// StoreSequence writes n values at base..base+n-1. popped is given in
// pop order (popped[0] was popped first); per spec.md §4.4 and §9's
// resolved Open Question, the first-popped value goes to the *highest*
// address, so popped[0] lands at base+n-1 and popped[n-1] lands at base
// — reflecting natural left-to-right source ordering when the values
// were originally pushed in order and then popped back off.
func (m *Memory) StoreSequence(base int, popped []value.Value) error {
	n := len(popped)
	for i, v := range popped {
		addr := base + n - 1 - i
		if err := m.Store(addr, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadSequence reads n values starting at base, in ascending address
// order.
func (m *Memory) LoadSequence(base, n int) ([]value.Value, error) {
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v, err := m.Load(base + i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Watermark returns one past the highest offset addressed during this
// memory's lifetime.
func (m *Memory) Watermark() int {
	return m.watermark
}
