package memory

import "github.com/Epiisteme/zinc/internal/diag"

// CallFrame is a single activation record: the return program counter,
// this call's base offset into Memory, and its reserved local-slot count
// (spec.md §3, "Call frame").
type CallFrame struct {
	ReturnPC int
	Base     int
	Locals   int
}

// CallStack is the VM's call stack; its maximum depth is bounded by the
// program, since the language forbids dynamic recursion (spec.md §1
// Non-goals, §3).
type CallStack struct {
	frames   []CallFrame
	maxDepth int
}

// NewCallStack returns an empty call stack bounded to maxDepth frames.
func NewCallStack(maxDepth int) *CallStack {
	return &CallStack{maxDepth: maxDepth}
}

// Push establishes a new frame, failing with CallStackOverflow if doing
// so would exceed the configured maximum depth.
func (c *CallStack) Push(f CallFrame) error {
	if len(c.frames) >= c.maxDepth {
		return diag.NewUnlocated(diag.CallStackOverflow, "call stack exceeded maximum depth %d", c.maxDepth)
	}
	c.frames = append(c.frames, f)
	return nil
}

// Pop removes and returns the innermost frame.
func (c *CallStack) Pop() (CallFrame, error) {
	if len(c.frames) == 0 {
		return CallFrame{}, diag.NewUnlocated(diag.InvalidProgramCounter, "return with no active call frame")
	}
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return f, nil
}

// Top returns the innermost frame without removing it.
func (c *CallStack) Top() (CallFrame, error) {
	if len(c.frames) == 0 {
		return CallFrame{}, diag.NewUnlocated(diag.InvalidProgramCounter, "no active call frame")
	}
	return c.frames[len(c.frames)-1], nil
}

// Depth returns the current number of active frames.
func (c *CallStack) Depth() int {
	return len(c.frames)
}
