// Package memory implements the data stack, frame-indexed memory, and
// call stack of spec.md §4.4: the VM's three owned storage structures,
// each operating on whole value.Value instances rather than individual
// scalars.
package memory

import (
	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/value"
)

// Stack is the VM's evaluation data stack: a LIFO sequence of whole
// values (spec.md §4.4). It is unbounded in principle; the bytecode
// generator is responsible for the program never exceeding its declared
// maximum depth.
type Stack struct {
	items []value.Value
}

// NewStack returns an empty data stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v value.Value) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value, or StackUnderflow if empty.
func (s *Stack) Pop() (value.Value, error) {
	if len(s.items) == 0 {
		return value.Value{}, diag.NewUnlocated(diag.StackUnderflow, "pop from empty stack")
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// Peek returns the value k entries below the top (k=0 is the top
// itself) without removing it.
func (s *Stack) Peek(k int) (value.Value, error) {
	idx := len(s.items) - 1 - k
	if idx < 0 || idx >= len(s.items) {
		return value.Value{}, diag.NewUnlocated(diag.StackUnderflow, "peek(%d) out of range on stack of depth %d", k, len(s.items))
	}
	return s.items[idx], nil
}

// Dup duplicates the top value.
func (s *Stack) Dup() error {
	top, err := s.Peek(0)
	if err != nil {
		return err
	}
	s.Push(top)
	return nil
}

// Swap exchanges the top value with the one k entries below it.
func (s *Stack) Swap(k int) error {
	n := len(s.items)
	idx := n - 1 - k
	if idx < 0 || idx >= n {
		return diag.NewUnlocated(diag.StackUnderflow, "swap(%d) out of range on stack of depth %d", k, n)
	}
	s.items[n-1], s.items[idx] = s.items[idx], s.items[n-1]
	return nil
}

// Drop discards the top k values, used by the VM's pop(k) stack-
// manipulation instruction.
func (s *Stack) Drop(k int) error {
	if k < 0 || k > len(s.items) {
		return diag.NewUnlocated(diag.StackUnderflow, "pop(%d) out of range on stack of depth %d", k, len(s.items))
	}
	s.items = s.items[:len(s.items)-k]
	return nil
}

// Depth returns the current stack depth.
func (s *Stack) Depth() int {
	return len(s.items)
}
