// Package stack holds the ordered operand stack of the calculator.
package stack

import (
	"errors"
	"fmt"

	"github.com/codefionn/rpncalc/internal/value"
)

// ErrUnderflow is returned when an operation needs more items than the stack holds.
var ErrUnderflow = errors.New("stack underflow")

// Stack is a LIFO sequence of values. Index 0 of Peek is the top.
type Stack struct {
	items []value.Value
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Push places v on top.
func (s *Stack) Push(v value.Value) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top item.
func (s *Stack) Pop() (value.Value, bool) {
	if len(s.items) == 0 {
		return value.Value{}, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// PopN removes n items and returns them top first. It fails without touching
// the stack when fewer than n items exist.
func (s *Stack) PopN(n int) ([]value.Value, error) {
	if n < 0 || n > len(s.items) {
		return nil, fmt.Errorf("%w: trying to pop %d but only %d exist", ErrUnderflow, n, len(s.items))
	}
	out := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.items[len(s.items)-1-i])
	}
	s.items = s.items[:len(s.items)-n]
	return out, nil
}

// Peek returns the item n positions below the top without removing it.
func (s *Stack) Peek(n int) (value.Value, bool) {
	if n < 0 || n >= len(s.items) {
		return value.Value{}, false
	}
	return s.items[len(s.items)-1-n], true
}

// Len returns the number of items.
func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy of the stack, bottom first.
func (s *Stack) Items() []value.Value {
	out := make([]value.Value, len(s.items))
	copy(out, s.items)
	return out
}

// Clear empties the stack and returns the removed items, bottom first.
func (s *Stack) Clear() []value.Value {
	out := s.items
	s.items = nil
	return out
}

// Equal reports whether the stack holds exactly items, bottom first.
func (s *Stack) Equal(items []value.Value) bool {
	if len(items) != len(s.items) {
		return false
	}
	for i := range items {
		if !items[i].Equal(s.items[i]) {
			return false
		}
	}
	return true
}
