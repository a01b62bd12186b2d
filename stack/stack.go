// Package stack implements the EVM operand stack: a fixed-depth array of
// 256-bit words with error-returning Push/Pop/Peek/Swap/Dup, grounded on
// the teacher's EVMStack but backed by primitives.U256 (holiman/uint256)
// instead of math/big so that every element is a value type with no
// per-push heap allocation.
package stack

import (
	"errors"
	"fmt"

	"github.com/bluealloy/evmcore/primitives"
)

// Limit is the maximum depth of the EVM stack.
const Limit = 1024

// maxSwap and maxDup bound the SWAP1-16 / DUP1-16 operand range.
const (
	maxSwap = 16
	maxDup  = 16
)

var (
	ErrOverflow     = errors.New("stack: overflow (max 1024)")
	ErrUnderflow    = errors.New("stack: underflow")
	ErrSwapOutRange = errors.New("stack: swap position out of range")
	ErrDupOutRange  = errors.New("stack: dup position out of range")
)

// Stack is a 1024-element stack of 256-bit words.
type Stack struct {
	data [Limit]primitives.U256
	top  int
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Len returns the number of elements currently on the stack.
func (s *Stack) Len() int { return s.top }

// Reset empties the stack without reallocating the backing array.
func (s *Stack) Reset() { s.top = 0 }

// Push pushes v onto the stack.
func (s *Stack) Push(v primitives.U256) error {
	if s.top >= Limit {
		return ErrOverflow
	}
	s.data[s.top] = v
	s.top++
	return nil
}

// Pop removes and returns the top element.
func (s *Stack) Pop() (primitives.U256, error) {
	if s.top == 0 {
		return primitives.Zero, ErrUnderflow
	}
	s.top--
	v := s.data[s.top]
	s.data[s.top] = primitives.Zero
	return v, nil
}

// Peek returns the top element without removing it.
func (s *Stack) Peek() (primitives.U256, error) {
	if s.top == 0 {
		return primitives.Zero, ErrUnderflow
	}
	return s.data[s.top-1], nil
}

// PeekN returns the element n positions from the top without removing
// it (n=0 is the top element, matching the teacher's Back helper on the
// big.Int stack).
func (s *Stack) PeekN(n int) (primitives.U256, error) {
	if s.top <= n {
		return primitives.Zero, ErrUnderflow
	}
	return s.data[s.top-1-n], nil
}

// Swap exchanges the top element with the n-th element from the top.
// n must be in [1, 16].
func (s *Stack) Swap(n int) error {
	if n < 1 || n > maxSwap {
		return fmt.Errorf("%w: SWAP%d", ErrSwapOutRange, n)
	}
	if s.top < n+1 {
		return fmt.Errorf("%w: need %d elements for SWAP%d, have %d", ErrUnderflow, n+1, n, s.top)
	}
	top, nth := s.top-1, s.top-1-n
	s.data[top], s.data[nth] = s.data[nth], s.data[top]
	return nil
}

// Dup duplicates the n-th element from the top and pushes the copy.
// n must be in [1, 16].
func (s *Stack) Dup(n int) error {
	if n < 1 || n > maxDup {
		return fmt.Errorf("%w: DUP%d", ErrDupOutRange, n)
	}
	if s.top < n {
		return fmt.Errorf("%w: need %d elements for DUP%d, have %d", ErrUnderflow, n, n, s.top)
	}
	if s.top >= Limit {
		return ErrOverflow
	}
	s.data[s.top] = s.data[s.top-n]
	s.top++
	return nil
}

// Data returns a snapshot slice of the stack contents, bottom-to-top.
// Used by tracers/tests, never by the interpreter's hot path.
func (s *Stack) Data() []primitives.U256 {
	out := make([]primitives.U256, s.top)
	copy(out, s.data[:s.top])
	return out
}
