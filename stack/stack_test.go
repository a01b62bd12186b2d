package stack_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/stack"
)

func TestPushPopOrder(t *testing.T) {
	s := stack.New()
	require.NoError(t, s.Push(primitives.U256FromUint64(1)))
	require.NoError(t, s.Push(primitives.U256FromUint64(2)))
	require.NoError(t, s.Push(primitives.U256FromUint64(3)))
	require.Equal(t, 3, s.Len())

	for _, want := range []uint64{3, 2, 1} {
		v, err := s.Pop()
		require.NoError(t, err)
		require.Equal(t, want, v.Uint64())
	}
	require.Equal(t, 0, s.Len())
}

func TestPopUnderflow(t *testing.T) {
	s := stack.New()
	_, err := s.Pop()
	require.ErrorIs(t, err, stack.ErrUnderflow)
}

func TestPushOverflow(t *testing.T) {
	s := stack.New()
	for i := 0; i < stack.Limit; i++ {
		require.NoError(t, s.Push(primitives.Zero))
	}
	require.ErrorIs(t, s.Push(primitives.Zero), stack.ErrOverflow)
}

func TestSwap(t *testing.T) {
	s := stack.New()
	require.NoError(t, s.Push(primitives.U256FromUint64(1)))
	require.NoError(t, s.Push(primitives.U256FromUint64(2)))
	require.NoError(t, s.Swap(1))
	top, _ := s.Peek()
	require.Equal(t, uint64(1), top.Uint64())
}

func TestSwapOutOfRange(t *testing.T) {
	s := stack.New()
	err := s.Swap(0)
	require.True(t, errors.Is(err, stack.ErrSwapOutRange))
	err = s.Swap(17)
	require.True(t, errors.Is(err, stack.ErrSwapOutRange))
}

func TestDup(t *testing.T) {
	s := stack.New()
	require.NoError(t, s.Push(primitives.U256FromUint64(42)))
	require.NoError(t, s.Dup(1))
	require.Equal(t, 2, s.Len())
	top, _ := s.Peek()
	require.Equal(t, uint64(42), top.Uint64())
}

func TestDupUnderflow(t *testing.T) {
	s := stack.New()
	require.ErrorIs(t, s.Dup(1), stack.ErrUnderflow)
}

func TestPeekN(t *testing.T) {
	s := stack.New()
	require.NoError(t, s.Push(primitives.U256FromUint64(10)))
	require.NoError(t, s.Push(primitives.U256FromUint64(20)))
	v, err := s.PeekN(1)
	require.NoError(t, err)
	require.Equal(t, uint64(10), v.Uint64())
}

func TestReset(t *testing.T) {
	s := stack.New()
	require.NoError(t, s.Push(primitives.U256FromUint64(1)))
	s.Reset()
	require.Equal(t, 0, s.Len())
}
