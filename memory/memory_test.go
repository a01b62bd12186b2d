package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/memory"
	"github.com/bluealloy/evmcore/primitives"
)

func TestResizeRoundsUpToWord(t *testing.T) {
	m := memory.New()
	m.Resize(1)
	require.Equal(t, 32, m.Len())
	m.Resize(33)
	require.Equal(t, 64, m.Len())
}

func TestResizeNeverShrinks(t *testing.T) {
	m := memory.New()
	m.Resize(64)
	m.Resize(32)
	require.Equal(t, 64, m.Len())
}

func TestSetAndGetWord(t *testing.T) {
	m := memory.New()
	m.Resize(32)
	v := primitives.U256FromUint64(0xdeadbeef)
	m.SetWord(0, v)
	got := m.GetWord(0)
	require.True(t, v.Eq(got))
}

func TestGetPastEndZeroFills(t *testing.T) {
	m := memory.New()
	m.Resize(32)
	got := m.Get(16, 32)
	require.Len(t, got, 32)
	for _, b := range got[16:] {
		require.Equal(t, byte(0), b)
	}
}

func TestSetByte(t *testing.T) {
	m := memory.New()
	m.Resize(32)
	m.SetByte(5, 0xab)
	require.Equal(t, byte(0xab), m.Data()[5])
}

func TestCopyOverlapping(t *testing.T) {
	m := memory.New()
	m.Resize(32)
	m.Set(0, []byte{1, 2, 3, 4})
	m.Copy(2, 0, 4)
	require.Equal(t, []byte{1, 2, 1, 2, 3, 4}, m.Data()[:6])
}
