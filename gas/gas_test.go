package gas_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/gas"
)

func TestMemoryGasCostZero(t *testing.T) {
	require.Equal(t, uint64(0), gas.MemoryGasCost(0))
}

func TestMemoryGasCostOneWord(t *testing.T) {
	// 1 word: 3*1 + 1/512 = 3
	require.Equal(t, uint64(3), gas.MemoryGasCost(32))
}

func TestMemoryGasCostOverflowGuard(t *testing.T) {
	require.Equal(t, uint64(math.MaxUint64), gas.MemoryGasCost(1<<40))
}

func TestMemoryExpansionCostMonotonic(t *testing.T) {
	a := gas.MemoryExpansionCost(0, 32)
	b := gas.MemoryExpansionCost(0, 64)
	require.Greater(t, b, a)
}

func TestMemoryExpansionCostNoShrink(t *testing.T) {
	require.Equal(t, uint64(0), gas.MemoryExpansionCost(64, 32))
}

func TestCallGas63of64Rule(t *testing.T) {
	available := uint64(6400)
	got := gas.CallGas(available, 6400)
	require.Equal(t, available-available/64, got)
}

func TestCallGasRequestedUnderCap(t *testing.T) {
	got := gas.CallGas(6400, 10)
	require.Equal(t, uint64(10), got)
}

func TestExpByteCost(t *testing.T) {
	require.Equal(t, gas.ExpByteGasFrontier, gas.ExpByteCost(false))
	require.Equal(t, gas.ExpByteGasEIP158, gas.ExpByteCost(true))
}
