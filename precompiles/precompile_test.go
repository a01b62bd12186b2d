package precompiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/primitives"
)

func TestRegistryGrowsByFork(t *testing.T) {
	_, ok := Lookup(addrOf(5), primitives.Frontier)
	require.False(t, ok, "MODEXP not available before Byzantium")

	_, ok = Lookup(addrOf(5), primitives.Byzantium)
	require.True(t, ok, "MODEXP available from Byzantium")

	_, ok = Lookup(addrOf(9), primitives.Byzantium)
	require.False(t, ok, "BLAKE2F not available before Istanbul")

	_, ok = Lookup(addrOf(9), primitives.Istanbul)
	require.True(t, ok, "BLAKE2F available from Istanbul")

	_, ok = Lookup(addrOf(0x0a), primitives.London)
	require.False(t, ok, "KZG point evaluation not available before Cancun")

	_, ok = Lookup(addrOf(0x0a), primitives.Cancun)
	require.True(t, ok, "KZG point evaluation available from Cancun")

	_, ok = Lookup(addrOf(0x0b), primitives.Cancun)
	require.False(t, ok, "BLS12-381 not available before Prague")

	_, ok = Lookup(addrOf(0x0b), primitives.Prague)
	require.True(t, ok, "BLS12-381 available from Prague")

	_, ok = Lookup(p256VerifyAddress, primitives.Cancun)
	require.False(t, ok, "P256VERIFY not available before Prague")

	_, ok = Lookup(p256VerifyAddress, primitives.Prague)
	require.True(t, ok, "P256VERIFY available from Prague")
}

func TestIsPrecompileAlwaysAvailable(t *testing.T) {
	for i := byte(1); i <= 4; i++ {
		require.True(t, IsPrecompile(addrOf(i), primitives.Frontier))
	}
}

func TestRunChargesGasBeforeExecuting(t *testing.T) {
	p, ok := Lookup(addrOf(4), primitives.Frontier) // identity
	require.True(t, ok)

	_, _, err := Run(p, make([]byte, 32), 10)
	require.ErrorIs(t, err, ErrOutOfGas)

	out, remaining, err := Run(p, make([]byte, 32), 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(1000-18), remaining)
	require.Len(t, out, 32)
}

func TestPadRight(t *testing.T) {
	require.Equal(t, []byte{1, 2, 0, 0}, padRight([]byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2, 3, 4}, padRight([]byte{1, 2, 3, 4}, 2))
}

func TestWordCount(t *testing.T) {
	require.Equal(t, uint64(0), wordCount(0))
	require.Equal(t, uint64(1), wordCount(1))
	require.Equal(t, uint64(1), wordCount(32))
	require.Equal(t, uint64(2), wordCount(33))
}
