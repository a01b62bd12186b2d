package precompiles

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBN254AddGenerators(t *testing.T) {
	// G1 generator is (1, 2). Adding it to itself must yield a 64-byte,
	// non-identity point.
	gen := make([]byte, 64)
	gen[31] = 1
	gen[63] = 2
	c := &bn254AddContract{}
	out, err := c.Run(append(append([]byte{}, gen...), gen...))
	require.NoError(t, err)
	require.Len(t, out, 64)
	require.NotEqual(t, make([]byte, 64), out)
}

func TestBN254AddIdentity(t *testing.T) {
	gen := make([]byte, 64)
	gen[31] = 1
	gen[63] = 2
	zero := make([]byte, 64)
	c := &bn254AddContract{}
	out, err := c.Run(append(append([]byte{}, gen...), zero...))
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(gen), hex.EncodeToString(out))
}

func TestBN254MulByZero(t *testing.T) {
	gen := make([]byte, 64)
	gen[31] = 1
	gen[63] = 2
	scalar := make([]byte, 32)
	c := &bn254MulContract{}
	out, err := c.Run(append(append([]byte{}, gen...), scalar...))
	require.NoError(t, err)
	require.Equal(t, make([]byte, 64), out)
}

func TestBN254PairingEmptyInput(t *testing.T) {
	c := &bn254PairingContract{}
	out, err := c.Run(nil)
	require.NoError(t, err)
	require.Equal(t, successWord(), out)
}

func TestBN254PairingGasSchedule(t *testing.T) {
	c := &bn254PairingContract{}
	require.Equal(t, uint64(45000), c.RequiredGas(nil))
	require.Equal(t, uint64(45000+34000), c.RequiredGas(make([]byte, bn254PairLen)))
}
