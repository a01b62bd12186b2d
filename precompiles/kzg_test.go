package precompiles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKZGInputLength(t *testing.T) {
	c := &kzgPointEvaluationContract{}
	_, err := c.Run(make([]byte, 191))
	require.ErrorIs(t, err, errKZGInputLength)
}

func TestKZGOutOfFieldRejected(t *testing.T) {
	c := &kzgPointEvaluationContract{}
	input := make([]byte, 192)
	for i := range input[32:64] {
		input[32+i] = 0xff // z saturated well above the scalar field modulus
	}
	commitment := make([]byte, 48)
	versioned := kzgVersionedHash(commitment)
	copy(input[0:32], versioned[:])
	_, err := c.Run(input)
	require.ErrorIs(t, err, errKZGOutOfField)
}

func TestKZGVersionedHashPrefix(t *testing.T) {
	h := kzgVersionedHash(make([]byte, 48))
	require.Equal(t, byte(0x01), h[0])
}

func TestKZGRequiredGasConstant(t *testing.T) {
	c := &kzgPointEvaluationContract{}
	require.Equal(t, uint64(50000), c.RequiredGas(nil))
}

func TestKZGReturnLayout(t *testing.T) {
	out := kzgPointEvaluationReturn()
	require.Len(t, out, 64)
	require.Equal(t, byte(0x10), out[30]) // big-endian 4096 = 0x1000
	require.Equal(t, byte(0x00), out[31])
}
