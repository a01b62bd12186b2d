package precompiles

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestP256VerifyRoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	hash := make([]byte, 32)
	copy(hash, []byte("deterministic-test-digest-bytes"))

	r, s, err := ecdsa.Sign(rand.Reader, priv, hash)
	require.NoError(t, err)

	input := make([]byte, 160)
	copy(input[0:32], hash)
	r.FillBytes(input[32:64])
	s.FillBytes(input[64:96])
	priv.X.FillBytes(input[96:128])
	priv.Y.FillBytes(input[128:160])

	c := &p256VerifyContract{}
	out, err := c.Run(input)
	require.NoError(t, err)
	require.Equal(t, successWord(), out)
}

func TestP256VerifyWrongLength(t *testing.T) {
	c := &p256VerifyContract{}
	out, err := c.Run(make([]byte, 100))
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestP256VerifyBadSignatureFails(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	input := make([]byte, 160)
	input[31] = 1 // hash
	input[63] = 2 // bogus r
	input[95] = 3 // bogus s
	priv.X.FillBytes(input[96:128])
	priv.Y.FillBytes(input[128:160])

	c := &p256VerifyContract{}
	out, err := c.Run(input)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestP256VerifyGasConstant(t *testing.T) {
	c := &p256VerifyContract{}
	require.Equal(t, uint64(3450), c.RequiredGas(nil))
}
