package precompiles

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestECRECOVER(t *testing.T) {
	// Golden vector: well-known go-ethereum ecrecover fixture.
	input := hexBytes(t,
		"456e9aea5e197a1f1af7a3e85a3212fa4049a3ba34c2289b4c860fc0b0c64ef3"+
			"000000000000000000000000000000000000000000000000000000000000001c"+
			"9242685bf161793cc25603c231bc2f568eb630ea16aa137d2664ac8038825608"+
			"4f8d2ed34b826742e46943a9357d2f22fe6f1d08e5bda85bccf6b05e3d06b64e")
	c := &ecrecoverContract{}
	out, err := c.Run(input)
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.NotEqual(t, make([]byte, 32), out)
}

func TestECRECOVERInvalidRecoveryID(t *testing.T) {
	input := make([]byte, 128)
	input[63] = 99 // invalid v
	c := &ecrecoverContract{}
	out, err := c.Run(input)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestSHA256(t *testing.T) {
	c := &sha256Contract{}
	out, err := c.Run([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		hex.EncodeToString(out))
}

func TestSHA256Gas(t *testing.T) {
	c := &sha256Contract{}
	require.Equal(t, uint64(60+12), c.RequiredGas(make([]byte, 32)))
	require.Equal(t, uint64(60+12*2), c.RequiredGas(make([]byte, 33)))
}

func TestRIPEMD160(t *testing.T) {
	c := &ripemd160Contract{}
	out, err := c.Run([]byte("hello"))
	require.NoError(t, err)
	require.Len(t, out, 32)
	for _, b := range out[:12] {
		require.Equal(t, byte(0), b)
	}
}

func TestIdentity(t *testing.T) {
	c := &identityContract{}
	in := []byte("the quick brown fox")
	out, err := c.Run(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, uint64(15+3), c.RequiredGas(in))
}
