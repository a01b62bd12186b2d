package precompiles

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/primitives"
)

// modexpInput builds a MODEXP input: 3x32-byte lengths followed by the
// base/exponent/modulus bytes, per EIP-198's layout.
func modexpInput(base, exp, mod []byte) []byte {
	var out []byte
	lens := make([]byte, 96)
	putLen := func(off int, n int) {
		b := big64Bytes(uint64(n))
		copy(lens[off+32-len(b):off+32], b)
	}
	putLen(0, len(base))
	putLen(32, len(exp))
	putLen(64, len(mod))
	out = append(out, lens...)
	out = append(out, base...)
	out = append(out, exp...)
	out = append(out, mod...)
	return out
}

func big64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

func TestModexpBasic(t *testing.T) {
	c := &modexpContract{spec: primitives.Cancun}
	// 3^2 mod 5 = 4
	input := modexpInput([]byte{3}, []byte{2}, []byte{5})
	out, err := c.Run(input)
	require.NoError(t, err)
	require.Equal(t, []byte{4}, out)
}

func TestModexpZeroModulus(t *testing.T) {
	c := &modexpContract{spec: primitives.Cancun}
	input := modexpInput([]byte{3}, []byte{2}, []byte{0})
	out, err := c.Run(input)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, out)
}

func TestModexpOsakaInputCap(t *testing.T) {
	c := &modexpContract{spec: primitives.Osaka}
	big := make([]byte, 1025)
	big[0] = 1
	input := modexpInput(big, []byte{2}, []byte{5})
	_, err := c.Run(input)
	require.ErrorIs(t, err, errModexpInputTooLarge)
}

func TestModexpPreOsakaNoCap(t *testing.T) {
	c := &modexpContract{spec: primitives.Cancun}
	big := make([]byte, 1025)
	big[1024] = 3
	input := modexpInput(big, []byte{1}, []byte{5})
	_, err := c.Run(input)
	require.NoError(t, err)
}

func TestAdjustedExpLenSmall(t *testing.T) {
	input := modexpInput([]byte{1}, []byte{8}, []byte{1})
	got := adjustedExpLen(input, 1, 1)
	require.Equal(t, uint64(3), got) // bitlen(8)-1 = 3
}

func TestModexpGasFloor(t *testing.T) {
	input := modexpInput([]byte{1}, []byte{1}, []byte{1})
	require.Equal(t, uint64(200), modexpGasEIP2565(input, 1, 1, 1))
	require.Equal(t, uint64(500), modexpGasOsaka(input, 1, 1, 1))
}

func TestModexpHexRoundTrip(t *testing.T) {
	// 2^10 mod 1000 = 24
	base, _ := hex.DecodeString("02")
	exp, _ := hex.DecodeString("0a")
	mod, _ := hex.DecodeString("03e8")
	c := &modexpContract{spec: primitives.Cancun}
	out, err := c.Run(modexpInput(base, exp, mod))
	require.NoError(t, err)
	require.Equal(t, "0018", hex.EncodeToString(out))
}
