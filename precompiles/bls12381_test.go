package precompiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

func TestBLSG1AddWithIdentity(t *testing.T) {
	_, _, g1, _ := bls12381.Generators()
	p := encodeBLSG1(g1)
	zero := make([]byte, bls12381G1Len)

	c := &blsG1AddContract{}
	out, err := c.Run(append(append([]byte{}, p...), zero...))
	require.NoError(t, err)
	require.Equal(t, p, out)
}

func TestBLSG1MulByOne(t *testing.T) {
	_, _, g1, _ := bls12381.Generators()
	p := encodeBLSG1(g1)
	one := make([]byte, bls12381ScalarLen)
	one[31] = 1

	c := &blsG1MulContract{}
	out, err := c.Run(append(append([]byte{}, p...), one...))
	require.NoError(t, err)
	require.Equal(t, p, out)
}

func TestBLSG1MulByZero(t *testing.T) {
	_, _, g1, _ := bls12381.Generators()
	p := encodeBLSG1(g1)
	zero := make([]byte, bls12381ScalarLen)

	c := &blsG1MulContract{}
	out, err := c.Run(append(append([]byte{}, p...), zero...))
	require.NoError(t, err)
	require.Equal(t, make([]byte, bls12381G1Len), out)
}

func TestBLSG2AddWithIdentity(t *testing.T) {
	_, _, _, g2 := bls12381.Generators()
	p := encodeBLSG2(g2)
	zero := make([]byte, bls12381G2Len)

	c := &blsG2AddContract{}
	out, err := c.Run(append(append([]byte{}, p...), zero...))
	require.NoError(t, err)
	require.Equal(t, p, out)
}

func TestBLSPairingEmptyInput(t *testing.T) {
	c := &blsPairingContract{}
	_, err := c.Run(nil)
	require.Error(t, err) // zero-length input is rejected, unlike bn254
}

func TestBLSMultiExpDiscountMonotonic(t *testing.T) {
	require.Equal(t, uint64(1000), g1MultiExpDiscount(1))
	require.Less(t, g1MultiExpDiscount(10), g1MultiExpDiscount(1))
	require.Equal(t, uint64(740), g1MultiExpDiscount(100))
}

func TestBLSGasSchedule(t *testing.T) {
	require.Equal(t, uint64(375), (&blsG1AddContract{}).RequiredGas(nil))
	require.Equal(t, uint64(12000), (&blsG1MulContract{}).RequiredGas(nil))
	require.Equal(t, uint64(600), (&blsG2AddContract{}).RequiredGas(nil))
	require.Equal(t, uint64(22500), (&blsG2MulContract{}).RequiredGas(nil))
	require.Equal(t, uint64(5500), (&blsMapFpToG1Contract{}).RequiredGas(nil))
	require.Equal(t, uint64(75000), (&blsMapFp2ToG2Contract{}).RequiredGas(nil))
}
