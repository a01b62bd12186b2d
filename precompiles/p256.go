package precompiles

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

// p256VerifyContract implements P256VERIFY (address 0x0100, RIP-7212 /
// EIP-7212): verify a NIST P-256 (secp256r1) signature. Uses stdlib
// crypto/ecdsa + crypto/elliptic rather than a pack library: Go's
// standard library already implements this exact curve natively, no
// library in the retrieval pack offers a preferable P-256
// implementation, and the teacher's own crypto/p256.go resolves RIP-7212
// the same way.
type p256VerifyContract struct{}

const p256VerifyGas = 3450

func (c *p256VerifyContract) RequiredGas(input []byte) uint64 { return p256VerifyGas }

func (c *p256VerifyContract) Run(input []byte) ([]byte, error) {
	if len(input) != 160 {
		return nil, nil
	}
	hash := input[0:32]
	r := new(big.Int).SetBytes(input[32:64])
	s := new(big.Int).SetBytes(input[64:96])
	x := new(big.Int).SetBytes(input[96:128])
	y := new(big.Int).SetBytes(input[128:160])

	curve := elliptic.P256()
	if !curve.IsOnCurve(x, y) {
		return nil, nil
	}
	pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	if !ecdsa.Verify(pub, hash, r, s) {
		return nil, nil
	}
	return successWord(), nil
}
