package precompiles

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"

	"github.com/bluealloy/evmcore/primitives"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// --- ECRECOVER (0x01) ---

type ecrecoverContract struct{}

func (c *ecrecoverContract) RequiredGas(input []byte) uint64 { return 3000 }

func (c *ecrecoverContract) Run(input []byte) ([]byte, error) {
	input = padRight(input, 128)

	hash := input[0:32]
	v := input[32:64]
	r := input[64:96]
	s := input[96:128]

	// v occupies the low byte of a big-endian 32-byte field and must be
	// exactly 27 or 28; any other encoding is a recovery failure, not an
	// error (ECRECOVER returns empty output, never reverts).
	for _, b := range v[:31] {
		if b != 0 {
			return nil, nil
		}
	}
	recID := v[31]
	if recID != 27 && recID != 28 {
		return nil, nil
	}

	sig := make([]byte, 65)
	copy(sig[0:32], r)
	copy(sig[32:64], s)
	sig[64] = recID - 27

	pub, ok := recoverSecp256k1(hash, sig)
	if !ok {
		return nil, nil
	}

	addrHash := primitives.Keccak256(pub[1:])
	out := make([]byte, 32)
	copy(out[12:], addrHash[12:])
	return out, nil
}

// recoverSecp256k1 recovers the 65-byte uncompressed public key from a
// 32-byte digest and a [R(32) || S(32) || recID(1)] signature, using the
// decred secp256k1 implementation that resolves the teacher's
// crypto/secp256k1.go elliptic.P256() placeholder TODO with the real
// curve.
func recoverSecp256k1(hash []byte, sig []byte) ([]byte, bool) {
	// decred's RecoverCompact expects [recID+27 || R || S].
	compact := make([]byte, 65)
	compact[0] = sig[64] + 27
	copy(compact[1:33], sig[0:32])
	copy(compact[33:65], sig[32:64])

	pub, _, err := secp256k1.RecoverCompact(compact, hash)
	if err != nil {
		return nil, false
	}
	return pub.SerializeUncompressed(), true
}

// --- SHA256 (0x02) ---

type sha256Contract struct{}

func (c *sha256Contract) RequiredGas(input []byte) uint64 {
	return 60 + 12*wordCount(len(input))
}

func (c *sha256Contract) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// --- RIPEMD160 (0x03) ---

type ripemd160Contract struct{}

func (c *ripemd160Contract) RequiredGas(input []byte) uint64 {
	return 600 + 120*wordCount(len(input))
}

func (c *ripemd160Contract) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	digest := h.Sum(nil)
	out := make([]byte, 32)
	copy(out[12:], digest)
	return out, nil
}

// --- IDENTITY (0x04) ---

type identityContract struct{}

func (c *identityContract) RequiredGas(input []byte) uint64 {
	return 15 + 3*wordCount(len(input))
}

func (c *identityContract) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}
