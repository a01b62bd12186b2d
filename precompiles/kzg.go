package precompiles

import (
	"bytes"
	"errors"
	"math/big"

	gokzg4844 "github.com/crate-crypto/go-eth-kzg"

	"github.com/bluealloy/evmcore/primitives"
)

// kzgPointEvaluationContract implements the point evaluation precompile
// (0x0a, EIP-4844): given a versioned blob commitment hash, an
// evaluation point z, a claimed value y, a KZG commitment, and a proof,
// verify that the polynomial committed to evaluates to y at z. Wraps
// go-eth-kzg the way the teacher's crypto/kzg_goeth_adapter.go does
// under its "goethkzg" build tag, promoted here to the default path
// since the point evaluation precompile has no meaningful fallback.
type kzgPointEvaluationContract struct{}

var kzgCtx = newKZGContext()

func newKZGContext() *gokzg4844.Context {
	ctx, err := gokzg4844.NewContext4096Secure()
	if err != nil {
		// The embedded trusted setup ships with the library; failure here
		// indicates a corrupted build, not a runtime condition callers
		// can recover from.
		panic("precompiles: failed to load KZG trusted setup: " + err.Error())
	}
	return ctx
}

// blsModulus is the scalar field modulus of BLS12-381, the domain y and
// z are checked to lie within.
var blsModulus, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

var (
	errKZGInputLength  = errors.New("precompiles: point evaluation input must be 192 bytes")
	errKZGVersionByte  = errors.New("precompiles: commitment does not hash to the expected versioned hash")
	errKZGOutOfField   = errors.New("precompiles: z or y is not a valid BLS12-381 scalar field element")
	errKZGVerifyFailed = errors.New("precompiles: KZG proof verification failed")
)

// kzgPointEvaluationReturn is the fixed [FIELD_ELEMENTS_PER_BLOB ||
// BLS_MODULUS] success output defined by EIP-4844.
func kzgPointEvaluationReturn() []byte {
	out := make([]byte, 64)
	big.NewInt(4096).FillBytes(out[0:32])
	blsModulus.FillBytes(out[32:64])
	return out
}

func (c *kzgPointEvaluationContract) RequiredGas(input []byte) uint64 { return 50000 }

func (c *kzgPointEvaluationContract) Run(input []byte) ([]byte, error) {
	if len(input) != 192 {
		return nil, errKZGInputLength
	}
	versionedHash := input[0:32]
	z := input[32:64]
	y := input[64:96]
	commitment := input[96:144]
	proof := input[144:192]

	if new(big.Int).SetBytes(z).Cmp(blsModulus) >= 0 || new(big.Int).SetBytes(y).Cmp(blsModulus) >= 0 {
		return nil, errKZGOutOfField
	}

	computedHash := kzgVersionedHash(commitment)
	if !bytes.Equal(computedHash[:], versionedHash) {
		return nil, errKZGVersionByte
	}

	var zBytes, yBytes [32]byte
	copy(zBytes[:], z)
	copy(yBytes[:], y)
	var commitmentBytes gokzg4844.KZGCommitment
	copy(commitmentBytes[:], commitment)
	var proofBytes gokzg4844.KZGProof
	copy(proofBytes[:], proof)

	if err := kzgCtx.VerifyKZGProof(commitmentBytes, zBytes, yBytes, proofBytes); err != nil {
		return nil, errKZGVerifyFailed
	}
	return kzgPointEvaluationReturn(), nil
}

// kzgVersionedHash computes EIP-4844's versioned commitment hash:
// 0x01 || sha256(commitment)[1:].
func kzgVersionedHash(commitment []byte) primitives.B256 {
	full := sha256Sum(commitment)
	var out primitives.B256
	out[0] = 0x01
	copy(out[1:], full[1:])
	return out
}

func sha256Sum(data []byte) [32]byte {
	c := &sha256Contract{}
	out, _ := c.Run(data)
	var arr [32]byte
	copy(arr[:], out)
	return arr
}
