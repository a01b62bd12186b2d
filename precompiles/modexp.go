package precompiles

import (
	"math/big"

	"github.com/bluealloy/evmcore/primitives"
)

// modexpContract implements MODEXP (0x05, EIP-198), repriced by
// EIP-2565 (Berlin) and length-capped by EIP-7823/7883 (Osaka). math/big
// is used deliberately here: arbitrary-bit-length modular exponentiation
// has no better-fitting library in the retrieval pack, and real
// go-ethereum implements this same precompile on math/big.
type modexpContract struct {
	spec primitives.Spec
}

// modexpInputLenCap is the EIP-7823 ceiling on each of base/exponent/
// modulus length, active from Osaka.
const modexpInputLenCap = 1024

func (c *modexpContract) lengths(input []byte) (baseLen, expLen, modLen uint64) {
	input = padRight(input, 96)
	baseLen = new(big.Int).SetBytes(input[0:32]).Uint64()
	expLen = new(big.Int).SetBytes(input[32:64]).Uint64()
	modLen = new(big.Int).SetBytes(input[64:96]).Uint64()
	return
}

func (c *modexpContract) RequiredGas(input []byte) uint64 {
	baseLen, expLen, modLen := c.lengths(input)

	if c.spec.IsEIP7883Enabled() {
		return modexpGasOsaka(input, baseLen, expLen, modLen)
	}
	return modexpGasEIP2565(input, baseLen, expLen, modLen)
}

func (c *modexpContract) Run(input []byte) ([]byte, error) {
	baseLen, expLen, modLen := c.lengths(input)

	if c.spec.IsEIP7823Enabled() {
		if baseLen > modexpInputLenCap || expLen > modexpInputLenCap || modLen > modexpInputLenCap {
			return nil, errModexpInputTooLarge
		}
	}

	if baseLen == 0 && modLen == 0 {
		return []byte{}, nil
	}

	input = input[min64(96, uint64(len(input))):]
	base := bytesOrZero(input, 0, baseLen)
	exp := bytesOrZero(input, baseLen, expLen)
	mod := bytesOrZero(input, baseLen+expLen, modLen)

	modBig := new(big.Int).SetBytes(mod)
	out := make([]byte, modLen)
	if modBig.Sign() == 0 {
		return out, nil
	}
	baseBig := new(big.Int).SetBytes(base)
	expBig := new(big.Int).SetBytes(exp)
	result := new(big.Int).Exp(baseBig, expBig, modBig)
	resultBytes := result.Bytes()
	copy(out[len(out)-len(resultBytes):], resultBytes)
	return out, nil
}

var errModexpInputTooLarge = modexpError("precompiles: modexp input exceeds 1024-byte length cap (EIP-7823)")

type modexpError string

func (e modexpError) Error() string { return string(e) }

func bytesOrZero(data []byte, start, length uint64) []byte {
	out := make([]byte, length)
	if start >= uint64(len(data)) {
		return out
	}
	end := start + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[start:end])
	return out
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// adjustedExpLen implements EIP-198/2565's "adjusted exponent length":
// for exponents up to 32 bytes it is floor(log2(exp)); otherwise it adds
// 8*(expLen-32) to account for the leading 32 bytes' bit length.
func adjustedExpLen(input []byte, baseLen, expLen uint64) uint64 {
	expStart := min64(96+baseLen, uint64(len(input)))
	expEnd := min64(expStart+min64(expLen, 32), uint64(len(input)))
	expHead := new(big.Int).SetBytes(input[expStart:expEnd])

	bitLen := uint64(0)
	if expHead.Sign() != 0 {
		bitLen = uint64(expHead.BitLen()) - 1
	}
	if expLen > 32 {
		return 8*(expLen-32) + bitLen
	}
	return bitLen
}

func modexpGasEIP2565(input []byte, baseLen, expLen, modLen uint64) uint64 {
	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	words := (maxLen + 7) / 8
	multComplexity := words * words

	adjExpLen := adjustedExpLen(input, baseLen, expLen)
	if adjExpLen < 1 {
		adjExpLen = 1
	}
	gas := multComplexity * adjExpLen / 3
	if gas < 200 {
		gas = 200
	}
	return gas
}

// modexpGasOsaka applies EIP-7883's repricing: a 500-gas minimum, a flat
// multiplication complexity of 16 for operands up to 32 bytes and
// 2*words^2 above that, a per-byte multiplier of 16 (instead of 8) for
// exponent bytes past the first 32, and no division by 3.
func modexpGasOsaka(input []byte, baseLen, expLen, modLen uint64) uint64 {
	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	words := (maxLen + 7) / 8
	multComplexity := uint64(16)
	if maxLen > 32 {
		multComplexity = 2 * words * words
	}

	adjExpLen := adjustedExpLen(input, baseLen, expLen)
	if expLen > 32 {
		adjExpLen += 8 * (expLen - 32)
	}
	if adjExpLen < 1 {
		adjExpLen = 1
	}
	gas := multComplexity * adjExpLen
	if gas < 500 {
		gas = 500
	}
	return gas
}
