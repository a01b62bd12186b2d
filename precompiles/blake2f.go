package precompiles

import (
	"encoding/binary"
	"errors"
)

// blake2FContract implements BLAKE2F (0x09, EIP-152): the raw BLAKE2b
// compression function F, exposed so contracts can implement BLAKE2b
// hashing themselves. golang.org/x/crypto/blake2b deliberately does not
// export F (only the full keyed-hash API), so this is a hand-written
// port of the compression function from the EIP-152 reference code —
// there is no third-party library in the retrieval pack that exposes
// this primitive directly, hence the stdlib/hand-rolled exception
// recorded in DESIGN.md.
type blake2FContract struct{}

const blake2FInputLength = 213

var errBlake2FInvalidInputLength = errors.New("precompiles: blake2f requires a 213-byte input")
var errBlake2FInvalidFinalFlag = errors.New("precompiles: blake2f final block flag must be 0 or 1")

func (c *blake2FContract) RequiredGas(input []byte) uint64 {
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[0:4]))
}

func (c *blake2FContract) Run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLength {
		return nil, errBlake2FInvalidInputLength
	}
	rounds := binary.BigEndian.Uint32(input[0:4])

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = binary.LittleEndian.Uint64(input[4+i*8:])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(input[68+i*8:])
	}
	t0 := binary.LittleEndian.Uint64(input[196:204])
	t1 := binary.LittleEndian.Uint64(input[204:212])

	final := input[212]
	if final != 0 && final != 1 {
		return nil, errBlake2FInvalidFinalFlag
	}

	blake2bF(&h, &m, t0, t1, final == 1, rounds)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], h[i])
	}
	return out, nil
}

var blake2bIV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var blake2bSigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

func rotr64(x uint64, n uint) uint64 { return (x >> n) | (x << (64 - n)) }

// blake2bF runs the BLAKE2b compression function for the given number
// of rounds, mutating h in place.
func blake2bF(h *[8]uint64, m *[16]uint64, t0, t1 uint64, final bool, rounds uint32) {
	v := [16]uint64{
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7],
		blake2bIV[0], blake2bIV[1], blake2bIV[2], blake2bIV[3],
		blake2bIV[4], blake2bIV[5], blake2bIV[6], blake2bIV[7],
	}
	v[12] ^= t0
	v[13] ^= t1
	if final {
		v[14] = ^v[14]
	}

	g := func(a, b, c, d int, x, y uint64) {
		v[a] = v[a] + v[b] + x
		v[d] = rotr64(v[d]^v[a], 32)
		v[c] = v[c] + v[d]
		v[b] = rotr64(v[b]^v[c], 24)
		v[a] = v[a] + v[b] + y
		v[d] = rotr64(v[d]^v[a], 16)
		v[c] = v[c] + v[d]
		v[b] = rotr64(v[b]^v[c], 63)
	}

	for r := uint32(0); r < rounds; r++ {
		s := blake2bSigma[r%10]
		g(0, 4, 8, 12, m[s[0]], m[s[1]])
		g(1, 5, 9, 13, m[s[2]], m[s[3]])
		g(2, 6, 10, 14, m[s[4]], m[s[5]])
		g(3, 7, 11, 15, m[s[6]], m[s[7]])
		g(0, 5, 10, 15, m[s[8]], m[s[9]])
		g(1, 6, 11, 12, m[s[10]], m[s[11]])
		g(2, 7, 8, 13, m[s[12]], m[s[13]])
		g(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}
