package primitives

import "golang.org/x/crypto/sha3"

// B256Length is the byte length of a B256 (256 bits): hashes, storage
// slot keys/values, topics, and block hashes all share this type.
const B256Length = 32

// B256 is a fixed 32-byte value, used for hashes, storage keys and
// values, transient storage slots, and log topics.
type B256 [B256Length]byte

// BytesToB256 left-truncates or left-pads b into a B256.
func BytesToB256(b []byte) B256 {
	var h B256
	if len(b) > B256Length {
		b = b[len(b)-B256Length:]
	}
	copy(h[B256Length-len(b):], b)
	return h
}

// HexToB256 parses a hex string into a B256.
func HexToB256(s string) B256 {
	return BytesToB256(fromHex(s))
}

// U256ToB256 renders a U256 as its big-endian 32-byte form, the
// representation used for storage keys/values and stack<->memory word
// transfers.
func U256ToB256(v U256) B256 {
	return B256(v.Bytes32())
}

// AsU256 interprets the B256 as a big-endian 256-bit integer.
func (h B256) AsU256() U256 {
	return U256FromBytes(h[:])
}

// IsZero reports whether h is the all-zero value.
func (h B256) IsZero() bool { return h == B256{} }

// Bytes returns a copy of the underlying bytes.
func (h B256) Bytes() []byte {
	b := make([]byte, B256Length)
	copy(b, h[:])
	return b
}

// Hex renders h as 0x-prefixed lowercase hex.
func (h B256) Hex() string { return "0x" + toHex(h[:]) }

// String implements fmt.Stringer.
func (h B256) String() string { return h.Hex() }

// Keccak256 hashes data with Keccak-256, the hash function used
// throughout the EVM (KECCAK256 opcode, code hashing, CREATE/CREATE2
// address derivation). This module never uses SHA3-256 (the padded
// NIST variant) — only the original Keccak padding, matching Ethereum's
// historical naming.
func Keccak256(data ...[]byte) B256 {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out B256
	h.Sum(out[:0])
	return out
}

// EmptyCodeHash is Keccak256 of the empty byte string, the code hash of
// every externally-owned account and of any contract whose code was
// erased by SELFDESTRUCT.
var EmptyCodeHash = Keccak256(nil)
