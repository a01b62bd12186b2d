package primitives

import (
	"golang.org/x/crypto/sha3"
)

// AddressLength is the byte length of an Address (160 bits).
const AddressLength = 20

// Address is a 20-byte account address.
type Address [AddressLength]byte

// BytesToAddress left-truncates or left-pads b into an Address, keeping
// the rightmost AddressLength bytes (geth-compatible semantics).
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress parses a hex string (with or without 0x prefix) into an
// Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// IsZero reports whether the address is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// Hex renders the address as a 0x-prefixed lowercase hex string (no
// EIP-55 checksum casing; the core has no use for display formatting
// beyond logging/debugging).
func (a Address) Hex() string {
	return "0x" + toHex(a[:])
}

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// AsU256 widens the address into a 256-bit word, zero-extended on the
// left, matching how ADDRESS/ORIGIN/CALLER/COINBASE push their operand.
func (a Address) AsU256() U256 {
	return U256FromBytes(a[:])
}

// AddressFromU256 narrows a 256-bit word to an address by taking the low
// 20 bytes, matching how CALL-family opcodes read their target operand.
func AddressFromU256(v U256) Address {
	b := v.Bytes32()
	return BytesToAddress(b[12:])
}

// CreateAddress computes the address of a contract created via CREATE:
// keccak256(rlp([sender, nonce]))[12:]. RLP encoding of the (address,
// nonce) pair is reproduced directly here rather than pulling in a
// general RLP codec, since this is the only RLP this module ever needs
// (spec.md places general RLP encoding out of scope).
func CreateAddress(sender Address, nonce uint64) Address {
	encNonce := rlpEncodeUint64(nonce)
	payload := make([]byte, 0, 1+AddressLength+1+len(encNonce))
	payload = append(payload, rlpHeaderString(AddressLength)...)
	payload = append(payload, sender[:]...)
	payload = append(payload, encNonce...)

	listHeader := rlpHeaderList(len(payload))
	buf := make([]byte, 0, len(listHeader)+len(payload))
	buf = append(buf, listHeader...)
	buf = append(buf, payload...)

	h := sha3.NewLegacyKeccak256()
	h.Write(buf)
	return BytesToAddress(h.Sum(nil)[12:])
}

// CreateAddress2 computes the address of a contract created via CREATE2:
// keccak256(0xff || sender || salt || keccak256(initcode))[12:].
func CreateAddress2(sender Address, salt [32]byte, initCodeHash [32]byte) Address {
	buf := make([]byte, 0, 1+AddressLength+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender[:]...)
	buf = append(buf, salt[:]...)
	buf = append(buf, initCodeHash[:]...)

	h := sha3.NewLegacyKeccak256()
	h.Write(buf)
	return BytesToAddress(h.Sum(nil)[12:])
}

// rlpHeaderString returns the RLP header bytes for a string of the given
// length, assuming length <= 55 (true for a 20-byte address).
func rlpHeaderString(length int) []byte {
	return []byte{byte(0x80 + length)}
}

// rlpHeaderList returns the RLP header for a list payload of the given
// length. CreateAddress's payload (address + small nonce) never exceeds
// 55 bytes, so only the short-list form is needed.
func rlpHeaderList(length int) []byte {
	if length <= 55 {
		return []byte{byte(0xc0 + length)}
	}
	// Long-form header: not reachable for (address, nonce) payloads, but
	// implemented for completeness/defensiveness against future payload
	// growth.
	var lenBytes []byte
	for l := length; l > 0; l >>= 8 {
		lenBytes = append([]byte{byte(l)}, lenBytes...)
	}
	out := make([]byte, 0, 1+len(lenBytes))
	out = append(out, byte(0xf7+len(lenBytes)))
	out = append(out, lenBytes...)
	return out
}

// rlpEncodeUint64 RLP-encodes a uint64 per the "integer" rule: zero
// encodes as the empty string, a value below 0x80 as that single byte,
// otherwise as its minimal big-endian byte representation prefixed with
// its string header.
func rlpEncodeUint64(v uint64) []byte {
	if v == 0 {
		return []byte{0x80}
	}
	var b [8]byte
	n := 0
	for i := 7; i >= 0; i-- {
		b[i] = byte(v >> uint(8*(7-i)))
	}
	start := 0
	for start < 8 && b[start] == 0 {
		start++
	}
	n = 8 - start
	if n == 1 && b[7] < 0x80 {
		return []byte{b[7]}
	}
	out := make([]byte, 0, 1+n)
	out = append(out, byte(0x80+n))
	out = append(out, b[start:]...)
	return out
}
