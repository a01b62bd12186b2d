// Package primitives defines the fixed-width value types shared by every
// other package in this module: 256-bit words, 160-bit addresses, 256-bit
// hashes, and the hardfork ("Spec") enum that gates behavior throughout the
// engine.
package primitives

import (
	"math/big"

	"github.com/holiman/uint256"
)

// U256 is an unsigned 256-bit integer. It is a thin, EVM-flavored wrapper
// around uint256.Int (a 4x64-bit limb representation) adding the signed
// interpretations (SDIV, SMOD, SLT, SGT, SAR, SIGNEXTEND) and the EXP
// operator the EVM instruction set needs but uint256.Int does not expose
// directly under these names. All arithmetic wraps silently; the EVM never
// traps on overflow.
type U256 struct {
	inner uint256.Int
}

// U256FromUint64 returns the U256 value of a uint64.
func U256FromUint64(v uint64) U256 {
	var u U256
	u.inner.SetUint64(v)
	return u
}

// U256FromBig returns the U256 value of a big.Int, truncating to 256 bits.
func U256FromBig(v *big.Int) U256 {
	var u U256
	u.inner.SetFromBig(v)
	return u
}

// U256FromBytes interprets b as a big-endian integer, left-padding or
// truncating (from the left) to 32 bytes.
func U256FromBytes(b []byte) U256 {
	var u U256
	u.inner.SetBytes(b)
	return u
}

// Zero, One and MaxU256 are commonly used constants.
var (
	Zero    = U256{}
	One     = U256FromUint64(1)
	MaxU256 = func() U256 {
		var u U256
		u.inner.Not(&u.inner)
		return u
	}()
)

// Uint64 returns the low 64 bits, matching the EVM's truncating
// interpretation of stack values used as lengths/offsets.
func (u U256) Uint64() uint64 { return u.inner.Uint64() }

// IsUint64 reports whether the value fits in 64 bits without truncation.
func (u U256) IsUint64() bool { return u.inner.IsUint64() }

// IsZero reports whether the value is zero.
func (u U256) IsZero() bool { return u.inner.IsZero() }

// Sign returns -1/0/1 per unsigned comparison against zero (0 or 1 only;
// U256 has no negative unsigned value). Provided for symmetry with big.Int.
func (u U256) Sign() int {
	if u.inner.IsZero() {
		return 0
	}
	return 1
}

// Bytes32 returns the big-endian 32-byte representation.
func (u U256) Bytes32() [32]byte {
	return u.inner.Bytes32()
}

// Bytes returns the big-endian representation with no leading zero bytes
// (empty slice for zero).
func (u U256) Bytes() []byte {
	return u.inner.Bytes()
}

// Big returns the value as a *big.Int.
func (u U256) Big() *big.Int {
	return u.inner.ToBig()
}

// String renders the value in decimal.
func (u U256) String() string { return u.inner.Dec() }

// Hex renders the value as 0x-prefixed hex, no leading zeros.
func (u U256) Hex() string { return u.inner.Hex() }

// Eq, Lt, Gt report unsigned comparisons.
func (u U256) Eq(o U256) bool { return u.inner.Eq(&o.inner) }
func (u U256) Lt(o U256) bool { return u.inner.Lt(&o.inner) }
func (u U256) Gt(o U256) bool { return u.inner.Gt(&o.inner) }

// Cmp returns -1/0/1 for unsigned comparison.
func (u U256) Cmp(o U256) int { return u.inner.Cmp(&o.inner) }

func binop(f func(dst, a, b *uint256.Int) *uint256.Int, a, b U256) U256 {
	var r U256
	f(&r.inner, &a.inner, &b.inner)
	return r
}

// Add, Sub, Mul wrap on overflow (mod 2^256).
func (a U256) Add(b U256) U256 { return binop((*uint256.Int).Add, a, b) }
func (a U256) Sub(b U256) U256 { return binop((*uint256.Int).Sub, a, b) }
func (a U256) Mul(b U256) U256 { return binop((*uint256.Int).Mul, a, b) }

// Div is unsigned division; division by zero yields zero (EVM semantics,
// not a trap).
func (a U256) Div(b U256) U256 {
	if b.IsZero() {
		return Zero
	}
	return binop((*uint256.Int).Div, a, b)
}

// Mod is unsigned remainder; mod by zero yields zero.
func (a U256) Mod(b U256) U256 {
	if b.IsZero() {
		return Zero
	}
	return binop((*uint256.Int).Mod, a, b)
}

// AddMod computes (a+b) mod m with a full-precision intermediate sum; mod
// by zero yields zero.
func (a U256) AddMod(b, m U256) U256 {
	if m.IsZero() {
		return Zero
	}
	var r U256
	r.inner.AddMod(&a.inner, &b.inner, &m.inner)
	return r
}

// MulMod computes (a*b) mod m with a full-precision intermediate product;
// mod by zero yields zero.
func (a U256) MulMod(b, m U256) U256 {
	if m.IsZero() {
		return Zero
	}
	var r U256
	r.inner.MulMod(&a.inner, &b.inner, &m.inner)
	return r
}

// Exp computes a**b mod 2^256 via binary exponentiation.
func (a U256) Exp(b U256) U256 {
	var r U256
	r.inner.Exp(&a.inner, &b.inner)
	return r
}

// And, Or, Xor are bitwise operators.
func (a U256) And(b U256) U256 { return binop((*uint256.Int).And, a, b) }
func (a U256) Or(b U256) U256  { return binop((*uint256.Int).Or, a, b) }
func (a U256) Xor(b U256) U256 { return binop((*uint256.Int).Xor, a, b) }

// Not returns the bitwise complement.
func (a U256) Not() U256 {
	var r U256
	r.inner.Not(&a.inner)
	return r
}

// Lsh, Rsh are logical shifts by n bits (n taken as a uint, saturating to
// all-zero for n >= 256, matching SHL/SHR).
func (a U256) Lsh(n uint) U256 {
	var r U256
	r.inner.Lsh(&a.inner, n)
	return r
}

func (a U256) Rsh(n uint) U256 {
	var r U256
	r.inner.Rsh(&a.inner, n)
	return r
}

// Byte returns the i-th byte counting from the most significant (BYTE
// opcode semantics): index 0 is the top byte. Out-of-range i yields zero.
func (a U256) Byte(i U256) U256 {
	if !i.IsUint64() || i.Uint64() >= 32 {
		return Zero
	}
	b32 := a.Bytes32()
	return U256FromUint64(uint64(b32[i.Uint64()]))
}

// SLT, SGT are signed less-than / greater-than over two's-complement
// interpretation of the 256-bit word.
func (a U256) SLT(b U256) bool {
	return a.inner.Slt(&b.inner)
}

func (a U256) SGT(b U256) bool {
	return a.inner.Sgt(&b.inner)
}

// SDiv is signed division (two's complement); division by zero yields
// zero, and MinInt256 / -1 wraps to MinInt256 (no trap).
func (a U256) SDiv(b U256) U256 {
	var r U256
	r.inner.SDiv(&a.inner, &b.inner)
	return r
}

// SMod is signed remainder; mod by zero yields zero.
func (a U256) SMod(b U256) U256 {
	var r U256
	r.inner.SMod(&a.inner, &b.inner)
	return r
}

// SAR is an arithmetic (sign-extending) right shift by n bits.
func (a U256) SAR(n uint) U256 {
	var r U256
	r.inner.SRsh(&a.inner, n)
	return r
}

// SignExtend implements the SIGNEXTEND opcode: sign-extend the value
// treating byte index b (0 = least significant byte) as the sign byte.
// b >= 31 is a no-op.
func (a U256) SignExtend(b U256) U256 {
	if !b.IsUint64() || b.Uint64() >= 32 {
		return a
	}
	var r U256
	r.inner.ExtendSign(&a.inner, &b.inner)
	return r
}

// Clone returns an independent copy.
func (a U256) Clone() U256 {
	var r U256
	r.inner.Set(&a.inner)
	return r
}
