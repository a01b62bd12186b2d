// Package precompiles implements the native contracts reachable at the
// reserved low addresses 0x01-0x0a and 0x0b-0x13 (BLS12-381, Prague) plus
// 0x0100 (P256VERIFY, RIP-7212). Each one satisfies the Precompile
// interface structurally — this package never imports vm — grounded on
// the teacher's core/vm/precompiles.go PrecompiledContract interface and
// registry-by-address map, generalized to a per-hardfork registry since
// the available set grows across forks (BN254 from Byzantium, BLAKE2F
// from Istanbul, KZG from Cancun, BLS12-381 and P256VERIFY from Prague).
package precompiles

import (
	"errors"

	"github.com/bluealloy/evmcore/primitives"
)

// ErrOutOfGas is returned by the package-level Run when the caller
// supplied less gas than RequiredGas demands.
var ErrOutOfGas = errors.New("precompiles: out of gas")

// Precompile is a native contract: RequiredGas is charged before Run is
// invoked and never depends on anything Run itself computes.
type Precompile interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// registryFor returns the address-to-contract map active at spec. Each
// hardfork's map is built by extending the previous one, mirroring the
// teacher's single flat PrecompiledContractsCancun map but generalized
// across the fork history spec.md's hardfork range actually spans.
func registryFor(spec primitives.Spec) map[primitives.Address]Precompile {
	m := map[primitives.Address]Precompile{
		addrOf(1): &ecrecoverContract{},
		addrOf(2): &sha256Contract{},
		addrOf(3): &ripemd160Contract{},
		addrOf(4): &identityContract{},
	}
	if spec.IsEIP198Enabled() {
		m[addrOf(5)] = &modexpContract{spec: spec}
	}
	if spec.IsEIP196Enabled() {
		m[addrOf(6)] = &bn254AddContract{}
		m[addrOf(7)] = &bn254MulContract{}
	}
	if spec.IsEIP197Enabled() {
		m[addrOf(8)] = &bn254PairingContract{}
	}
	if spec.AtLeast(primitives.Istanbul) {
		m[addrOf(9)] = &blake2FContract{}
	}
	if spec.IsEIP4844Enabled() {
		m[addrOf(0x0a)] = &kzgPointEvaluationContract{}
	}
	if spec.IsEIP2537Enabled() {
		m[addrOf(0x0b)] = &blsG1AddContract{}
		m[addrOf(0x0c)] = &blsG1MulContract{}
		m[addrOf(0x0d)] = &blsG1MultiExpContract{}
		m[addrOf(0x0e)] = &blsG2AddContract{}
		m[addrOf(0x0f)] = &blsG2MulContract{}
		m[addrOf(0x10)] = &blsG2MultiExpContract{}
		m[addrOf(0x11)] = &blsPairingContract{}
		m[addrOf(0x12)] = &blsMapFpToG1Contract{}
		m[addrOf(0x13)] = &blsMapFp2ToG2Contract{}
	}
	if spec.IsEIP7212Enabled() {
		m[p256VerifyAddress] = &p256VerifyContract{}
	}
	return m
}

func addrOf(b byte) primitives.Address {
	return primitives.BytesToAddress([]byte{b})
}

// p256VerifyAddress is RIP-7212's reserved address 0x0100, outside the
// single-byte range the rest of the table uses.
var p256VerifyAddress = primitives.BytesToAddress([]byte{0x01, 0x00})

// IsPrecompile reports whether addr is a native contract under spec.
func IsPrecompile(addr primitives.Address, spec primitives.Spec) bool {
	_, ok := registryFor(spec)[addr]
	return ok
}

// Lookup returns the contract at addr under spec, if any.
func Lookup(addr primitives.Address, spec primitives.Spec) (Precompile, bool) {
	p, ok := registryFor(spec)[addr]
	return p, ok
}

// Run charges RequiredGas against gasAvailable and, if there is enough,
// executes the contract. Matches the teacher's RunPrecompiledContract
// gas-then-execute ordering.
func Run(p Precompile, input []byte, gasAvailable uint64) (output []byte, gasRemaining uint64, err error) {
	cost := p.RequiredGas(input)
	if gasAvailable < cost {
		return nil, 0, ErrOutOfGas
	}
	out, err := p.Run(input)
	return out, gasAvailable - cost, err
}

// wordCount returns the number of 32-byte words needed to hold n bytes,
// rounding up — the unit most precompile gas schedules charge per.
func wordCount(n int) uint64 {
	return uint64((n + 31) / 32)
}

// padRight returns input right-padded with zeros to at least size
// bytes, copying rather than mutating the caller's slice.
func padRight(input []byte, size int) []byte {
	if len(input) >= size {
		return input
	}
	out := make([]byte, size)
	copy(out, input)
	return out
}
