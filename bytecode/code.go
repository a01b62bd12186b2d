package bytecode

import (
	"fmt"

	"github.com/bluealloy/evmcore/primitives"
)

// Code is contract bytecode together with its once-computed
// jump-destination bitmap. Analysis is lazy and memoized: the first
// IsJumpDest call pays for the linear scan, every
// subsequent call is a bit test. This mirrors how real interpreters
// cache jump-destination analysis per code hash rather than
// recomputing it every CALL into the same contract.
type Code struct {
	raw      []byte
	jumpdest []uint64 // bitset, one bit per byte offset
}

// New wraps raw bytecode. No analysis is performed until needed.
func New(raw []byte) *Code {
	return &Code{raw: raw}
}

// Bytes returns the raw code.
func (c *Code) Bytes() []byte { return c.raw }

// Len returns the code length in bytes.
func (c *Code) Len() int { return len(c.raw) }

// At returns the opcode at pc, or STOP if pc is past the end (the EVM
// treats code as implicitly padded with STOP).
func (c *Code) At(pc uint64) OpCode {
	if pc >= uint64(len(c.raw)) {
		return STOP
	}
	return OpCode(c.raw[pc])
}

// analyze performs the single linear pass building the jump-destination
// bitmap, skipping over PUSH immediates so that a PUSH's data bytes are
// never mistaken for a JUMPDEST opcode even when one of them happens to
// equal 0x5b.
func (c *Code) analyze() {
	if c.jumpdest != nil {
		return
	}
	bits := make([]uint64, (len(c.raw)/64)+1)
	for pc := 0; pc < len(c.raw); {
		op := OpCode(c.raw[pc])
		if op == JUMPDEST {
			bits[pc/64] |= 1 << uint(pc%64)
			pc++
			continue
		}
		if n := op.PushSize(); n > 0 {
			pc += 1 + n
			continue
		}
		pc++
	}
	c.jumpdest = bits
}

// IsJumpDest reports whether pc addresses a valid JUMPDEST — an
// in-bounds offset landing exactly on a JUMPDEST opcode that is not
// itself inside a preceding PUSH's immediate data.
func (c *Code) IsJumpDest(pc uint64) bool {
	if pc >= uint64(len(c.raw)) {
		return false
	}
	c.analyze()
	return c.jumpdest[pc/64]&(1<<uint(pc%64)) != 0
}

// HasEOFMagic reports whether code begins with the EF00 prefix reserved
// by EIP-3541/EOF. This repo implements no EOF container format (out of
// scope); it only needs to recognize the prefix so London+ deployment
// can reject it per EIP-3541.
func HasEOFMagic(code []byte) bool {
	return len(code) >= 2 && code[0] == 0xef && code[1] == 0x00
}

// ValidateDeployment checks a just-returned contract's code against the
// hardfork's size limit and, from London onward, the EIP-3541 reserved
// prefix rule. Returns a descriptive error if the code is rejected.
func ValidateDeployment(code []byte, spec primitives.Spec) error {
	if spec.IsEIP3541Enabled() && HasEOFMagic(code) {
		return fmt.Errorf("bytecode: code starting with 0xef is not deployable (EIP-3541)")
	}
	if max := spec.MaxCodeSize(); max >= 0 && len(code) > max {
		return fmt.Errorf("bytecode: code size %d exceeds max %d (EIP-170)", len(code), max)
	}
	return nil
}

// ValidateInitCode checks CREATE/CREATE2 init code against the
// EIP-3860 size cap (no-op before Shanghai).
func ValidateInitCode(code []byte, spec primitives.Spec) error {
	if max := spec.MaxInitCodeSize(); max >= 0 && len(code) > max {
		return fmt.Errorf("bytecode: init code size %d exceeds max %d (EIP-3860)", len(code), max)
	}
	return nil
}
