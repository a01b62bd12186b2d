package vm

import (
	"github.com/bluealloy/evmcore/bytecode"
	"github.com/bluealloy/evmcore/primitives"
)

// Contract is an executing contract's state for a single call frame:
// its code, the gas it was given, and the value it was called with.
// Grounded on the teacher's core/vm/contract.go, simplified to drop the
// EOF-only Data/Subcontainers fields (EOF is out of scope) and to hold
// a *bytecode.Code instead of a raw byte slice plus a hand-rolled
// jumpdest map, since that analysis is already memoized there.
type Contract struct {
	Caller   primitives.Address
	Address  primitives.Address
	Code     *bytecode.Code
	CodeHash primitives.B256
	Input    []byte
	Gas      uint64
	Value    primitives.U256
}

// NewContract creates a contract ready for execution.
func NewContract(caller, addr primitives.Address, value primitives.U256, gas uint64) *Contract {
	return &Contract{
		Caller:  caller,
		Address: addr,
		Value:   value,
		Gas:     gas,
		Code:    bytecode.New(nil),
	}
}

// SetCode installs the code (and its hash) this contract executes.
func (c *Contract) SetCode(code []byte, hash primitives.B256) {
	c.Code = bytecode.New(code)
	c.CodeHash = hash
}

// GetOp returns the opcode at position pc, or STOP past the end of code.
func (c *Contract) GetOp(pc uint64) bytecode.OpCode {
	return c.Code.At(pc)
}

// UseGas attempts to consume gas, reporting whether there was enough.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// ValidJumpDest reports whether dest is a JUMPDEST outside of PUSH data.
func (c *Contract) ValidJumpDest(dest primitives.U256) bool {
	if !dest.IsUint64() {
		return false
	}
	return c.Code.IsJumpDest(dest.Uint64())
}
