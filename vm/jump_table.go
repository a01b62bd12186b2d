package vm

import (
	"github.com/bluealloy/evmcore/bytecode"
	"github.com/bluealloy/evmcore/gas"
	"github.com/bluealloy/evmcore/memory"
	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/stack"
)

type executionFunc func(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error)

// memorySizeFunc returns the memory size (in bytes) an operation needs,
// and whether computing it overflowed a uint64.
type memorySizeFunc func(stk *stack.Stack) (uint64, bool)

// dynamicGasFunc computes the dynamic — non-constant — gas cost of an
// operation, given the memory size memorySizeFunc already computed.
type dynamicGasFunc func(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error)

// operation is one opcode's full execution metadata. Grounded on the
// teacher's core/vm/jump_table.go operation struct.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  dynamicGasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
	halts       bool
	// jumps marks an operation that sets pc itself — JUMP/JUMPI branching
	// and PUSH1..32 skipping their immediate bytes — so the interpreter
	// loop must not also auto-increment pc after calling execute.
	jumps  bool
	writes bool
}

// JumpTable maps every opcode byte to its operation, nil for unassigned
// opcodes at the active hardfork.
type JumpTable [256]*operation

func minStackOf(pops int) int { return pops }
func maxStackOf(pops, pushes int) int { return int(stack.Limit) - pushes + pops }

// --- memorySizeFuncs ---

func memU64(stk *stack.Stack, n int) (uint64, bool) {
	v, err := stk.PeekN(n)
	if err != nil {
		return 0, true
	}
	if !v.IsUint64() {
		return 0, true
	}
	return v.Uint64(), false
}

func memoryMload(stk *stack.Stack) (uint64, bool) {
	off, overflow := memU64(stk, 0)
	return addOverflow(off, 32, overflow)
}

func memoryMstore(stk *stack.Stack) (uint64, bool) {
	off, overflow := memU64(stk, 0)
	return addOverflow(off, 32, overflow)
}

func memoryMstore8(stk *stack.Stack) (uint64, bool) {
	off, overflow := memU64(stk, 0)
	return addOverflow(off, 1, overflow)
}

func memoryReturn(stk *stack.Stack) (uint64, bool) {
	off, o1 := memU64(stk, 0)
	size, o2 := memU64(stk, 1)
	return addOverflow(off, size, o1 || o2)
}

func memoryKeccak256(stk *stack.Stack) (uint64, bool) { return memoryReturn(stk) }

func memoryCalldataCopy(stk *stack.Stack) (uint64, bool) {
	off, o1 := memU64(stk, 0)
	size, o2 := memU64(stk, 2)
	return addOverflow(off, size, o1 || o2)
}

func memoryCodeCopy(stk *stack.Stack) (uint64, bool) { return memoryCalldataCopy(stk) }

func memoryReturndataCopy(stk *stack.Stack) (uint64, bool) { return memoryCalldataCopy(stk) }

func memoryExtCodeCopy(stk *stack.Stack) (uint64, bool) {
	off, o1 := memU64(stk, 1)
	size, o2 := memU64(stk, 3)
	return addOverflow(off, size, o1 || o2)
}

func memoryLog(stk *stack.Stack) (uint64, bool) { return memoryReturn(stk) }

func memoryCall(stk *stack.Stack) (uint64, bool) {
	argsOff, o1 := memU64(stk, 3)
	argsSize, o2 := memU64(stk, 4)
	retOff, o3 := memU64(stk, 5)
	retSize, o4 := memU64(stk, 6)
	argsEnd, oa := addOverflow(argsOff, argsSize, o1 || o2)
	retEnd, ob := addOverflow(retOff, retSize, o3 || o4)
	if oa || ob {
		return 0, true
	}
	if argsEnd > retEnd {
		return argsEnd, false
	}
	return retEnd, false
}

func memoryDelegateCall(stk *stack.Stack) (uint64, bool) {
	argsOff, o1 := memU64(stk, 2)
	argsSize, o2 := memU64(stk, 3)
	retOff, o3 := memU64(stk, 4)
	retSize, o4 := memU64(stk, 5)
	argsEnd, oa := addOverflow(argsOff, argsSize, o1 || o2)
	retEnd, ob := addOverflow(retOff, retSize, o3 || o4)
	if oa || ob {
		return 0, true
	}
	if argsEnd > retEnd {
		return argsEnd, false
	}
	return retEnd, false
}

func memoryCreate(stk *stack.Stack) (uint64, bool) {
	off, o1 := memU64(stk, 1)
	size, o2 := memU64(stk, 2)
	return addOverflow(off, size, o1 || o2)
}

func memoryMcopy(stk *stack.Stack) (uint64, bool) {
	dst, o1 := memU64(stk, 0)
	src, o2 := memU64(stk, 1)
	size, o3 := memU64(stk, 2)
	dstEnd, oa := addOverflow(dst, size, o1 || o3)
	srcEnd, ob := addOverflow(src, size, o2 || o3)
	if oa || ob {
		return 0, true
	}
	if dstEnd > srcEnd {
		return dstEnd, false
	}
	return srcEnd, false
}

func addOverflow(a, b uint64, alreadyOverflowed bool) (uint64, bool) {
	if alreadyOverflowed {
		return 0, true
	}
	sum := a + b
	if sum < a {
		return 0, true
	}
	return sum, false
}

// gasMemExpansion charges the memory-expansion component common to most
// memory-touching opcodes.
func gasMemExpansion(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	if memorySize == 0 {
		return 0, nil
	}
	cost := gas.MemoryExpansionCost(uint64(mem.Len()), memorySize)
	return cost, nil
}

// NewJumpTable returns the jump table active at spec, built by the same
// additive fork-by-fork chain the teacher's jump_table.go uses.
func NewJumpTable(spec primitives.Spec) JumpTable {
	tbl := newFrontierJumpTable()
	if spec.AtLeast(primitives.Homestead) {
		applyHomestead(&tbl)
	}
	if spec.AtLeast(primitives.Byzantium) {
		applyByzantium(&tbl)
	}
	if spec.AtLeast(primitives.Constantinople) {
		applyConstantinople(&tbl)
	}
	if spec.AtLeast(primitives.Istanbul) {
		applyIstanbul(&tbl)
	}
	if spec.AtLeast(primitives.London) {
		applyLondon(&tbl)
	}
	if spec.AtLeast(primitives.Shanghai) {
		applyShanghai(&tbl)
	}
	if spec.AtLeast(primitives.Cancun) {
		applyCancun(&tbl)
	}
	applyEIP2929Pricing(&tbl, spec)
	return tbl
}

func newFrontierJumpTable() JumpTable {
	var tbl JumpTable

	tbl[bytecode.STOP] = &operation{execute: opStop, minStack: 0, maxStack: maxStackOf(0, 0), halts: true}
	tbl[bytecode.ADD] = &operation{execute: opAdd, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.MUL] = &operation{execute: opMul, constantGas: gas.FastStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SUB] = &operation{execute: opSub, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.DIV] = &operation{execute: opDiv, constantGas: gas.FastStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SDIV] = &operation{execute: opSdiv, constantGas: gas.FastStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.MOD] = &operation{execute: opMod, constantGas: gas.FastStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SMOD] = &operation{execute: opSmod, constantGas: gas.FastStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.ADDMOD] = &operation{execute: opAddmod, constantGas: gas.MidStep, minStack: 3, maxStack: maxStackOf(3, 1)}
	tbl[bytecode.MULMOD] = &operation{execute: opMulmod, constantGas: gas.MidStep, minStack: 3, maxStack: maxStackOf(3, 1)}
	tbl[bytecode.EXP] = &operation{execute: opExp, constantGas: gas.ExpGas, dynamicGas: gasExp, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: gas.FastStep, minStack: 2, maxStack: maxStackOf(2, 1)}

	tbl[bytecode.LT] = &operation{execute: opLt, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.GT] = &operation{execute: opGt, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SLT] = &operation{execute: opSlt, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SGT] = &operation{execute: opSgt, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.EQ] = &operation{execute: opEq, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.ISZERO] = &operation{execute: opIsZero, constantGas: gas.FastestStep, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.AND] = &operation{execute: opAnd, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.OR] = &operation{execute: opOr, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.XOR] = &operation{execute: opXor, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.NOT] = &operation{execute: opNot, constantGas: gas.FastestStep, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.BYTE] = &operation{execute: opByte, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}

	tbl[bytecode.KECCAK256] = &operation{execute: opKeccak256, constantGas: gas.Keccak256Gas, dynamicGas: gasKeccak256, minStack: 2, maxStack: maxStackOf(2, 1), memorySize: memoryKeccak256}

	tbl[bytecode.ADDRESS] = &operation{execute: opAddress, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.BALANCE] = &operation{execute: opBalance, constantGas: gas.SloadGasFrontier, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.ORIGIN] = &operation{execute: opOrigin, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.CALLER] = &operation{execute: opCaller, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.CALLVALUE] = &operation{execute: opCallValue, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.CALLDATALOAD] = &operation{execute: opCalldataLoad, constantGas: gas.FastestStep, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.CALLDATASIZE] = &operation{execute: opCalldataSize, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.CALLDATACOPY] = &operation{execute: opCalldataCopy, constantGas: gas.FastestStep, dynamicGas: gasCopy, minStack: 3, maxStack: maxStackOf(3, 0), memorySize: memoryCalldataCopy}
	tbl[bytecode.CODESIZE] = &operation{execute: opCodeSize, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.CODECOPY] = &operation{execute: opCodeCopy, constantGas: gas.FastestStep, dynamicGas: gasCopy, minStack: 3, maxStack: maxStackOf(3, 0), memorySize: memoryCodeCopy}
	tbl[bytecode.GASPRICE] = &operation{execute: opGasPrice, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.EXTCODESIZE] = &operation{execute: opExtCodeSize, constantGas: gas.SloadGasFrontier, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.EXTCODECOPY] = &operation{execute: opExtCodeCopy, constantGas: gas.SloadGasFrontier, dynamicGas: gasExtCodeCopy, minStack: 4, maxStack: maxStackOf(4, 0), memorySize: memoryExtCodeCopy}

	tbl[bytecode.BLOCKHASH] = &operation{execute: opBlockhash, constantGas: gas.ExtStep, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.COINBASE] = &operation{execute: opCoinbase, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.TIMESTAMP] = &operation{execute: opTimestamp, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.NUMBER] = &operation{execute: opNumber, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.PREVRANDAO] = &operation{execute: opPrevRandao, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.GASLIMIT] = &operation{execute: opGasLimit, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}

	tbl[bytecode.POP] = &operation{execute: opPop, constantGas: gas.QuickStep, minStack: 1, maxStack: maxStackOf(1, 0)}
	tbl[bytecode.MLOAD] = &operation{execute: opMload, constantGas: gas.FastestStep, dynamicGas: gasMemExpansion, minStack: 1, maxStack: maxStackOf(1, 1), memorySize: memoryMload}
	tbl[bytecode.MSTORE] = &operation{execute: opMstore, constantGas: gas.FastestStep, dynamicGas: gasMemExpansion, minStack: 2, maxStack: maxStackOf(2, 0), memorySize: memoryMstore}
	tbl[bytecode.MSTORE8] = &operation{execute: opMstore8, constantGas: gas.FastestStep, dynamicGas: gasMemExpansion, minStack: 2, maxStack: maxStackOf(2, 0), memorySize: memoryMstore8}
	tbl[bytecode.SLOAD] = &operation{execute: opSload, constantGas: gas.SloadGasFrontier, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.SSTORE] = &operation{execute: opSstore, dynamicGas: gasSstoreFrontier, minStack: 2, maxStack: maxStackOf(2, 0), writes: true}
	tbl[bytecode.JUMP] = &operation{execute: opJump, constantGas: gas.MidStep, minStack: 1, maxStack: maxStackOf(1, 0), jumps: true}
	tbl[bytecode.JUMPI] = &operation{execute: opJumpi, constantGas: gas.SlowStep, minStack: 2, maxStack: maxStackOf(2, 0), jumps: true}
	tbl[bytecode.PC] = &operation{execute: opPc, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.MSIZE] = &operation{execute: opMsize, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.GAS] = &operation{execute: opGas, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.JUMPDEST] = &operation{execute: opJumpdest, constantGas: gas.JumpdestGas, minStack: 0, maxStack: maxStackOf(0, 0)}

	tbl[bytecode.PUSH0] = nil // added Shanghai
	for i := 1; i <= 32; i++ {
		op := bytecode.PUSH1 + bytecode.OpCode(i-1)
		n := i
		tbl[op] = &operation{execute: makePush(n), constantGas: gas.FastestStep, minStack: 0, maxStack: maxStackOf(0, 1), jumps: true}
	}
	for i := 1; i <= 16; i++ {
		op := bytecode.DUP1 + bytecode.OpCode(i-1)
		n := i
		tbl[op] = &operation{execute: makeDup(n), constantGas: gas.FastestStep, minStack: n, maxStack: maxStackOf(n, n+1)}
	}
	for i := 1; i <= 16; i++ {
		op := bytecode.SWAP1 + bytecode.OpCode(i-1)
		n := i
		tbl[op] = &operation{execute: makeSwap(n), constantGas: gas.FastestStep, minStack: n + 1, maxStack: maxStackOf(n+1, n+1)}
	}
	for i := 0; i <= 4; i++ {
		op := bytecode.LOG0 + bytecode.OpCode(i)
		n := i
		tbl[op] = &operation{execute: makeLog(n), constantGas: gas.LogGas, dynamicGas: gasLog(n), minStack: 2 + n, maxStack: maxStackOf(2+n, 0), memorySize: memoryLog, writes: true}
	}

	tbl[bytecode.CREATE] = &operation{execute: opCreate, constantGas: gas.CreateGas, dynamicGas: gasCreate, minStack: 3, maxStack: maxStackOf(3, 1), memorySize: memoryCreate, writes: true}
	tbl[bytecode.CALL] = &operation{execute: opCall, dynamicGas: gasCallFrontier, minStack: 7, maxStack: maxStackOf(7, 1), memorySize: memoryCall}
	tbl[bytecode.CALLCODE] = &operation{execute: opCallCode, dynamicGas: gasCallFrontier, minStack: 7, maxStack: maxStackOf(7, 1), memorySize: memoryCall}
	tbl[bytecode.RETURN] = &operation{execute: opReturn, dynamicGas: gasMemExpansion, minStack: 2, maxStack: maxStackOf(2, 0), halts: true, memorySize: memoryReturn}
	tbl[bytecode.INVALID] = &operation{execute: opInvalid, minStack: 0, maxStack: maxStackOf(0, 0)}
	tbl[bytecode.SELFDESTRUCT] = &operation{execute: opSelfDestruct, constantGas: gas.SelfdestructGas, dynamicGas: gasSelfDestructFrontier, minStack: 1, maxStack: maxStackOf(1, 0), halts: true, writes: true}

	return tbl
}

func applyHomestead(tbl *JumpTable) {
	tbl[bytecode.DELEGATECALL] = &operation{execute: opDelegateCall, dynamicGas: gasCallNoValueFrontier, minStack: 6, maxStack: maxStackOf(6, 1), memorySize: memoryDelegateCall}
}

func applyByzantium(tbl *JumpTable) {
	tbl[bytecode.REVERT] = &operation{execute: opRevert, dynamicGas: gasMemExpansion, minStack: 2, maxStack: maxStackOf(2, 0), halts: true, memorySize: memoryReturn}
	tbl[bytecode.STATICCALL] = &operation{execute: opStaticCall, dynamicGas: gasCallNoValueFrontier, minStack: 6, maxStack: maxStackOf(6, 1), memorySize: memoryDelegateCall}
	tbl[bytecode.RETURNDATASIZE] = &operation{execute: opReturndataSize, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.RETURNDATACOPY] = &operation{execute: opReturndataCopy, constantGas: gas.FastestStep, dynamicGas: gasCopy, minStack: 3, maxStack: maxStackOf(3, 0), memorySize: memoryReturndataCopy}
}

func applyConstantinople(tbl *JumpTable) {
	tbl[bytecode.SHL] = &operation{execute: opShl, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SHR] = &operation{execute: opShr, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.SAR] = &operation{execute: opSar, constantGas: gas.FastestStep, minStack: 2, maxStack: maxStackOf(2, 1)}
	tbl[bytecode.EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: gas.SloadGasFrontier, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.CREATE2] = &operation{execute: opCreate2, constantGas: gas.CreateGas, dynamicGas: gasCreate2, minStack: 4, maxStack: maxStackOf(4, 1), memorySize: memoryCreate, writes: true}
}

func applyIstanbul(tbl *JumpTable) {
	tbl[bytecode.CHAINID] = &operation{execute: opChainID, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
	tbl[bytecode.SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: gas.SelfBalanceGas, minStack: 0, maxStack: maxStackOf(0, 1)}
}

func applyLondon(tbl *JumpTable) {
	tbl[bytecode.BASEFEE] = &operation{execute: opBaseFee, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
}

func applyShanghai(tbl *JumpTable) {
	tbl[bytecode.PUSH0] = &operation{execute: opPush0, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
}

func applyCancun(tbl *JumpTable) {
	tbl[bytecode.TLOAD] = &operation{execute: opTload, constantGas: gas.WarmStorageReadCost, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.TSTORE] = &operation{execute: opTstore, constantGas: gas.WarmStorageReadCost, minStack: 2, maxStack: maxStackOf(2, 0), writes: true}
	tbl[bytecode.MCOPY] = &operation{execute: opMcopy, constantGas: gas.FastestStep, dynamicGas: gasMcopy, minStack: 3, maxStack: maxStackOf(3, 0), memorySize: memoryMcopy}
	tbl[bytecode.BLOBHASH] = &operation{execute: opBlobHash, constantGas: gas.FastestStep, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.BLOBBASEFEE] = &operation{execute: opBlobBaseFee, constantGas: gas.QuickStep, minStack: 0, maxStack: maxStackOf(0, 1)}
}

// applyEIP2929Pricing repoints the access-gated operations (BALANCE,
// EXTCODESIZE, EXTCODECOPY, EXTCODEHASH, SLOAD, CALL family, SELFDESTRUCT)
// at their cold/warm-aware dynamic gas functions from Berlin onward,
// leaving the Frontier gas functions in place on earlier jump tables.
func applyEIP2929Pricing(tbl *JumpTable, spec primitives.Spec) {
	if !spec.AtLeast(primitives.Berlin) {
		return
	}
	tbl[bytecode.BALANCE] = &operation{execute: opBalance, dynamicGas: gasAccountAccessOnly, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.EXTCODESIZE] = &operation{execute: opExtCodeSize, dynamicGas: gasAccountAccessOnly, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.EXTCODEHASH] = &operation{execute: opExtCodeHash, dynamicGas: gasAccountAccessOnly, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.EXTCODECOPY] = &operation{execute: opExtCodeCopy, dynamicGas: gasExtCodeCopyEIP2929, minStack: 4, maxStack: maxStackOf(4, 0), memorySize: memoryExtCodeCopy}
	tbl[bytecode.SLOAD] = &operation{execute: opSload, dynamicGas: gasSloadEIP2929, minStack: 1, maxStack: maxStackOf(1, 1)}
	tbl[bytecode.SSTORE] = &operation{execute: opSstore, dynamicGas: gasSstoreEIP2929(spec), minStack: 2, maxStack: maxStackOf(2, 0), writes: true}
	tbl[bytecode.CALL] = &operation{execute: opCall, dynamicGas: gasCallEIP2929, minStack: 7, maxStack: maxStackOf(7, 1), memorySize: memoryCall}
	tbl[bytecode.CALLCODE] = &operation{execute: opCallCode, dynamicGas: gasCallEIP2929, minStack: 7, maxStack: maxStackOf(7, 1), memorySize: memoryCall}
	tbl[bytecode.DELEGATECALL] = &operation{execute: opDelegateCall, dynamicGas: gasCallNoValueEIP2929, minStack: 6, maxStack: maxStackOf(6, 1), memorySize: memoryDelegateCall}
	tbl[bytecode.STATICCALL] = &operation{execute: opStaticCall, dynamicGas: gasCallNoValueEIP2929, minStack: 6, maxStack: maxStackOf(6, 1), memorySize: memoryDelegateCall}
	tbl[bytecode.SELFDESTRUCT] = &operation{execute: opSelfDestruct, dynamicGas: gasSelfDestructEIP2929(spec), minStack: 1, maxStack: maxStackOf(1, 0), halts: true, writes: true}
}
