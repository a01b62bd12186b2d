package vm

import (
	"github.com/bluealloy/evmcore/memory"
	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/stack"
	"github.com/bluealloy/evmcore/state"
)

// Opcode execution functions. Each is called only after the interpreter
// has already validated stack depth and charged gas, so the Pop/Push/Peek
// error returns below are never reachable in practice — mirroring the
// teacher's opXxx functions, which ignore them for the same reason.

func opStop(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return nil, nil
}

func opAdd(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Add(b))
	return nil, nil
}

func opMul(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Mul(b))
	return nil, nil
}

func opSub(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Sub(b))
	return nil, nil
}

func opDiv(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Div(b))
	return nil, nil
}

func opSdiv(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.SDiv(b))
	return nil, nil
}

func opMod(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Mod(b))
	return nil, nil
}

func opSmod(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.SMod(b))
	return nil, nil
}

func opAddmod(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	m, _ := stk.Pop()
	stk.Push(a.AddMod(b, m))
	return nil, nil
}

func opMulmod(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	m, _ := stk.Pop()
	stk.Push(a.MulMod(b, m))
	return nil, nil
}

func opExp(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	base, _ := stk.Pop()
	exponent, _ := stk.Pop()
	stk.Push(base.Exp(exponent))
	return nil, nil
}

func opSignExtend(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	b, _ := stk.Pop()
	x, _ := stk.Pop()
	stk.Push(x.SignExtend(b))
	return nil, nil
}

func opLt(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(boolU256(a.Lt(b)))
	return nil, nil
}

func opGt(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(boolU256(a.Gt(b)))
	return nil, nil
}

func opSlt(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(boolU256(a.SLT(b)))
	return nil, nil
}

func opSgt(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(boolU256(a.SGT(b)))
	return nil, nil
}

func opEq(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(boolU256(a.Eq(b)))
	return nil, nil
}

func opIsZero(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	stk.Push(boolU256(a.IsZero()))
	return nil, nil
}

func opAnd(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.And(b))
	return nil, nil
}

func opOr(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Or(b))
	return nil, nil
}

func opXor(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	b, _ := stk.Pop()
	stk.Push(a.Xor(b))
	return nil, nil
}

func opNot(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	stk.Push(a.Not())
	return nil, nil
}

func opByte(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	i, _ := stk.Pop()
	v, _ := stk.Pop()
	stk.Push(v.Byte(i))
	return nil, nil
}

func opShl(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	shift, _ := stk.Pop()
	v, _ := stk.Pop()
	if !shift.IsUint64() || shift.Uint64() >= 256 {
		stk.Push(primitives.Zero)
		return nil, nil
	}
	stk.Push(v.Lsh(uint(shift.Uint64())))
	return nil, nil
}

func opShr(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	shift, _ := stk.Pop()
	v, _ := stk.Pop()
	if !shift.IsUint64() || shift.Uint64() >= 256 {
		stk.Push(primitives.Zero)
		return nil, nil
	}
	stk.Push(v.Rsh(uint(shift.Uint64())))
	return nil, nil
}

func opSar(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	shift, _ := stk.Pop()
	v, _ := stk.Pop()
	n := uint(256)
	if shift.IsUint64() && shift.Uint64() < 256 {
		n = uint(shift.Uint64())
	}
	stk.Push(v.SAR(n))
	return nil, nil
}

func boolU256(b bool) primitives.U256 {
	if b {
		return primitives.One
	}
	return primitives.Zero
}

func opKeccak256(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	size, _ := stk.Pop()
	data := mem.Get(off.Uint64(), size.Uint64())
	stk.Push(primitives.Keccak256(data).AsU256())
	return nil, nil
}

func opAddress(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(contract.Address.AsU256())
	return nil, nil
}

func opBalance(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	addr := primitives.AddressFromU256(a)
	stk.Push(evm.StateDB.Balance(addr))
	return nil, nil
}

func opOrigin(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.TxContext.Origin.AsU256())
	return nil, nil
}

func opCaller(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(contract.Caller.AsU256())
	return nil, nil
}

func opCallValue(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(contract.Value)
	return nil, nil
}

func opCalldataLoad(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	stk.Push(primitives.U256FromBytes(getDataSlice(contract.Input, off, primitives.U256FromUint64(32))))
	return nil, nil
}

// getDataSlice reads size bytes at offset from data, zero-padding past
// the end. offset/size are U256 operands that may exceed the data
// length (or even uint64 range) entirely legally.
func getDataSlice(data []byte, offsetU, sizeU primitives.U256) []byte {
	size := sizeU.Uint64()
	out := make([]byte, size)
	if !offsetU.IsUint64() {
		return out
	}
	offset := offsetU.Uint64()
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

func opCalldataSize(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(uint64(len(contract.Input))))
	return nil, nil
}

func opCalldataCopy(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	destOff, _ := stk.Pop()
	dataOff, _ := stk.Pop()
	size, _ := stk.Pop()
	data := getDataSlice(contract.Input, dataOff, size)
	mem.Set(destOff.Uint64(), data)
	return nil, nil
}

func opCodeSize(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(uint64(contract.Code.Len())))
	return nil, nil
}

func opCodeCopy(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	destOff, _ := stk.Pop()
	codeOff, _ := stk.Pop()
	size, _ := stk.Pop()
	data := getDataSlice(contract.Code.Bytes(), codeOff, size)
	mem.Set(destOff.Uint64(), data)
	return nil, nil
}

func opGasPrice(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.TxContext.GasPrice)
	return nil, nil
}

func opExtCodeSize(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	addr := primitives.AddressFromU256(a)
	stk.Push(primitives.U256FromUint64(uint64(evm.StateDB.CodeSize(addr))))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	destOff, _ := stk.Pop()
	codeOff, _ := stk.Pop()
	size, _ := stk.Pop()
	addr := primitives.AddressFromU256(a)
	code := evm.StateDB.Code(addr)
	data := getDataSlice(code, codeOff, size)
	mem.Set(destOff.Uint64(), data)
	return nil, nil
}

func opReturndataSize(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(evm.returnData.Size()))
	return nil, nil
}

func opReturndataCopy(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	destOff, _ := stk.Pop()
	dataOff, _ := stk.Pop()
	size, _ := stk.Pop()
	if !dataOff.IsUint64() || !size.IsUint64() {
		return nil, ErrReturnDataOutOfBounds
	}
	data, err := evm.returnData.Slice(dataOff.Uint64(), size.Uint64())
	if err != nil {
		return nil, err
	}
	mem.Set(destOff.Uint64(), data)
	return nil, nil
}

func opExtCodeHash(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	a, _ := stk.Pop()
	addr := primitives.AddressFromU256(a)
	if !evm.StateDB.Exists(addr) || evm.StateDB.IsEmpty(addr) {
		stk.Push(primitives.Zero)
		return nil, nil
	}
	stk.Push(evm.StateDB.CodeHash(addr).AsU256())
	return nil, nil
}

func opBlockhash(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	n, _ := stk.Pop()
	if !n.IsUint64() {
		stk.Push(primitives.Zero)
		return nil, nil
	}
	num := n.Uint64()
	upper := evm.Context.BlockNumber.Uint64()
	if num >= upper || upper-num > 256 || evm.Context.GetHash == nil {
		stk.Push(primitives.Zero)
		return nil, nil
	}
	stk.Push(evm.Context.GetHash(num).AsU256())
	return nil, nil
}

func opCoinbase(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.Context.Coinbase.AsU256())
	return nil, nil
}

func opTimestamp(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(evm.Context.Time))
	return nil, nil
}

func opNumber(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.Context.BlockNumber)
	return nil, nil
}

func opPrevRandao(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	if evm.Spec.IsEIP4399Enabled() {
		stk.Push(evm.Context.PrevRandao.AsU256())
		return nil, nil
	}
	stk.Push(evm.Context.Difficulty)
	return nil, nil
}

func opGasLimit(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(evm.Context.GasLimit))
	return nil, nil
}

func opChainID(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.ChainID)
	return nil, nil
}

func opSelfBalance(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.StateDB.Balance(contract.Address))
	return nil, nil
}

func opBaseFee(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.Context.BaseFee)
	return nil, nil
}

func opBlobHash(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	i, _ := stk.Pop()
	if i.IsUint64() && i.Uint64() < uint64(len(evm.TxContext.BlobHashes)) {
		stk.Push(evm.TxContext.BlobHashes[i.Uint64()].AsU256())
		return nil, nil
	}
	stk.Push(primitives.Zero)
	return nil, nil
}

func opBlobBaseFee(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(evm.Context.BlobBaseFee)
	return nil, nil
}

func opPop(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Pop()
	return nil, nil
}

func opMload(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	stk.Push(mem.GetWord(off.Uint64()))
	return nil, nil
}

func opMstore(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	val, _ := stk.Pop()
	mem.SetWord(off.Uint64(), val)
	return nil, nil
}

func opMstore8(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	val, _ := stk.Pop()
	mem.SetByte(off.Uint64(), byte(val.Uint64()))
	return nil, nil
}

func opSload(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	k, _ := stk.Pop()
	key := primitives.U256ToB256(k)
	stk.Push(evm.StateDB.GetState(contract.Address, key).AsU256())
	return nil, nil
}

func opSstore(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	if evm.readOnly {
		return nil, ErrWriteProtection
	}
	k, _ := stk.Pop()
	v, _ := stk.Pop()
	key := primitives.U256ToB256(k)
	evm.StateDB.SetState(contract.Address, key, primitives.U256ToB256(v))
	return nil, nil
}

func opJump(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	dest, _ := stk.Pop()
	if !contract.ValidJumpDest(dest) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opJumpi(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	dest, _ := stk.Pop()
	cond, _ := stk.Pop()
	if cond.IsZero() {
		*pc++
		return nil, nil
	}
	if !contract.ValidJumpDest(dest) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opPc(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(uint64(mem.Len())))
	return nil, nil
}

func opGas(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.U256FromUint64(contract.Gas))
	return nil, nil
}

func opJumpdest(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return nil, nil
}

func opPush0(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	stk.Push(primitives.Zero)
	return nil, nil
}

func opTload(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	k, _ := stk.Pop()
	key := primitives.U256ToB256(k)
	stk.Push(evm.StateDB.GetTransientState(contract.Address, key).AsU256())
	return nil, nil
}

func opTstore(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	if evm.readOnly {
		return nil, ErrWriteProtection
	}
	k, _ := stk.Pop()
	v, _ := stk.Pop()
	key := primitives.U256ToB256(k)
	evm.StateDB.SetTransientState(contract.Address, key, primitives.U256ToB256(v))
	return nil, nil
}

func opMcopy(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	dst, _ := stk.Pop()
	src, _ := stk.Pop()
	size, _ := stk.Pop()
	mem.Copy(dst.Uint64(), src.Uint64(), size.Uint64())
	return nil, nil
}

// makePush returns the execution function for PUSH1..PUSH32: read n
// immediate bytes following the opcode, zero-padded past code end, push
// them as a big-endian value (right-aligned in the 32-byte word), and
// advance pc past the immediate.
func makePush(n int) executionFunc {
	return func(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
		start := *pc + 1
		data := getDataSlice(contract.Code.Bytes(), primitives.U256FromUint64(start), primitives.U256FromUint64(uint64(n)))
		stk.Push(primitives.U256FromBytes(data))
		*pc += uint64(n) + 1
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
		stk.Dup(n)
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
		stk.Swap(n)
		return nil, nil
	}
}

func makeLog(n int) executionFunc {
	return func(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
		if evm.readOnly {
			return nil, ErrWriteProtection
		}
		off, _ := stk.Pop()
		size, _ := stk.Pop()
		topics := make([]primitives.B256, n)
		for i := 0; i < n; i++ {
			t, _ := stk.Pop()
			topics[i] = primitives.U256ToB256(t)
		}
		data := mem.Get(off.Uint64(), size.Uint64())
		evm.StateDB.AddLog(state.Log{
			Address: contract.Address,
			Topics:  topics,
			Data:    data,
			TxHash:  evm.TxContext.TxHash,
			TxIndex: evm.TxContext.TxIndex,
		})
		return nil, nil
	}
}

func opCreate(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return evm.createCommon(pc, contract, mem, stk, false)
}

func opCreate2(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return evm.createCommon(pc, contract, mem, stk, true)
}

func opCall(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return evm.callCommon(contract, mem, stk, FrameCall)
}

func opCallCode(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return evm.callCommon(contract, mem, stk, FrameCallCode)
}

func opDelegateCall(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return evm.callCommon(contract, mem, stk, FrameDelegateCall)
}

func opStaticCall(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return evm.callCommon(contract, mem, stk, FrameStaticCall)
}

func opReturn(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	size, _ := stk.Pop()
	return mem.Get(off.Uint64(), size.Uint64()), nil
}

func opRevert(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	off, _ := stk.Pop()
	size, _ := stk.Pop()
	return mem.Get(off.Uint64(), size.Uint64()), ErrExecutionReverted
}

func opInvalid(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	return nil, ErrInvalidOpCode
}

func opSelfDestruct(pc *uint64, evm *EVM, contract *Contract, mem *memory.Memory, stk *stack.Stack) ([]byte, error) {
	if evm.readOnly {
		return nil, ErrWriteProtection
	}
	a, _ := stk.Pop()
	beneficiary := primitives.AddressFromU256(a)
	balance := evm.StateDB.Balance(contract.Address)
	// EIP-6780: the balance transfer happens unconditionally. Only the
	// account-deletion half of SELFDESTRUCT is gated on creation-this-tx.
	evm.StateDB.SubBalance(contract.Address, balance)
	evm.StateDB.AddBalance(beneficiary, balance)

	if evm.Spec.IsEIP6780Enabled() && !evm.StateDB.WasCreatedThisTx(contract.Address) {
		// Post-Cancun: SELFDESTRUCT on a pre-existing account only pays
		// out its balance, it no longer deletes the account or its code.
		return nil, nil
	}
	evm.StateDB.SelfDestruct(contract.Address)
	return nil, nil
}
