package vm

import (
	"errors"

	"github.com/bluealloy/evmcore/bytecode"
	"github.com/bluealloy/evmcore/gas"
	"github.com/bluealloy/evmcore/log"
	"github.com/bluealloy/evmcore/memory"
	"github.com/bluealloy/evmcore/precompiles"
	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/stack"
	"github.com/bluealloy/evmcore/state"
)

var logger = log.New("vm")

// EVM ties together the world-state Host, the active jump table, and the
// per-call frame stack into a single execution engine. One EVM instance
// is built per transaction; Context and TxContext are fixed for its
// lifetime, the frame stack and read-only flag mutate as calls nest.
// Grounded on the teacher's core/vm.EVM, generalized over the Spec enum
// instead of a ruleset struct baked in at construction.
type EVM struct {
	Context   BlockContext
	TxContext TxContext
	StateDB   Host
	ChainID   primitives.U256
	Spec      primitives.Spec

	jumpTable  JumpTable
	frames     *CallFrameStack
	readOnly   bool
	returnData *ReturnDataBuffer
}

// NewEVM builds an EVM ready to execute calls under spec.
func NewEVM(blockCtx BlockContext, txCtx TxContext, statedb Host, chainID primitives.U256, spec primitives.Spec) *EVM {
	return &EVM{
		Context:    blockCtx,
		TxContext:  txCtx,
		StateDB:    statedb,
		ChainID:    chainID,
		Spec:       spec,
		jumpTable:  NewJumpTable(spec),
		frames:     NewCallFrameStack(),
		returnData: NewReturnDataBuffer(),
	}
}

// Depth returns the current call-stack depth.
func (evm *EVM) Depth() int { return evm.frames.Depth() }

// ReturnData returns the data from the most recently completed child
// call, visible to RETURNDATASIZE/RETURNDATACOPY.
func (evm *EVM) ReturnData() []byte { return evm.returnData.Data() }

// Run executes contract's code against input and returns its output.
// readOnly marks a STATICCALL context: any state-modifying opcode
// (SSTORE, LOG*, CREATE*, SELFDESTRUCT, or CALL/CALLCODE carrying value)
// fails with ErrWriteProtection. Grounded on the teacher's
// core/vm/interpreter.go Run loop: validate stack shape, charge constant
// then dynamic gas, grow memory, execute, advance pc.
func (evm *EVM) Run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	contract.Input = input

	prevReadOnly := evm.readOnly
	if readOnly {
		evm.readOnly = true
	}
	defer func() { evm.readOnly = prevReadOnly }()

	var (
		pc  uint64
		stk = stack.New()
		mem = memory.New()
	)

	for {
		op := contract.GetOp(pc)
		operation := evm.jumpTable[op]
		if operation == nil {
			return nil, ErrInvalidOpCode
		}
		if stk.Len() < operation.minStack {
			return nil, ErrStackUnderflow
		}
		if stk.Len() > operation.maxStack {
			return nil, ErrStackOverflow
		}
		if operation.writes && evm.readOnly {
			return nil, ErrWriteProtection
		}

		var memorySize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(stk)
			if overflow {
				return nil, ErrOutOfGas
			}
			memorySize = size
		}

		if operation.constantGas > 0 && !contract.UseGas(operation.constantGas) {
			return nil, ErrOutOfGas
		}

		if operation.dynamicGas != nil {
			dyn, err := operation.dynamicGas(evm, contract, stk, mem, memorySize)
			if err != nil {
				return nil, err
			}
			if !contract.UseGas(dyn) {
				return nil, ErrOutOfGas
			}
		}

		if memorySize > 0 {
			mem.Resize(memorySize)
		}

		ret, err := operation.execute(&pc, evm, contract, mem, stk)
		if err != nil {
			return ret, err
		}

		if operation.halts {
			return ret, nil
		}
		if !operation.jumps {
			pc++
		}
	}
}

// --- Call family ---

// callCommon implements CALL/CALLCODE/DELEGATECALL/STATICCALL: it reads
// the shared and frame-specific stack operands, forwards gas per the
// EIP-150 63/64 rule, runs the callee, and pushes the boolean success
// flag the caller's code expects back on its own stack.
func (evm *EVM) callCommon(contract *Contract, mem *memory.Memory, stk *stack.Stack, frameType FrameType) ([]byte, error) {
	gasU, _ := stk.Pop()
	addrU, _ := stk.Pop()
	var value primitives.U256
	if frameType == FrameCall || frameType == FrameCallCode {
		value, _ = stk.Pop()
	}
	argsOffU, _ := stk.Pop()
	argsSizeU, _ := stk.Pop()
	retOffU, _ := stk.Pop()
	retSizeU, _ := stk.Pop()

	codeAddr := primitives.AddressFromU256(addrU)
	args := mem.Get(argsOffU.Uint64(), argsSizeU.Uint64())

	var caller, to primitives.Address
	static := frameType == FrameStaticCall
	switch frameType {
	case FrameCall:
		caller, to = contract.Address, codeAddr
	case FrameCallCode:
		caller, to = contract.Address, contract.Address
	case FrameDelegateCall:
		caller, to = contract.Caller, contract.Address
		value = contract.Value
	case FrameStaticCall:
		caller, to = contract.Address, codeAddr
	}

	requested := gasU.Uint64()
	if !gasU.IsUint64() {
		requested = contract.Gas
	}
	transfersValue := (frameType == FrameCall || frameType == FrameCallCode) && !value.IsZero()
	if transfersValue && evm.readOnly {
		return nil, ErrWriteProtection
	}
	childGas, callerDeduction := ForwardGas(contract.Gas, requested, transfersValue)
	if !contract.UseGas(callerDeduction) {
		stk.Push(primitives.Zero)
		return nil, nil
	}

	ret, gasLeft, err := evm.executeCall(frameType, caller, to, codeAddr, args, childGas, value, static)
	contract.Gas += gasLeft
	evm.returnData.Set(ret)

	if len(ret) > 0 && retSizeU.Uint64() > 0 {
		copyLen := retSizeU.Uint64()
		if uint64(len(ret)) < copyLen {
			copyLen = uint64(len(ret))
		}
		mem.Set(retOffU.Uint64(), ret[:copyLen])
	}

	stk.Push(boolU256(err == nil))
	return nil, nil
}

// executeCall is the shared backend for every CALL-family dispatch and
// for the top-level Transact entry point: depth check, precompile
// dispatch, value transfer, and snapshot/revert on failure.
func (evm *EVM) executeCall(frameType FrameType, caller, to, codeAddr primitives.Address, input []byte, gasLimit uint64, value primitives.U256, static bool) ([]byte, uint64, error) {
	if !evm.frames.CanPush() {
		return nil, gasLimit, ErrMaxCallDepthExceeded
	}
	transfersValue := (frameType == FrameCall || frameType == FrameCallCode) && !value.IsZero()
	if transfersValue && evm.readOnly {
		return nil, gasLimit, ErrWriteProtection
	}
	if transfersValue && evm.StateDB.Balance(caller).Lt(value) {
		return nil, gasLimit, ErrInsufficientBalance
	}

	snapshot := evm.StateDB.Snapshot()
	frame := &CallFrame{Type: frameType, Caller: caller, To: to, Value: value, GasStart: gasLimit, ReadOnly: static, SnapshotID: snapshot}
	if err := evm.frames.Push(frame); err != nil {
		return nil, gasLimit, err
	}
	logger.Debug("enter frame", "type", frameType.String(), "depth", evm.frames.Depth(), "to", to.Hex(), "gas", gasLimit)
	defer evm.frames.Pop()

	if frameType == FrameCall && !evm.StateDB.Exists(to) {
		evm.StateDB.CreateAccount(to)
	}
	if transfersValue {
		evm.StateDB.SubBalance(caller, value)
		evm.StateDB.AddBalance(to, value)
	}

	if p, ok := precompiles.Lookup(codeAddr, evm.Spec); ok {
		out, remaining, err := precompiles.Run(p, input, gasLimit)
		if err != nil {
			evm.StateDB.RevertToSnapshot(snapshot)
			return nil, 0, err
		}
		return out, remaining, nil
	}

	code := evm.StateDB.Code(codeAddr)
	if len(code) == 0 {
		return nil, gasLimit, nil
	}

	child := NewContract(caller, to, value, gasLimit)
	child.SetCode(code, evm.StateDB.CodeHash(codeAddr))

	ret, err := evm.Run(child, input, static)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if errors.Is(err, ErrExecutionReverted) {
			return ret, child.Gas, err
		}
		return nil, 0, err
	}
	return ret, child.Gas, nil
}

// --- Create family ---

// createCommon implements CREATE/CREATE2: derive the new address,
// transfer value, run init code with the 63/64 gas rule, and charge the
// per-byte deposit cost for the code it returns.
func (evm *EVM) createCommon(pc *uint64, contract *Contract, mem *memory.Memory, stk *stack.Stack, isCreate2 bool) ([]byte, error) {
	if evm.readOnly {
		return nil, ErrWriteProtection
	}
	value, _ := stk.Pop()
	offset, _ := stk.Pop()
	size, _ := stk.Pop()
	var salt primitives.U256
	if isCreate2 {
		salt, _ = stk.Pop()
	}
	initCode := mem.Get(offset.Uint64(), size.Uint64())

	fail := func() ([]byte, error) {
		evm.returnData.Clear()
		stk.Push(primitives.Zero)
		return nil, nil
	}

	if err := bytecode.ValidateInitCode(initCode, evm.Spec); err != nil {
		return fail()
	}
	if !evm.frames.CanPush() {
		return fail()
	}
	if evm.StateDB.Balance(contract.Address).Lt(value) {
		return fail()
	}

	nonce := evm.StateDB.Nonce(contract.Address)
	if nonce+1 < nonce {
		return nil, ErrNonceOverflow
	}
	evm.StateDB.SetNonce(contract.Address, nonce+1)

	var newAddr primitives.Address
	frameType := FrameCreate
	if isCreate2 {
		frameType = FrameCreate2
		newAddr = primitives.CreateAddress2(contract.Address, salt.Bytes32(), primitives.Keccak256(initCode))
	} else {
		newAddr = primitives.CreateAddress(contract.Address, nonce)
	}
	evm.StateDB.AddAddressToAccessList(newAddr)

	if evm.StateDB.Exists(newAddr) && (evm.StateDB.CodeSize(newAddr) > 0 || evm.StateDB.Nonce(newAddr) > 0) {
		return nil, ErrContractAddressCollision
	}

	childGas := gas.CallGas(contract.Gas, contract.Gas)
	if !contract.UseGas(childGas) {
		return fail()
	}

	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(newAddr)
	evm.StateDB.SetNonce(newAddr, 1)
	evm.StateDB.MarkCreatedThisTx(newAddr)
	evm.StateDB.SubBalance(contract.Address, value)
	evm.StateDB.AddBalance(newAddr, value)

	frame := &CallFrame{Type: frameType, Caller: contract.Address, To: newAddr, Value: value, GasStart: childGas, SnapshotID: snapshot}
	if err := evm.frames.Push(frame); err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		contract.Gas += childGas
		return fail()
	}
	child := NewContract(contract.Address, newAddr, value, childGas)
	ret, err := evm.Run(child, nil, false)
	evm.frames.Pop()

	if err == nil {
		if depErr := bytecode.ValidateDeployment(ret, evm.Spec); depErr != nil {
			evm.StateDB.RevertToSnapshot(snapshot)
			contract.Gas += child.Gas
			return fail()
		}
		depositCost := gas.CreateDataGas * uint64(len(ret))
		if !child.UseGas(depositCost) {
			evm.StateDB.RevertToSnapshot(snapshot)
			return fail()
		}
		evm.StateDB.SetCode(newAddr, ret)
		contract.Gas += child.Gas
		evm.returnData.Clear()
		stk.Push(newAddr.AsU256())
		return nil, nil
	}

	contract.Gas += child.Gas
	evm.StateDB.RevertToSnapshot(snapshot)
	if errors.Is(err, ErrExecutionReverted) {
		evm.returnData.Set(ret)
	} else {
		evm.returnData.Clear()
	}
	stk.Push(primitives.Zero)
	return nil, nil
}

// --- Transaction-level entry point ---

// Result is the outcome of a top-level Transact call: either a normal
// return, an explicit REVERT with its reason in ReturnData, or a Halt
// (ErrOutOfGas and friends) that consumed the entire gas limit.
type Result struct {
	ReturnData      []byte
	GasUsed         uint64
	ContractAddress *primitives.Address // set for a successful contract creation
	Reverted        bool
	Err             error
}

// intrinsicGas computes the Handler's pre-execution gas charge (spec
// section 4.I, step 1): the flat per-transaction base, the creation
// surcharge, the per-byte calldata cost, the EIP-3860 init-code word
// cost for creations from Shanghai on, and the EIP-2930 access-list
// surcharge. Grounded on the teacher's core/processor.go intrinsicGas
// and accessListGas.
func intrinsicGas(spec primitives.Spec, input []byte, isCreate bool, accessList []state.AccessTuple) uint64 {
	g := gas.TxBaseCost
	if isCreate {
		g += gas.TxCreateGas
	}
	var zero, nonzero uint64
	for _, b := range input {
		if b == 0 {
			zero++
		} else {
			nonzero++
		}
	}
	g += zero*gas.TxDataZeroGas + nonzero*gas.TxDataNonZeroGas
	if isCreate && spec.IsEIP3860Enabled() {
		words := (uint64(len(input)) + 31) / 32
		g += words * gas.InitCodeWordGas
	}
	if spec.IsEIP2930Enabled() {
		for _, tuple := range accessList {
			g += gas.TxAccessListAddressGas
			g += uint64(len(tuple.StorageKeys)) * gas.TxAccessListStorageKeyGas
		}
	}
	return g
}

// Transact runs one top-level transaction: a CALL into `to`, or a CREATE
// if to is nil. This is the Handler (spec section 4.I): it validates
// intrinsic gas and upfront balance, debits the upfront cost and bumps
// the sender's nonce outside the call's own revert snapshot, runs the
// call, clears EIP-1153 transient storage, applies the EIP-3529 refund
// cap, and pays the coinbase its EIP-1559 tip. Grounded on the teacher's
// core/processor.go applyMessage and core/state_transition.go
// txIntrinsicGas/TxCost/EffectiveGasPrice — evm.TxContext.GasPrice is
// taken as the already-resolved effective gas price, since this engine's
// TxContext carries one gas-price field rather than separate fee-cap/
// tip-cap inputs; reconciling EIP-1559 fee caps against the base fee is
// left to the embedder that populates TxContext.
func (evm *EVM) Transact(sender primitives.Address, to *primitives.Address, input []byte, gasLimit uint64, value primitives.U256, accessList []state.AccessTuple) *Result {
	isCreate := to == nil
	igas := intrinsicGas(evm.Spec, input, isCreate, accessList)
	if igas > gasLimit {
		err := ErrIntrinsicGas
		logger.Error("transaction failed", "err", err)
		return &Result{Err: err}
	}

	gasPrice := evm.TxContext.GasPrice
	upfrontCost := value.Add(gasPrice.Mul(primitives.U256FromUint64(gasLimit)))
	if evm.StateDB.Balance(sender).Lt(upfrontCost) {
		err := ErrInsufficientFunds
		logger.Error("transaction failed", "err", err)
		return &Result{Err: err}
	}

	evm.StateDB.AddAddressToAccessList(sender)
	if to != nil {
		evm.StateDB.AddAddressToAccessList(*to)
	}
	if evm.Spec.IsEIP3651Enabled() {
		evm.StateDB.AddAddressToAccessList(evm.Context.Coinbase)
	}
	for _, tuple := range accessList {
		evm.StateDB.AddAddressToAccessList(tuple.Address)
		for _, key := range tuple.StorageKeys {
			evm.StateDB.AddSlotToAccessList(tuple.Address, key)
		}
	}

	// Non-journaled: the upfront gas debit and nonce bump survive even if
	// the call below reverts. Contract-creation bumps its own nonce inside
	// runTopLevelCreate, so only the CALL path bumps here.
	evm.StateDB.SubBalance(sender, gasPrice.Mul(primitives.U256FromUint64(gasLimit)))
	if !isCreate {
		evm.StateDB.SetNonce(sender, evm.StateDB.Nonce(sender)+1)
	}

	var (
		output    []byte
		gasLeft   uint64
		callErr   error
		createdAt *primitives.Address
	)

	if isCreate {
		nonce := evm.StateDB.Nonce(sender)
		newAddr := primitives.CreateAddress(sender, nonce)
		gasLeft, output, callErr = evm.runTopLevelCreate(sender, newAddr, input, gasLimit-igas, value)
		if callErr == nil {
			createdAt = &newAddr
		}
	} else {
		output, gasLeft, callErr = evm.executeCall(FrameCall, sender, *to, *to, input, gasLimit-igas, value, false)
	}

	evm.StateDB.ClearTransientStorage()

	gasUsed := igas + (gasLimit - igas - gasLeft)
	reverted := errors.Is(callErr, ErrExecutionReverted)
	if callErr != nil && !reverted {
		gasUsed = gasLimit
	} else {
		refund := evm.StateDB.Refund()
		if maxRefund := gasUsed / gas.MaxRefundQuotient; refund > maxRefund {
			refund = maxRefund
		}
		gasUsed -= refund
	}

	// Refund unused gas to the sender, then pay the coinbase its tip.
	remainingGas := gasLimit - gasUsed
	if remainingGas > 0 {
		evm.StateDB.AddBalance(sender, gasPrice.Mul(primitives.U256FromUint64(remainingGas)))
	}
	if gasPrice.Gt(evm.Context.BaseFee) {
		tip := gasPrice.Sub(evm.Context.BaseFee)
		evm.StateDB.AddBalance(evm.Context.Coinbase, tip.Mul(primitives.U256FromUint64(gasUsed)))
	}

	result := &Result{
		ReturnData:      output,
		GasUsed:         gasUsed,
		ContractAddress: createdAt,
		Reverted:        reverted,
		Err:             nonHaltErr(callErr),
	}
	if result.Err != nil {
		logger.Error("transaction failed", "err", result.Err)
	}
	return result
}

// nonHaltErr surfaces only genuine Go-level failures to the embedder;
// every EVM-semantic suspension (revert, out-of-gas, bad jump, ...) is
// already captured in Result's GasUsed/Reverted fields.
func nonHaltErr(err error) error {
	if err == nil || isHaltable(err) {
		return nil
	}
	return err
}

// runTopLevelCreate runs a transaction whose `to` is nil: the classic
// contract-creation transaction, sharing createCommon's deploy/validate
// logic but rooted at the sender rather than an executing contract.
func (evm *EVM) runTopLevelCreate(sender, newAddr primitives.Address, initCode []byte, gasLimit uint64, value primitives.U256) (gasLeft uint64, ret []byte, err error) {
	if err := bytecode.ValidateInitCode(initCode, evm.Spec); err != nil {
		return gasLimit, nil, err
	}
	if evm.StateDB.Balance(sender).Lt(value) {
		return gasLimit, nil, ErrInsufficientBalance
	}
	if evm.StateDB.Exists(newAddr) && (evm.StateDB.CodeSize(newAddr) > 0 || evm.StateDB.Nonce(newAddr) > 0) {
		return gasLimit, nil, ErrContractAddressCollision
	}

	evm.StateDB.SetNonce(sender, evm.StateDB.Nonce(sender)+1)
	evm.StateDB.AddAddressToAccessList(newAddr)

	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(newAddr)
	evm.StateDB.SetNonce(newAddr, 1)
	evm.StateDB.MarkCreatedThisTx(newAddr)
	evm.StateDB.SubBalance(sender, value)
	evm.StateDB.AddBalance(newAddr, value)

	frame := &CallFrame{Type: FrameCreate, Caller: sender, To: newAddr, Value: value, GasStart: gasLimit, SnapshotID: snapshot}
	if pushErr := evm.frames.Push(frame); pushErr != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		return gasLimit, nil, pushErr
	}
	child := NewContract(sender, newAddr, value, gasLimit)
	out, runErr := evm.Run(child, nil, false)
	evm.frames.Pop()

	if runErr == nil {
		if depErr := bytecode.ValidateDeployment(out, evm.Spec); depErr != nil {
			evm.StateDB.RevertToSnapshot(snapshot)
			return child.Gas, nil, depErr
		}
		depositCost := gas.CreateDataGas * uint64(len(out))
		if !child.UseGas(depositCost) {
			evm.StateDB.RevertToSnapshot(snapshot)
			return 0, nil, ErrOutOfGas
		}
		evm.StateDB.SetCode(newAddr, out)
		return child.Gas, out, nil
	}

	evm.StateDB.RevertToSnapshot(snapshot)
	return child.Gas, out, runErr
}
