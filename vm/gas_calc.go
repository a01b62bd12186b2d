package vm

import (
	"github.com/bluealloy/evmcore/gas"
	"github.com/bluealloy/evmcore/memory"
	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/stack"
)

// wordCount rounds n bytes up to the nearest 32-byte word, the unit most
// copy/hash dynamic-gas formulas charge per.
func wordCount(n uint64) uint64 { return (n + 31) / 32 }

func memExpansion(mem *memory.Memory, memorySize uint64) uint64 {
	return gas.MemoryExpansionCost(uint64(mem.Len()), memorySize)
}

func gasExp(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	exponent, _ := stk.PeekN(1)
	return uint64(len(exponent.Bytes())) * gas.ExpByteCost(evm.Spec.IsEIP158Enabled()), nil
}

func gasKeccak256(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	size, _ := stk.PeekN(1)
	return memExpansion(mem, memorySize) + gas.Keccak256WordGas*wordCount(size.Uint64()), nil
}

// gasCopy covers CALLDATACOPY/CODECOPY/RETURNDATACOPY: 3 operands with
// size as the third (destOff, srcOff, size — size at PeekN(2)).
func gasCopy(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	size, _ := stk.PeekN(2)
	return memExpansion(mem, memorySize) + gas.CopyWordGas*wordCount(size.Uint64()), nil
}

// gasExtCodeCopy covers the pre-Berlin EXTCODECOPY (4 operands: addr,
// destOff, srcOff, size).
func gasExtCodeCopy(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	size, _ := stk.PeekN(3)
	return memExpansion(mem, memorySize) + gas.CopyWordGas*wordCount(size.Uint64()), nil
}

func gasExtCodeCopyEIP2929(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	addrU, _ := stk.PeekN(0)
	size, _ := stk.PeekN(3)
	cost := memExpansion(mem, memorySize) + gas.CopyWordGas*wordCount(size.Uint64())
	return cost + accessAddressCost(evm, primitives.AddressFromU256(addrU)), nil
}

func gasMcopy(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	size, _ := stk.PeekN(2)
	return memExpansion(mem, memorySize) + gas.CopyWordGas*wordCount(size.Uint64()), nil
}

// gasLog returns the dynamic-gas function for LOG0..LOG4: memory
// expansion plus per-byte data cost plus n additional per-topic charges
// (the table's constantGas already covers the base LOG cost).
func gasLog(n int) dynamicGasFunc {
	return func(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
		size, _ := stk.PeekN(1)
		cost := memExpansion(mem, memorySize)
		cost += gas.LogDataGas * size.Uint64()
		cost += uint64(n) * gas.LogTopicGas
		return cost, nil
	}
}

func gasCreate(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	return memExpansion(mem, memorySize), nil
}

func gasCreate2(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	size, _ := stk.PeekN(2)
	return memExpansion(mem, memorySize) + gas.Keccak256WordGas*wordCount(size.Uint64()), nil
}

// gasCallFrontier prices CALL/CALLCODE (7 operands: gas, addr, value,
// argsOff, argsSize, retOff, retSize) before EIP-2929: a value transfer
// surcharge, plus a new-account surcharge when CALL sends value to an
// account that does not yet exist.
func gasCallFrontier(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	cost := memExpansion(mem, memorySize)
	value, _ := stk.PeekN(2)
	if !value.IsZero() {
		cost += gas.CallValueTransferGas
		addrU, _ := stk.PeekN(1)
		if !evm.StateDB.Exists(primitives.AddressFromU256(addrU)) {
			cost += gas.CallNewAccountGas
		}
	}
	return cost, nil
}

// gasCallNoValueFrontier prices DELEGATECALL/STATICCALL (6 operands, no
// value) before EIP-2929: memory expansion only.
func gasCallNoValueFrontier(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	return memExpansion(mem, memorySize), nil
}

func gasCallEIP2929(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	cost := memExpansion(mem, memorySize)
	addrU, _ := stk.PeekN(1)
	addr := primitives.AddressFromU256(addrU)
	cost += accessAddressCost(evm, addr)
	value, _ := stk.PeekN(2)
	if !value.IsZero() {
		cost += gas.CallValueTransferGas
		if !evm.StateDB.Exists(addr) {
			cost += gas.CallNewAccountGas
		}
	}
	return cost, nil
}

func gasCallNoValueEIP2929(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	cost := memExpansion(mem, memorySize)
	addrU, _ := stk.PeekN(1)
	cost += accessAddressCost(evm, primitives.AddressFromU256(addrU))
	return cost, nil
}

// accessAddressCost warms addr in the access list and returns the
// EIP-2929 cold/warm account-access cost.
func accessAddressCost(evm *EVM, addr primitives.Address) uint64 {
	if evm.StateDB.AddAddressToAccessList(addr) {
		return gas.WarmStorageReadCost
	}
	return gas.ColdAccountAccessCost
}

func gasAccountAccessOnly(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	addrU, _ := stk.PeekN(0)
	return accessAddressCost(evm, primitives.AddressFromU256(addrU)), nil
}

func gasSloadEIP2929(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	keyU, _ := stk.PeekN(0)
	key := primitives.U256ToB256(keyU)
	if _, warm := evm.StateDB.SlotInAccessList(contract.Address, key); warm {
		return gas.WarmStorageReadCost, nil
	}
	evm.StateDB.AddSlotToAccessList(contract.Address, key)
	return gas.ColdSloadCost, nil
}

// gasSstoreFrontier prices SSTORE before Berlin with the original
// Yellow Paper schedule (no EIP-2200 net metering, no access lists).
func gasSstoreFrontier(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	keyU, _ := stk.PeekN(0)
	newU, _ := stk.PeekN(1)
	key := primitives.U256ToB256(keyU)
	newVal := primitives.U256ToB256(newU)
	current := evm.StateDB.GetState(contract.Address, key)
	switch {
	case current.IsZero() && !newVal.IsZero():
		return gas.SstoreSetGas, nil
	case !current.IsZero() && newVal.IsZero():
		evm.StateDB.AddRefund(gas.SstoreClearRefund)
		return gas.SstoreResetGas, nil
	default:
		return gas.SstoreResetGas, nil
	}
}

// sstoreClearRefund is the refund SSTORE grants for clearing a
// previously-nonzero slot to zero: the pre-EIP-3529 flat 15000, or the
// EIP-3529 SSTORE_CLEARS_SCHEDULE (4800) from London onward.
func sstoreClearRefund(spec primitives.Spec) uint64 {
	if spec.IsEIP3529Enabled() {
		return gas.SstoreClearsScheduleRefund
	}
	return gas.SstoreClearRefund
}

// gasSstoreEIP2929 implements EIP-2200/2929/3529 net-gas SSTORE metering:
// cold slots pay an extra COLD_SLOAD_COST up front, and the charge
// (and any refund) depends on comparing the slot's committed, current,
// and new values, grounded on the teacher's gasSStoreEIP2929 table.
func gasSstoreEIP2929(spec primitives.Spec) dynamicGasFunc {
	return func(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
		keyU, _ := stk.PeekN(0)
		newU, _ := stk.PeekN(1)
		key := primitives.U256ToB256(keyU)
		newVal := primitives.U256ToB256(newU)

		var cost uint64
		if _, warm := evm.StateDB.SlotInAccessList(contract.Address, key); !warm {
			evm.StateDB.AddSlotToAccessList(contract.Address, key)
			cost += gas.ColdSloadCost
		}

		current := evm.StateDB.GetState(contract.Address, key)
		if current == newVal {
			return cost + gas.WarmStorageReadCost, nil
		}

		original := evm.StateDB.GetCommittedState(contract.Address, key)
		if original == current {
			if original.IsZero() {
				return cost + gas.SstoreSetGas, nil
			}
			if newVal.IsZero() {
				evm.StateDB.AddRefund(sstoreClearRefund(spec))
			}
			return cost + gas.SstoreResetGas - gas.ColdSloadCost, nil
		}

		cost += gas.WarmStorageReadCost
		if !original.IsZero() {
			if current.IsZero() {
				evm.StateDB.SubRefund(sstoreClearRefund(spec))
			}
			if newVal.IsZero() {
				evm.StateDB.AddRefund(sstoreClearRefund(spec))
			}
		}
		if original == newVal {
			if original.IsZero() {
				evm.StateDB.AddRefund(gas.SstoreSetGas - gas.WarmStorageReadCost)
			} else {
				evm.StateDB.AddRefund(gas.SstoreResetGas - gas.ColdSloadCost - gas.WarmStorageReadCost)
			}
		}
		return cost, nil
	}
}

// gasSelfDestructFrontier adds EIP-150's new-account surcharge: sending
// a nonzero balance to a beneficiary that does not yet exist costs as
// much as a CALL that would have created it.
func gasSelfDestructFrontier(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
	if !evm.Spec.IsEIP150Enabled() {
		return 0, nil
	}
	beneficiaryU, _ := stk.PeekN(0)
	beneficiary := primitives.AddressFromU256(beneficiaryU)
	if evm.StateDB.IsEmpty(beneficiary) && !evm.StateDB.Balance(contract.Address).IsZero() {
		return gas.CreateBySelfdestruct, nil
	}
	return 0, nil
}

func gasSelfDestructEIP2929(spec primitives.Spec) dynamicGasFunc {
	return func(evm *EVM, contract *Contract, stk *stack.Stack, mem *memory.Memory, memorySize uint64) (uint64, error) {
		beneficiaryU, _ := stk.PeekN(0)
		beneficiary := primitives.AddressFromU256(beneficiaryU)
		var cost uint64
		if !evm.StateDB.AddAddressToAccessList(beneficiary) {
			cost += gas.ColdAccountAccessCost
		}
		if evm.StateDB.IsEmpty(beneficiary) && !evm.StateDB.Balance(contract.Address).IsZero() {
			cost += gas.CreateBySelfdestruct
		}
		return cost, nil
	}
}
