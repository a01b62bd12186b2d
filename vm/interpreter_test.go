package vm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/state"
	"github.com/bluealloy/evmcore/vm"
)

func addr(b byte) primitives.Address {
	return primitives.BytesToAddress([]byte{b})
}

func newEVM(t *testing.T, spec primitives.Spec) (*vm.EVM, *state.JournaledState) {
	t.Helper()
	db := state.NewMemoryDatabase()
	s := state.New(db)
	blockCtx := vm.BlockContext{
		GetHash:     func(uint64) primitives.B256 { return primitives.B256{} },
		Coinbase:    addr(0xc0),
		GasLimit:    30_000_000,
		BlockNumber: primitives.U256FromUint64(100),
		Time:        1000,
		BaseFee:     primitives.U256FromUint64(1),
	}
	txCtx := vm.TxContext{Origin: addr(1), GasPrice: primitives.U256FromUint64(1)}
	return vm.NewEVM(blockCtx, txCtx, s, primitives.U256FromUint64(1), spec), s
}

// push1 encodes PUSH1 <v>.
func push1(v byte) []byte { return []byte{0x60, v} }

func TestAddMstoreReturn(t *testing.T) {
	evm, _ := newEVM(t, primitives.Cancun)

	var code []byte
	code = append(code, push1(2)...)
	code = append(code, push1(3)...)
	code = append(code, 0x01)             // ADD -> 5
	code = append(code, push1(0)...)      // offset
	code = append(code, 0x52)             // MSTORE
	code = append(code, push1(32)...)     // size
	code = append(code, push1(0)...)      // offset
	code = append(code, 0xf3)             // RETURN

	contract := vm.NewContract(addr(1), addr(2), primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	ret, err := evm.Run(contract, nil, false)
	require.NoError(t, err)
	require.Equal(t, uint64(5), primitives.U256FromBytes(ret).Uint64())
}

func TestSstoreWarmColdPricing(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	a := addr(2)
	s.CreateAccount(a)

	var code []byte
	code = append(code, push1(1)...)  // value
	code = append(code, push1(0)...)  // key
	code = append(code, 0x55)         // SSTORE (cold)
	code = append(code, push1(2)...)  // value
	code = append(code, push1(0)...)  // key
	code = append(code, 0x55)         // SSTORE (warm)
	code = append(code, 0x00)         // STOP

	contract := vm.NewContract(addr(1), a, primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	_, err := evm.Run(contract, nil, false)
	require.NoError(t, err)
	require.Equal(t, uint64(2), s.GetState(a, primitives.B256{}).AsU256().Uint64())
	require.Less(t, contract.Gas, uint64(100000))
}

func TestRevertRollsBackStateAndPreservesReason(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	a := addr(2)
	s.CreateAccount(a)

	var code []byte
	code = append(code, push1(1)...) // value
	code = append(code, push1(0)...) // key
	code = append(code, 0x55)        // SSTORE
	code = append(code, push1(0xaa)...)
	code = append(code, push1(0)...)
	code = append(code, 0x52)         // MSTORE
	code = append(code, push1(32)...) // size
	code = append(code, push1(0)...)  // offset
	code = append(code, 0xfd)         // REVERT

	contract := vm.NewContract(addr(1), a, primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	snapshot := s.Snapshot()
	ret, err := evm.Run(contract, nil, false)
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
	require.Equal(t, uint64(0xaa), primitives.U256FromBytes(ret).Uint64())
	s.RevertToSnapshot(snapshot)
	require.True(t, s.GetState(a, primitives.B256{}).IsZero())
}

func TestWriteProtectionInStaticCall(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	a := addr(2)
	s.CreateAccount(a)

	code := append(push1(1), append(push1(0), 0x55)...) // PUSH1 1, PUSH1 0, SSTORE
	contract := vm.NewContract(addr(1), a, primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	_, err := evm.Run(contract, nil, true)
	require.ErrorIs(t, err, vm.ErrWriteProtection)
}

// push20 encodes PUSH20 <addr>, the 20-byte address literal form CALL and
// SELFDESTRUCT bytecode use to put a beneficiary/callee on the stack.
func push20(a primitives.Address) []byte {
	return append([]byte{0x73}, a.Bytes()...)
}

func TestSelfDestructMovesBalancePostCancun(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	contractAddr := addr(2)
	beneficiary := addr(9)
	s.CreateAccount(contractAddr)
	s.AddBalance(contractAddr, primitives.U256FromUint64(500))
	s.SetState(contractAddr, primitives.B256{}, primitives.BytesToB256([]byte{1}))
	// contractAddr was NOT created by this transaction, so EIP-6780 must
	// skip the account deletion but still move the balance.

	var code []byte
	code = append(code, push20(beneficiary)...)
	code = append(code, 0xff) // SELFDESTRUCT

	contract := vm.NewContract(addr(1), contractAddr, primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	_, err := evm.Run(contract, nil, false)
	require.NoError(t, err)
	require.Equal(t, uint64(0), s.Balance(contractAddr).Uint64())
	require.Equal(t, uint64(500), s.Balance(beneficiary).Uint64())

	final := s.Finalize()
	got, ok := final[contractAddr]
	require.True(t, ok)
	require.False(t, got.Destroyed)
	require.Equal(t, uint64(0), got.Account.Balance.Uint64())
	require.False(t, got.Storage[primitives.B256{}].IsZero())
}

func TestValueCallFromStaticContextIsWriteProtected(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	callee := addr(9)
	s.CreateAccount(callee)

	var code []byte
	code = append(code, push1(0)...)   // retSize
	code = append(code, push1(0)...)   // retOffset
	code = append(code, push1(0)...)   // argsSize
	code = append(code, push1(0)...)   // argsOffset
	code = append(code, push1(5)...)   // value
	code = append(code, push20(callee)...)
	code = append(code, 0x5a) // GAS
	code = append(code, 0xf1) // CALL
	code = append(code, push1(0)...) // mstore offset
	code = append(code, 0x52)        // MSTORE
	code = append(code, push1(32)...) // size
	code = append(code, push1(0)...)  // offset
	code = append(code, 0xf3)         // RETURN

	contract := vm.NewContract(addr(1), addr(3), primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	ret, err := evm.Run(contract, nil, true)
	require.NoError(t, err) // CALL soft-fails; caller observes success=0 and continues
	require.Equal(t, uint64(0), primitives.U256FromBytes(ret).Uint64())
	require.Equal(t, uint64(0), s.Balance(callee).Uint64())
}

func TestInvalidJumpDestination(t *testing.T) {
	evm, _ := newEVM(t, primitives.Cancun)
	code := append(push1(5), 0x56) // JUMP to a non-JUMPDEST
	contract := vm.NewContract(addr(1), addr(2), primitives.Zero, 100000)
	contract.SetCode(code, primitives.Keccak256(code))

	_, err := evm.Run(contract, nil, false)
	require.ErrorIs(t, err, vm.ErrInvalidJump)
}

func TestTransactSimpleTransfer(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	sender := addr(1)
	recipient := addr(0x20)
	s.AddBalance(sender, primitives.U256FromUint64(1_000_000))

	to := recipient
	result := evm.Transact(sender, &to, nil, 21000, primitives.U256FromUint64(100), nil)
	require.NoError(t, result.Err)
	require.False(t, result.Reverted)
	require.Equal(t, uint64(21000), result.GasUsed)
	// gasPrice == baseFee (both 1 in newEVM), so the whole gas cost is
	// burned: sender loses value + gasUsed*gasPrice, nothing reaches the
	// coinbase.
	require.Equal(t, uint64(1_000_000-100-21000), s.Balance(sender).Uint64())
	require.Equal(t, uint64(100), s.Balance(recipient).Uint64())
	require.Equal(t, uint64(1), s.Nonce(sender))
	require.Equal(t, uint64(0), s.Balance(addr(0xc0)).Uint64())
}

func TestTransactChargesIntrinsicGasFloor(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	sender := addr(1)
	recipient := addr(2)
	s.AddBalance(sender, primitives.U256FromUint64(1_000_000))

	to := recipient
	result := evm.Transact(sender, &to, nil, 20999, primitives.Zero, nil)
	require.ErrorIs(t, result.Err, vm.ErrIntrinsicGas)
	require.Equal(t, uint64(0), s.Balance(recipient).Uint64())
	require.Equal(t, uint64(0), s.Nonce(sender))
}

func TestTransactPaysCoinbaseTip(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	sender := addr(1)
	recipient := addr(0x20)
	s.AddBalance(sender, primitives.U256FromUint64(1_000_000))
	evm.TxContext.GasPrice = primitives.U256FromUint64(3) // baseFee is 1

	to := recipient
	result := evm.Transact(sender, &to, nil, 21000, primitives.Zero, nil)
	require.NoError(t, result.Err)
	require.Equal(t, uint64(21000*2), s.Balance(addr(0xc0)).Uint64())
}

func TestTransactContractCreation(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	sender := addr(1)
	s.AddBalance(sender, primitives.U256FromUint64(1_000_000))

	// init code: return a single STOP byte as the deployed code.
	var init []byte
	init = append(init, push1(0x00)...)
	init = append(init, push1(0)...) // offset 0 — but we want to store STOP (0x00) at offset 0
	init = append(init, 0x52)        // MSTORE word at 0 containing 0x00...00 (STOP byte is the last byte of the word)
	init = append(init, push1(1)...) // size 1
	init = append(init, push1(31)...) // offset 31 (last byte of the stored word)
	init = append(init, 0xf3)         // RETURN

	result := evm.Transact(sender, nil, init, 1_000_000, primitives.Zero, nil)
	require.NoError(t, result.Err)
	require.False(t, result.Reverted)
	require.NotNil(t, result.ContractAddress)
	require.Equal(t, 1, s.CodeSize(*result.ContractAddress))
}

func TestCallDepthLimitSoftFails(t *testing.T) {
	evm, s := newEVM(t, primitives.Cancun)
	a := addr(3)
	s.CreateAccount(a)
	// code that infinitely re-enters itself via CALL with all remaining gas.
	var code []byte
	code = append(code, push1(0)...) // retSize
	code = append(code, push1(0)...) // retOffset
	code = append(code, push1(0)...) // argsSize
	code = append(code, push1(0)...) // argsOffset
	code = append(code, push1(0)...) // value
	code = append(code, 0x30)        // ADDRESS
	code = append(code, 0x5a)        // GAS
	code = append(code, 0xf1)        // CALL
	code = append(code, 0x00)        // STOP

	contract := vm.NewContract(addr(1), a, primitives.Zero, 1_000_000_000_000)
	contract.SetCode(code, primitives.Keccak256(code))

	_, err := evm.Run(contract, nil, false)
	require.NoError(t, err) // CALL soft-fails at depth limit; caller continues to STOP
}
