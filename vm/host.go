package vm

import (
	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/state"
)

// Host is the world-state surface the interpreter needs: account and
// storage access, self-destruct, transient storage, logs, the refund
// counter, EIP-2929 access-list warmth, and snapshot/revert. It is
// satisfied by *state.JournaledState method-for-method; naming it here
// (rather than depending on the concrete type directly) mirrors the
// teacher's core/vm.StateDB interface, defined in vm to avoid a
// vm->state->vm import cycle even though in practice state.JournaledState
// is the only implementation this repo ships.
type Host interface {
	CreateAccount(addr primitives.Address)

	Balance(addr primitives.Address) primitives.U256
	AddBalance(addr primitives.Address, amount primitives.U256)
	SubBalance(addr primitives.Address, amount primitives.U256)

	Nonce(addr primitives.Address) uint64
	SetNonce(addr primitives.Address, nonce uint64)

	CodeHash(addr primitives.Address) primitives.B256
	Code(addr primitives.Address) []byte
	CodeSize(addr primitives.Address) int
	SetCode(addr primitives.Address, code []byte)

	Exists(addr primitives.Address) bool
	IsEmpty(addr primitives.Address) bool

	SelfDestruct(addr primitives.Address)
	HasSelfDestructed(addr primitives.Address) bool
	MarkCreatedThisTx(addr primitives.Address)
	WasCreatedThisTx(addr primitives.Address) bool

	GetState(addr primitives.Address, key primitives.B256) primitives.B256
	GetCommittedState(addr primitives.Address, key primitives.B256) primitives.B256
	SetState(addr primitives.Address, key, value primitives.B256)

	GetTransientState(addr primitives.Address, key primitives.B256) primitives.B256
	SetTransientState(addr primitives.Address, key, value primitives.B256)
	ClearTransientStorage()

	AddLog(l state.Log)

	AddRefund(amount uint64)
	SubRefund(amount uint64)
	Refund() uint64

	AddressInAccessList(addr primitives.Address) bool
	SlotInAccessList(addr primitives.Address, slot primitives.B256) (addrWarm, slotWarm bool)
	AddAddressToAccessList(addr primitives.Address) (wasWarm bool)
	AddSlotToAccessList(addr primitives.Address, slot primitives.B256) (addrWasWarm, slotWasWarm bool)

	Snapshot() int
	RevertToSnapshot(id int)
}

// GetHashFunc resolves a block number to its hash, for BLOCKHASH. The
// embedder supplies this; the core never computes block hashes itself.
type GetHashFunc func(blockNumber uint64) primitives.B256

// BlockContext carries the block-level values opcodes like COINBASE,
// TIMESTAMP, NUMBER, PREVRANDAO, GASLIMIT, BASEFEE, and BLOBBASEFEE
// read, plus the BLOCKHASH resolver. Grounded on the teacher's
// core/vm.BlockContext, generalized with U256 fields and a BlobBaseFee.
type BlockContext struct {
	GetHash     GetHashFunc
	Coinbase    primitives.Address
	GasLimit    uint64
	BlockNumber primitives.U256
	Time        uint64
	Difficulty  primitives.U256 // pre-Merge DIFFICULTY
	PrevRandao  primitives.B256 // post-Merge DIFFICULTY/PREVRANDAO (EIP-4399)
	BaseFee     primitives.U256
	BlobBaseFee primitives.U256
}

// TxContext carries the transaction-level values ORIGIN, GASPRICE, and
// BLOBHASH read.
type TxContext struct {
	Origin     primitives.Address
	GasPrice   primitives.U256
	BlobHashes []primitives.B256
	TxHash     primitives.B256
	TxIndex    uint
}
