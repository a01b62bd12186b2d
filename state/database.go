// Package state implements the journaled world-state view the
// interpreter executes against: an in-memory overlay of dirty account
// and storage changes backed by a read-only Database, with
// snapshot/revert, EIP-2929 access lists, EIP-1153 transient storage,
// logs, and the refund counter. Grounded on the teacher's
// core/state/memory_statedb.go and journal.go, with trie/state-root
// computation dropped (RLP and Merkle-Patricia tries are out of this
// module's scope; the embedder owns committing a root from the final
// account set).
package state

import "github.com/bluealloy/evmcore/primitives"

// Account is the persisted, trie-independent account record: nonce,
// balance, and a pointer to code by hash. Storage is addressed
// separately through Database's slot methods, not embedded here,
// mirroring how the teacher's stateObject keeps storage maps alongside
// rather than inside types.Account.
type Account struct {
	Nonce    uint64
	Balance  primitives.U256
	CodeHash primitives.B256
	Code     []byte
}

// IsEmpty reports whether the account meets EIP-161's "empty account"
// definition: zero nonce, zero balance, and no code.
func (a Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && (a.CodeHash.IsZero() || a.CodeHash == primitives.EmptyCodeHash)
}

// Database is the read-only backing store JournaledState overlays.
// Embedders implement it against whatever persistent store they use
// (trie-backed, flat-file, or — as here — a simple in-memory map for
// tests and the statetest CLI); this module never imports a trie or RLP
// library to read or write it.
type Database interface {
	GetAccount(addr primitives.Address) (Account, bool)
	GetStorage(addr primitives.Address, key primitives.B256) primitives.B256
}

// MemoryDatabase is a trivial map-backed Database, used by tests and the
// statetest CLI to seed pre-state from JSON fixtures.
type MemoryDatabase struct {
	accounts map[primitives.Address]Account
	storage  map[primitives.Address]map[primitives.B256]primitives.B256
}

// NewMemoryDatabase returns an empty MemoryDatabase.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		accounts: make(map[primitives.Address]Account),
		storage:  make(map[primitives.Address]map[primitives.B256]primitives.B256),
	}
}

func (d *MemoryDatabase) GetAccount(addr primitives.Address) (Account, bool) {
	a, ok := d.accounts[addr]
	return a, ok
}

func (d *MemoryDatabase) GetStorage(addr primitives.Address, key primitives.B256) primitives.B256 {
	slots, ok := d.storage[addr]
	if !ok {
		return primitives.B256{}
	}
	return slots[key]
}

// SetAccount seeds (or overwrites) an account, for building pre-state.
func (d *MemoryDatabase) SetAccount(addr primitives.Address, acc Account) {
	d.accounts[addr] = acc
}

// SetStorage seeds a single storage slot, for building pre-state.
func (d *MemoryDatabase) SetStorage(addr primitives.Address, key, value primitives.B256) {
	if d.storage[addr] == nil {
		d.storage[addr] = make(map[primitives.B256]primitives.B256)
	}
	d.storage[addr][key] = value
}
