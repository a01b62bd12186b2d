package state

import "github.com/bluealloy/evmcore/primitives"

// account is the dirty-layer overlay for one address: an account's
// post-load, possibly-modified fields plus its storage writes this call
// stack has made, kept apart from the values Database reports (read
// back by GetCommittedState) so SSTORE's net-gas metering (EIP-2200/3529)
// can compare current, original, and committed values per spec.
type account struct {
	nonce          uint64
	balance        primitives.U256
	codeHash       primitives.B256
	code           []byte
	dirtyStorage   map[primitives.B256]primitives.B256
	existed        bool // true if Database had this account, or it was CreateAccount'd
	selfDestructed bool
}

func newAccount() *account {
	return &account{dirtyStorage: make(map[primitives.B256]primitives.B256)}
}

// JournaledState is the interpreter's view of world state: a dirty
// overlay over a read-only Database, with snapshot/revert, EIP-2929
// access tracking, EIP-1153 transient storage, logs, and the gas refund
// counter. This is the concrete type satisfying whatever StateDB-shaped
// interface the vm package defines — satisfied structurally, vm is never
// imported here, mirroring how the teacher's core/state package
// implements core/vm's StateDB interface without importing core/vm.
type JournaledState struct {
	db      Database
	objects map[primitives.Address]*account

	journal          *journal
	accessList       *AccessList
	transientStorage map[primitives.Address]map[primitives.B256]primitives.B256
	logs             []Log
	refund           uint64
	createdThisTx    map[primitives.Address]struct{} // EIP-6780
}

// New wraps db in a fresh JournaledState with no dirty changes.
func New(db Database) *JournaledState {
	return &JournaledState{
		db:               db,
		objects:          make(map[primitives.Address]*account),
		journal:          newJournal(),
		accessList:       NewAccessList(),
		transientStorage: make(map[primitives.Address]map[primitives.B256]primitives.B256),
		createdThisTx:    make(map[primitives.Address]struct{}),
	}
}

// PrePopulateAccessList warms the sender/recipient/precompiles/tx access
// list before the top-level call begins, per EIP-2929/2930.
func (s *JournaledState) PrePopulateAccessList(sender primitives.Address, to *primitives.Address, list []AccessTuple) {
	s.accessList.PrePopulate(sender, to, list)
}

func (s *JournaledState) getObject(addr primitives.Address) *account {
	if obj, ok := s.objects[addr]; ok {
		return obj
	}
	obj := newAccount()
	if acc, ok := s.db.GetAccount(addr); ok {
		obj.nonce = acc.Nonce
		obj.balance = acc.Balance
		obj.codeHash = acc.CodeHash
		obj.code = acc.Code
		obj.existed = true
	}
	s.objects[addr] = obj
	return obj
}

// --- Account state ---

// CreateAccount resets addr to a brand-new, empty account, journaling
// whatever was there before (used by CREATE/CREATE2 to materialize the
// new contract's account before running init code).
func (s *JournaledState) CreateAccount(addr primitives.Address) {
	var prev *account
	if obj, ok := s.objects[addr]; ok {
		cp := *obj
		prev = &cp
	}
	s.journal.append(createAccountChange{addr: addr, prev: prev})
	obj := newAccount()
	obj.existed = true
	s.objects[addr] = obj
}

// MarkCreatedThisTx records that addr was created by CREATE/CREATE2
// within the current transaction, the precondition EIP-6780 requires
// for SELFDESTRUCT to actually delete the account rather than only pay
// out its balance.
func (s *JournaledState) MarkCreatedThisTx(addr primitives.Address) {
	_, prev := s.createdThisTx[addr]
	s.journal.append(createdThisTxChange{addr: addr, prev: prev})
	s.createdThisTx[addr] = struct{}{}
}

// WasCreatedThisTx reports whether addr was created earlier in the
// current transaction.
func (s *JournaledState) WasCreatedThisTx(addr primitives.Address) bool {
	_, ok := s.createdThisTx[addr]
	return ok
}

func (s *JournaledState) Balance(addr primitives.Address) primitives.U256 {
	return s.getObject(addr).balance
}

func (s *JournaledState) AddBalance(addr primitives.Address, amount primitives.U256) {
	obj := s.getObject(addr)
	s.journal.append(balanceChange{addr: addr, prev: obj.balance})
	obj.balance = obj.balance.Add(amount)
}

func (s *JournaledState) SubBalance(addr primitives.Address, amount primitives.U256) {
	obj := s.getObject(addr)
	s.journal.append(balanceChange{addr: addr, prev: obj.balance})
	obj.balance = obj.balance.Sub(amount)
}

func (s *JournaledState) Nonce(addr primitives.Address) uint64 {
	return s.getObject(addr).nonce
}

func (s *JournaledState) SetNonce(addr primitives.Address, nonce uint64) {
	obj := s.getObject(addr)
	s.journal.append(nonceChange{addr: addr, prev: obj.nonce})
	obj.nonce = nonce
}

func (s *JournaledState) CodeHash(addr primitives.Address) primitives.B256 {
	return s.getObject(addr).codeHash
}

func (s *JournaledState) Code(addr primitives.Address) []byte {
	return s.getObject(addr).code
}

func (s *JournaledState) CodeSize(addr primitives.Address) int {
	return len(s.getObject(addr).code)
}

func (s *JournaledState) SetCode(addr primitives.Address, code []byte) {
	obj := s.getObject(addr)
	s.journal.append(codeChange{addr: addr, prevCode: obj.code, prevHash: obj.codeHash})
	obj.code = code
	obj.codeHash = primitives.Keccak256(code)
}

// Exists reports whether addr is a known account — present in Database
// or created by CreateAccount — and has not self-destructed, matching
// StateDB.Exist semantics used by EXTCODEHASH/BALANCE's "does this
// account exist at all" distinction from "exists but is empty".
func (s *JournaledState) Exists(addr primitives.Address) bool {
	obj := s.getObject(addr)
	return obj.existed && !obj.selfDestructed
}

// IsEmpty reports EIP-161 emptiness: zero nonce, zero balance, no code.
func (s *JournaledState) IsEmpty(addr primitives.Address) bool {
	obj := s.getObject(addr)
	return obj.nonce == 0 && obj.balance.IsZero() && (obj.codeHash.IsZero() || obj.codeHash == primitives.EmptyCodeHash)
}

// --- Self-destruct ---

func (s *JournaledState) SelfDestruct(addr primitives.Address) {
	obj := s.getObject(addr)
	s.journal.append(selfDestructChange{addr: addr, prevDestructed: obj.selfDestructed, prevBalance: obj.balance})
	obj.selfDestructed = true
	obj.balance = primitives.Zero
}

func (s *JournaledState) HasSelfDestructed(addr primitives.Address) bool {
	if obj, ok := s.objects[addr]; ok {
		return obj.selfDestructed
	}
	return false
}

// --- Storage ---

func (s *JournaledState) GetState(addr primitives.Address, key primitives.B256) primitives.B256 {
	obj := s.getObject(addr)
	if v, ok := obj.dirtyStorage[key]; ok {
		return v
	}
	return s.db.GetStorage(addr, key)
}

// GetCommittedState returns the value Database reports for key,
// ignoring this execution's dirty writes — the "original value" SSTORE
// gas metering (EIP-2200/3529) needs to classify a write as a no-op,
// a fresh set, a reset-to-original, or a clear.
func (s *JournaledState) GetCommittedState(addr primitives.Address, key primitives.B256) primitives.B256 {
	return s.db.GetStorage(addr, key)
}

func (s *JournaledState) SetState(addr primitives.Address, key, value primitives.B256) {
	obj := s.getObject(addr)
	prevDirty, prevExists := obj.dirtyStorage[key]
	prev := prevDirty
	if !prevExists {
		prev = s.db.GetStorage(addr, key)
	}
	s.journal.append(storageChange{addr: addr, key: key, prev: prev, prevExists: prevExists})
	obj.dirtyStorage[key] = value
}

// --- Transient storage (EIP-1153) ---

func (s *JournaledState) GetTransientState(addr primitives.Address, key primitives.B256) primitives.B256 {
	if slots, ok := s.transientStorage[addr]; ok {
		return slots[key]
	}
	return primitives.B256{}
}

func (s *JournaledState) SetTransientState(addr primitives.Address, key, value primitives.B256) {
	prev := s.GetTransientState(addr, key)
	s.journal.append(transientStorageChange{addr: addr, key: key, prev: prev})
	if s.transientStorage[addr] == nil {
		s.transientStorage[addr] = make(map[primitives.B256]primitives.B256)
	}
	s.transientStorage[addr][key] = value
}

// ClearTransientStorage discards all transient storage. Per EIP-1153
// this happens once, at transaction end — never mid-transaction, and
// never through the journal (it is not revertible: a transaction that
// reverts at the top level still had its transient storage exist during
// execution, it simply never outlives the transaction either way).
func (s *JournaledState) ClearTransientStorage() {
	s.transientStorage = make(map[primitives.Address]map[primitives.B256]primitives.B256)
}

// --- Logs ---

func (s *JournaledState) AddLog(l Log) {
	s.journal.append(logChange{prevLen: len(s.logs)})
	s.logs = append(s.logs, l)
}

// Logs returns all logs emitted so far in this JournaledState's
// lifetime (conventionally: one transaction).
func (s *JournaledState) Logs() []Log {
	return s.logs
}

// --- Refund counter ---

func (s *JournaledState) AddRefund(amount uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += amount
}

func (s *JournaledState) SubRefund(amount uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund -= amount
}

func (s *JournaledState) Refund() uint64 {
	return s.refund
}

// --- Access list (EIP-2929) ---

func (s *JournaledState) AddressInAccessList(addr primitives.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *JournaledState) SlotInAccessList(addr primitives.Address, slot primitives.B256) (addrWarm, slotWarm bool) {
	return s.accessList.ContainsSlot(addr, slot)
}

// AddAddressToAccessList warms addr and reports whether it was already
// warm (the caller uses this to decide cold vs. warm gas pricing).
func (s *JournaledState) AddAddressToAccessList(addr primitives.Address) (wasWarm bool) {
	return s.accessList.TouchAddress(addr)
}

// AddSlotToAccessList warms addr's slot (and addr itself) and reports
// the pre-touch warmth of each.
func (s *JournaledState) AddSlotToAccessList(addr primitives.Address, slot primitives.B256) (addrWasWarm, slotWasWarm bool) {
	return s.accessList.TouchSlot(addr, slot)
}

// --- Snapshot / revert ---

// Snapshot returns an opaque checkpoint id that RevertToSnapshot can
// later roll back to. The account journal and the access-list journal
// share a single monotonically increasing id space by construction:
// both start at zero and every Snapshot call advances both by exactly
// one, so the same id is valid against both.
func (s *JournaledState) Snapshot() int {
	id := s.journal.snapshot()
	alID := s.accessList.Snapshot()
	if id != alID {
		panic("state: journal and access-list snapshot ids diverged")
	}
	return id
}

func (s *JournaledState) RevertToSnapshot(id int) {
	s.journal.revertToSnapshot(id, s)
	s.accessList.RevertToSnapshot(id)
}

// Finalize flushes dirty storage into an Account/slot view per address,
// for the embedder to persist. It does not compute a trie root or
// otherwise talk to Database for writes — root computation and
// persistence are explicitly out of this module's scope; Finalize only
// hands back the final in-memory picture.
func (s *JournaledState) Finalize() map[primitives.Address]FinalAccount {
	out := make(map[primitives.Address]FinalAccount, len(s.objects))
	for addr, obj := range s.objects {
		if obj.selfDestructed {
			out[addr] = FinalAccount{Destroyed: true}
			continue
		}
		storage := make(map[primitives.B256]primitives.B256, len(obj.dirtyStorage))
		for k, v := range obj.dirtyStorage {
			storage[k] = v
		}
		out[addr] = FinalAccount{
			Account: Account{
				Nonce:    obj.nonce,
				Balance:  obj.balance,
				CodeHash: obj.codeHash,
				Code:     obj.code,
			},
			Storage: storage,
		}
	}
	return out
}

// FinalAccount is one address's resulting state after a transaction, as
// handed back by Finalize.
type FinalAccount struct {
	Account   Account
	Storage   map[primitives.B256]primitives.B256
	Destroyed bool
}
