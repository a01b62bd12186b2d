package state

import "github.com/bluealloy/evmcore/primitives"

// journalEntry is a single revertible state mutation. Grounded directly
// on the teacher's core/state/journal.go journalEntry interface.
type journalEntry interface {
	revert(s *JournaledState)
}

// journal is an append-only log of entries with named snapshot points,
// reverted in reverse order back to a snapshot.
type journal struct {
	entries   []journalEntry
	snapshots map[int]int
	nextID    int
}

func newJournal() *journal {
	return &journal{snapshots: make(map[int]int)}
}

func (j *journal) append(e journalEntry) { j.entries = append(j.entries, e) }

func (j *journal) snapshot() int {
	id := j.nextID
	j.nextID++
	j.snapshots[id] = len(j.entries)
	return id
}

func (j *journal) revertToSnapshot(id int, s *JournaledState) {
	idx, ok := j.snapshots[id]
	if !ok {
		return
	}
	for i := len(j.entries) - 1; i >= idx; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:idx]
	for sid := range j.snapshots {
		if sid >= id {
			delete(j.snapshots, sid)
		}
	}
}

type createAccountChange struct {
	addr primitives.Address
	prev *account // nil if the account did not exist before
}

func (ch createAccountChange) revert(s *JournaledState) {
	if ch.prev == nil {
		delete(s.objects, ch.addr)
	} else {
		s.objects[ch.addr] = ch.prev
	}
}

type balanceChange struct {
	addr primitives.Address
	prev primitives.U256
}

func (ch balanceChange) revert(s *JournaledState) {
	if obj := s.objects[ch.addr]; obj != nil {
		obj.balance = ch.prev
	}
}

type nonceChange struct {
	addr primitives.Address
	prev uint64
}

func (ch nonceChange) revert(s *JournaledState) {
	if obj := s.objects[ch.addr]; obj != nil {
		obj.nonce = ch.prev
	}
}

type codeChange struct {
	addr     primitives.Address
	prevCode []byte
	prevHash primitives.B256
}

func (ch codeChange) revert(s *JournaledState) {
	if obj := s.objects[ch.addr]; obj != nil {
		obj.code = ch.prevCode
		obj.codeHash = ch.prevHash
	}
}

type storageChange struct {
	addr       primitives.Address
	key        primitives.B256
	prev       primitives.B256
	prevExists bool
}

func (ch storageChange) revert(s *JournaledState) {
	obj := s.objects[ch.addr]
	if obj == nil {
		return
	}
	if ch.prevExists {
		obj.dirtyStorage[ch.key] = ch.prev
	} else {
		delete(obj.dirtyStorage, ch.key)
	}
}

type selfDestructChange struct {
	addr           primitives.Address
	prevDestructed bool
	prevBalance    primitives.U256
}

func (ch selfDestructChange) revert(s *JournaledState) {
	if obj := s.objects[ch.addr]; obj != nil {
		obj.selfDestructed = ch.prevDestructed
		obj.balance = ch.prevBalance
	}
}

type createdThisTxChange struct {
	addr primitives.Address
	prev bool
}

func (ch createdThisTxChange) revert(s *JournaledState) {
	if ch.prev {
		s.createdThisTx[ch.addr] = struct{}{}
	} else {
		delete(s.createdThisTx, ch.addr)
	}
}

type transientStorageChange struct {
	addr primitives.Address
	key  primitives.B256
	prev primitives.B256
}

func (ch transientStorageChange) revert(s *JournaledState) {
	if ch.prev.IsZero() {
		if slots := s.transientStorage[ch.addr]; slots != nil {
			delete(slots, ch.key)
			if len(slots) == 0 {
				delete(s.transientStorage, ch.addr)
			}
		}
		return
	}
	if s.transientStorage[ch.addr] == nil {
		s.transientStorage[ch.addr] = make(map[primitives.B256]primitives.B256)
	}
	s.transientStorage[ch.addr][ch.key] = ch.prev
}

type logChange struct {
	prevLen int
}

func (ch logChange) revert(s *JournaledState) {
	s.logs = s.logs[:ch.prevLen]
}

type refundChange struct {
	prev uint64
}

func (ch refundChange) revert(s *JournaledState) {
	s.refund = ch.prev
}
