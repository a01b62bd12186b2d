package state

import "github.com/bluealloy/evmcore/primitives"

// AccessList implements EIP-2929 warm/cold access tracking with its own
// independent journal (separate from the account/storage journal,
// matching the teacher's standalone AccessListTracker) so cold/warm
// status can be reverted precisely on call failure without touching
// unrelated account state.
type AccessList struct {
	addresses   map[primitives.Address]int
	slots       map[primitives.Address]map[primitives.B256]int
	journal     []accessListChange
	snapshotIDs []int
}

type accessListChangeKind uint8

const (
	changeAddAddress accessListChangeKind = iota
	changeAddSlot
)

type accessListChange struct {
	kind    accessListChangeKind
	address primitives.Address
	slot    primitives.B256
}

// NewAccessList returns an empty access list.
func NewAccessList() *AccessList {
	return &AccessList{
		addresses: make(map[primitives.Address]int),
		slots:     make(map[primitives.Address]map[primitives.B256]int),
	}
}

// PrePopulate warms the sender, the call target (nil for contract
// creation), the reserved precompile addresses 0x01-0x13, and every
// entry of the transaction's EIP-2930 access list. Pre-populated entries
// use journal index -1 so no revert — not even one unwinding the entire
// transaction — ever removes them, matching spec's description of
// permanently-warm addresses.
func (al *AccessList) PrePopulate(sender primitives.Address, to *primitives.Address, accessList []AccessTuple) {
	al.addAddressNoJournal(sender)
	if to != nil {
		al.addAddressNoJournal(*to)
	}
	for i := 1; i <= 0x13; i++ {
		al.addAddressNoJournal(primitives.BytesToAddress([]byte{byte(i)}))
	}
	for _, tuple := range accessList {
		al.addAddressNoJournal(tuple.Address)
		for _, key := range tuple.StorageKeys {
			al.addSlotNoJournal(tuple.Address, key)
		}
	}
}

// AccessTuple is one (address, storage keys) entry of an EIP-2930
// transaction access list.
type AccessTuple struct {
	Address     primitives.Address
	StorageKeys []primitives.B256
}

func (al *AccessList) addAddressNoJournal(addr primitives.Address) {
	if _, ok := al.addresses[addr]; !ok {
		al.addresses[addr] = -1
	}
}

func (al *AccessList) addSlotNoJournal(addr primitives.Address, slot primitives.B256) {
	al.addAddressNoJournal(addr)
	slots, ok := al.slots[addr]
	if !ok {
		slots = make(map[primitives.B256]int)
		al.slots[addr] = slots
	}
	if _, ok := slots[slot]; !ok {
		slots[slot] = -1
	}
}

// ContainsAddress reports whether addr is warm.
func (al *AccessList) ContainsAddress(addr primitives.Address) bool {
	_, ok := al.addresses[addr]
	return ok
}

// ContainsSlot reports whether addr is warm and, separately, whether the
// given slot of addr is warm.
func (al *AccessList) ContainsSlot(addr primitives.Address, slot primitives.B256) (addrWarm, slotWarm bool) {
	_, addrWarm = al.addresses[addr]
	if !addrWarm {
		return false, false
	}
	slots, ok := al.slots[addr]
	if !ok {
		return true, false
	}
	_, slotWarm = slots[slot]
	return true, slotWarm
}

// TouchAddress warms addr, journaling the change if it was cold. Returns
// whether it was already warm.
func (al *AccessList) TouchAddress(addr primitives.Address) (alreadyWarm bool) {
	if _, ok := al.addresses[addr]; ok {
		return true
	}
	idx := len(al.journal)
	al.addresses[addr] = idx
	al.journal = append(al.journal, accessListChange{kind: changeAddAddress, address: addr})
	return false
}

// TouchSlot warms addr and its slot, journaling whichever were cold.
func (al *AccessList) TouchSlot(addr primitives.Address, slot primitives.B256) (addrWasWarm, slotWasWarm bool) {
	addrWasWarm = al.TouchAddress(addr)

	slots, ok := al.slots[addr]
	if !ok {
		slots = make(map[primitives.B256]int)
		al.slots[addr] = slots
	}
	if _, ok := slots[slot]; ok {
		return addrWasWarm, true
	}
	idx := len(al.journal)
	slots[slot] = idx
	al.journal = append(al.journal, accessListChange{kind: changeAddSlot, address: addr, slot: slot})
	return addrWasWarm, false
}

// Snapshot records the current journal length.
func (al *AccessList) Snapshot() int {
	id := len(al.snapshotIDs)
	al.snapshotIDs = append(al.snapshotIDs, len(al.journal))
	return id
}

// RevertToSnapshot undoes every warming recorded since the given
// snapshot. Entries pre-populated with journal index -1 are never
// removed by any revert.
func (al *AccessList) RevertToSnapshot(id int) {
	if id < 0 || id >= len(al.snapshotIDs) {
		return
	}
	journalLen := al.snapshotIDs[id]
	for i := len(al.journal) - 1; i >= journalLen; i-- {
		ch := al.journal[i]
		switch ch.kind {
		case changeAddSlot:
			if slots := al.slots[ch.address]; slots != nil {
				if idx, ok := slots[ch.slot]; ok && idx >= journalLen {
					delete(slots, ch.slot)
				}
			}
		case changeAddAddress:
			if idx, ok := al.addresses[ch.address]; ok && idx >= journalLen {
				delete(al.addresses, ch.address)
			}
		}
	}
	al.journal = al.journal[:journalLen]
	al.snapshotIDs = al.snapshotIDs[:id]
}
