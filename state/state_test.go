package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/state"
)

func addr(b byte) primitives.Address {
	return primitives.BytesToAddress([]byte{b})
}

func TestBalanceRevertOnSnapshot(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(1)

	id := s.Snapshot()
	s.AddBalance(a, primitives.U256FromUint64(100))
	require.Equal(t, uint64(100), s.Balance(a).Uint64())

	s.RevertToSnapshot(id)
	require.Equal(t, uint64(0), s.Balance(a).Uint64())
}

func TestStorageSetAndRevert(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(1)
	key := primitives.BytesToB256([]byte{1})
	val := primitives.BytesToB256([]byte{0xff})

	id := s.Snapshot()
	s.SetState(a, key, val)
	require.Equal(t, val, s.GetState(a, key))
	s.RevertToSnapshot(id)
	require.True(t, s.GetState(a, key).IsZero())
}

func TestNestedSnapshotsRevertInOrder(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(1)

	s.AddBalance(a, primitives.U256FromUint64(10))
	outer := s.Snapshot()
	s.AddBalance(a, primitives.U256FromUint64(20))
	inner := s.Snapshot()
	s.AddBalance(a, primitives.U256FromUint64(30))

	s.RevertToSnapshot(inner)
	require.Equal(t, uint64(30), s.Balance(a).Uint64())

	s.RevertToSnapshot(outer)
	require.Equal(t, uint64(10), s.Balance(a).Uint64())
}

func TestAccessListWarmingAndRevert(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(2)

	require.False(t, s.AddressInAccessList(a))
	id := s.Snapshot()
	wasWarm := s.AddAddressToAccessList(a)
	require.False(t, wasWarm)
	require.True(t, s.AddressInAccessList(a))

	s.RevertToSnapshot(id)
	require.False(t, s.AddressInAccessList(a))
}

func TestPrePopulatedAddressSurvivesRevert(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	sender := addr(3)
	s.PrePopulateAccessList(sender, nil, nil)

	id := s.Snapshot()
	s.AddBalance(sender, primitives.U256FromUint64(1))
	s.RevertToSnapshot(id)

	require.True(t, s.AddressInAccessList(sender))
}

func TestSelfDestructZeroesBalance(t *testing.T) {
	db := state.NewMemoryDatabase()
	db.SetAccount(addr(4), state.Account{Balance: primitives.U256FromUint64(500)})
	s := state.New(db)
	a := addr(4)
	require.Equal(t, uint64(500), s.Balance(a).Uint64())

	s.SelfDestruct(a)
	require.True(t, s.HasSelfDestructed(a))
	require.Equal(t, uint64(0), s.Balance(a).Uint64())
}

func TestRefundRevert(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	id := s.Snapshot()
	s.AddRefund(100)
	require.Equal(t, uint64(100), s.Refund())
	s.RevertToSnapshot(id)
	require.Equal(t, uint64(0), s.Refund())
}

func TestLogsAppendAndRevert(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	id := s.Snapshot()
	s.AddLog(state.Log{Address: addr(5), Data: []byte{1}})
	require.Len(t, s.Logs(), 1)
	s.RevertToSnapshot(id)
	require.Len(t, s.Logs(), 0)
}

func TestClearTransientStorageZeroesSlots(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(6)
	key := primitives.BytesToB256([]byte{9})
	val := primitives.BytesToB256([]byte{1})
	s.SetTransientState(a, key, val)
	require.Equal(t, val, s.GetTransientState(a, key))
	s.ClearTransientStorage()
	require.True(t, s.GetTransientState(a, key).IsZero())
}

func TestCreatedThisTxRevert(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(7)
	id := s.Snapshot()
	s.MarkCreatedThisTx(a)
	require.True(t, s.WasCreatedThisTx(a))
	s.RevertToSnapshot(id)
	require.False(t, s.WasCreatedThisTx(a))
}

func TestFinalizeReflectsDirtyStorage(t *testing.T) {
	db := state.NewMemoryDatabase()
	s := state.New(db)
	a := addr(8)
	key := primitives.BytesToB256([]byte{1})
	val := primitives.BytesToB256([]byte{2})
	s.SetState(a, key, val)
	s.AddBalance(a, primitives.U256FromUint64(7))

	final := s.Finalize()
	got := final[a]
	require.False(t, got.Destroyed)
	require.Equal(t, uint64(7), got.Account.Balance.Uint64())
	require.Equal(t, val, got.Storage[key])
}
