package state

import "github.com/bluealloy/evmcore/primitives"

// Log is a single LOG0-LOG4 event record.
type Log struct {
	Address primitives.Address
	Topics  []primitives.B256
	Data    []byte

	// Copied by LOG0-LOG4 from the EVM's TxContext; zero unless the
	// embedder sets TxHash/TxIndex there.
	TxHash  primitives.B256
	TxIndex uint
}
