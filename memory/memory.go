// Package memory implements the EVM's byte-addressable, word-aligned
// expanding memory region, grounded on the teacher's vm.Memory but
// widened to work in terms of primitives.U256 for 32-byte word
// read/write and to grow in whole 32-byte words the way real
// MSIZE-observing contracts expect.
package memory

import "github.com/bluealloy/evmcore/primitives"

const wordSize = 32

// Memory is linear, byte-addressable storage that grows (never shrinks)
// in 32-byte-word increments.
type Memory struct {
	store []byte
}

// New returns empty memory.
func New() *Memory {
	return &Memory{}
}

// Len returns the current size in bytes (always a multiple of 32).
func (m *Memory) Len() int { return len(m.store) }

// Resize grows memory so it is at least size bytes long, rounding size
// up to the next whole word. A no-op if memory is already that large.
// Callers are expected to have already charged memory-expansion gas
// (gas.MemoryExpansionCost) before calling Resize; Resize itself never
// fails.
func (m *Memory) Resize(size uint64) {
	size = toWordSize(size) * wordSize
	if uint64(len(m.store)) >= size {
		return
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
}

// toWordSize rounds n up to the nearest multiple of 32, measured in
// words (not bytes).
func toWordSize(n uint64) uint64 {
	if n > (1<<64-1)-31 {
		return (1<<64 - 1) / wordSize
	}
	return (n + 31) / wordSize
}

// Set writes value into memory at [offset, offset+len(value)). The
// caller must have already resized memory to fit.
func (m *Memory) Set(offset uint64, value []byte) {
	if len(value) == 0 {
		return
	}
	copy(m.store[offset:offset+uint64(len(value))], value)
}

// SetWord writes the big-endian 32-byte form of v at offset.
func (m *Memory) SetWord(offset uint64, v primitives.U256) {
	b := v.Bytes32()
	copy(m.store[offset:offset+wordSize], b[:])
}

// SetByte writes a single byte at offset (MSTORE8).
func (m *Memory) SetByte(offset uint64, b byte) {
	m.store[offset] = b
}

// Get returns a copy of memory at [offset, offset+size). Reading beyond
// the current length returns zero bytes for the missing tail, matching
// the EVM convention that reads never fail and implicitly extend with
// zeros (expansion gas for those bytes must still have been charged by
// the caller before this is reached, per spec: reads also expand memory).
func (m *Memory) Get(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset < uint64(len(m.store)) {
		end := offset + size
		if end > uint64(len(m.store)) {
			end = uint64(len(m.store))
		}
		copy(out, m.store[offset:end])
	}
	return out
}

// GetPtr returns a direct slice into the backing array, valid until the
// next Resize. Used by opcodes (RETURN, CALL input staging) that hand
// memory contents onward without needing an owned copy.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// GetWord reads a 32-byte word at offset as a U256 (MLOAD).
func (m *Memory) GetWord(offset uint64) primitives.U256 {
	var b [32]byte
	copy(b[:], m.store[offset:offset+wordSize])
	return primitives.U256FromBytes(b[:])
}

// Data returns the full backing slice (tracer/debug use only).
func (m *Memory) Data() []byte { return m.store }

// Copy performs an overlap-safe copy within memory (MCOPY, EIP-5656).
func (m *Memory) Copy(dst, src, size uint64) {
	if size == 0 {
		return
	}
	copy(m.store[dst:dst+size], m.store[src:src+size])
}
