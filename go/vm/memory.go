package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// MemLimit is the maximum number of words memory may hold at once
// (spec §3: "capacity ≤ MEM_LIMIT = 10 240").
const MemLimit = 10240

// Memory is the word-addressable linear memory backing the Memory op
// family. Unlike the Stack it grows dynamically (bounded by MemLimit)
// rather than living in a fixed array, since allocation size is
// program-controlled and need not reach capacity. Modeled on the
// teacher's own Memory type (a thin wrapper over a backing slice with
// explicit bounds-checked accessors), simplified from EVM's
// byte-addressed, gas-priced expansion model to the predicate VM's
// word-addressed, fixed-limit alloc/free model.
type Memory struct {
	store []types.Word
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Length returns the current logical length, in words.
func (m *Memory) Length() int {
	return len(m.store)
}

// Alloc extends the logical length by n zero-initialised words.
func (m *Memory) Alloc(n int) error {
	if n < 0 {
		return ErrMemoryIndexOutOfBounds
	}
	if len(m.store)+n > MemLimit {
		return ErrMemoryOverflow
	}
	m.store = append(m.store, make([]types.Word, n)...)
	return nil
}

// Free truncates the logical length to newLen.
func (m *Memory) Free(newLen int) error {
	if newLen < 0 || newLen > len(m.store) {
		return ErrMemoryFreePastLength
	}
	m.store = m.store[:newLen]
	return nil
}

// Store writes v at addr.
func (m *Memory) Store(addr int, v types.Word) error {
	if addr < 0 || addr >= len(m.store) {
		return ErrMemoryIndexOutOfBounds
	}
	m.store[addr] = v
	return nil
}

// Load reads the word at addr.
func (m *Memory) Load(addr int) (types.Word, error) {
	if addr < 0 || addr >= len(m.store) {
		return 0, ErrMemoryIndexOutOfBounds
	}
	return m.store[addr], nil
}

// StoreRange writes ws starting at addr.
func (m *Memory) StoreRange(addr int, ws []types.Word) error {
	if addr < 0 {
		return ErrMemoryIndexOutOfBounds
	}
	end := addr + len(ws)
	if end < addr || end > len(m.store) {
		return ErrMemoryIndexOutOfBounds
	}
	copy(m.store[addr:end], ws)
	return nil
}

// LoadRange reads n words starting at addr.
func (m *Memory) LoadRange(addr, n int) ([]types.Word, error) {
	if addr < 0 || n < 0 {
		return nil, ErrMemoryIndexOutOfBounds
	}
	end := addr + n
	if end < addr || end > len(m.store) {
		return nil, ErrMemoryIndexOutOfBounds
	}
	out := make([]types.Word, n)
	copy(out, m.store[addr:end])
	return out, nil
}
