package vm

import (
	"testing"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

func TestMemory_AllocExtendsLengthWithZeros(t *testing.T) {
	m := NewMemory()
	if err := m.Alloc(4); err != nil {
		t.Fatalf("alloc failed: %v", err)
	}
	if m.Length() != 4 {
		t.Fatalf("expected length 4, got %d", m.Length())
	}
	for i := 0; i < 4; i++ {
		v, err := m.Load(i)
		if err != nil || v != 0 {
			t.Errorf("expected zero at %d, got %d err %v", i, v, err)
		}
	}
}

func TestMemory_Alloc_RejectsOverflow(t *testing.T) {
	m := NewMemory()
	if err := m.Alloc(MemLimit + 1); err != ErrMemoryOverflow {
		t.Fatalf("expected overflow, got %v", err)
	}
	if err := m.Alloc(MemLimit); err != nil {
		t.Fatalf("expected alloc at exactly the limit to succeed, got %v", err)
	}
	if err := m.Alloc(1); err != ErrMemoryOverflow {
		t.Fatalf("expected overflow growing past an already-full memory, got %v", err)
	}
}

func TestMemory_StoreAndLoad(t *testing.T) {
	m := NewMemory()
	_ = m.Alloc(2)
	if err := m.Store(1, 99); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	v, err := m.Load(1)
	if err != nil || v != 99 {
		t.Fatalf("expected 99, got %d err %v", v, err)
	}
	if _, err := m.Load(2); err != ErrMemoryIndexOutOfBounds {
		t.Errorf("expected out of bounds reading past length, got %v", err)
	}
	if err := m.Store(-1, 0); err != ErrMemoryIndexOutOfBounds {
		t.Errorf("expected out of bounds for negative address, got %v", err)
	}
}

func TestMemory_StoreRangeAndLoadRange(t *testing.T) {
	m := NewMemory()
	_ = m.Alloc(5)
	if err := m.StoreRange(1, []types.Word{1, 2, 3}); err != nil {
		t.Fatalf("store_range failed: %v", err)
	}
	got, err := m.LoadRange(1, 3)
	if err != nil {
		t.Fatalf("load_range failed: %v", err)
	}
	want := []types.Word{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: want %d got %d", i, want[i], got[i])
		}
	}

	if _, err := m.LoadRange(4, 3); err != ErrMemoryIndexOutOfBounds {
		t.Errorf("expected out of bounds reading past length, got %v", err)
	}
}

func TestMemory_Free_TruncatesLength(t *testing.T) {
	m := NewMemory()
	_ = m.Alloc(10)
	if err := m.Free(4); err != nil {
		t.Fatalf("free failed: %v", err)
	}
	if m.Length() != 4 {
		t.Fatalf("expected length 4, got %d", m.Length())
	}
	if err := m.Free(5); err != ErrMemoryFreePastLength {
		t.Errorf("expected error freeing past current length, got %v", err)
	}
}
