package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// StateReader resolves a sequential scan of state values starting at
// key, for one contract, returning at most numValues entries (spec
// §4.9). An empty inner slice denotes "no value at that key". The
// reader may return fewer than numValues entries; callers must cope.
type StateReader interface {
	KeyRange(contract types.ContentAddress, key types.Key, numValues int) ([][]types.Word, error)
}

// ReadOrFallback composes a post-state and a pre-state reader: it
// returns post-state entries where present and falls back to
// pre-state otherwise (spec §4.9, "used in contexts where the
// 'effective' state after the proposed mutations is needed").
type ReadOrFallback struct {
	Post StateReader
	Pre  StateReader
}

func (r ReadOrFallback) KeyRange(contract types.ContentAddress, key types.Key, numValues int) ([][]types.Word, error) {
	post, err := r.Post.KeyRange(contract, key, numValues)
	if err != nil {
		return nil, err
	}
	pre, err := r.Pre.KeyRange(contract, key, numValues)
	if err != nil {
		return nil, err
	}
	out := make([][]types.Word, numValues)
	for i := 0; i < numValues; i++ {
		if i < len(post) && len(post[i]) > 0 {
			out[i] = post[i]
			continue
		}
		if i < len(pre) {
			out[i] = pre[i]
		}
	}
	return out, nil
}

// keyRange pops a memory address dst, a count n, and a length-prefixed
// key, calls reader.KeyRange, then writes an index table of (value_addr,
// value_len) pairs followed by the densely packed values into memory
// starting at dst (spec §4.9).
func keyRange(reader StateReader, contract types.ContentAddress, s *Stack, m *Memory) error {
	dstW, err := s.Pop()
	if err != nil {
		return err
	}
	nW, err := s.Pop()
	if err != nil {
		return err
	}
	if dstW < 0 || nW < 0 {
		return ErrAccessNegativeIndex
	}
	dst := int(dstW)
	n := int(nW)

	var key types.Key
	err = s.PopLenWords(func(words []types.Word) error {
		key = append(types.Key(nil), words...)
		return nil
	})
	if err != nil {
		return err
	}

	values, err := reader.KeyRange(contract, key, n)
	if err != nil {
		return StateReadError{Err: err}
	}

	return writeKeyRangeResult(m, dst, n, values)
}

// writeKeyRangeResult lays out the index table (n pairs of
// (value_addr, value_len)) followed by the concatenated values,
// densely packed immediately after the table.
func writeKeyRangeResult(m *Memory, dst, n int, values [][]types.Word) error {
	tableLen := 2 * n
	if err := growMemoryTo(m, dst+tableLen); err != nil {
		return err
	}

	cursor := dst + tableLen
	for i := 0; i < n; i++ {
		var vals []types.Word
		if i < len(values) {
			vals = values[i]
		}
		valueAddr := cursor
		valueLen := len(vals)
		if valueLen == 0 {
			valueAddr = 0
		} else {
			if err := growMemoryTo(m, cursor+valueLen); err != nil {
				return err
			}
			if err := m.StoreRange(cursor, vals); err != nil {
				return err
			}
			cursor += valueLen
		}
		if err := m.Store(dst+2*i, types.Word(valueAddr)); err != nil {
			return err
		}
		if err := m.Store(dst+2*i+1, types.Word(valueLen)); err != nil {
			return err
		}
	}
	return nil
}

// keyRangeExtern is identical to keyRange except the contract address
// is also popped (4 words) and passed to the reader instead of the
// currently executing predicate's contract (spec §4.9).
func keyRangeExtern(reader StateReader, s *Stack, m *Memory) error {
	ca, cb, cc, cd, err := s.Pop4()
	if err != nil {
		return err
	}
	contract := types.ContentAddress(types.U8x32FromWord4([4]types.Word{ca, cb, cc, cd}))
	return keyRange(reader, contract, s, m)
}

func growMemoryTo(m *Memory, size int) error {
	if m.Length() >= size {
		return nil
	}
	return m.Alloc(size - m.Length())
}
