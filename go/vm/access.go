package vm

import (
	"crypto/sha256"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// fingerprintOf hashes a raw word blob exactly as popped from the
// stack by PredicateExists: the caller is responsible for having
// pushed the blob in the canonical layout spec §4.13 defines —
// (slot_len:Word || slot_words...) repeated per predicate-data slot,
// followed by the contract address bytes and the predicate address
// bytes, matching solution.Fingerprint byte-for-byte.
func fingerprintOf(words []types.Word) types.ContentAddress {
	return sha256.Sum256(bytesFromWords(words))
}

// Access is the per-node read-only view into witness data, ancestor
// memories, and solution-set-wide derived data that the Access opcode
// family consumes (spec §4.8, §4.12 point 2: "Build an Access view").
// The graph runner constructs one per node execution, since PreSlots
// and PostSlots differ from node to node.
type Access struct {
	// PredicateData is the solution's witness binding.
	PredicateData [][]types.Word

	// PreSlots and PostSlots are the finalized memories of ancestor
	// nodes, partitioned by their declared reads flag (spec §4.12
	// point 4: "each node receives read-only references to the
	// finalized memories of its ancestors").
	PreSlots  [][]types.Word
	PostSlots [][]types.Word

	// MutKeys is the union of state-mutation keys across every
	// solution in the set (spec §4.8: "MutKeys writes the solution's
	// set of mutated keys onto the stack").
	MutKeys []types.Key

	ThisAddress         types.ContentAddress
	ThisContractAddress types.ContentAddress

	// Fingerprints reports whether hash is a known solution
	// fingerprint in this solution set, backed by the set's
	// LazyCache (spec §4.13).
	Fingerprints func(hash types.ContentAddress) bool
}

func accessPredicateData(a *Access, slotIx, valueIx, length int) ([]types.Word, error) {
	if slotIx < 0 || valueIx < 0 || length < 0 {
		return nil, ErrAccessNegativeIndex
	}
	if slotIx >= len(a.PredicateData) {
		return nil, ErrAccessOutOfBounds
	}
	slot := a.PredicateData[slotIx]
	end := valueIx + length
	if end < valueIx || end > len(slot) {
		return nil, ErrAccessOutOfBounds
	}
	return slot[valueIx:end], nil
}

func accessPredicateDataLen(a *Access, slotIx int) (int, error) {
	if slotIx < 0 {
		return 0, ErrAccessNegativeIndex
	}
	if slotIx >= len(a.PredicateData) {
		return 0, ErrAccessOutOfBounds
	}
	return len(a.PredicateData[slotIx]), nil
}

// NumSlots "which" selector values (spec §4.8).
const (
	NumSlotsPredicateData = 0
	NumSlotsPreState      = 1
	NumSlotsPostState     = 2
)

func accessNumSlots(a *Access, which int) (int, error) {
	switch which {
	case NumSlotsPredicateData:
		return len(a.PredicateData), nil
	case NumSlotsPreState:
		return len(a.PreSlots), nil
	case NumSlotsPostState:
		return len(a.PostSlots), nil
	default:
		return 0, ErrAccessOutOfBounds
	}
}

// encodeKeySet serialises MutKeys as a concatenation of
// length-prefixed key-word spans, matching the EqSet member encoding
// so both sides of a later EqSet can consume it uniformly. It adds no
// overall length prefix; the MutKeys op pushes that after the words.
func encodeKeySet(keys []types.Key) []types.Word {
	var out []types.Word
	for _, k := range keys {
		out = append(out, types.Word(len(k)))
		out = append(out, k...)
	}
	return out
}

func accessThisAddress(a *Access) [4]types.Word {
	return types.Word4FromU8x32(a.ThisAddress)
}

func accessThisContractAddress(a *Access) [4]types.Word {
	return types.Word4FromU8x32(a.ThisContractAddress)
}

// accessPredicateExists pops a length-prefixed blob interpreted as
// (predicate_data || contract || predicate) and reports whether its
// SHA-256 is a known solution fingerprint (spec §4.8, §4.13).
func accessPredicateExists(a *Access, s *Stack) error {
	var found bool
	err := s.PopLenWords(func(words []types.Word) error {
		hash := fingerprintOf(words)
		found = a.Fingerprints(hash)
		return nil
	})
	if err != nil {
		return err
	}
	return s.Push(boolWord(found))
}
