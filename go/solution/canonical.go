package solution

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/essential-contributions/essential-base-sub001/go/hash"
	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// CanonicalBytes produces the canonical byte encoding of a solution
// used solely for content addressing (spec §6: "a solution's content
// address is SHA-256 of its canonical serialization"). This is
// intentionally narrower than a full wire codec — wire serialization
// of solutions is out of scope per spec.md §1 — it exists only to make
// hashing well defined and deterministic.
func CanonicalBytes(sol Solution) []byte {
	var buf bytes.Buffer
	buf.Write(sol.PredicateToSolve.Contract[:])
	buf.Write(sol.PredicateToSolve.Predicate[:])
	writeWordSlices(&buf, sol.PredicateData)
	writeUint16(&buf, len(sol.StateMutations))
	for _, m := range sol.StateMutations {
		writeWordSlice(&buf, m.Key)
		writeWordSlice(&buf, m.Value)
	}
	return buf.Bytes()
}

// Address computes the solution's content address.
func Address(sol Solution) types.ContentAddress {
	return hash.SolutionAddress(CanonicalBytes(sol))
}

// SetAddress computes the solution set's content address: SHA-256 over
// the sorted concatenation of per-solution content addresses.
func SetAddress(set SolutionSet) types.ContentAddress {
	addrs := make([]types.ContentAddress, len(set))
	for i, sol := range set {
		addrs[i] = Address(sol)
	}
	return hash.SolutionSetAddress(addrs)
}

// Fingerprint computes the PredicateExists fingerprint for a single
// solution: SHA-256 over the concatenation of (slot_len:Word ||
// slot_words...) for every predicate-data slot, followed by the
// contract address bytes and the predicate address bytes (spec §4.13:
// "canonical byte layout is (concatenation of (slot_len:Word ||
// slot_words…)) || contract_addr_bytes || predicate_addr_bytes, each
// word big-endian"). There is no overall slot-count prefix: the layout
// exists only to make hashing well defined, not to be decoded back.
func Fingerprint(sol Solution) types.ContentAddress {
	var buf bytes.Buffer
	for _, slot := range sol.PredicateData {
		lenWord := types.BytesFromWord(types.Word(len(slot)))
		buf.Write(lenWord[:])
		for _, w := range slot {
			wb := types.BytesFromWord(w)
			buf.Write(wb[:])
		}
	}
	buf.Write(sol.PredicateToSolve.Contract[:])
	buf.Write(sol.PredicateToSolve.Predicate[:])
	return sha256.Sum256(buf.Bytes())
}

// Fingerprints computes the PredicateExists fingerprint for every
// solution in the set.
func Fingerprints(set SolutionSet) map[types.ContentAddress]struct{} {
	out := make(map[types.ContentAddress]struct{}, len(set))
	for _, sol := range set {
		out[Fingerprint(sol)] = struct{}{}
	}
	return out
}

func writeWordSlices(buf *bytes.Buffer, slots [][]types.Word) {
	writeUint16(buf, len(slots))
	for _, slot := range slots {
		writeWordSlice(buf, slot)
	}
}

func writeWordSlice(buf *bytes.Buffer, words []types.Word) {
	writeUint16(buf, len(words))
	for _, w := range words {
		wb := types.BytesFromWord(w)
		buf.Write(wb[:])
	}
}

func writeUint16(buf *bytes.Buffer, n int) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(n))
	buf.Write(b[:])
}
