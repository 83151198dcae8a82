// Package hash computes the SHA-256 content addresses used throughout
// the system: programs, contracts, predicates, solutions and solution
// sets. The PredicateExists fingerprint is computed in go/solution
// (Fingerprint), not here. Every layout here is big-endian and
// length-prefixed exactly as fixed by spec §6, grounded on
// original_source/crates/hash.
package hash

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// ProgramAddress computes the content address of a program: SHA-256 of
// a u16 length prefix followed by the raw bytes (spec §6, "Program
// encoding").
func ProgramAddress(program []byte) types.ContentAddress {
	var buf bytes.Buffer
	var lenPrefix [2]byte
	binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(program)))
	buf.Write(lenPrefix[:])
	buf.Write(program)
	return sha256.Sum256(buf.Bytes())
}

// PredicateAddress computes the content address of an already-encoded
// predicate (its on-wire CSR encoding, see go/predicate).
func PredicateAddress(encodedPredicate []byte) types.ContentAddress {
	return sha256.Sum256(encodedPredicate)
}

// ContractAddress computes a contract's content address: SHA-256 over
// the concatenation of its predicates' content addresses sorted
// ascending lexicographically, followed by a 32-byte salt (spec §6).
func ContractAddress(predicateAddrs []types.ContentAddress, salt [32]byte) types.ContentAddress {
	sorted := make([]types.ContentAddress, len(predicateAddrs))
	copy(sorted, predicateAddrs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	var buf bytes.Buffer
	for _, a := range sorted {
		buf.Write(a[:])
	}
	buf.Write(salt[:])
	return sha256.Sum256(buf.Bytes())
}

// SolutionAddress computes the content address of a solution: SHA-256
// of its canonical byte encoding (see go/solution.CanonicalBytes).
func SolutionAddress(canonicalSolutionBytes []byte) types.ContentAddress {
	return sha256.Sum256(canonicalSolutionBytes)
}

// SolutionSetAddress computes the content address of a solution set:
// SHA-256 over the sorted concatenation of its solutions' content
// addresses.
func SolutionSetAddress(solutionAddrs []types.ContentAddress) types.ContentAddress {
	sorted := make([]types.ContentAddress, len(solutionAddrs))
	copy(sorted, solutionAddrs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	var buf bytes.Buffer
	for _, a := range sorted {
		buf.Write(a[:])
	}
	return sha256.Sum256(buf.Bytes())
}
