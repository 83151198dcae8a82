// Package solution holds the Solution and SolutionSet data model: a
// witness binding (predicate data) and proposed state mutations for a
// predicate, grouped into the ordered set that is checked together.
// Grounded on original_source/crates/types/src/solution.rs, adapted to
// the DAG-based predicate model of spec.md.
package solution

import "github.com/essential-contributions/essential-base-sub001/go/types"

// Mutation is a single proposed state change: an empty Value means
// "delete the key".
type Mutation struct {
	Key   types.Key
	Value []types.Word
}

// Solution is a witness binding and a set of proposed mutations for a
// single predicate.
type Solution struct {
	PredicateToSolve types.PredicateAddress
	PredicateData    [][]types.Word
	StateMutations   []Mutation
}

// SolutionSet is an ordered group of solutions checked together.
type SolutionSet []Solution

// MutableKeys returns the set of all keys mutated by any solution in
// the set, keyed by their canonical string form so it can be used as a
// Go map key.
func (set SolutionSet) MutableKeys() map[string]types.Key {
	out := make(map[string]types.Key)
	for _, sol := range set {
		for _, m := range sol.StateMutations {
			out[keyString(m.Key)] = m.Key
		}
	}
	return out
}

func keyString(k types.Key) string {
	b := make([]byte, 0, len(k)*8)
	for _, w := range k {
		wb := types.BytesFromWord(w)
		b = append(b, wb[:]...)
	}
	return string(b)
}
