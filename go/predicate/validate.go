package predicate

import (
	"github.com/essential-contributions/essential-base-sub001/go/types"
	"github.com/essential-contributions/essential-base-sub001/go/vm"
)

// ProgramResolver looks up a program's raw bytes by its content
// address (spec §4.12: "a program resolver fn(ContentAddress) ->
// Program").
type ProgramResolver func(types.ContentAddress) ([]byte, error)

// Validate performs the load-time structural checks spec §4.12 step 1
// and §9 require before a predicate may be executed: node/edge bounds,
// exactly one root, acyclic, and Constraint-subset enforcement for
// every leaf program.
func Validate(p *Predicate, resolvePredicateProgram ProgramResolver) error {
	if len(p.Nodes) == 0 {
		return ErrEmptyPredicate
	}
	if len(p.Nodes) > MaxNodes {
		return ErrTooManyNodes
	}
	for _, e := range p.Edges {
		if int(e) >= len(p.Nodes) {
			return ErrEdgeOutOfRange
		}
	}

	root, err := findRoot(p)
	if err != nil {
		return err
	}

	if err := detectCycle(p, root); err != nil {
		return err
	}

	for i, n := range p.Nodes {
		if !n.IsLeaf() {
			continue
		}
		program, err := resolvePredicateProgram(n.ProgramAddress)
		if err != nil {
			return NodeError{NodeIndex: i, Err: err}
		}
		if err := checkConstraintSubset(program); err != nil {
			return NodeError{NodeIndex: i, Err: err}
		}
	}
	return nil
}

// CheckPredicateCount enforces MAX_PREDICATES on a contract's
// predicate list (spec §4.12 step 1). It is a separate entry point
// from Validate because the bound is per-contract, not per-predicate:
// callers that register a contract's full predicate set call this
// once, before any individual Validate call.
func CheckPredicateCount(numPredicates int) error {
	if numPredicates > MaxPredicatesPerContract {
		return ErrTooManyPredicates
	}
	return nil
}

// findRoot returns the single node index that is nobody's child. More
// than one, or none, is a structural error.
func findRoot(p *Predicate) (int, error) {
	hasParent := make([]bool, len(p.Nodes))
	for i := range p.Nodes {
		for _, c := range p.ChildrenOf(i) {
			hasParent[c] = true
		}
	}
	root := -1
	for i, has := range hasParent {
		if has {
			continue
		}
		if root != -1 {
			return 0, ErrMultipleRoots
		}
		root = i
	}
	if root == -1 {
		return 0, ErrNoRoot
	}
	return root, nil
}

// detectCycle performs a DFS from root, rejecting any back edge (spec
// §9: "Detecting cycles at load time is straightforward: perform a DFS
// from the root and reject any back edge").
func detectCycle(p *Predicate, root int) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(p.Nodes))

	var visit func(i int) error
	visit = func(i int) error {
		state[i] = visiting
		for _, c := range p.ChildrenOf(i) {
			switch state[c] {
			case visiting:
				return ErrCycle
			case unvisited:
				if err := visit(int(c)); err != nil {
					return err
				}
			}
		}
		state[i] = done
		return nil
	}
	return visit(root)
}

// checkConstraintSubset strictly decodes program and rejects it if any
// instruction falls outside the Constraint subset (spec §4.6, §9:
// "Programs declared as leaf constraints must be rejected at load time
// if they use any non-total opcode").
func checkConstraintSubset(program []byte) error {
	mapped, err := vm.NewBytecodeMapped(program)
	if err != nil {
		return err
	}
	for i := 0; i < mapped.Len(); i++ {
		if !mapped.OpAt(i).InConstraintSubset() {
			return ErrConstraintViolation
		}
	}
	return nil
}
