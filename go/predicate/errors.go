package predicate

import (
	"fmt"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

const (
	ErrTruncated        = types.ConstError("predicate: truncated encoding")
	ErrTrailingBytes    = types.ConstError("predicate: trailing bytes after decode")
	ErrInvalidReadsFlag = types.ConstError("predicate: reads flag not in {0,1}")

	ErrTooManyNodes        = types.ConstError("predicate: node count exceeds MAX_NODES")
	ErrTooManyPredicates   = types.ConstError("predicate: contract exceeds MAX_PREDICATES")
	ErrEdgeOutOfRange      = types.ConstError("predicate: edge index out of range")
	ErrNoRoot              = types.ConstError("predicate: no root node")
	ErrMultipleRoots       = types.ConstError("predicate: more than one root node")
	ErrCycle               = types.ConstError("predicate: graph contains a cycle")
	ErrConstraintViolation = types.ConstError("predicate: leaf program uses an opcode outside the Constraint subset")
	ErrEmptyPredicate      = types.ConstError("predicate: no nodes")
)

// NodeError wraps any node-level failure with the index of the
// predicate-graph node that produced it (spec §4.15: "every program
// error is wrapped as Program(node_index, ...)").
type NodeError struct {
	NodeIndex int
	Err       error
}

func (e NodeError) Error() string { return fmt.Sprintf("node %d: %v", e.NodeIndex, e.Err) }
func (e NodeError) Unwrap() error { return e.Err }

// SolutionError wraps any solution-level failure with the index of the
// solution that produced it (spec §4.15: "every solution error is
// wrapped as Solution(solution_index, ...)").
type SolutionError struct {
	SolutionIndex int
	Err           error
}

func (e SolutionError) Error() string {
	return fmt.Sprintf("solution %d: %v", e.SolutionIndex, e.Err)
}
func (e SolutionError) Unwrap() error { return e.Err }
