// Package predicate holds the predicate DAG data model, its on-wire
// CSR encoding, load-time structural validation, and the graph runner
// that composes per-node VM executions into a solution verdict (spec
// §4.6, §4.12). Grounded on the node/edge layout in spec.md §3 and on
// the teacher's own arena-style graph representations (index-based
// children rather than heap pointers).
package predicate

import "github.com/essential-contributions/essential-base-sub001/go/types"

// ReadsFlag selects whether a node consults pre- or post-mutation
// state (spec §3: "reads flag ∈ {Pre, Post}").
type ReadsFlag uint8

const (
	ReadsPre  ReadsFlag = 0
	ReadsPost ReadsFlag = 1
)

// leafSentinel marks a node with no children (spec §3: "sentinel
// u16::MAX denotes a leaf").
const leafSentinel = 0xFFFF

// MaxNodes is the largest node count a predicate may declare (spec §3:
// "the number of nodes ≤ 65 535").
const MaxNodes = 65535

// MaxPredicatesPerContract bounds how many predicates one contract may
// reference (spec §4.12 step 1: "MAX_PREDICATES ≤ 100 per contract").
const MaxPredicatesPerContract = 100

// Node is one predicate-graph vertex: the program it runs, the state
// view it reads, and a CSR-style pointer into the shared edge list.
type Node struct {
	ProgramAddress types.ContentAddress
	EdgeStart      uint16
	Reads          ReadsFlag
}

// IsLeaf reports whether a node has no children.
func (n Node) IsLeaf() bool { return n.EdgeStart == leafSentinel }

// Predicate is the node/edge DAG itself, in CSR form: node i's
// children start at edges[nodes[i].EdgeStart] and end at the EdgeStart
// of the next non-leaf node, or at len(edges) if none follows (spec
// §3; see ChildrenOf).
type Predicate struct {
	Nodes []Node
	Edges []uint16
}

// ChildrenOf returns node i's child indices. Leaf nodes store the
// sentinel edge_start rather than a running edge-list offset, so the
// end of a non-leaf node's span is found by scanning forward past any
// run of leaf nodes to the next node that declares a real edge_start
// (or the end of the edge list, if none remain).
func (p *Predicate) ChildrenOf(i int) []uint16 {
	n := p.Nodes[i]
	if n.IsLeaf() {
		return nil
	}
	end := uint16(len(p.Edges))
	for j := i + 1; j < len(p.Nodes); j++ {
		if !p.Nodes[j].IsLeaf() {
			end = p.Nodes[j].EdgeStart
			break
		}
	}
	return p.Edges[n.EdgeStart:end]
}
