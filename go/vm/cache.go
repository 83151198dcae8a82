package vm

import (
	"sync"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// LazyCache is a per-solution-set, write-once container for derived
// data that is expensive to compute but cheap to share: the first
// caller computes it, every later caller observes the same result
// (spec §4.13, §9 "LazyCache ... no need for full reader-writer
// locking"). Grounded on the single-writer-guarantee rationale behind
// Rust's OnceLock, expressed in Go with sync.Once over a settled
// value.
type LazyCache struct {
	once sync.Once
	val  map[types.ContentAddress]struct{}
}

// FingerprintsFunc computes the fingerprint set for a solution set on
// first demand. It is supplied by the graph runner so that go/vm does
// not import go/solution directly (avoiding an import cycle between
// the op-execution layer and the data-model layer it is parameterized
// over).
type FingerprintsFunc func() map[types.ContentAddress]struct{}

// Contains reports whether hash is a known fingerprint, computing the
// full fingerprint set via compute on the first call from any caller
// and reusing it on every subsequent call.
func (c *LazyCache) Contains(compute FingerprintsFunc, hash types.ContentAddress) bool {
	c.once.Do(func() {
		c.val = compute()
	})
	_, ok := c.val[hash]
	return ok
}
