package vm

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// programCacheCapacity bounds the number of decoded programs kept
// resident, mirroring the teacher's own code-object cache sizing
// rationale (a fixed entry count trading memory for decode-avoidance
// on repeat executions of the same program).
const programCacheCapacity = 50_000

// ProgramCache memoizes BytecodeMapped decoding by content address, so
// a predicate graph that references the same program from multiple
// nodes (or across solutions in a set) pays the strict-decode cost
// once.
type ProgramCache struct {
	cache *lru.Cache[types.ContentAddress, *BytecodeMapped]
}

// NewProgramCache returns a cache with the default capacity.
func NewProgramCache() *ProgramCache {
	c, err := lru.New[types.ContentAddress, *BytecodeMapped](programCacheCapacity)
	if err != nil {
		// Only returned for a non-positive capacity, which the
		// constant above never supplies.
		panic(err)
	}
	return &ProgramCache{cache: c}
}

// Get returns the decoded form of program, decoding and caching it
// under addr on first use.
func (c *ProgramCache) Get(addr types.ContentAddress, program []byte) (*BytecodeMapped, error) {
	if mapped, ok := c.cache.Get(addr); ok {
		return mapped, nil
	}
	mapped, err := NewBytecodeMapped(program)
	if err != nil {
		return nil, err
	}
	c.cache.Add(addr, mapped)
	return mapped, nil
}
