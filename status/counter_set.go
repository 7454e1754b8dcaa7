package status

import (
	"math/bits"
	"sync/atomic"
)

// CounterSet is a fixed group of counters addressed by index, one per bit of a flag set
type CounterSet struct {
	names  []string
	counts []atomic.Int64
}

// NewCounterSet creates one counter per name; index i pairs with bit 1<<i
func NewCounterSet(names ...string) *CounterSet {
	return &CounterSet{
		names:  append([]string(nil), names...),
		counts: make([]atomic.Int64, len(names)),
	}
}

// AddMask increments the counter of every set bit; bits beyond the names are ignored
func (c *CounterSet) AddMask(mask uint64) {
	for mask != 0 {
		i := bits.TrailingZeros64(mask)
		if i >= len(c.counts) {
			return
		}
		c.counts[i].Add(1)
		mask &= mask - 1
	}
}

// Load returns the count for name, 0 when unknown
func (c *CounterSet) Load(name string) int64 {
	for i, n := range c.names {
		if n == name {
			return c.counts[i].Load()
		}
	}
	return 0
}

// Range calls fn for each counter in index order
func (c *CounterSet) Range(fn func(name string, count int64)) {
	for i, n := range c.names {
		fn(n, c.counts[i].Load())
	}
}
