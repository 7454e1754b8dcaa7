package status

import (
	"math"
	"sync/atomic"
)

// Gauge holds the last observed value and the highest one seen
// Zero value reads 0 for both; non-finite values never raise the peak
type Gauge struct {
	last atomic.Uint64
	peak atomic.Uint64
}

// Set records val as the latest observation
func (g *Gauge) Set(val float64) {
	g.last.Store(math.Float64bits(val))
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return
	}
	for {
		old := g.peak.Load()
		if val <= math.Float64frombits(old) {
			return
		}
		if g.peak.CompareAndSwap(old, math.Float64bits(val)) {
			return
		}
	}
}

// Get returns the latest observation
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.last.Load())
}

// Peak returns the largest finite observation
func (g *Gauge) Peak() float64 {
	return math.Float64frombits(g.peak.Load())
}
