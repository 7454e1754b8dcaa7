// Package status keeps process-wide telemetry for classification runs
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry groups typed metric maps
// Producers cache pointers once at construction and write atomics afterwards
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Gauges  *MetricMap[Gauge]
	Recents *MetricMap[Recent]
	Sets    *MetricMap[CounterSet]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Gauges:  NewMetricMap[Gauge](),
		Recents: NewMetricMap[Recent](),
		Sets:    NewMetricMap[CounterSet](),
	}
}

// CounterSet returns the set registered under name, creating it with names on first use
// Later calls get the original set regardless of names
func (r *Registry) CounterSet(name string, names ...string) *CounterSet {
	return r.Sets.GetOr(name, func() *CounterSet { return NewCounterSet(names...) })
}

// TotalCount returns the number of registered metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Gauges.Count() + r.Recents.Count() + r.Sets.Count()
}

// Snapshot renders every metric as a string keyed by name
// Gauges add a ".peak" entry and counter sets expand to "<set>.<name>"
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = fmt.Sprintf("%d", v.Load())
	})
	r.Gauges.Range(func(k string, v *Gauge) {
		out[k] = fmt.Sprintf("%.2f", v.Get())
		out[k+".peak"] = fmt.Sprintf("%.2f", v.Peak())
	})
	r.Recents.Range(func(k string, v *Recent) {
		out[k] = strings.Join(v.All(), " ; ")
	})
	r.Sets.Range(func(k string, v *CounterSet) {
		v.Range(func(name string, n int64) {
			out[k+"."+name] = fmt.Sprintf("%d", n)
		})
	})
	return out
}
