package classifier

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/logging"
	"github.com/lixenwraith/killctx/status"
)

// Classifier wraps Classify with diagnostics and telemetry
// It holds no per-call state and may be shared
type Classifier struct {
	log   *zap.Logger
	stats *stats
}

// Option configures a Classifier
type Option func(*Classifier)

// WithLogger routes verbose trace lines to l
func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) {
		c.log = l
	}
}

// WithStatus records classification counters into reg
func WithStatus(reg *status.Registry) Option {
	return func(c *Classifier) {
		if reg != nil {
			c.stats = newStats(reg)
		}
	}
}

// New creates a Classifier
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrNop(c.log).Named("classifier")
	return c
}

// Classify returns the same result as the package-level Classify
func (c *Classifier) Classify(cfg Config, ev Event) ContextModifiers {
	return evaluate(cfg, ev, c.log, c.stats)
}

// Metric names written by a Classifier
const (
	MetricCount          = "classify.count"
	MetricFallbacks      = "classify.fallbacks"
	MetricPanics         = "classify.panics"
	MetricRegionErrors   = "classify.region_errors"
	MetricAccessorErrors = "classify.accessor_errors"

	// MetricDistance is a gauge; its peak is the longest kill seen
	MetricDistance = "classify.distance"

	// MetricRecentContexts holds the context sets of the latest kills
	MetricRecentContexts = "classify.recent_contexts"

	// MetricContexts counts kills per context, one entry per context name
	MetricContexts = "classify.context"
)

// stats caches metric pointers; a nil *stats records nothing
type stats struct {
	count          *atomic.Int64
	fallbacks      *atomic.Int64
	panics         *atomic.Int64
	regionErrors   *atomic.Int64
	accessorErrors *atomic.Int64
	distance       *status.Gauge
	recent         *status.Recent
	perContext     *status.CounterSet
}

func newStats(reg *status.Registry) *stats {
	return &stats{
		count:          reg.Ints.Get(MetricCount),
		fallbacks:      reg.Ints.Get(MetricFallbacks),
		panics:         reg.Ints.Get(MetricPanics),
		regionErrors:   reg.Ints.Get(MetricRegionErrors),
		accessorErrors: reg.Ints.Get(MetricAccessorErrors),
		distance:       reg.Gauges.Get(MetricDistance),
		recent:         reg.Recents.Get(MetricRecentContexts),
		perContext:     reg.CounterSet(MetricContexts, contextNames[:]...),
	}
}

func (s *stats) record(m *ContextModifiers) {
	if s == nil {
		return
	}
	s.count.Add(1)
	s.distance.Set(m.TargetDistance)
	s.recent.Push(m.TriggeredContexts.String())
	s.perContext.AddMask(uint64(m.TriggeredContexts))
}

func (s *stats) recordFallback() {
	if s == nil {
		return
	}
	s.count.Add(1)
	s.fallbacks.Add(1)
}

func (s *stats) recordPanic() {
	if s == nil {
		return
	}
	s.panics.Add(1)
}

func (s *stats) recordRegionError() {
	if s == nil {
		return
	}
	s.regionErrors.Add(1)
}

func (s *stats) recordAccessorError() {
	if s == nil {
		return
	}
	s.accessorErrors.Add(1)
}
