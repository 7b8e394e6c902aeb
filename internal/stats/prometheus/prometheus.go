// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/chessboard/internal/stats"
)

// help describes the metrics the board emits. Unknown names use the name.
var help = map[string]string{
	stats.MetricCommits:           "Position changes committed by boards.",
	stats.MetricPieces:            "Pieces on the board after the last commit.",
	stats.MetricRenderQueue:       "Render jobs waiting behind an in-flight animation.",
	stats.MetricPlans:             "Animation plans computed.",
	stats.MetricPlanDuration:      "Time spent computing an animation plan.",
	stats.MetricMoves:             "Move transitions planned.",
	stats.MetricAdds:              "Add transitions planned.",
	stats.MetricClears:            "Clear transitions planned.",
	stats.MetricPlanCacheHits:     "Plan cache hits.",
	stats.MetricPlanCacheMisses:   "Plan cache misses.",
	stats.MetricPlanCacheSize:     "Entries in the plan cache.",
	stats.MetricDragsStarted:      "Drags started.",
	stats.MetricDragsVetoed:       "Drags vetoed by the drag-start hook.",
	stats.MetricDrops:             "Drags ending in a drop.",
	stats.MetricSnapbacks:         "Drags ending in a snapback.",
	stats.MetricTrashes:           "Drags ending in a trash.",
	stats.MetricSnapshotsSaved:    "Board snapshots saved.",
	stats.MetricSnapshotsRestored: "Board snapshots restored.",

	stats.MetricSnapshotCacheHits:   "Snapshot loads served from the cache.",
	stats.MetricSnapshotCacheMisses: "Snapshot loads that reached the store.",
	stats.MetricSnapshotCacheSize:   "Entries in the snapshot cache.",
}

func helpFor(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}

// Collector implements stats.Collector using Prometheus metrics.
type Collector struct {
	registry prometheus.Registerer

	mu         sync.RWMutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	counter := getOrCreate(c, c.counters, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: helpFor(name)})
	})
	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	gauge := getOrCreate(c, c.gauges, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: helpFor(name)})
	})
	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram. Plan durations are
// sub-millisecond, so the buckets start at 10µs.
func (c *Collector) ObserveHistogram(name string, value float64) {
	histogram := getOrCreate(c, c.histograms, name, func() prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    helpFor(name),
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		})
	})
	histogram.Observe(value)
}

// getOrCreate returns the metric registered under name, creating and
// registering it on first use. A metric already registered elsewhere under
// the same name is adopted.
func getOrCreate[M prometheus.Collector](c *Collector, metrics map[string]M, name string, create func() M) M {
	c.mu.RLock()
	m, ok := metrics[name]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock.
	if m, ok = metrics[name]; ok {
		return m
	}

	m = create()
	if err := c.registry.Register(m); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(M); ok {
				metrics[name] = existing
				return existing
			}
		}
		// Registration failed but the metric still works unregistered.
	}
	metrics[name] = m
	return m
}
