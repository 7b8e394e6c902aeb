// Package plancache memoises animation plans.
//
// Boards that replay the same games, or flip between a handful of
// positions, ask for identical plans over and over. The cache key is the
// canonical notation of both positions, so equal positions share an entry
// regardless of how they were built.
package plancache

import (
	"sync/atomic"

	"github.com/discochess/chessboard/internal/fen"
	"github.com/discochess/chessboard/internal/plan"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/position"
)

// Strategy defines the eviction strategy holding cached plans.
type Strategy interface {
	Get(key string) ([]plan.Step, bool)
	Add(key string, steps []plan.Step) bool
	Len() int
}

// Stats contains cache statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int // Current number of entries
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Planner computes plans through a cache. It is safe for concurrent use if
// the strategy is.
type Planner struct {
	strategy  Strategy
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a caching planner over the given strategy.
// The collector is optional; if nil, a no-op collector is used.
func New(strategy Strategy, collector stats.Collector) *Planner {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Planner{
		strategy:  strategy,
		collector: collector,
	}
}

// Plan returns plan.Plan(from, to), served from the cache when possible.
// The returned slice is never shared with the cache.
func (p *Planner) Plan(from, to position.Position) []plan.Step {
	key, ok := cacheKey(from, to)
	if !ok {
		return plan.Plan(from, to)
	}

	if steps, ok := p.strategy.Get(key); ok {
		p.hits.Add(1)
		p.collector.IncCounter(stats.MetricPlanCacheHits, 1)
		return clone(steps)
	}

	p.misses.Add(1)
	p.collector.IncCounter(stats.MetricPlanCacheMisses, 1)

	steps := plan.Plan(from, to)
	p.strategy.Add(key, clone(steps))
	p.collector.SetGauge(stats.MetricPlanCacheSize, int64(p.strategy.Len()))
	return steps
}

// Stats returns current cache statistics.
func (p *Planner) Stats() Stats {
	return Stats{
		Hits:   p.hits.Load(),
		Misses: p.misses.Load(),
		Size:   p.strategy.Len(),
	}
}

// cacheKey returns the key for a pair of positions. Positions that cannot
// be encoded are not cached.
func cacheKey(from, to position.Position) (string, bool) {
	a, err := fen.Encode(from)
	if err != nil {
		return "", false
	}
	b, err := fen.Encode(to)
	if err != nil {
		return "", false
	}
	return a + "|" + b, true
}

func clone(steps []plan.Step) []plan.Step {
	if steps == nil {
		return nil
	}
	out := make([]plan.Step, len(steps))
	copy(out, steps)
	return out
}
