// Package lru implements an LRU eviction strategy for cached plans.
package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/chessboard/internal/plan"
	"github.com/discochess/chessboard/internal/plan/plancache"
)

// Compile-time check that Strategy implements plancache.Strategy.
var _ plancache.Strategy = (*Strategy)(nil)

// Strategy implements LRU eviction.
type Strategy struct {
	cache *lru.Cache[string, []plan.Step]
}

// New creates a new LRU strategy with the given capacity.
func New(capacity int) (*Strategy, error) {
	c, err := lru.New[string, []plan.Step](capacity)
	if err != nil {
		return nil, err
	}
	return &Strategy{cache: c}, nil
}

// Get retrieves the plan stored under key.
func (s *Strategy) Get(key string) ([]plan.Step, bool) {
	return s.cache.Get(key)
}

// Add stores a plan, reporting whether an entry was evicted.
func (s *Strategy) Add(key string, steps []plan.Step) bool {
	return s.cache.Add(key, steps)
}

// Len returns the number of cached plans.
func (s *Strategy) Len() int {
	return s.cache.Len()
}
