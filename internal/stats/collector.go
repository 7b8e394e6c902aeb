// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Board metrics.
	MetricCommits     = "chessboard_commits_total"
	MetricPieces      = "chessboard_pieces"
	MetricRenderQueue = "chessboard_render_queue_length"

	// Planner metrics.
	MetricPlans        = "chessboard_plans_total"
	MetricPlanDuration = "chessboard_plan_duration_seconds"
	MetricMoves        = "chessboard_transitions_move_total"
	MetricAdds         = "chessboard_transitions_add_total"
	MetricClears       = "chessboard_transitions_clear_total"

	// Plan cache metrics.
	MetricPlanCacheHits   = "chessboard_plan_cache_hits_total"
	MetricPlanCacheMisses = "chessboard_plan_cache_misses_total"
	MetricPlanCacheSize   = "chessboard_plan_cache_size"

	// Drag metrics.
	MetricDragsStarted = "chessboard_drags_started_total"
	MetricDragsVetoed  = "chessboard_drags_vetoed_total"
	MetricDrops        = "chessboard_drops_total"
	MetricSnapbacks    = "chessboard_snapbacks_total"
	MetricTrashes      = "chessboard_trashes_total"

	// Snapshot metrics.
	MetricSnapshotsSaved    = "chessboard_snapshots_saved_total"
	MetricSnapshotsRestored = "chessboard_snapshots_restored_total"

	// Snapshot cache metrics.
	MetricSnapshotCacheHits   = "chessboard_snapshot_cache_hits_total"
	MetricSnapshotCacheMisses = "chessboard_snapshot_cache_misses_total"
	MetricSnapshotCacheSize   = "chessboard_snapshot_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
