package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/chessboard/internal/stats"
)

func TestCollector_LogsRunningTotals(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricDrops, 1)
	c.IncCounter(stats.MetricDrops, 2)
	c.IncCounter(stats.MetricDrops, 0)

	entries := logs.FilterMessage("counter").All()
	if len(entries) != 2 {
		t.Fatalf("logged %d counter entries, want 2", len(entries))
	}
	if got := entries[1].ContextMap()["total"]; got != int64(3) {
		t.Errorf("total = %v, want 3", got)
	}
	if c.Total(stats.MetricDrops) != 3 {
		t.Errorf("Total() = %d, want 3", c.Total(stats.MetricDrops))
	}
	if entries[0].LoggerName != "stats" {
		t.Errorf("logger name = %q, want %q", entries[0].LoggerName, "stats")
	}
}

func TestCollector_Level(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	New(zap.New(core)).SetGauge(stats.MetricPieces, 32)
	if logs.Len() != 0 {
		t.Errorf("debug collector logged %d entries at info level", logs.Len())
	}

	NewLevel(zap.New(core), zapcore.InfoLevel).SetGauge(stats.MetricPieces, 32)
	NewLevel(zap.New(core), zapcore.InfoLevel).ObserveHistogram(stats.MetricPlanDuration, 0.001)
	if logs.Len() != 2 {
		t.Errorf("info collector logged %d entries, want 2", logs.Len())
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	c.IncCounter(stats.MetricCommits, 1)
	c.SetGauge(stats.MetricPieces, 1)
	c.ObserveHistogram(stats.MetricPlanDuration, 1)
}
