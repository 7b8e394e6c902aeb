package prometheus

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/discochess/chessboard/internal/stats"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			if len(mf.GetMetric()) == 0 {
				t.Fatalf("metric %s has no samples", name)
			}
			return mf
		}
	}
	t.Fatalf("metric %s not found in registry", name)
	return nil
}

func TestNew_DefaultRegistry(t *testing.T) {
	c := New(nil)
	if c.registry == nil {
		t.Error("registry should not be nil")
	}
}

func TestCollector_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter(stats.MetricCommits, 5)
	c.IncCounter(stats.MetricCommits, 3)

	mf := gather(t, reg, stats.MetricCommits)
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 8 {
		t.Errorf("counter value = %v, want 8", val)
	}
	if mf.GetHelp() != help[stats.MetricCommits] {
		t.Errorf("help = %q, want %q", mf.GetHelp(), help[stats.MetricCommits])
	}
}

func TestCollector_UnknownNameUsesNameAsHelp(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter("custom_total", 1)

	if got := gather(t, reg, "custom_total").GetHelp(); got != "custom_total" {
		t.Errorf("help = %q, want %q", got, "custom_total")
	}
}

func TestCollector_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge(stats.MetricPieces, 32)
	c.SetGauge(stats.MetricPieces, 31)

	if val := gather(t, reg, stats.MetricPieces).GetMetric()[0].GetGauge().GetValue(); val != 31 {
		t.Errorf("gauge value = %v, want 31", val)
	}
}

func TestCollector_ObserveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveHistogram(stats.MetricPlanDuration, 0.00002)
	c.ObserveHistogram(stats.MetricPlanDuration, 0.0005)
	c.ObserveHistogram(stats.MetricPlanDuration, 0.01)

	h := gather(t, reg, stats.MetricPlanDuration).GetMetric()[0].GetHistogram()
	if h.GetSampleCount() != 3 {
		t.Errorf("histogram count = %v, want 3", h.GetSampleCount())
	}
	if len(h.GetBucket()) != 10 {
		t.Errorf("histogram buckets = %d, want 10", len(h.GetBucket()))
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.IncCounter(stats.MetricMoves, 1)
				c.SetGauge(stats.MetricPlanCacheSize, int64(j))
				c.ObserveHistogram(stats.MetricPlanDuration, float64(j))
			}
		}()
	}
	wg.Wait()

	if val := gather(t, reg, stats.MetricMoves).GetMetric()[0].GetCounter().GetValue(); val != 1000 {
		t.Errorf("counter value = %v, want 1000", val)
	}
	if n := gather(t, reg, stats.MetricPlanDuration).GetMetric()[0].GetHistogram().GetSampleCount(); n != 1000 {
		t.Errorf("histogram count = %v, want 1000", n)
	}
}

func TestCollector_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()

	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: stats.MetricDrops,
		Help: help[stats.MetricDrops],
	})
	reg.MustRegister(existing)
	existing.Add(100)

	c := New(reg)
	c.IncCounter(stats.MetricDrops, 5)

	if val := gather(t, reg, stats.MetricDrops).GetMetric()[0].GetCounter().GetValue(); val != 105 {
		t.Errorf("counter value = %v, want 105", val)
	}
}
