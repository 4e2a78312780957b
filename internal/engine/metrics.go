package engine

import "fmt"

// Metrics is a point-in-time view of classifier counters.
type Metrics struct {
	ColdProbes            uint64
	WarmHits              uint64
	SpecializedDispatches uint64
	LegacyDispatches      uint64
	CachedShapes          int
}

// TotalDispatches counts every joker evaluation.
func (m Metrics) TotalDispatches() uint64 {
	return m.SpecializedDispatches + m.LegacyDispatches
}

// SpecializedRatio is specialized / total dispatches, 0 when nothing ran.
func (m Metrics) SpecializedRatio() float64 {
	total := m.TotalDispatches()
	if total == 0 {
		return 0
	}
	return float64(m.SpecializedDispatches) / float64(total)
}

// CacheHitRatio is warm hits / classifications, 0 when nothing ran.
func (m Metrics) CacheHitRatio() float64 {
	total := m.ColdProbes + m.WarmHits
	if total == 0 {
		return 0
	}
	return float64(m.WarmHits) / float64(total)
}

// PerformanceSummary renders the metrics on one line for logs.
func (m Metrics) PerformanceSummary() string {
	return fmt.Sprintf(
		"dispatches=%d specialized=%.1f%% classifications=%d cache_hits=%.1f%% cached_shapes=%d",
		m.TotalDispatches(),
		m.SpecializedRatio()*100,
		m.ColdProbes+m.WarmHits,
		m.CacheHitRatio()*100,
		m.CachedShapes,
	)
}
