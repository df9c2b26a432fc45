// Package telemetry provides particle engine statistics, emitter tracking and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`
	Frames           int     `csv:"frames"`

	// Population at window end
	Particles int `csv:"particles"`
	Emitters  int `csv:"emitters"`

	// Events during window
	Spawned         int `csv:"spawned"`
	Culled          int `csv:"culled"`
	EmittersAdded   int `csv:"emitters_added"`
	EmittersEvicted int `csv:"emitters_evicted"`

	// Live particle count across frames in the window
	CountMean float64 `csv:"count_mean"`
	CountStd  float64 `csv:"count_std"`
	CountMax  int     `csv:"count_max"`

	// Remaining lifetime distribution (sampled at window end)
	RemainingMean float64 `csv:"remaining_mean"`
	RemainingP10  float64 `csv:"remaining_p10"`
	RemainingP50  float64 `csv:"remaining_p50"`
	RemainingP90  float64 `csv:"remaining_p90"`

	// Throughput in simulation time
	SpawnRate float64 `csv:"spawn_rate"`
	CullRate  float64 `csv:"cull_rate"`
}

// Percentile returns the p-th quantile of a sorted slice using the
// empirical CDF. p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean and percentiles of values.
// values is not modified.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Int("emitters", s.Emitters),
		slog.Int("spawned", s.Spawned),
		slog.Int("culled", s.Culled),
		slog.Int("emitters_added", s.EmittersAdded),
		slog.Int("emitters_evicted", s.EmittersEvicted),
		slog.Float64("count_mean", s.CountMean),
		slog.Float64("count_std", s.CountStd),
		slog.Int("count_max", s.CountMax),
		slog.Float64("remaining_mean", s.RemainingMean),
		slog.Float64("remaining_p10", s.RemainingP10),
		slog.Float64("remaining_p50", s.RemainingP50),
		slog.Float64("remaining_p90", s.RemainingP90),
		slog.Float64("spawn_rate", s.SpawnRate),
		slog.Float64("cull_rate", s.CullRate),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
