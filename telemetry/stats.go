package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Session         uint32  `csv:"session"`

	// Events during window
	Jumps     int `csv:"jumps"`
	Landings  int `csv:"landings"`
	FreeFalls int `csv:"free_falls"`
	Deaths    int `csv:"deaths"`
	Restarts  int `csv:"restarts"`
	Pauses    int `csv:"pauses"`

	// Time split (fractions of window ticks)
	AirborneFrac float64 `csv:"airborne_frac"`
	FrozenFrac   float64 `csv:"frozen_frac"`

	// Horizontal speed distribution over unfrozen ticks
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
}

// ComputeSpeedStats calculates mean, std, median, p90 and max.
// Returns zeros for an empty slice.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.PopMeanStdDev(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	max = sorted[len(sorted)-1]
	return mean, std, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("session", int(s.Session)),
		slog.Int("jumps", s.Jumps),
		slog.Int("landings", s.Landings),
		slog.Int("free_falls", s.FreeFalls),
		slog.Int("deaths", s.Deaths),
		slog.Int("restarts", s.Restarts),
		slog.Int("pauses", s.Pauses),
		slog.Float64("airborne_frac", s.AirborneFrac),
		slog.Float64("frozen_frac", s.FrozenFrac),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
