package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/stride/systems"
)

// PerfCollector tracks tick and phase timing over a rolling window of ticks.
// Phase durations are kept in one ring per phase, aligned with the tick ring.
type PerfCollector struct {
	window int
	ticks  []time.Duration
	phases map[string][]time.Duration
	next   int
	count  int

	tickStart  time.Time
	phaseStart time.Time
	phase      string

	// Frame timing (graphics mode)
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		window: window,
		ticks:  make([]time.Duration, window),
		phases: make(map[string][]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.phase = ""
	for _, ring := range p.phases {
		ring[p.next] = 0
	}
}

// StartPhase ends the running phase and starts timing the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndTick finishes the tick and advances the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.ticks[p.next] = now.Sub(p.tickStart)
	p.next = (p.next + 1) % p.window
	p.count = min(p.count+1, p.window)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase == "" {
		return
	}
	ring, ok := p.phases[p.phase]
	if !ok {
		ring = make([]time.Duration, p.window)
		p.phases[p.phase] = ring
	}
	ring[p.next] += now.Sub(p.phaseStart)
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Phase breakdown (average durations and share of tick time)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return s
	}

	// Ring order does not matter for these statistics
	ticks := make([]float64, p.count)
	for i := range ticks {
		ticks[i] = float64(p.ticks[i])
	}
	sort.Float64s(ticks)

	avg := stat.Mean(ticks, nil)
	s.AvgTickDuration = time.Duration(avg)
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}

	for phase, ring := range p.phases {
		var sum time.Duration
		for _, d := range ring[:p.count] {
			sum += d
		}
		s.PhaseAvg[phase] = sum / time.Duration(p.count)
		if avg > 0 {
			s.PhasePct[phase] = float64(s.PhaseAvg[phase]) / avg * 100
		}
	}
	return s
}

// LogStats logs performance statistics, phases in tick order.
func (s PerfStats) LogStats(reg *systems.SystemRegistry) {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range reg.IDs() {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	P95TickUS     int64   `csv:"p95_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	LifecyclePct  float64 `csv:"lifecycle_pct"`
	InputPct      float64 `csv:"input_pct"`
	LocomotionPct float64 `csv:"locomotion_pct"`
	CameraPct     float64 `csv:"camera_pct"`
	AnimationPct  float64 `csv:"animation_pct"`
	MoverPct      float64 `csv:"mover_pct"`
	HazardsPct    float64 `csv:"hazards_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		P95TickUS:     s.P95TickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		LifecyclePct:  s.PhasePct[systems.PhaseLifecycle],
		InputPct:      s.PhasePct[systems.PhaseInput],
		LocomotionPct: s.PhasePct[systems.PhaseLocomotion],
		CameraPct:     s.PhasePct[systems.PhaseCamera],
		AnimationPct:  s.PhasePct[systems.PhaseAnimation],
		MoverPct:      s.PhasePct[systems.PhaseMover],
		HazardsPct:    s.PhasePct[systems.PhaseHazards],
		TelemetryPct:  s.PhasePct[systems.PhaseTelemetry],
	}
}
