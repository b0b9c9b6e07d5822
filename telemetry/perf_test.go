package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/stride/systems"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseLocomotion)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(systems.PhaseMover)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseLocomotion]; !ok {
		t.Error("expected locomotion phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseMover]; !ok {
		t.Error("expected mover phase to be tracked")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseCamera)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || len(stats.PhaseAvg) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 100 * time.Microsecond,
		PhasePct: map[string]float64{
			systems.PhaseLocomotion: 40,
			systems.PhaseMover:      25,
		},
	}
	rec := stats.ToCSV(120)
	if rec.WindowEnd != 120 || rec.AvgTickUS != 100 {
		t.Errorf("got window_end=%d avg=%d, want 120 and 100", rec.WindowEnd, rec.AvgTickUS)
	}
	if rec.LocomotionPct != 40 || rec.MoverPct != 25 {
		t.Errorf("phase pct = %v/%v, want 40/25", rec.LocomotionPct, rec.MoverPct)
	}
}

func TestPerfCollector_PhaseShare(t *testing.T) {
	pc := NewPerfCollector(4)
	for i := 0; i < 6; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseInput)
		pc.StartPhase(systems.PhaseMover)
		time.Sleep(300 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[systems.PhaseMover] <= stats.PhasePct[systems.PhaseInput] {
		t.Errorf("mover share %v not above input share %v",
			stats.PhasePct[systems.PhaseMover], stats.PhasePct[systems.PhaseInput])
	}
	if stats.P95TickDuration < stats.MinTickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("p95 %v outside [%v, %v]", stats.P95TickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
}
