package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, std, p50, p90, max := ComputeSpeedStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// population std of 1..10
	if math.Abs(std-math.Sqrt(8.25)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(8.25))
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
	if max != 10 {
		t.Errorf("max = %v, want 10", max)
	}
	if values[0] != 10 {
		t.Error("input slice was reordered")
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std, p50, p90, max := ComputeSpeedStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.25, 0.125)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks = %d, want 10", c.WindowDurationTicks())
	}

	c.Record(NewEvent(EventJump, 1, 1, 2))
	c.Record(NewEvent(EventLand, 5, 1, 2))
	c.Record(NewEvent(EventDeath, 8, 1, 0))
	for i := 0; i < 8; i++ {
		c.ObserveTick(2, i < 4, false)
	}
	c.ObserveTick(0, true, true)
	c.ObserveTick(0, true, true)

	if c.ShouldFlush(9) {
		t.Error("flush requested before window end")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("flush not requested at window end")
	}

	ws := c.Flush(10, 1)
	if ws.Jumps != 1 || ws.Landings != 1 || ws.Deaths != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", ws.Jumps, ws.Landings, ws.Deaths)
	}
	if math.Abs(ws.AirborneFrac-0.4) > 1e-9 {
		t.Errorf("airborne frac = %v, want 0.4", ws.AirborneFrac)
	}
	if math.Abs(ws.FrozenFrac-0.2) > 1e-9 {
		t.Errorf("frozen frac = %v, want 0.2", ws.FrozenFrac)
	}
	if ws.SpeedMean != 2 {
		t.Errorf("speed mean = %v, want 2 (frozen ticks excluded)", ws.SpeedMean)
	}
	if ws.SimTimeSec != 1.25 {
		t.Errorf("sim time = %v, want 1.25", ws.SimTimeSec)
	}

	// Counters reset
	next := c.Flush(20, 1)
	if next.Jumps != 0 || next.SpeedMean != 0 || next.WindowStartTick != 10 {
		t.Errorf("collector not reset: %+v", next)
	}
}

func TestEventNames(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventJump, "jump"},
		{EventFreeFall, "free_fall"},
		{EventRestart, "restart"},
		{EventType(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
