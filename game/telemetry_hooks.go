package game

import (
	"log/slog"

	"github.com/pthm-cable/stride/telemetry"
)

// recordLifecycle forwards controller events to telemetry.
func (g *Game) recordLifecycle(t telemetry.EventType) {
	g.recordEvent(t, g.prev.CurrentSpeed)
}

func (g *Game) recordEvent(t telemetry.EventType, speed float64) {
	var session uint32
	if g.session != nil {
		session = g.session.ID
	}
	ev := telemetry.NewEvent(t, g.tick, session, speed)
	g.collector.Record(ev)
	if err := g.output.WriteEvent(ev); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}

// recordTick detects locomotion transitions, writes the trace row and
// flushes the stats window when due.
func (g *Game) recordTick(f Frame) {
	prev, cur := g.prev, f.State
	if cur.Jumping && !prev.Jumping {
		g.recordEvent(telemetry.EventJump, cur.CurrentSpeed)
	}
	if cur.FreeFalling && !prev.FreeFalling {
		g.recordEvent(telemetry.EventFreeFall, cur.CurrentSpeed)
	}
	if cur.Grounded && !prev.Grounded && (prev.Jumping || prev.FreeFalling) {
		g.recordEvent(telemetry.EventLand, cur.CurrentSpeed)
	}

	g.collector.ObserveTick(cur.CurrentSpeed, cur.Grounded, f.Frozen)

	rec := telemetry.TraceRecord{
		Tick:             f.Tick,
		Session:          f.Session,
		Speed:            cur.CurrentSpeed,
		TargetSpeed:      cur.TargetSpeed,
		Grounded:         cur.Grounded,
		Jumping:          cur.Jumping,
		FreeFalling:      cur.FreeFalling,
		VerticalVelocity: cur.VerticalVelocity,
		Heading:          cur.Heading,
		X:                f.Position.X,
		Y:                f.Position.Y,
		Z:                f.Position.Z,
		Pitch:            f.Orientation.Pitch,
		Yaw:              f.Orientation.Yaw,
		Dead:             g.flags.Dead(),
		OverlayOpen:      g.flags.OverlayOpen(),
	}
	if err := g.output.WriteTrace(rec); err != nil {
		slog.Error("failed to write trace", "error", err)
	}

	g.flushTelemetry(f.Tick + 1)
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry(tick int32) {
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.session.ID)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats(g.phases)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
