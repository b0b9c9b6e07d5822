package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	jumps     int
	landings  int
	freeFalls int
	deaths    int
	restarts  int
	pauses    int

	ticks         int
	airborneTicks int
	frozenTicks   int
	speeds        []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// Record counts an event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventJump:
		c.jumps++
	case EventLand:
		c.landings++
	case EventFreeFall:
		c.freeFalls++
	case EventDeath:
		c.deaths++
	case EventRestart:
		c.restarts++
	case EventPause:
		c.pauses++
	}
}

// ObserveTick samples per-tick state. Frozen ticks count toward the frozen
// fraction but not the speed distribution.
func (c *Collector) ObserveTick(speed float64, grounded, frozen bool) {
	c.ticks++
	if frozen {
		c.frozenTicks++
		return
	}
	if !grounded {
		c.airborneTicks++
	}
	c.speeds = append(c.speeds, speed)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, session uint32) WindowStats {
	mean, std, p50, p90, max := ComputeSpeedStats(c.speeds)

	var airborne, frozen float64
	if c.ticks > 0 {
		airborne = float64(c.airborneTicks) / float64(c.ticks)
		frozen = float64(c.frozenTicks) / float64(c.ticks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Session:         session,

		Jumps:     c.jumps,
		Landings:  c.landings,
		FreeFalls: c.freeFalls,
		Deaths:    c.deaths,
		Restarts:  c.restarts,
		Pauses:    c.pauses,

		AirborneFrac: airborne,
		FrozenFrac:   frozen,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.jumps = 0
	c.landings = 0
	c.freeFalls = 0
	c.deaths = 0
	c.restarts = 0
	c.pauses = 0
	c.ticks = 0
	c.airborneTicks = 0
	c.frozenTicks = 0
	c.speeds = c.speeds[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
