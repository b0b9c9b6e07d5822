package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/game"
	"github.com/pthm-cable/stride/input"
)

// Measurement is the feel of a configuration, taken from scripted runs.
type Measurement struct {
	// SprintLag is the integral of the missing sprint-speed fraction while
	// accelerating from rest, in seconds. Exponential approach gives about
	// 1/speed_change_rate.
	SprintLag float64 `csv:"sprint_lag"`
	// TurnLag is the integral of the heading error fraction after a 180
	// degree reversal, in seconds.
	TurnLag float64 `csv:"turn_lag"`
	// Apex is the peak jump height above the take-off point.
	Apex float64 `csv:"apex"`
}

// Evaluator runs headless trials and scores them against targets.
type Evaluator struct {
	params  *ParamVector
	base    *config.Config
	targets Measurement

	mu       sync.Mutex
	best     float64
	bestX    []float64
	lastMeas Measurement
}

// NewEvaluator creates an evaluator comparing against targets.
func NewEvaluator(params *ParamVector, base *config.Config, targets Measurement) *Evaluator {
	return &Evaluator{
		params:  params,
		base:    base,
		targets: targets,
		best:    math.Inf(1),
	}
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (e *Evaluator) Evaluate(x []float64) float64 {
	cfg := *e.base
	if err := e.params.ApplyToConfig(&cfg, x); err != nil {
		return math.Inf(1)
	}
	m, err := Measure(&cfg)
	if err != nil {
		return math.Inf(1)
	}
	f := e.fitness(m)

	e.mu.Lock()
	e.lastMeas = m
	if f < e.best {
		e.best = f
		e.bestX = e.params.Clamp(x)
	}
	e.mu.Unlock()
	return f
}

// Best returns the best fitness and clamped parameters seen so far.
func (e *Evaluator) Best() (float64, []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.best, e.bestX
}

// LastMeasurement returns the measurement from the most recent Evaluate call.
func (e *Evaluator) LastMeasurement() Measurement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastMeas
}

// fitness is the summed squared relative error of each measurement.
func (e *Evaluator) fitness(m Measurement) float64 {
	return relErr2(m.SprintLag, e.targets.SprintLag) +
		relErr2(m.TurnLag, e.targets.TurnLag) +
		relErr2(m.Apex, e.targets.Apex)
}

func relErr2(got, want float64) float64 {
	if want == 0 {
		return got * got
	}
	d := (got - want) / want
	return d * d
}

// Trial lengths in seconds.
const (
	sprintTrialSec = 2.0
	settleSec      = 1.0
	turnTrialSec   = 1.5
	jumpTrialSec   = 2.0
)

// Measure runs the three trials in parallel, each on its own game.
func Measure(cfg *config.Config) (Measurement, error) {
	var (
		m    Measurement
		errs [3]error
		wg   sync.WaitGroup
	)
	trials := []struct {
		run func(*config.Config) (float64, error)
		dst *float64
	}{
		{sprintLag, &m.SprintLag},
		{turnLag, &m.TurnLag},
		{jumpApex, &m.Apex},
	}
	for i, tr := range trials {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*tr.dst, errs[i] = tr.run(cfg)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Measurement{}, err
		}
	}
	return m, nil
}

// trial is a single headless game driven through a latch.
type trial struct {
	g     *game.Game
	latch *input.Latch
	dt    float64
}

func newTrial(cfg *config.Config) (*trial, error) {
	latch := &input.Latch{}
	g, err := game.New(cfg, game.Options{Input: latch})
	if err != nil {
		return nil, fmt.Errorf("creating trial game: %w", err)
	}
	return &trial{g: g, latch: latch, dt: cfg.Physics.DT}, nil
}

// hold feeds s for sec seconds, calling fn after every tick.
func (t *trial) hold(s input.Snapshot, sec float64, fn func(game.Frame)) {
	t.latch.Set(s)
	for n := int(math.Round(sec / t.dt)); n > 0; n-- {
		f := t.g.Step(t.dt)
		if fn != nil {
			fn(f)
		}
	}
}

func sprintLag(cfg *config.Config) (float64, error) {
	t, err := newTrial(cfg)
	if err != nil {
		return 0, err
	}
	sprint := cfg.Locomotion.SprintSpeed
	lag := 0.0
	t.hold(input.Snapshot{Move: r2.Vec{Y: 1}, Sprint: true}, sprintTrialSec, func(f game.Frame) {
		lag += (1 - f.State.CurrentSpeed/sprint) * t.dt
	})
	return lag, nil
}

func turnLag(cfg *config.Config) (float64, error) {
	t, err := newTrial(cfg)
	if err != nil {
		return 0, err
	}
	t.hold(input.Snapshot{Move: r2.Vec{Y: 1}}, settleSec, nil)

	lag := 0.0
	t.hold(input.Snapshot{Move: r2.Vec{Y: -1}}, turnTrialSec, func(f game.Frame) {
		diff := math.Abs(math.Remainder(f.State.TargetHeading-f.State.Heading, 360))
		lag += diff / 180 * t.dt
	})
	return lag, nil
}

func jumpApex(cfg *config.Config) (float64, error) {
	t, err := newTrial(cfg)
	if err != nil {
		return 0, err
	}
	// Outlast the landing cooldown
	t.hold(input.Snapshot{}, settleSec, nil)
	start := t.g.LastFrame().Position.Y

	apex := 0.0
	track := func(f game.Frame) { apex = max(apex, f.Position.Y-start) }
	t.hold(input.Snapshot{Jump: true}, t.dt, track)
	t.hold(input.Snapshot{}, jumpTrialSec, track)
	return apex, nil
}
