// Package game wires the locomotion model, camera rig and animation bridge
// into a per-tick loop gated by the death/overlay lifecycle.
package game

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stride/animation"
	"github.com/pthm-cable/stride/camera"
	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/input"
	"github.com/pthm-cable/stride/locomotion"
	"github.com/pthm-cable/stride/systems"
	"github.com/pthm-cable/stride/telemetry"
	"github.com/pthm-cable/stride/ui"
)

// Options holds the collaborators a Game is built with. Any may be nil.
type Options struct {
	Input    input.Provider
	Cursor   Cursor
	Quitter  Quitter
	Animator animation.Player
	Output   *telemetry.OutputManager

	// Loader overrides session rebuild on Restart. Nil means the game
	// rebuilds its own session.
	Loader SceneLoader
}

// Frame is the result of one tick.
type Frame struct {
	Tick        int32
	Session     uint32
	Frozen      bool
	State       locomotion.State
	Orientation camera.Orientation
	Params      animation.Params
	Position    r3.Vec
}

// Game holds the complete controller state.
type Game struct {
	cfg        *config.Config
	flags      *Flags
	controller *Controller
	overlays   *ui.OverlayRegistry
	terrain    *systems.Terrain
	session    *Session

	input    input.Provider
	animator animation.Player

	// Telemetry
	phases    *systems.SystemRegistry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	tick        int32
	nextSession uint32
	prev        locomotion.State
	last        Frame
	warnedInput bool
}

// New creates a game and activates its first session.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		flags:     &Flags{},
		overlays:  ui.NewOverlayRegistry(),
		terrain:   systems.NewTerrain(cfg.Terrain),
		input:     opts.Input,
		animator:  opts.Animator,
		phases:    systems.NewSystemRegistry(),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		output:    opts.Output,
	}

	loader := opts.Loader
	if loader == nil {
		loader = g
	}
	g.controller = NewController(g.flags, opts.Cursor, g.overlays, loader, opts.Quitter)
	g.controller.SetListener(g.recordLifecycle)

	if err := g.newSession(); err != nil {
		return nil, err
	}
	g.controller.Activate()
	return g, nil
}

// Reload implements SceneLoader by discarding the session and building a
// fresh one. The previous session is kept if the rebuild fails.
func (g *Game) Reload() {
	if err := g.newSession(); err != nil {
		slog.Error("session_reload_failed", "error", err)
	}
}

func (g *Game) newSession() error {
	g.nextSession++
	s, err := NewSession(g.nextSession, g.cfg, g.terrain, g.flags, g.animator)
	if err != nil {
		return err
	}
	g.session = s
	g.prev = locomotion.State{}
	return nil
}

// Step runs one tick: lifecycle gate, input, locomotion, camera, animation,
// mover, hazards, telemetry.
func (g *Game) Step(dt float64) Frame {
	g.perf.StartTick()
	s := g.session

	g.perf.StartPhase(systems.PhaseLifecycle)
	frozen := g.flags.Frozen()

	g.perf.StartPhase(systems.PhaseInput)
	var in input.Snapshot
	if !frozen {
		in = g.readInput()
	}

	g.perf.StartPhase(systems.PhaseLocomotion)
	// Camera-relative movement uses the yaw from the end of the previous tick
	state := s.Model.Tick(in, s.Rig.Orientation().Yaw, dt)

	g.perf.StartPhase(systems.PhaseCamera)
	orient := s.Rig.Update(in.Look, frozen)

	g.perf.StartPhase(systems.PhaseAnimation)
	params := s.Bridge.Sync(state, g.flags.Dead())

	g.perf.StartPhase(systems.PhaseMover)
	if !frozen {
		s.Body.SetYaw(state.Heading)
		s.Mover.Update(dt)
	}

	g.perf.StartPhase(systems.PhaseHazards)
	if !frozen && s.KillPlane.Check() {
		slog.Info("kill_plane", "tick", g.tick, "y", s.Body.Position().Y)
		g.controller.GameOver()
	}

	g.perf.StartPhase(systems.PhaseTelemetry)
	frame := Frame{
		Tick:        g.tick,
		Session:     s.ID,
		Frozen:      frozen,
		State:       state,
		Orientation: orient,
		Params:      params,
		Position:    s.Body.Position(),
	}
	g.recordTick(frame)

	g.prev = state
	g.last = frame
	g.tick++
	g.perf.EndTick()
	return frame
}

func (g *Game) readInput() input.Snapshot {
	if g.input == nil {
		if !g.warnedInput {
			slog.Warn("input_provider_missing")
			g.warnedInput = true
		}
		return input.Snapshot{}
	}
	return g.input.Snapshot().Normalized()
}

// HandleOverlayKey routes a key bound to an overlay: pause goes through the
// lifecycle, everything else just toggles.
func (g *Game) HandleOverlayKey(id ui.OverlayID) {
	if id == ui.OverlayPause {
		g.controller.TogglePause()
		return
	}
	g.overlays.Toggle(id)
}

// SetLogStats enables window/perf stats logging.
func (g *Game) SetLogStats(enabled bool) { g.logStats = enabled }

// Controller returns the lifecycle controller.
func (g *Game) Controller() *Controller { return g.controller }

// Overlays returns the overlay registry.
func (g *Game) Overlays() *ui.OverlayRegistry { return g.overlays }

// Session returns the active session.
func (g *Game) Session() *Session { return g.session }

// Flags returns the shared freeze context.
func (g *Game) Flags() *Flags { return g.flags }

// Terrain returns the ground heightfield.
func (g *Game) Terrain() *systems.Terrain { return g.terrain }

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// LastFrame returns the most recent tick result.
func (g *Game) LastFrame() Frame { return g.last }

// Perf returns the perf collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Phases returns the tick phase registry.
func (g *Game) Phases() *systems.SystemRegistry { return g.phases }
