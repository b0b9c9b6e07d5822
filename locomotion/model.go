// Package locomotion converts player intent into character velocity and
// grounded/airborne state.
package locomotion

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/input"
)

// moveEpsilon is the stick magnitude treated as no movement.
const moveEpsilon = 1e-6

// Gate reports whether gameplay input is currently frozen (dead or an
// overlay is open). The model only reads it.
type Gate interface {
	Frozen() bool
}

// Mover is the physical actuator the model drives.
type Mover interface {
	Enabled() bool
	Grounded() bool
	SetVelocity(v r3.Vec)
}

// Settings holds the tuning the model reads every tick.
type Settings struct {
	MoveSpeed          float64
	SprintSpeed        float64
	SpeedChangeRate    float64
	SpeedThreshold     float64
	RotationSmoothTime float64
	AnalogMovement     bool
	JumpVelocity       float64
	Gravity            float64
	JumpTimeout        float64
	FallTimeout        float64
	TerminalVelocity   float64
	GroundStick        float64
}

// SettingsFromConfig extracts model settings from the loaded config.
func SettingsFromConfig(cfg *config.Config) Settings {
	l := cfg.Locomotion
	return Settings{
		MoveSpeed:          l.MoveSpeed,
		SprintSpeed:        l.SprintSpeed,
		SpeedChangeRate:    l.SpeedChangeRate,
		SpeedThreshold:     l.SpeedThreshold,
		RotationSmoothTime: l.RotationSmoothTime,
		AnalogMovement:     l.AnalogMovement,
		JumpVelocity:       cfg.Derived.JumpVelocity,
		Gravity:            -math.Abs(l.Gravity),
		JumpTimeout:        l.JumpTimeout,
		FallTimeout:        l.FallTimeout,
		TerminalVelocity:   math.Abs(l.TerminalVelocity),
		GroundStick:        l.GroundStick,
	}
}

// State is the character's locomotion state after a tick.
type State struct {
	CurrentSpeed     float64
	TargetSpeed      float64
	Grounded         bool
	Jumping          bool
	FreeFalling      bool
	VerticalVelocity float64

	InputMagnitude float64 // min(|move|, 1) of the last applied input
	Heading        float64 // smoothed facing, degrees
	TargetHeading  float64 // camera-relative move direction, degrees
	Velocity       r3.Vec  // last velocity sent to the mover
}

// Model owns State and mutates it only inside Update.
type Model struct {
	settings Settings
	gate     Gate
	mover    Mover
	state    State

	jumpCooldown float64
	fallGrace    float64
	headingVel   float64

	warnedMissing bool
}

// New creates a model driving mover. A nil mover is tolerated: the model
// then never changes state.
func New(s Settings, gate Gate, mover Mover) *Model {
	return &Model{
		settings:     s,
		gate:         gate,
		mover:        mover,
		jumpCooldown: s.JumpTimeout,
		fallGrace:    s.FallTimeout,
	}
}

// State returns the state produced by the last tick.
func (m *Model) State() State {
	return m.state
}

// Tick resolves usability from the mover and runs Update.
func (m *Model) Tick(in input.Snapshot, cameraYaw, dt float64) State {
	if m.mover == nil {
		if !m.warnedMissing {
			slog.Warn("locomotion_mover_missing")
			m.warnedMissing = true
		}
		return m.state
	}
	return m.Update(in, m.mover.Enabled(), cameraYaw, dt)
}

// Update advances the model by dt. When usable is false, the gate is frozen
// or dt is not positive, the previous state is returned unmodified.
func (m *Model) Update(in input.Snapshot, usable bool, cameraYaw, dt float64) State {
	if !usable || m.mover == nil || (m.gate != nil && m.gate.Frozen()) || !(dt > 0) {
		return m.state
	}

	s := m.state
	// A rising jump is airborne even while the probe still touches ground
	grounded := m.mover.Grounded() && !(s.Jumping && s.VerticalVelocity > 0)

	m.jumpAndGravity(&s, grounded, in.Jump, dt)
	m.move(&s, in, cameraYaw, dt)

	m.mover.SetVelocity(s.Velocity)
	m.state = s
	return s
}

func (m *Model) jumpAndGravity(s *State, grounded, jump bool, dt float64) {
	cfg := &m.settings

	if grounded {
		if !s.Grounded {
			// Landing
			m.jumpCooldown = cfg.JumpTimeout
			s.VerticalVelocity = cfg.GroundStick
			if s.Jumping || s.FreeFalling {
				slog.Debug("locomotion_landed", "fell", s.FreeFalling)
			}
		}
		s.Grounded = true
		s.Jumping = false
		s.FreeFalling = false
		m.fallGrace = cfg.FallTimeout

		if s.VerticalVelocity < 0 {
			s.VerticalVelocity = cfg.GroundStick
		}

		if jump && m.jumpCooldown <= 0 {
			s.VerticalVelocity = cfg.JumpVelocity
			s.Jumping = true
			s.Grounded = false
			slog.Debug("locomotion_jump", "velocity", cfg.JumpVelocity)
		}
		if m.jumpCooldown > 0 {
			m.jumpCooldown -= dt
		}
	} else {
		s.Grounded = false
		if !s.Jumping && !s.FreeFalling {
			if m.fallGrace > 0 {
				m.fallGrace -= dt
			} else {
				s.FreeFalling = true
				slog.Debug("locomotion_free_fall")
			}
		}
	}

	if !s.Grounded {
		s.VerticalVelocity += cfg.Gravity * dt
		if s.VerticalVelocity < -cfg.TerminalVelocity {
			s.VerticalVelocity = -cfg.TerminalVelocity
		}
	}
}

func (m *Model) move(s *State, in input.Snapshot, cameraYaw, dt float64) {
	cfg := &m.settings

	mag := in.MoveMagnitude()
	target := cfg.MoveSpeed
	if in.Sprint {
		target = cfg.SprintSpeed
	}
	if mag < moveEpsilon {
		target = 0
	} else if cfg.AnalogMovement {
		target *= mag
	}
	s.TargetSpeed = target
	s.InputMagnitude = mag

	// Exponential approach never overshoots; snap once close enough
	diff := target - s.CurrentSpeed
	if math.Abs(diff) < cfg.SpeedThreshold {
		s.CurrentSpeed = target
	} else {
		s.CurrentSpeed += diff * (1 - math.Exp(-cfg.SpeedChangeRate*dt))
	}

	if mag >= moveEpsilon {
		s.TargetHeading = wrapDegrees(radToDeg(math.Atan2(in.Move.X, in.Move.Y)) + cameraYaw)
		s.Heading = wrapDegrees(smoothDampAngle(s.Heading, s.TargetHeading, &m.headingVel, cfg.RotationSmoothTime, dt))
	}

	rad := degToRad(s.TargetHeading)
	dir := r3.Vec{X: math.Sin(rad), Z: math.Cos(rad)}
	s.Velocity = r3.Add(r3.Scale(s.CurrentSpeed, dir), r3.Vec{Y: s.VerticalVelocity})
}
