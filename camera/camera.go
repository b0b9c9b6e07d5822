// Package camera provides the third-person orbit rig that turns look input
// into a clamped pitch/yaw and rotates the camera-follow target.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/stride/config"
)

// Construction errors.
var (
	ErrInvalidClamp       = errors.New("camera: top clamp below bottom clamp")
	ErrInvalidSensitivity = errors.New("camera: sensitivity must be positive and finite")
	ErrInvalidDamping     = errors.New("camera: damping must be in (0, 1]")
)

// Orientation is the accumulated look direction in degrees.
type Orientation struct {
	Pitch float64 // clamped to [BottomClamp, TopClamp]
	Yaw   float64 // wrapped to [-180, 180]
}

// Gate reports whether gameplay input is frozen.
type Gate interface {
	Frozen() bool
}

// Target receives the follow rotation. Translation is never touched.
type Target interface {
	SetRotation(q mgl64.Quat)
}

// FollowTarget is a plain rotation holder usable as a Target.
type FollowTarget struct {
	Rotation mgl64.Quat
}

// NewFollowTarget returns a target with identity rotation.
func NewFollowTarget() *FollowTarget {
	return &FollowTarget{Rotation: mgl64.QuatIdent()}
}

// SetRotation implements Target.
func (f *FollowTarget) SetRotation(q mgl64.Quat) {
	f.Rotation = q
}

// Forward returns the unit vector the target looks along (+Z at identity).
func (f *FollowTarget) Forward() mgl64.Vec3 {
	return f.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Settings holds rig tuning.
type Settings struct {
	TopClamp      float64
	BottomClamp   float64
	Sensitivity   float64
	LookThreshold float64
	AngleOverride float64
	Damping       float64
}

// SettingsFromConfig extracts rig settings from the loaded config.
func SettingsFromConfig(cfg *config.Config) Settings {
	c := cfg.Camera
	return Settings{
		TopClamp:      c.TopClamp,
		BottomClamp:   c.BottomClamp,
		Sensitivity:   c.Sensitivity,
		LookThreshold: c.LookThreshold,
		AngleOverride: c.AngleOverride,
		Damping:       c.Damping,
	}
}

// Validate reports configuration errors.
func (s Settings) Validate() error {
	if !(s.TopClamp >= s.BottomClamp) || math.IsInf(s.TopClamp, 0) || math.IsInf(s.BottomClamp, 0) {
		return fmt.Errorf("top=%v bottom=%v: %w", s.TopClamp, s.BottomClamp, ErrInvalidClamp)
	}
	if !(s.Sensitivity > 0) || math.IsInf(s.Sensitivity, 0) {
		return fmt.Errorf("sensitivity=%v: %w", s.Sensitivity, ErrInvalidSensitivity)
	}
	if !(s.Damping > 0 && s.Damping <= 1) {
		return fmt.Errorf("damping=%v: %w", s.Damping, ErrInvalidDamping)
	}
	return nil
}

// Rig owns Orientation and mutates it only from unblocked look input.
type Rig struct {
	settings Settings
	gate     Gate
	target   Target

	orient   Orientation
	rotation mgl64.Quat // damped rotation last applied to target
}

// New creates a rig facing yaw 0, pitch 0 (clamped into range). It fails
// fast on invalid settings.
func New(s Settings, gate Gate, target Target) (*Rig, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := &Rig{
		settings: s,
		gate:     gate,
		target:   target,
		orient:   Orientation{Pitch: clamp(0, s.BottomClamp, s.TopClamp)},
	}
	r.rotation = r.targetRotation()
	if target != nil {
		target.SetRotation(r.rotation)
	}
	return r, nil
}

// Orientation returns the current orientation.
func (r *Rig) Orientation() Orientation {
	return r.orient
}

// Rotation returns the damped rotation last applied to the target.
func (r *Rig) Rotation() mgl64.Quat {
	return r.rotation
}

// Update accumulates a look delta. While blocked the delta is dropped and
// the previous orientation is returned unchanged.
func (r *Rig) Update(look r2.Vec, blocked bool) Orientation {
	if blocked || (r.gate != nil && r.gate.Frozen()) {
		return r.orient
	}

	if look.X*look.X+look.Y*look.Y >= r.settings.LookThreshold {
		r.orient.Yaw += look.X * r.settings.Sensitivity
		r.orient.Pitch -= look.Y * r.settings.Sensitivity
	}
	r.orient.Pitch = clamp(r.orient.Pitch, r.settings.BottomClamp, r.settings.TopClamp)
	r.orient.Yaw = wrapDegrees(r.orient.Yaw)

	to := r.targetRotation()
	// q and -q are the same rotation; take the short arc
	if r.rotation.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	r.rotation = mgl64.QuatSlerp(r.rotation, to, r.settings.Damping)
	if r.target != nil {
		r.target.SetRotation(r.rotation)
	}
	return r.orient
}

// targetRotation is yaw about +Y, then pitch about the local X axis.
func (r *Rig) targetRotation() mgl64.Quat {
	pitch := mgl64.DegToRad(r.orient.Pitch + r.settings.AngleOverride)
	yaw := mgl64.DegToRad(r.orient.Yaw)
	return mgl64.AnglesToQuat(yaw, pitch, 0, mgl64.YXZ).Normalize()
}

// wrapDegrees maps an angle into [-180, 180].
func wrapDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
