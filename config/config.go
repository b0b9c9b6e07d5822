// Package config provides configuration loading and access for the controller.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Validation errors. Returned wrapped; match with errors.Is.
var (
	ErrInvalidClamp       = errors.New("camera top_clamp below bottom_clamp")
	ErrInvalidSensitivity = errors.New("camera sensitivity out of range")
	ErrInvalidSpeed       = errors.New("locomotion speed out of range")
	ErrInvalidTimestep    = errors.New("physics dt must be positive")
	ErrInvalidJump        = errors.New("locomotion jump or fall parameter out of range")
	ErrInvalidTimeout     = errors.New("locomotion timeout must be non-negative")
	ErrInvalidDamping     = errors.New("camera damping outside (0, 1]")
)

// Config holds all controller configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Camera     CameraConfig     `yaml:"camera"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Player     PlayerConfig     `yaml:"player"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the fixed simulation step.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// LocomotionConfig holds character movement parameters.
type LocomotionConfig struct {
	MoveSpeed          float64 `yaml:"move_speed"`           // m/s
	SprintSpeed        float64 `yaml:"sprint_speed"`         // m/s
	SpeedChangeRate    float64 `yaml:"speed_change_rate"`    // exponential approach rate, 1/s
	SpeedThreshold     float64 `yaml:"speed_threshold"`      // snap to target below this difference
	RotationSmoothTime float64 `yaml:"rotation_smooth_time"` // seconds to face move direction
	AnalogMovement     bool    `yaml:"analog_movement"`      // scale target speed by stick magnitude
	JumpHeight         float64 `yaml:"jump_height"`
	Gravity            float64 `yaml:"gravity"`           // negative, m/s^2
	JumpTimeout        float64 `yaml:"jump_timeout"`      // re-jump cooldown after landing
	FallTimeout        float64 `yaml:"fall_timeout"`      // grace before entering free-fall
	TerminalVelocity   float64 `yaml:"terminal_velocity"` // max fall speed, positive
	GroundStick        float64 `yaml:"ground_stick"`      // vertical velocity held while grounded
}

// CameraConfig holds camera rig parameters.
type CameraConfig struct {
	TopClamp      float64 `yaml:"top_clamp"`      // degrees
	BottomClamp   float64 `yaml:"bottom_clamp"`   // degrees
	Sensitivity   float64 `yaml:"sensitivity"`    // degrees per look unit
	LookThreshold float64 `yaml:"look_threshold"` // squared magnitude below which look is ignored
	AngleOverride float64 `yaml:"angle_override"` // extra pitch applied to the follow target
	Damping       float64 `yaml:"damping"`        // slerp fraction per update, (0,1]
	Distance      float64 `yaml:"distance"`       // follow distance for the graphical view
}

// TerrainConfig holds heightfield generation parameters.
type TerrainConfig struct {
	Seed      int64   `yaml:"seed"`
	Scale     float64 `yaml:"scale"`     // noise frequency per world unit
	Amplitude float64 `yaml:"amplitude"` // peak height, 0 = flat floor
	BaseY     float64 `yaml:"base_y"`
	Extent    float64 `yaml:"extent"` // floor half-size in X and Z, 0 = unbounded
}

// PlayerConfig holds the physical probe shape and spawn point.
type PlayerConfig struct {
	GroundedOffset float64    `yaml:"grounded_offset"`
	GroundedRadius float64    `yaml:"grounded_radius"`
	Spawn          [3]float64 `yaml:"spawn"`
	KillY          float64    `yaml:"kill_y"` // falling below this height ends the run
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "json" or "text"
	File       string `yaml:"file"`   // empty = stdout
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	JumpVelocity float64 // sqrt(2 * jump_height * |gravity|)
	TicksPerSec  float64 // 1 / dt
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations that are programming errors rather than
// runtime conditions.
func (c *Config) Validate() error {
	if !(c.Physics.DT > 0) || math.IsInf(c.Physics.DT, 0) {
		return fmt.Errorf("physics.dt=%v: %w", c.Physics.DT, ErrInvalidTimestep)
	}
	cam := c.Camera
	if !(cam.TopClamp >= cam.BottomClamp) {
		return fmt.Errorf("top_clamp=%v bottom_clamp=%v: %w",
			cam.TopClamp, cam.BottomClamp, ErrInvalidClamp)
	}
	if !(cam.TopClamp <= 90) || !(cam.BottomClamp >= -90) {
		return fmt.Errorf("clamp range [%v, %v] exceeds [-90, 90]: %w",
			cam.BottomClamp, cam.TopClamp, ErrInvalidClamp)
	}
	if !(cam.Sensitivity > 0 && cam.Sensitivity <= 100) {
		return fmt.Errorf("sensitivity=%v: %w", cam.Sensitivity, ErrInvalidSensitivity)
	}
	if !(cam.Damping > 0 && cam.Damping <= 1) {
		return fmt.Errorf("damping=%v: %w", cam.Damping, ErrInvalidDamping)
	}
	l := c.Locomotion
	if !(l.MoveSpeed >= 0) || !(l.SprintSpeed >= 0) || !(l.SpeedChangeRate > 0) ||
		math.IsInf(l.MoveSpeed, 0) || math.IsInf(l.SprintSpeed, 0) {
		return fmt.Errorf("move=%v sprint=%v rate=%v: %w",
			l.MoveSpeed, l.SprintSpeed, l.SpeedChangeRate, ErrInvalidSpeed)
	}
	if !(l.JumpHeight >= 0) || math.IsInf(l.JumpHeight, 0) ||
		math.IsNaN(l.Gravity) || math.IsInf(l.Gravity, 0) {
		return fmt.Errorf("jump_height=%v gravity=%v: %w", l.JumpHeight, l.Gravity, ErrInvalidJump)
	}
	if !(l.TerminalVelocity > 0) || math.IsInf(l.TerminalVelocity, 0) {
		return fmt.Errorf("terminal_velocity=%v: %w", l.TerminalVelocity, ErrInvalidJump)
	}
	if !(l.JumpTimeout >= 0) || !(l.FallTimeout >= 0) {
		return fmt.Errorf("jump_timeout=%v fall_timeout=%v: %w",
			l.JumpTimeout, l.FallTimeout, ErrInvalidTimeout)
	}
	return nil
}

// Refresh re-validates c and recomputes derived values after fields were
// changed in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	g := c.Locomotion.Gravity
	if g > 0 {
		g = -g
	}
	c.Derived.JumpVelocity = math.Sqrt(2 * c.Locomotion.JumpHeight * -g)
	c.Derived.TicksPerSec = 1 / c.Physics.DT
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
