package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/locomotion"
)

const dt = 1.0 / 60

// Compile-time check that Body is usable as the locomotion mover.
var _ locomotion.Mover = (*Body)(nil)

func newWorld(t *testing.T, mutate func(*config.Config)) (*ecs.World, *Body, *MoverSystem) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	w := ecs.NewWorld()
	e := SpawnPlayer(w, cfg, 1)
	sys := NewMoverSystem(w, NewTerrain(cfg.Terrain))
	sys.Probe()
	return w, NewBody(w, e), sys
}

func TestSpawnGrounded(t *testing.T) {
	_, body, _ := newWorld(t, nil)
	if !body.Enabled() {
		t.Error("spawned body should be enabled")
	}
	if !body.Grounded() {
		t.Error("body spawned on the floor should be grounded")
	}
}

func TestSpawnAirborne(t *testing.T) {
	_, body, _ := newWorld(t, func(c *config.Config) { c.Player.Spawn = [3]float64{0, 3, 0} })
	if body.Grounded() {
		t.Error("body spawned 3m up should not be grounded")
	}
}

func TestMoverIntegratesVelocity(t *testing.T) {
	_, body, sys := newWorld(t, nil)
	body.SetVelocity(r3.Vec{X: 3, Z: -6})

	for i := 0; i < 60; i++ {
		sys.Update(dt)
	}
	pos := body.Position()
	if math.Abs(pos.X-3) > 1e-9 || math.Abs(pos.Z+6) > 1e-9 {
		t.Errorf("position = %v, want (3, 0, -6)", pos)
	}
}

func TestMoverClampsToFloor(t *testing.T) {
	_, body, sys := newWorld(t, nil)
	body.SetVelocity(r3.Vec{Y: -2})
	sys.Update(dt)

	if y := body.Position().Y; y != 0 {
		t.Errorf("y = %v, want 0 (floor)", y)
	}
	if !body.Grounded() {
		t.Error("expected grounded on the floor")
	}
}

func TestGroundProbeReach(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"on floor", 0, true},
		{"inside reach", 0.1, true},
		{"edge of reach", 0.139, true},
		{"beyond reach", 0.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, body, _ := newWorld(t, func(c *config.Config) { c.Player.Spawn = [3]float64{0, tt.y, 0} })
			if got := body.Grounded(); got != tt.want {
				t.Errorf("Grounded() at y=%v = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

func TestDisabledBodyIgnoresVelocity(t *testing.T) {
	_, body, sys := newWorld(t, nil)
	body.SetEnabled(false)
	body.SetVelocity(r3.Vec{X: 5})
	sys.Update(dt)

	if v := body.Velocity(); v != (r3.Vec{}) {
		t.Errorf("velocity = %v, want zero", v)
	}
	if p := body.Position(); p != (r3.Vec{}) {
		t.Errorf("position = %v, want origin", p)
	}
}

func TestDisabledBodyNotMoved(t *testing.T) {
	_, body, sys := newWorld(t, nil)
	body.SetVelocity(r3.Vec{X: 5})
	body.SetEnabled(false)
	sys.Update(dt)

	if p := body.Position(); p != (r3.Vec{}) {
		t.Errorf("disabled body moved to %v", p)
	}
}

func TestWalkOffEdge(t *testing.T) {
	_, body, sys := newWorld(t, func(c *config.Config) {
		c.Terrain.Extent = 1
		c.Player.Spawn = [3]float64{0.9, 0, 0}
	})
	body.SetVelocity(r3.Vec{X: 12})
	sys.Update(dt)

	if body.Grounded() {
		t.Error("expected no ground past the floor extent")
	}
}

func TestRemovedEntity(t *testing.T) {
	w, body, _ := newWorld(t, nil)
	w.RemoveEntity(body.Entity())

	if body.Enabled() || body.Grounded() {
		t.Error("removed entity should report disabled and ungrounded")
	}
	body.SetVelocity(r3.Vec{X: 1})
	if body.Position() != (r3.Vec{}) {
		t.Error("removed entity should report zero position")
	}
}

func TestTerrainHeight(t *testing.T) {
	cfg := config.Default().Terrain
	cfg.Amplitude = 4
	cfg.Extent = 10
	a, b := NewTerrain(cfg), NewTerrain(cfg)

	for _, p := range [][2]float64{{0, 0}, {3.5, -2}, {-9, 9}} {
		ha, ok := a.Height(p[0], p[1])
		if !ok {
			t.Fatalf("no ground at %v", p)
		}
		hb, _ := b.Height(p[0], p[1])
		if ha != hb {
			t.Errorf("height at %v not deterministic: %v vs %v", p, ha, hb)
		}
		if ha < cfg.BaseY || ha > cfg.BaseY+cfg.Amplitude {
			t.Errorf("height at %v = %v outside [%v, %v]", p, ha, cfg.BaseY, cfg.BaseY+cfg.Amplitude)
		}
	}
	if _, ok := a.Height(11, 0); ok {
		t.Error("expected no ground outside extent")
	}
}

func TestKillPlane(t *testing.T) {
	w, body, sys := newWorld(t, func(c *config.Config) {
		c.Terrain.Extent = 1
		c.Player.Spawn = [3]float64{5, 0, 0}
	})
	kp := NewKillPlane(w, -1)

	if kp.Check() {
		t.Fatal("kill plane hit before falling")
	}
	body.SetVelocity(r3.Vec{Y: -10})
	for i := 0; i < 10; i++ {
		sys.Update(dt)
	}
	if !kp.Check() {
		t.Errorf("kill plane not hit at y=%v", body.Position().Y)
	}
}

func TestSystemRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	ids := reg.IDs()
	want := []string{PhaseLifecycle, PhaseInput, PhaseLocomotion, PhaseCamera, PhaseAnimation, PhaseMover, PhaseHazards, PhaseTelemetry}
	if len(ids) != len(want) {
		t.Fatalf("got %d phases, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, ids[i], want[i])
		}
	}
	if reg.Name("unknown") != "unknown" {
		t.Error("unknown phase should fall back to its ID")
	}
}
