package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stride/components"
	"github.com/pthm-cable/stride/config"
)

// SpawnPlayer creates the player entity at the configured spawn point.
func SpawnPlayer(w *ecs.World, cfg *config.Config, session uint32) ecs.Entity {
	mapper := ecs.NewMap4[components.Transform, components.Velocity, components.Body, components.Player](w)

	sp := cfg.Player.Spawn
	tr := components.Transform{Position: r3.Vec{X: sp[0], Y: sp[1], Z: sp[2]}}
	vel := components.Velocity{}
	body := components.Body{
		Enabled:     true,
		ProbeOffset: -cfg.Player.GroundedOffset,
		ProbeRadius: cfg.Player.GroundedRadius,
	}
	player := components.Player{Session: session}

	return mapper.NewEntity(&tr, &vel, &body, &player)
}
