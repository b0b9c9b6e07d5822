package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stride/animation"
	"github.com/pthm-cable/stride/camera"
	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/locomotion"
	"github.com/pthm-cable/stride/systems"
)

// Session is everything created at activation and discarded on restart.
type Session struct {
	ID     uint32
	World  *ecs.World
	Player ecs.Entity
	Body   *systems.Body

	Model  *locomotion.Model
	Rig    *camera.Rig
	Target *camera.FollowTarget
	Bridge *animation.Bridge

	Mover     *systems.MoverSystem
	KillPlane *systems.KillPlane
}

// NewSession builds a fresh world with the player at the spawn point.
func NewSession(id uint32, cfg *config.Config, terrain *systems.Terrain, flags *Flags, player animation.Player) (*Session, error) {
	world := ecs.NewWorld()
	entity := systems.SpawnPlayer(world, cfg, id)
	mover := systems.NewMoverSystem(world, terrain)
	// Grounded is read from the probe before the first tick
	mover.Probe()

	body := systems.NewBody(world, entity)
	target := camera.NewFollowTarget()
	rig, err := camera.New(camera.SettingsFromConfig(cfg), flags, target)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", id, err)
	}

	s := &Session{
		ID:        id,
		World:     world,
		Player:    entity,
		Body:      body,
		Model:     locomotion.New(locomotion.SettingsFromConfig(cfg), flags, body),
		Rig:       rig,
		Target:    target,
		Bridge:    animation.NewBridge(player),
		Mover:     mover,
		KillPlane: systems.NewKillPlane(world, cfg.Player.KillY),
	}
	slog.Info("session_start", "session", id, "grounded", body.Grounded())
	return s, nil
}
