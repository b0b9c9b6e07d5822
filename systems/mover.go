// Package systems contains ECS systems for the controller world.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stride/components"
)

// MoverSystem integrates body velocities and resolves ground contact.
type MoverSystem struct {
	filter  *ecs.Filter3[components.Transform, components.Velocity, components.Body]
	terrain *Terrain
}

// NewMoverSystem creates a mover system.
func NewMoverSystem(w *ecs.World, terrain *Terrain) *MoverSystem {
	return &MoverSystem{
		filter:  ecs.NewFilter3[components.Transform, components.Velocity, components.Body](w),
		terrain: terrain,
	}
}

// Update advances every enabled body by dt.
func (s *MoverSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		tr, vel, body := query.Get()
		if !body.Enabled {
			continue
		}

		tr.Position = r3.Add(tr.Position, r3.Scale(dt, vel.Linear))
		body.Grounded = s.resolveGround(tr, body)
	}
}

// Probe refreshes ground contact without moving anything.
func (s *MoverSystem) Probe() {
	query := s.filter.Query()
	for query.Next() {
		tr, _, body := query.Get()
		body.Grounded = s.resolveGround(tr, body)
	}
}

// resolveGround keeps the body above the terrain and reports probe contact.
func (s *MoverSystem) resolveGround(tr *components.Transform, body *components.Body) bool {
	ground, ok := s.terrain.Height(tr.Position.X, tr.Position.Z)
	if !ok {
		return false
	}
	if tr.Position.Y < ground {
		tr.Position.Y = ground
	}
	return tr.Position.Y-ground <= body.Reach()
}
