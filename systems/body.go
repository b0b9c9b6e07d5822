package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stride/components"
)

// Body is a handle to one entity's mover components. It satisfies the
// locomotion model's Mover collaborator.
type Body struct {
	world     *ecs.World
	entity    ecs.Entity
	transform *ecs.Map[components.Transform]
	velocity  *ecs.Map[components.Velocity]
	body      *ecs.Map[components.Body]
}

// NewBody wraps an existing entity.
func NewBody(w *ecs.World, e ecs.Entity) *Body {
	return &Body{
		world:     w,
		entity:    e,
		transform: ecs.NewMap[components.Transform](w),
		velocity:  ecs.NewMap[components.Velocity](w),
		body:      ecs.NewMap[components.Body](w),
	}
}

// Entity returns the wrapped entity.
func (b *Body) Entity() ecs.Entity {
	return b.entity
}

func (b *Body) alive() bool {
	return b.world.Alive(b.entity) && b.body.Has(b.entity)
}

// Enabled reports whether the mover accepts velocity.
func (b *Body) Enabled() bool {
	return b.alive() && b.body.Get(b.entity).Enabled
}

// SetEnabled turns the mover on or off.
func (b *Body) SetEnabled(enabled bool) {
	if b.alive() {
		b.body.Get(b.entity).Enabled = enabled
	}
}

// Grounded reports the last probe result.
func (b *Body) Grounded() bool {
	return b.alive() && b.body.Get(b.entity).Grounded
}

// SetVelocity sets the linear velocity. Ignored while disabled.
func (b *Body) SetVelocity(v r3.Vec) {
	if !b.Enabled() {
		return
	}
	b.velocity.Get(b.entity).Linear = v
}

// Velocity returns the current linear velocity.
func (b *Body) Velocity() r3.Vec {
	if !b.alive() {
		return r3.Vec{}
	}
	return b.velocity.Get(b.entity).Linear
}

// Position returns the world position.
func (b *Body) Position() r3.Vec {
	if !b.alive() {
		return r3.Vec{}
	}
	return b.transform.Get(b.entity).Position
}

// SetYaw sets the facing in degrees.
func (b *Body) SetYaw(deg float64) {
	if b.alive() {
		b.transform.Get(b.entity).Yaw = deg
	}
}

// Yaw returns the facing in degrees.
func (b *Body) Yaw() float64 {
	if !b.alive() {
		return 0
	}
	return b.transform.Get(b.entity).Yaw
}
