// Package components defines ECS components for the controller world.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform is an entity's world position and facing.
type Transform struct {
	Position r3.Vec
	Yaw      float64 // degrees, 0 faces +Z
}

// Velocity is the linear velocity in world units per second.
type Velocity struct {
	Linear r3.Vec
}

// Body is the physical mover state. The ground probe is a sphere centred
// ProbeOffset above the feet with radius ProbeRadius.
type Body struct {
	Enabled     bool
	Grounded    bool
	ProbeOffset float64
	ProbeRadius float64
}

// Reach is how far below the feet the probe detects ground.
func (b Body) Reach() float64 {
	return b.ProbeRadius - b.ProbeOffset
}

// Player tags the player-controlled entity.
type Player struct {
	Session uint32
}
