package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stride/components"
)

// KillPlane detects players that fell below a fixed height.
type KillPlane struct {
	filter *ecs.Filter2[components.Transform, components.Player]
	y      float64
}

// NewKillPlane creates a kill plane at height y.
func NewKillPlane(w *ecs.World, y float64) *KillPlane {
	return &KillPlane{
		filter: ecs.NewFilter2[components.Transform, components.Player](w),
		y:      y,
	}
}

// Check reports whether any player is below the plane.
func (k *KillPlane) Check() bool {
	hit := false
	query := k.filter.Query()
	for query.Next() {
		tr, _ := query.Get()
		if tr.Position.Y < k.y {
			hit = true
		}
	}
	return hit
}
