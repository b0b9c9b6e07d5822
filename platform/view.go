package platform

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/stride/game"
)

// View draws the floor, the character and places the 3D camera behind the
// follow target.
type View struct {
	camera   rl.Camera3D
	distance float64
	height   float64
}

// NewView creates a view trailing the character by distance.
func NewView(distance float64) *View {
	return &View{
		camera: rl.Camera3D{
			Up:         rl.Vector3{Y: 1},
			Fovy:       60,
			Projection: rl.CameraPerspective,
		},
		distance: distance,
		height:   1.4,
	}
}

// Draw renders the world for the current session.
func (v *View) Draw(g *game.Game) {
	s := g.Session()
	pos := s.Body.Position()
	pivot := mgl64.Vec3{pos.X, pos.Y + v.height, pos.Z}
	eye := pivot.Sub(s.Target.Forward().Mul(v.distance))

	v.camera.Target = toRL(pivot)
	v.camera.Position = toRL(eye)

	rl.BeginMode3D(v.camera)

	if ext := g.Terrain().Extent(); ext > 0 {
		rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: float32(2 * ext), Y: float32(2 * ext)}, rl.Color{R: 70, G: 90, B: 70, A: 255})
		rl.DrawGrid(int32(2*ext), 1)
	} else {
		rl.DrawGrid(100, 1)
	}

	body := rl.Color{R: 230, G: 160, B: 60, A: 255}
	if g.LastFrame().Params.Death {
		body = rl.Gray
	}
	feet := toRL(mgl64.Vec3{pos.X, pos.Y, pos.Z})
	head := toRL(mgl64.Vec3{pos.X, pos.Y + 1.8, pos.Z})
	rl.DrawCapsule(feet, head, 0.28, 8, 8, body)

	// Facing indicator
	rad := s.Body.Yaw() * math.Pi / 180
	nose := mgl64.Vec3{pos.X + 0.6*math.Sin(rad), pos.Y + 1.2, pos.Z + 0.6*math.Cos(rad)}
	rl.DrawLine3D(toRL(mgl64.Vec3{pos.X, pos.Y + 1.2, pos.Z}), toRL(nose), rl.Red)

	rl.EndMode3D()
}

func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}
