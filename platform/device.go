// Package platform implements the game collaborators on top of raylib:
// cursor lock, device input, quit requests, overlays and the 3D view.
package platform

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/stride/input"
)

// lookScale converts mouse pixels to look units.
const lookScale = 0.1

// Cursor locks the OS pointer to the window while gameplay owns it.
type Cursor struct {
	locked bool
}

// Lock hides and captures the pointer.
func (c *Cursor) Lock() {
	if !c.locked {
		rl.DisableCursor()
		c.locked = true
	}
}

// Unlock releases the pointer for overlay interaction.
func (c *Cursor) Unlock() {
	if c.locked {
		rl.EnableCursor()
		c.locked = false
	}
}

// Locked reports whether the pointer is captured.
func (c *Cursor) Locked() bool { return c.locked }

// Quitter records an exit request for the main loop.
type Quitter struct {
	requested bool
}

// Quit requests the loop to end.
func (q *Quitter) Quit() { q.requested = true }

// Requested reports whether Quit was called.
func (q *Quitter) Requested() bool { return q.requested }

// Input reads keyboard and mouse state each tick.
// WASD/arrows move, shift sprints, space jumps, the mouse looks.
type Input struct{}

// Snapshot implements input.Provider.
func (Input) Snapshot() input.Snapshot {
	var move r2.Vec
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		move.Y++
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		move.Y--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		move.X++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		move.X--
	}
	if n := r2.Norm(move); n > 1 {
		move = r2.Scale(1/n, move)
	}

	// Screen Y grows downward; look Y is positive up
	delta := rl.GetMouseDelta()
	look := r2.Vec{X: float64(delta.X) * lookScale, Y: -float64(delta.Y) * lookScale}

	return input.Snapshot{
		Move:   move,
		Sprint: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Jump:   rl.IsKeyDown(rl.KeySpace),
		Look:   look,
	}
}
