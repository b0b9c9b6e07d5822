package platform

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stride/animation"
	"github.com/pthm-cable/stride/game"
	"github.com/pthm-cable/stride/ui"
)

// Overlays draws the registered overlays and routes their keys and buttons.
type Overlays struct {
	renderer *Renderer
	animator *animation.Recorder
}

// NewOverlays creates an overlay renderer. animator may be nil; when set,
// the stats overlay lists the parameters it last received.
func NewOverlays(animator *animation.Recorder) *Overlays {
	return &Overlays{renderer: NewRenderer(), animator: animator}
}

// HandleKeys toggles overlays whose key was pressed this frame.
func (o *Overlays) HandleKeys(g *game.Game) {
	for _, desc := range g.Overlays().All() {
		if desc.Key != ui.KeyNone && rl.IsKeyPressed(desc.Key) {
			g.HandleOverlayKey(desc.ID)
		}
	}
}

// Draw renders every enabled overlay. Button presses go straight to the
// lifecycle controller.
func (o *Overlays) Draw(g *game.Game) {
	for _, id := range g.Overlays().EnabledOverlays() {
		desc, ok := g.Overlays().Get(id)
		if !ok {
			continue
		}
		if desc.Modal {
			o.drawModal(g, desc)
			continue
		}
		if id == ui.OverlayStats {
			o.drawStats(g)
		}
	}
}

func (o *Overlays) drawModal(g *game.Game, desc ui.OverlayDescriptor) {
	th := o.renderer.Theme
	o.renderer.DrawDim()

	sh := float32(rl.GetScreenHeight())
	sw := float32(rl.GetScreenWidth())
	top := sh/2 - float32(len(desc.Buttons))*(th.ButtonHeight+10)/2

	o.renderer.DrawCenteredTitle(int32(top)-th.TitleFontSize-30, desc.Title)

	for i, b := range desc.Buttons {
		bounds := rl.Rectangle{
			X:      (sw - th.ButtonWidth) / 2,
			Y:      top + float32(i)*(th.ButtonHeight+10),
			Width:  th.ButtonWidth,
			Height: th.ButtonHeight,
		}
		if gui.Button(bounds, b.Label) {
			g.Controller().HandleButton(b.Action)
			// The registry may have changed under us
			return
		}
	}
}

func (o *Overlays) drawStats(g *game.Game) {
	const x, y, width, height = 10, 10, 260, 330
	r := o.renderer
	r.DrawPanel(x, y, width, height)

	f := g.LastFrame()
	st := f.State
	cx, cy := int32(x+10), int32(y+8)

	cy = r.DrawSectionHeader(cx, cy, "Locomotion")
	cy = r.DrawLabelValue(cx, cy, "Session", fmt.Sprintf("%d", f.Session))
	cy = r.DrawLabelValue(cx, cy, "Speed", fmt.Sprintf("%.2f / %.2f", st.CurrentSpeed, st.TargetSpeed))
	cy = r.DrawLabelValue(cx, cy, "Vertical", fmt.Sprintf("%+.2f", st.VerticalVelocity))
	cy = r.DrawLabelValue(cx, cy, "State", stateLabel(f))
	cy = r.DrawLabelValue(cx, cy, "Heading", fmt.Sprintf("%.1f", st.Heading))
	cy = r.DrawBar(cx, cy, "Input", float32(st.InputMagnitude), width-20)

	cy = r.DrawSectionHeader(cx, cy+4, "Camera")
	cy = r.DrawLabelValue(cx, cy, "Pitch/Yaw", fmt.Sprintf("%.1f / %.1f", f.Orientation.Pitch, f.Orientation.Yaw))

	if o.animator != nil {
		cy = r.DrawSectionHeader(cx, cy+4, "Animator")
		for _, name := range []string{animation.NameSpeed, animation.NameMotionSpeed} {
			v, _ := o.animator.Float(name)
			cy = r.DrawLabelValue(cx, cy, name, fmt.Sprintf("%.2f", v))
		}
		for _, name := range []string{animation.NameGrounded, animation.NameJump, animation.NameFreeFall, animation.NameDeath} {
			v, _ := o.animator.Bool(name)
			cy = r.DrawLabelValue(cx, cy, name, fmt.Sprintf("%t", v))
		}
	}

	perf := g.Perf().Stats()
	cy = r.DrawSectionHeader(cx, cy+4, "Perf")
	r.DrawLabelValue(cx, cy, "Tick", perf.AvgTickDuration.Round(time.Microsecond).String())
}

func stateLabel(f game.Frame) string {
	switch {
	case f.Params.Death:
		return "dead"
	case f.Frozen:
		return "frozen"
	case f.State.Jumping:
		return "jumping"
	case f.State.FreeFalling:
		return "free fall"
	case f.State.Grounded:
		return "grounded"
	default:
		return "airborne"
	}
}
