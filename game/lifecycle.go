package game

import (
	"log/slog"

	"github.com/pthm-cable/stride/telemetry"
	"github.com/pthm-cable/stride/ui"
)

// State is the lifecycle state.
type State int

const (
	Alive State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// CursorOwner identifies who holds the pointer.
type CursorOwner int

const (
	OwnerGameplay CursorOwner = iota
	OwnerOverlay
)

func (o CursorOwner) String() string {
	if o == OwnerOverlay {
		return "overlay"
	}
	return "gameplay"
}

// Cursor locks the pointer to gameplay (hidden) or releases it (visible).
type Cursor interface {
	Lock()
	Unlock()
}

// SceneLoader rebuilds the play session.
type SceneLoader interface {
	Reload()
}

// Quitter terminates the process.
type Quitter interface {
	Quit()
}

// Surface shows and hides overlays.
type Surface interface {
	Show(id ui.OverlayID)
	Hide(id ui.OverlayID)
	HideModal()
}

// Controller owns the Alive/Dead state machine, the freeze flags and
// cursor ownership. Missing collaborators are skipped.
type Controller struct {
	flags    *Flags
	cursor   Cursor
	overlays Surface
	loader   SceneLoader
	quitter  Quitter

	state    State
	owner    CursorOwner
	listener func(telemetry.EventType)
}

// NewController creates a controller in the Alive state. Call Activate
// once the session is ready.
func NewController(flags *Flags, cursor Cursor, overlays Surface, loader SceneLoader, quitter Quitter) *Controller {
	return &Controller{
		flags:    flags,
		cursor:   cursor,
		overlays: overlays,
		loader:   loader,
		quitter:  quitter,
		owner:    OwnerOverlay,
	}
}

// SetListener registers a callback for lifecycle events.
func (c *Controller) SetListener(fn func(telemetry.EventType)) {
	c.listener = fn
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// CursorOwner returns who holds the pointer.
func (c *Controller) CursorOwner() CursorOwner { return c.owner }

// Flags returns the shared freeze context.
func (c *Controller) Flags() *Flags { return c.flags }

// Activate hides modal overlays and hands the pointer to gameplay. A dead
// controller stays dead; only Restart revives it.
func (c *Controller) Activate() {
	if c.state == Dead {
		slog.Warn("lifecycle_activate_while_dead")
		return
	}
	c.activate()
}

func (c *Controller) activate() {
	c.state = Alive
	c.flags.dead = false
	c.flags.overlayOpen = false
	if c.overlays != nil {
		c.overlays.HideModal()
	}
	c.toGameplay()
	slog.Info("lifecycle_activate")
}

// GameOver moves Alive to Dead: the pointer is released, the death overlay
// shown and gameplay frozen. Calling it while dead does nothing.
func (c *Controller) GameOver() {
	if c.state == Dead {
		return
	}
	c.state = Dead
	c.flags.dead = true
	c.flags.overlayOpen = true
	if c.overlays != nil {
		c.overlays.Show(ui.OverlayDeath)
	}
	c.toOverlay()
	slog.Info("game_over")
	c.emit(telemetry.EventDeath)
}

// Restart clears the freeze flags, asks the loader for a fresh session and
// reactivates. Valid from Dead or from an open overlay.
func (c *Controller) Restart() {
	from := c.state
	c.flags.dead = false
	c.flags.overlayOpen = false
	if c.loader != nil {
		c.loader.Reload()
	} else {
		slog.Warn("lifecycle_loader_missing")
	}
	c.activate()
	slog.Info("restart", "from", from.String())
	c.emit(telemetry.EventRestart)
}

// Exit asks the quitter to terminate.
func (c *Controller) Exit() {
	slog.Info("exit")
	if c.quitter != nil {
		c.quitter.Quit()
	}
}

// OpenOverlay shows a modal overlay (pause) under the same freeze contract
// as death. Ignored while dead.
func (c *Controller) OpenOverlay(id ui.OverlayID) {
	if c.state == Dead || c.flags.overlayOpen {
		return
	}
	c.flags.overlayOpen = true
	if c.overlays != nil {
		c.overlays.Show(id)
	}
	c.toOverlay()
	slog.Info("overlay_open", "overlay", string(id))
	c.emit(telemetry.EventPause)
}

// CloseOverlay hides a modal overlay and returns the pointer to gameplay.
// The death overlay can only be left through Restart.
func (c *Controller) CloseOverlay(id ui.OverlayID) {
	if c.state == Dead || !c.flags.overlayOpen {
		return
	}
	c.flags.overlayOpen = false
	if c.overlays != nil {
		c.overlays.Hide(id)
	}
	c.toGameplay()
	slog.Info("overlay_close", "overlay", string(id))
	c.emit(telemetry.EventResume)
}

// TogglePause opens or closes the pause overlay.
func (c *Controller) TogglePause() {
	if c.flags.overlayOpen {
		c.CloseOverlay(ui.OverlayPause)
	} else {
		c.OpenOverlay(ui.OverlayPause)
	}
}

// HandleButton routes an overlay button press.
func (c *Controller) HandleButton(a ui.Action) {
	switch a {
	case ui.ActionResume:
		c.CloseOverlay(ui.OverlayPause)
	case ui.ActionRestart:
		c.Restart()
	case ui.ActionExit:
		c.Exit()
	}
}

func (c *Controller) toGameplay() {
	if c.cursor != nil {
		c.cursor.Lock()
	}
	c.owner = OwnerGameplay
}

func (c *Controller) toOverlay() {
	if c.cursor != nil {
		c.cursor.Unlock()
	}
	c.owner = OwnerOverlay
}

func (c *Controller) emit(t telemetry.EventType) {
	if c.listener != nil {
		c.listener(t)
	}
}
