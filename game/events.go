package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/stride/ui"
)

// ErrUnknownEvent is returned by ApplyEvent for an unrecognized name.
var ErrUnknownEvent = errors.New("unknown lifecycle event")

// Scripted lifecycle event names.
const (
	EventGameOver     = "game_over"
	EventRestart      = "restart"
	EventPause        = "pause"
	EventResume       = "resume"
	EventDisableMover = "disable_mover"
	EventEnableMover  = "enable_mover"
	EventExit         = "exit"
)

// ApplyEvent performs a named lifecycle action. The empty name is a no-op.
func (g *Game) ApplyEvent(name string) error {
	switch name {
	case "":
	case EventGameOver:
		g.controller.GameOver()
	case EventRestart:
		g.controller.Restart()
	case EventPause:
		g.controller.OpenOverlay(ui.OverlayPause)
	case EventResume:
		g.controller.CloseOverlay(ui.OverlayPause)
	case EventDisableMover:
		g.session.Body.SetEnabled(false)
	case EventEnableMover:
		g.session.Body.SetEnabled(true)
	case EventExit:
		g.controller.Exit()
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownEvent)
	}
	return nil
}
