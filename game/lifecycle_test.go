package game

import (
	"testing"

	"github.com/pthm-cable/stride/telemetry"
	"github.com/pthm-cable/stride/ui"
)

type fakeCursor struct {
	locked bool
	locks  int
}

func (c *fakeCursor) Lock()   { c.locked = true; c.locks++ }
func (c *fakeCursor) Unlock() { c.locked = false }

type fakeLoader struct{ reloads int }

func (l *fakeLoader) Reload() { l.reloads++ }

type fakeQuitter struct{ quit bool }

func (q *fakeQuitter) Quit() { q.quit = true }

type controllerFixture struct {
	c       *Controller
	cursor  *fakeCursor
	loader  *fakeLoader
	quitter *fakeQuitter
	reg     *ui.OverlayRegistry
	events  []telemetry.EventType
}

func newController(t *testing.T) *controllerFixture {
	t.Helper()
	f := &controllerFixture{
		cursor:  &fakeCursor{},
		loader:  &fakeLoader{},
		quitter: &fakeQuitter{},
		reg:     ui.NewOverlayRegistry(),
	}
	f.c = NewController(&Flags{}, f.cursor, f.reg, f.loader, f.quitter)
	f.c.SetListener(func(e telemetry.EventType) { f.events = append(f.events, e) })
	f.c.Activate()
	return f
}

func TestActivate(t *testing.T) {
	f := newController(t)
	if !f.cursor.locked {
		t.Error("cursor not locked after Activate")
	}
	if f.c.CursorOwner() != OwnerGameplay {
		t.Errorf("owner = %v, want gameplay", f.c.CursorOwner())
	}
	if f.c.Flags().Frozen() {
		t.Error("flags frozen after Activate")
	}
	if f.reg.ModalOpen() {
		t.Error("modal overlay shown after Activate")
	}
}

func TestGameOver(t *testing.T) {
	f := newController(t)
	f.c.GameOver()

	if f.c.State() != Dead {
		t.Errorf("state = %v, want dead", f.c.State())
	}
	if !f.c.Flags().Dead() || !f.c.Flags().Frozen() {
		t.Error("flags not dead/frozen")
	}
	if f.cursor.locked {
		t.Error("cursor still locked after GameOver")
	}
	if f.c.CursorOwner() != OwnerOverlay {
		t.Errorf("owner = %v, want overlay", f.c.CursorOwner())
	}
	if !f.reg.IsEnabled(ui.OverlayDeath) {
		t.Error("death overlay not shown")
	}

	// Idempotent
	f.c.GameOver()
	if n := countEvents(f.events, telemetry.EventDeath); n != 1 {
		t.Errorf("death events = %d, want 1", n)
	}
}

func TestActivateWhileDeadKeepsDead(t *testing.T) {
	f := newController(t)
	f.c.GameOver()
	f.c.Activate()

	if f.c.State() != Dead {
		t.Errorf("state = %v, want dead", f.c.State())
	}
	if !f.c.Flags().Dead() || !f.c.Flags().OverlayOpen() {
		t.Error("flags cleared by Activate while dead")
	}
	if f.cursor.locked || f.c.CursorOwner() != OwnerOverlay {
		t.Error("cursor handed to gameplay while dead")
	}
	if !f.reg.IsEnabled(ui.OverlayDeath) {
		t.Error("death overlay hidden by Activate")
	}
	if f.loader.reloads != 0 {
		t.Errorf("reloads = %d, want 0", f.loader.reloads)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	f := newController(t)
	f.c.GameOver()
	f.c.Restart()

	if f.c.State() != Alive {
		t.Errorf("state = %v, want alive", f.c.State())
	}
	if f.c.Flags().Dead() || f.c.Flags().OverlayOpen() {
		t.Error("flags not cleared by Restart")
	}
	if f.loader.reloads != 1 {
		t.Errorf("reloads = %d, want 1", f.loader.reloads)
	}
	if !f.cursor.locked || f.c.CursorOwner() != OwnerGameplay {
		t.Error("cursor not returned to gameplay")
	}
	if f.reg.IsEnabled(ui.OverlayDeath) {
		t.Error("death overlay still shown")
	}
}

func TestPauseOverlay(t *testing.T) {
	f := newController(t)
	f.c.OpenOverlay(ui.OverlayPause)

	if !f.c.Flags().OverlayOpen() || !f.c.Flags().Frozen() {
		t.Error("pause did not freeze")
	}
	if f.c.Flags().Dead() {
		t.Error("pause set dead")
	}
	if f.cursor.locked || f.c.CursorOwner() != OwnerOverlay {
		t.Error("pause did not release cursor")
	}

	f.c.CloseOverlay(ui.OverlayPause)
	if f.c.Flags().Frozen() {
		t.Error("resume did not unfreeze")
	}
	if !f.cursor.locked || f.c.CursorOwner() != OwnerGameplay {
		t.Error("resume did not lock cursor")
	}
	want := []telemetry.EventType{telemetry.EventPause, telemetry.EventResume}
	if len(f.events) != 2 || f.events[0] != want[0] || f.events[1] != want[1] {
		t.Errorf("events = %v, want %v", f.events, want)
	}
}

func TestDeathOverlayIgnoresPause(t *testing.T) {
	f := newController(t)
	f.c.GameOver()

	f.c.TogglePause()
	f.c.CloseOverlay(ui.OverlayDeath)
	f.c.HandleButton(ui.ActionResume)

	if !f.c.Flags().Dead() || !f.c.Flags().OverlayOpen() {
		t.Error("death state left without Restart")
	}
	if f.c.CursorOwner() != OwnerOverlay {
		t.Error("cursor handed back while dead")
	}
	if f.reg.IsEnabled(ui.OverlayPause) {
		t.Error("pause overlay shown over death overlay")
	}
}

func TestRestartFromPause(t *testing.T) {
	f := newController(t)
	f.c.OpenOverlay(ui.OverlayPause)
	f.c.HandleButton(ui.ActionRestart)

	if f.c.Flags().Frozen() {
		t.Error("still frozen after restart from pause")
	}
	if f.loader.reloads != 1 {
		t.Errorf("reloads = %d, want 1", f.loader.reloads)
	}
}

func TestHandleButtonExit(t *testing.T) {
	f := newController(t)
	f.c.GameOver()
	f.c.HandleButton(ui.ActionExit)
	if !f.quitter.quit {
		t.Error("Exit did not reach quitter")
	}
}

func TestControllerNilCollaborators(t *testing.T) {
	c := NewController(&Flags{}, nil, nil, nil, nil)
	c.Activate()
	c.GameOver()
	c.Restart()
	c.Exit()
	if c.State() != Alive {
		t.Errorf("state = %v, want alive", c.State())
	}
}

func countEvents(events []telemetry.EventType, t telemetry.EventType) int {
	n := 0
	for _, e := range events {
		if e == t {
			n++
		}
	}
	return n
}
