package ui

import "testing"

func TestDefaultsHidden(t *testing.T) {
	reg := NewOverlayRegistry()
	if got := reg.EnabledOverlays(); len(got) != 0 {
		t.Errorf("expected no overlays shown, got %v", got)
	}
	if reg.ModalOpen() {
		t.Error("expected no modal open")
	}
}

func TestDeathAndPauseExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Show(OverlayPause)
	reg.Show(OverlayDeath)

	if reg.IsEnabled(OverlayPause) {
		t.Error("pause still shown after death overlay")
	}
	desc, ok := reg.ActiveModal()
	if !ok || desc.ID != OverlayDeath {
		t.Errorf("active modal = %v (%v), want death", desc.ID, ok)
	}
}

func TestStatsIsNotModal(t *testing.T) {
	reg := NewOverlayRegistry()
	if !reg.Toggle(OverlayStats) {
		t.Fatal("toggle did not show stats")
	}
	if reg.ModalOpen() {
		t.Error("stats overlay counted as modal")
	}
	reg.Show(OverlayPause)
	if !reg.IsEnabled(OverlayStats) {
		t.Error("pause hid the stats overlay")
	}
}

func TestHideModal(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Show(OverlayDeath)
	reg.Show(OverlayStats)
	reg.HideModal()

	if reg.ModalOpen() {
		t.Error("modal still open after HideModal")
	}
	if !reg.IsEnabled(OverlayStats) {
		t.Error("HideModal hid a non-modal overlay")
	}
}

func TestDeathButtons(t *testing.T) {
	reg := NewOverlayRegistry()
	desc, ok := reg.Get(OverlayDeath)
	if !ok {
		t.Fatal("death overlay not registered")
	}
	want := []Action{ActionRestart, ActionExit}
	if len(desc.Buttons) != len(want) {
		t.Fatalf("buttons = %d, want %d", len(desc.Buttons), len(want))
	}
	for i, a := range want {
		if desc.Buttons[i].Action != a {
			t.Errorf("button %d action = %v, want %v", i, desc.Buttons[i].Action, a)
		}
	}
}

func TestKeyOverlay(t *testing.T) {
	reg := NewOverlayRegistry()
	tests := []struct {
		key    int32
		want   OverlayID
		wantOK bool
	}{
		{KeyEscape, OverlayPause, true},
		{KeyF3, OverlayStats, true},
		{KeyNone, "", false},
		{65, "", false},
	}
	for _, tt := range tests {
		id, ok := reg.KeyOverlay(tt.key)
		if id != tt.want || ok != tt.wantOK {
			t.Errorf("KeyOverlay(%d) = %q, %v; want %q, %v", tt.key, id, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRegisterReplaces(t *testing.T) {
	reg := NewOverlayRegistry()
	n := len(reg.All())
	reg.Register(OverlayDescriptor{ID: OverlayStats, Title: "Debug"})

	if len(reg.All()) != n {
		t.Errorf("registry grew to %d, want %d", len(reg.All()), n)
	}
	desc, _ := reg.Get(OverlayStats)
	if desc.Title != "Debug" {
		t.Errorf("title = %q, want Debug", desc.Title)
	}
}

func TestUnknownOverlayIgnored(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Show("missing")
	if reg.IsEnabled("missing") {
		t.Error("unknown overlay enabled")
	}
	if reg.Toggle("missing") {
		t.Error("Toggle on unknown overlay returned true")
	}
}
