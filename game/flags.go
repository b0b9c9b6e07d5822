package game

// Flags is the per-session freeze context shared by the lifecycle
// controller (the only writer) and the locomotion model and camera rig
// (readers, through Frozen).
type Flags struct {
	dead        bool
	overlayOpen bool
}

// Dead reports whether the player has died this session.
func (f *Flags) Dead() bool { return f.dead }

// OverlayOpen reports whether a modal overlay is shown.
func (f *Flags) OverlayOpen() bool { return f.overlayOpen }

// Frozen reports whether gameplay input is ignored.
func (f *Flags) Frozen() bool { return f.dead || f.overlayOpen }
