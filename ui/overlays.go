// Package ui describes the overlay surfaces that sit on top of gameplay.
// Rendering lives in the platform package; this package only tracks which
// overlays are shown and which buttons they offer.
package ui

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayDeath OverlayID = "death"
	OverlayPause OverlayID = "pause"
	OverlayStats OverlayID = "stats"
)

// Key codes used for overlay toggles. Values follow raylib's keyboard codes.
const (
	KeyNone   int32 = 0
	KeyEscape int32 = 256
	KeyF3     int32 = 292
)

// Action is what an overlay button asks the lifecycle to do.
type Action int

const (
	ActionNone Action = iota
	ActionResume
	ActionRestart
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionResume:
		return "resume"
	case ActionRestart:
		return "restart"
	case ActionExit:
		return "exit"
	default:
		return "none"
	}
}

// Button is a clickable control on an overlay.
type Button struct {
	Label  string
	Action Action
}

// OverlayDescriptor defines an overlay that can be shown.
type OverlayDescriptor struct {
	ID        OverlayID   // Unique identifier
	Title     string      // Heading text
	Key       int32       // Keyboard key to toggle (0 = no key)
	KeyLabel  string      // Key label for display
	Modal     bool        // Owns the cursor and freezes gameplay while shown
	Buttons   []Button    // Buttons in display order
	Exclusive []OverlayID // Other overlays to hide when this is shown
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID // Maintains insertion order for display
}

// NewOverlayRegistry creates a registry with the death, pause and stats overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:    OverlayDeath,
		Title: "You Died",
		Modal: true,
		Buttons: []Button{
			{Label: "Restart", Action: ActionRestart},
			{Label: "Exit", Action: ActionExit},
		},
		Exclusive: []OverlayID{OverlayPause},
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayPause,
		Title:    "Paused",
		Key:      KeyEscape,
		KeyLabel: "Esc",
		Modal:    true,
		Buttons: []Button{
			{Label: "Resume", Action: ActionResume},
			{Label: "Restart", Action: ActionRestart},
			{Label: "Exit", Action: ActionExit},
		},
		Exclusive: []OverlayID{OverlayDeath},
	})

	// Debug readout, does not take the cursor
	r.Register(OverlayDescriptor{
		ID:       OverlayStats,
		Title:    "Locomotion",
		Key:      KeyF3,
		KeyLabel: "F3",
	})
}

// Register adds an overlay to the registry. Registering an existing ID
// replaces its descriptor and keeps its position.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; ok {
		for i := range r.descriptors {
			if r.descriptors[i].ID == desc.ID {
				r.descriptors[i] = desc
			}
		}
		r.byID[desc.ID] = desc
		return
	}
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = false
}

// Show enables an overlay.
func (r *OverlayRegistry) Show(id OverlayID) {
	r.SetEnabled(id, true)
}

// Hide disables an overlay.
func (r *OverlayRegistry) Hide(id OverlayID) {
	r.SetEnabled(id, false)
}

// HideModal disables every modal overlay.
func (r *OverlayRegistry) HideModal() {
	for _, desc := range r.descriptors {
		if desc.Modal {
			r.enabled[desc.ID] = false
		}
	}
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	// If enabling, disable exclusive overlays
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ModalOpen reports whether any modal overlay is shown.
func (r *OverlayRegistry) ModalOpen() bool {
	_, ok := r.ActiveModal()
	return ok
}

// ActiveModal returns the first shown modal overlay in registration order.
func (r *OverlayRegistry) ActiveModal() (OverlayDescriptor, bool) {
	for _, id := range r.order {
		desc := r.byID[id]
		if desc.Modal && r.enabled[id] {
			return desc, true
		}
	}
	return OverlayDescriptor{}, false
}

// KeyOverlay returns the overlay bound to key, if any.
func (r *OverlayRegistry) KeyOverlay(key int32) (OverlayID, bool) {
	if key == KeyNone {
		return "", false
	}
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, true
		}
	}
	return "", false
}

// EnabledOverlays returns a list of currently enabled overlay IDs.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, id := range r.order {
		if r.enabled[id] {
			result = append(result, id)
		}
	}
	return result
}
