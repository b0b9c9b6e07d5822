package systems

// SystemInfo describes one phase of the tick for perf tracking and display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
}

// Phase IDs in tick order.
const (
	PhaseLifecycle  = "lifecycle"
	PhaseInput      = "input"
	PhaseLocomotion = "locomotion"
	PhaseCamera     = "camera"
	PhaseAnimation  = "animation"
	PhaseMover      = "mover"
	PhaseHazards    = "hazards"
	PhaseTelemetry  = "telemetry"
)

// SystemRegistry holds metadata about all tick phases.
// This centralizes naming so the stats overlay and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with every tick phase.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: PhaseLifecycle, Name: "Lifecycle", Description: "Overlay and death gate"})
	reg.Register(SystemInfo{ID: PhaseInput, Name: "Input", Description: "Polls the input provider"})
	reg.Register(SystemInfo{ID: PhaseLocomotion, Name: "Locomotion", Description: "Speed, jump and gravity"})
	reg.Register(SystemInfo{ID: PhaseCamera, Name: "Camera", Description: "Pitch/yaw and follow rotation"})
	reg.Register(SystemInfo{ID: PhaseAnimation, Name: "Animation", Description: "Animator parameter sync"})
	reg.Register(SystemInfo{ID: PhaseMover, Name: "Mover", Description: "Integrates velocity, probes ground"})
	reg.Register(SystemInfo{ID: PhaseHazards, Name: "Hazards", Description: "Kill plane"})
	reg.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Trace and window stats"})
	return reg
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// All returns all phases in tick order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in tick order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, s := range r.systems {
		ids[i] = s.ID
	}
	return ids
}

// Name returns the display name for a phase, or the ID if unknown.
func (r *SystemRegistry) Name(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}
