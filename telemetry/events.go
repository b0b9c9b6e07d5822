// Package telemetry provides locomotion event tracking, windowed stats,
// per-tick traces and perf timing.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventJump EventType = iota
	EventLand
	EventFreeFall
	EventDeath
	EventRestart
	EventPause
	EventResume
)

var eventNames = [...]string{
	EventJump:     "jump",
	EventLand:     "land",
	EventFreeFall: "free_fall",
	EventDeath:    "death",
	EventRestart:  "restart",
	EventPause:    "pause",
	EventResume:   "resume",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a single discrete state change.
type Event struct {
	Type    EventType `csv:"-"`
	Name    string    `csv:"event"`
	Tick    int32     `csv:"tick"`
	Session uint32    `csv:"session"`
	Speed   float64   `csv:"speed"` // horizontal speed at the time of the event
}

// NewEvent creates an event.
func NewEvent(t EventType, tick int32, session uint32, speed float64) Event {
	return Event{Type: t, Name: t.String(), Tick: tick, Session: session, Speed: speed}
}
