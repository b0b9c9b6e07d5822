package input

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// Step is one segment of a scripted input sequence, held for Ticks ticks.
type Step struct {
	Ticks  int        `yaml:"ticks"`
	Move   [2]float64 `yaml:"move"`
	Sprint bool       `yaml:"sprint"`
	Jump   bool       `yaml:"jump"`
	Look   [2]float64 `yaml:"look"`
	// Event names a lifecycle action fired on the first tick of the step
	// ("game_over", "restart", "pause", "resume", "disable_mover", "enable_mover", "exit").
	Event string `yaml:"event,omitempty"`
}

// Script replays a fixed input sequence, one snapshot per call. After the
// last step it keeps returning a zero snapshot.
type Script struct {
	Steps []Step `yaml:"steps"`

	step    int
	elapsed int
}

// LoadScript reads a YAML input script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input script: %w", err)
	}
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return nil, fmt.Errorf("input script step %d: ticks must be positive", i)
		}
	}
	return s, nil
}

// Snapshot implements Provider and advances the script by one tick.
func (s *Script) Snapshot() Snapshot {
	st, ok := s.current()
	if !ok {
		return Snapshot{}
	}
	s.elapsed++
	if s.elapsed >= st.Ticks {
		s.step++
		s.elapsed = 0
	}
	return st.snapshot()
}

// PendingEvent returns the event attached to the step about to be replayed,
// only on that step's first tick.
func (s *Script) PendingEvent() string {
	st, ok := s.current()
	if !ok || s.elapsed != 0 {
		return ""
	}
	return st.Event
}

// Done reports whether every step has been replayed.
func (s *Script) Done() bool {
	return s.step >= len(s.Steps)
}

// TotalTicks returns the summed length of all steps.
func (s *Script) TotalTicks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// Rewind restarts the script from its first step.
func (s *Script) Rewind() {
	s.step = 0
	s.elapsed = 0
}

func (s *Script) current() (Step, bool) {
	if s.step >= len(s.Steps) {
		return Step{}, false
	}
	return s.Steps[s.step], true
}

func (st Step) snapshot() Snapshot {
	return Snapshot{
		Move:   r2.Vec{X: st.Move[0], Y: st.Move[1]},
		Sprint: st.Sprint,
		Jump:   st.Jump,
		Look:   r2.Vec{X: st.Look[0], Y: st.Look[1]},
	}.Normalized()
}
