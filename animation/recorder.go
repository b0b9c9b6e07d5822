package animation

// Recorder is an in-memory Player that keeps the last value written per id.
type Recorder struct {
	Floats map[ID]float64
	Bools  map[ID]bool
	Writes int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Floats: make(map[ID]float64),
		Bools:  make(map[ID]bool),
	}
}

// SetFloat implements Player.
func (r *Recorder) SetFloat(id ID, v float64) {
	r.Floats[id] = v
	r.Writes++
}

// SetBool implements Player.
func (r *Recorder) SetBool(id ID, v bool) {
	r.Bools[id] = v
	r.Writes++
}

// Float returns the last float written for name.
func (r *Recorder) Float(name string) (float64, bool) {
	v, ok := r.Floats[Hash(name)]
	return v, ok
}

// Bool returns the last bool written for name.
func (r *Recorder) Bool(name string) (bool, bool) {
	v, ok := r.Bools[Hash(name)]
	return v, ok
}
