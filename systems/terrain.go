package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/stride/config"
)

// Terrain is a bounded heightfield. Outside the floor extent there is no
// ground and bodies fall.
type Terrain struct {
	noise     opensimplex.Noise
	scale     float64
	amplitude float64
	baseY     float64
	extent    float64
}

// NewTerrain creates terrain from config.
func NewTerrain(cfg config.TerrainConfig) *Terrain {
	return &Terrain{
		noise:     opensimplex.New(cfg.Seed),
		scale:     cfg.Scale,
		amplitude: cfg.Amplitude,
		baseY:     cfg.BaseY,
		extent:    cfg.Extent,
	}
}

// Height returns the ground height at (x, z) and whether ground exists there.
func (t *Terrain) Height(x, z float64) (float64, bool) {
	if t.extent > 0 && (math.Abs(x) > t.extent || math.Abs(z) > t.extent) {
		return 0, false
	}
	if t.amplitude == 0 {
		return t.baseY, true
	}
	// Eval2 is in [-1, 1]; shift so amplitude is the peak above base
	n := (t.noise.Eval2(x*t.scale, z*t.scale) + 1) * 0.5
	return t.baseY + n*t.amplitude, true
}

// Extent returns the floor half-size, 0 when unbounded.
func (t *Terrain) Extent() float64 {
	return t.extent
}
