package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/stride/config"
)

func TestMeasureDefaults(t *testing.T) {
	cfg := config.Default()
	m, err := Measure(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Exponential approach at rate 10 lags about 1/10 s
	if m.SprintLag < 0.07 || m.SprintLag > 0.13 {
		t.Errorf("sprint lag = %v, want about 0.1", m.SprintLag)
	}
	if m.TurnLag <= 0 || m.TurnLag > turnTrialSec {
		t.Errorf("turn lag = %v, want in (0, %v]", m.TurnLag, turnTrialSec)
	}
	if math.Abs(m.Apex-1.2) > 0.1 {
		t.Errorf("apex = %v, want about 1.2", m.Apex)
	}
}

func TestMeasureTracksParameters(t *testing.T) {
	slow := config.Default()
	slow.Locomotion.SpeedChangeRate = 4
	slow.Locomotion.RotationSmoothTime = 0.3
	slow.Locomotion.JumpHeight = 0.6
	if err := slow.Refresh(); err != nil {
		t.Fatal(err)
	}

	base, err := Measure(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	m, err := Measure(slow)
	if err != nil {
		t.Fatal(err)
	}
	if m.SprintLag <= base.SprintLag {
		t.Errorf("sprint lag %v not above default %v for a lower rate", m.SprintLag, base.SprintLag)
	}
	if m.TurnLag <= base.TurnLag {
		t.Errorf("turn lag %v not above default %v for a longer smooth time", m.TurnLag, base.TurnLag)
	}
	if m.Apex >= base.Apex {
		t.Errorf("apex %v not below default %v for a lower jump", m.Apex, base.Apex)
	}
}

func TestParamVectorNormalize(t *testing.T) {
	pv := NewParamVector(config.Default())
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}

	clamped := pv.Clamp([]float64{-5, 10, 1})
	if clamped[0] != pv.Specs[0].Min || clamped[1] != pv.Specs[1].Max || clamped[2] != 1 {
		t.Errorf("Clamp = %v", clamped)
	}
}

func TestFitRecoversSprintRate(t *testing.T) {
	ref := config.Default()
	ref.Locomotion.SpeedChangeRate = 20
	if err := ref.Refresh(); err != nil {
		t.Fatal(err)
	}
	targets, err := Measure(ref)
	if err != nil {
		t.Fatal(err)
	}

	base := config.Default()
	params := NewParamVector(base)
	ev := NewEvaluator(params, base, targets)

	start := ev.Evaluate(params.DefaultVector())
	if _, err := Fit(ev, params, 150, nil); err != nil {
		t.Logf("optimize: %v", err)
	}
	best, x := ev.Best()
	if best >= start/10 {
		t.Errorf("best fitness %v, want well below starting %v", best, start)
	}
	if math.Abs(x[0]-20) > 3 {
		t.Errorf("fitted speed_change_rate = %v, want about 20", x[0])
	}
}
