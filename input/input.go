// Package input defines the per-tick player intent snapshot and the
// providers that produce it.
package input

import "gonum.org/v1/gonum/spatial/r2"

// Snapshot is a normalized, immutable view of player intent for one tick.
type Snapshot struct {
	Move   r2.Vec // x = strafe, y = forward, each in [-1, 1]
	Sprint bool
	Jump   bool
	Look   r2.Vec // pointer or stick delta since the previous tick
}

// Provider yields the current snapshot. Implementations may return the
// previous value unchanged when no device event occurred.
type Provider interface {
	Snapshot() Snapshot
}

// MoveMagnitude returns |Move| clamped to 1.
func (s Snapshot) MoveMagnitude() float64 {
	m := r2.Norm(s.Move)
	if m > 1 {
		return 1
	}
	return m
}

// Normalized clamps Move components into [-1, 1].
func (s Snapshot) Normalized() Snapshot {
	s.Move.X = clampUnit(s.Move.X)
	s.Move.Y = clampUnit(s.Move.Y)
	return s
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Static is a Provider that always returns the same snapshot.
type Static Snapshot

// Snapshot implements Provider.
func (s Static) Snapshot() Snapshot {
	return Snapshot(s)
}

// Latch is a Provider that returns the last snapshot pushed into it.
// Drivers that own their own clock push every tick; the game reads only
// while unfrozen.
type Latch struct {
	snap Snapshot
}

// Set replaces the held snapshot.
func (l *Latch) Set(s Snapshot) {
	l.snap = s.Normalized()
}

// Snapshot implements Provider.
func (l *Latch) Snapshot() Snapshot {
	return l.snap
}
