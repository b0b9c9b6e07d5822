// Package animation maps locomotion state onto animator parameters.
package animation

import (
	"log/slog"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/pthm-cable/stride/locomotion"
)

// Canonical parameter names.
const (
	NameSpeed       = "Speed"
	NameGrounded    = "Grounded"
	NameJump        = "Jump"
	NameFreeFall    = "FreeFall"
	NameMotionSpeed = "MotionSpeed"
	NameDeath       = "Death"
)

// ID identifies an animator parameter.
type ID int32

// Hash returns the stable identifier for a parameter name. It depends only on
// the bytes of name.
func Hash(name string) ID {
	return ID(int32(uint32(xxhash.Sum64String(name))))
}

// IDs is the resolved identifier table.
type IDs struct {
	Speed       ID
	Grounded    ID
	Jump        ID
	FreeFall    ID
	MotionSpeed ID
	Death       ID
}

// ResolveIDs hashes every canonical name.
func ResolveIDs() IDs {
	return IDs{
		Speed:       Hash(NameSpeed),
		Grounded:    Hash(NameGrounded),
		Jump:        Hash(NameJump),
		FreeFall:    Hash(NameFreeFall),
		MotionSpeed: Hash(NameMotionSpeed),
		Death:       Hash(NameDeath),
	}
}

// Params is the parameter set produced for one tick.
type Params struct {
	Speed       float64
	Grounded    bool
	Jump        bool
	FreeFall    bool
	MotionSpeed float64
	Death       bool
}

// Player accepts parameter writes. There is no read path.
type Player interface {
	SetFloat(id ID, v float64)
	SetBool(id ID, v bool)
}

// Bridge resolves identifiers once at construction and reuses them for
// every Sync.
type Bridge struct {
	ids    IDs
	player Player
}

// NewBridge builds a bridge. A nil player is allowed; Sync then only
// computes parameters.
func NewBridge(player Player) *Bridge {
	if player == nil {
		slog.Warn("animation_player_missing")
	}
	return &Bridge{ids: ResolveIDs(), player: player}
}

// IDs returns the table resolved at construction.
func (b *Bridge) IDs() IDs {
	return b.ids
}

// HasPlayer reports whether parameter writes reach a player.
func (b *Bridge) HasPlayer() bool {
	return b.player != nil
}

// Sync maps state onto parameters and writes them to the player.
func (b *Bridge) Sync(state locomotion.State, dead bool) Params {
	p := Params{
		Speed:       state.CurrentSpeed,
		Grounded:    state.Grounded,
		Jump:        state.Jumping,
		FreeFall:    state.FreeFalling,
		MotionSpeed: math.Min(state.InputMagnitude, 1),
		Death:       dead,
	}
	if b.player == nil {
		return p
	}

	b.player.SetFloat(b.ids.Speed, p.Speed)
	b.player.SetBool(b.ids.Grounded, p.Grounded)
	b.player.SetBool(b.ids.Jump, p.Jump)
	b.player.SetBool(b.ids.FreeFall, p.FreeFall)
	b.player.SetFloat(b.ids.MotionSpeed, p.MotionSpeed)
	b.player.SetBool(b.ids.Death, p.Death)
	return p
}
