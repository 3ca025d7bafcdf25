package platformer

import (
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/sprite"
	"github.com/plus3/arcade/tilemap"
)

// Mode is the state of a run through the level.
type Mode int

const (
	Playing Mode = iota
	Won
	Lost
)

func (m Mode) String() string {
	switch m {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// State is the game-wide singleton.
type State struct {
	Mode       Mode
	Lives      int
	Score      int
	Coins      int
	TotalCoins int
}

// Stage holds the tile map the bodies collide with.
type Stage struct {
	Map *tilemap.Map
}

// Player is the controlled body. Spawn is where it returns after losing a
// life.
type Player struct {
	Spawn geom.Vec3
}

// Walker is an enemy pacing left and right.
type Walker struct {
	Dir float32
}

// Coin is a pickup worth Value points.
type Coin struct {
	Value int
}

// Animated cycles a Drawable through sheet cells.
type Animated struct {
	Anim  sprite.Animation
	Sheet sprite.Sheet
	Size  float32
	// Start offsets the clock so identical entities do not move in step.
	Start float32
}

// At returns the sprite shown at time t.
func (a Animated) At(t float32) sprite.Sprite {
	return sprite.FromIndex(a.Sheet, a.Anim.Frame(t-a.Start), a.Size)
}
