package invaders

import "github.com/plus3/arcade/sprite"

// Mode is the screen the game is on.
type Mode int

const (
	MainMenu Mode = iota
	Level
	GameOver
)

func (m Mode) String() string {
	switch m {
	case MainMenu:
		return "main menu"
	case Level:
		return "level"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// State is the game-wide singleton.
type State struct {
	Mode  Mode
	Score int
	Lives int
	Wave  int
}

// Ship is the player's cannon.
type Ship struct {
	Cooldown float32
}

// Invader is one member of the formation. Frames are its two animation
// poses.
type Invader struct {
	Row, Col int
	Points   int
	Frames   [2]sprite.Sprite
}

// Owner says who fired a bullet.
type Owner int

const (
	PlayerOwned Owner = iota
	EnemyOwned
)

type Bullet struct {
	Owner Owner
}

// Explosion is a short-lived effect left where an invader died.
type Explosion struct {
	TTL float32
}

// Formation is the shared movement of every invader.
type Formation struct {
	Dir       float32
	Total     int
	FireTimer float32
	AnimTimer float32
	Frame     int
}
