package core

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

// ErrQuit is returned by Runner.Frame when the player asks to quit.
var ErrQuit = errors.New("quit")

// Game is one playable assignment.
type Game interface {
	Name() string
	World() *World
	// Reset puts the game back to its initial state.
	Reset()
	Update(state input.State, elapsed float64) error
	Draw(canvas render.Canvas)
}

// Announcer is implemented by games that report events worth logging,
// such as round results and mode changes.
type Announcer interface {
	// Announcements returns the messages raised since the last call.
	Announcements() []string
}

// Runner drives a game from a front end: it handles the actions every
// game shares and forwards sounds to a player.
type Runner struct {
	Game   Game
	Player audio.Player
	Paused bool
	// Announce receives the game's announcements, if it makes any.
	Announce func(msg string)
}

// NewRunner returns a runner for g. A nil player mutes the game.
func NewRunner(g Game, player audio.Player) *Runner {
	if player == nil {
		player = audio.Mute{}
	}
	return &Runner{Game: g, Player: player}
}

// Frame runs one front-end frame of elapsed seconds.
func (r *Runner) Frame(state input.State, elapsed float64) error {
	switch {
	case state.JustPressed(input.Quit):
		return ErrQuit
	case state.JustPressed(input.Restart):
		r.Game.Reset()
		r.Paused = false
		return nil
	case state.JustPressed(input.Pause):
		r.Paused = !r.Paused
	}
	if r.Paused {
		return nil
	}

	if err := r.Game.Update(state, elapsed); err != nil {
		return err
	}
	audio.Dispatch(r.Game.World().Sounds.Get(), r.Player)
	if a, ok := r.Game.(Announcer); ok && r.Announce != nil {
		for _, msg := range a.Announcements() {
			r.Announce(msg)
		}
	}
	return nil
}

// Draw draws the game and, while paused, a banner over it.
func (r *Runner) Draw(canvas render.Canvas) {
	r.Game.Draw(canvas)
	if r.Paused {
		DrawBanner(canvas, "PAUSED", 0)
	}
}

// DrawBanner centers text on the camera, offset vertically by dy. Letters
// are a twelfth of the view's height.
func DrawBanner(canvas render.Canvas, text string, dy float32) {
	cam := canvas.Camera()
	size := cam.Height() / 12
	center := cam.Visible().Center.Add(geom.V2(0, dy))
	canvas.DrawText(text, render.CenteredText(text, center, size), size, render.White)
}

// NewRand returns a PCG source seeded with seed, or with the clock when
// seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
