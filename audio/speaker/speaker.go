// Package speaker plays synthesized cues through ebiten's audio context.
package speaker

import (
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/arcade/audio"
)

// Player renders cues with a Synth and plays the PCM on an ebiten audio
// context. It must be used from the game loop goroutine.
type Player struct {
	ctx     *ebaudio.Context
	synth   *audio.Synth
	active  []*ebaudio.Player
	onError func(audio.Cue, error)
}

// New creates a player. The context's sample rate must match the synth's.
func New(ctx *ebaudio.Context, synth *audio.Synth) *Player {
	return &Player{ctx: ctx, synth: synth}
}

// OnError registers a callback for cues that fail to render.
func (p *Player) OnError(fn func(audio.Cue, error)) {
	p.onError = fn
}

// Play starts cue and reaps players that have finished.
func (p *Player) Play(cue audio.Cue) {
	p.reap()

	data, err := p.synth.Render(cue)
	if err != nil {
		if p.onError != nil {
			p.onError(cue, err)
		}
		return
	}
	player := p.ctx.NewPlayerFromBytes(data)
	player.Play()
	p.active = append(p.active, player)
}

// Active returns the number of cues still playing.
func (p *Player) Active() int {
	p.reap()
	return len(p.active)
}

func (p *Player) reap() {
	kept := p.active[:0]
	for _, player := range p.active {
		if player.IsPlaying() {
			kept = append(kept, player)
			continue
		}
		_ = player.Close()
	}
	clear(p.active[len(kept):])
	p.active = kept
}

// Close stops every playing cue.
func (p *Player) Close() {
	for _, player := range p.active {
		_ = player.Close()
	}
	p.active = nil
}
