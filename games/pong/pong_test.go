package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

const frame = 1.0 / 60.0

func newPong(t *testing.T, mutate ...func(*config.Config)) *Pong {
	t.Helper()
	cfg := config.Default()
	cfg.Pong.Seed = 7
	for _, m := range mutate {
		m(&cfg)
	}
	p, err := New(cfg, assets.Builtin())
	require.NoError(t, err)
	return p
}

func play(p *Pong, src input.Source, frames int) {
	for i := 0; i < frames; i++ {
		_ = p.Update(src.Poll(), frame)
	}
}

// place puts the ball in play at pos.
func place(p *Pong, pos geom.Vec3, angle, dirX, dirY float32) {
	p.match.Set(Match{Phase: Playing})
	b := p.ballState()
	b.Position = pos
	*b.Ball = Ball{Angle: angle, DirX: dirX, DirY: dirY}
}

func TestHumanPaddleMovesAndClamps(t *testing.T) {
	p := newPong(t)
	start := p.PaddleY(Left)
	assert.InDelta(t, PaddleHomeY, start, 1e-6)

	play(p, input.HoldScript(input.Repeat(input.Up, 15)...), 15)
	assert.InDelta(t, start+p.cfg.PaddleSpeed*0.25, p.PaddleY(Left), 0.01)

	play(p, input.HoldScript(input.Repeat(input.Up, 120)...), 120)
	assert.InDelta(t, BarInner-PaddleH/2, p.PaddleY(Left), 1e-5)

	play(p, input.HoldScript(input.Repeat(input.Down, 240)...), 240)
	assert.InDelta(t, -(BarInner - PaddleH/2), p.PaddleY(Left), 1e-5)
}

func TestServeDelay(t *testing.T) {
	p := newPong(t)
	play(p, input.NewScript(), 30)
	assert.Equal(t, Serving, p.Match().Phase)
	assert.Equal(t, geom.Vec3{}, p.ballState().Position)

	play(p, input.NewScript(), 40)
	assert.Equal(t, Playing, p.Match().Phase)
	assert.Greater(t, p.ballState().Position.X(), float32(0))
}

func TestDeflectZones(t *testing.T) {
	s := &BounceSystem{Rand: core.NewRand(1)}
	for i := 0; i < 50; i++ {
		b := Ball{DirY: -1}
		s.deflect(&b, 0.1)
		assert.GreaterOrEqual(t, b.Angle, float32(35))
		assert.LessOrEqual(t, b.Angle, float32(54))
		assert.Equal(t, float32(1), b.DirY)

		b = Ball{DirY: -1}
		s.deflect(&b, 0.6)
		assert.LessOrEqual(t, b.Angle, float32(9))
		assert.Equal(t, float32(-1), b.DirY)

		b = Ball{DirY: 1}
		s.deflect(&b, 1.2)
		assert.GreaterOrEqual(t, b.Angle, float32(35))
		assert.LessOrEqual(t, b.Angle, float32(54))
		assert.Equal(t, float32(-1), b.DirY)
	}
}

func TestBallBouncesOffPaddle(t *testing.T) {
	p := newPong(t)
	place(p, geom.V2(4.6, PaddleHomeY), 0, 1, 1)

	play(p, input.NewScript(), 1)
	b := p.ballState()
	assert.Equal(t, float32(-1), b.DirX)
	assert.InDelta(t, PaddleX-PaddleW/2-BallSize/2, b.Position.X(), 1e-5)
	assert.LessOrEqual(t, b.Angle, float32(9))
	assert.Contains(t, p.world.DrainSounds(), audio.CueBounce)

	// moving away, the next step does not bounce again
	play(p, input.NewScript(), 1)
	assert.Equal(t, float32(-1), p.ballState().DirX)
}

func TestBallBouncesOffWall(t *testing.T) {
	p := newPong(t)
	place(p, geom.V2(0, 2.6), 45, 1, 1)

	play(p, input.NewScript(), 1)
	b := p.ballState()
	assert.Equal(t, float32(-1), b.DirY)
	assert.InDelta(t, BarInner-BallSize/2, b.Position.Y(), 1e-5)

	play(p, input.NewScript(), 1)
	assert.Equal(t, float32(-1), p.ballState().DirY)
	assert.Less(t, p.ballState().Position.Y(), float32(BarInner-BallSize/2))
}

func TestScoringResetsRound(t *testing.T) {
	p := newPong(t)
	place(p, geom.V2(4.95, 2), 0, 1, 1)

	play(p, input.NewScript(), 1)
	assert.Equal(t, Score{Left: 1}, p.Score())
	r := p.LastRound()
	assert.Equal(t, 1, r.Round)
	assert.Equal(t, Left, r.Winner)
	assert.Equal(t, "left player has won", r.Message())

	b := p.ballState()
	assert.Equal(t, geom.Vec3{}, b.Position)
	assert.Equal(t, float32(0), b.Angle)
	assert.Equal(t, float32(Right), b.DirX)
	assert.InDelta(t, PaddleHomeY, p.PaddleY(Right), 1e-6)
	assert.Equal(t, Serving, p.Match().Phase)

	assert.Equal(t, []string{"left player has won"}, p.Announcements())
	assert.Empty(t, p.Announcements())
}

func TestRightScoresOnLeftGoal(t *testing.T) {
	p := newPong(t)
	place(p, geom.V2(-4.95, -2), 0, -1, 1)

	play(p, input.NewScript(), 1)
	assert.Equal(t, Score{Right: 1}, p.Score())
	assert.Equal(t, "right player has won", p.LastRound().Message())
}

func TestMatchOverAndRestart(t *testing.T) {
	p := newPong(t, func(c *config.Config) { c.Pong.WinScore = 1 })
	place(p, geom.V2(4.95, 2), 0, 1, 1)

	play(p, input.NewScript(), 1)
	m := p.Match()
	assert.Equal(t, Over, m.Phase)
	assert.Equal(t, Left, m.Winner)
	assert.Equal(t, []string{"left player has won", "left player wins the match 1-0"}, p.Announcements())

	rec := render.NewRecorder()
	p.Draw(rec)
	assert.Contains(t, rec.Texts(), "LEFT PLAYER WINS")

	// nothing moves until Confirm
	play(p, input.NewScript(), 120)
	assert.Equal(t, Over, p.Match().Phase)

	play(p, input.HoldScript(input.Confirm), 1)
	assert.Equal(t, Serving, p.Match().Phase)
	assert.Equal(t, Score{}, p.Score())
}

func TestDraw(t *testing.T) {
	p := newPong(t)
	rec := render.NewRecorder()
	p.Draw(rec)

	assert.Equal(t, 5, rec.Count(render.OpSprite))
	assert.Equal(t, []string{"0", "0"}, rec.Texts())
	assert.Equal(t, render.DefaultCamera(), rec.Camera())
}

func TestReset(t *testing.T) {
	p := newPong(t)
	place(p, geom.V2(4.95, 2), 0, 1, 1)
	play(p, input.NewScript(), 1)
	require.Equal(t, 1, p.Score().Left)

	p.Reset()
	assert.Equal(t, Score{}, p.Score())
	assert.Equal(t, RoundResult{}, p.LastRound())
	assert.Equal(t, Serving, p.Match().Phase)
}
