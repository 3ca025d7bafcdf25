// Package pong is a one-player Pong against a CPU paddle.
package pong

import (
	"fmt"
	"strings"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/physics"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
)

// Pong is the second assignment.
type Pong struct {
	world *core.World
	cfg   config.Pong

	match  *ecs.Singleton[Match]
	score  *ecs.Singleton[Score]
	result *ecs.Singleton[RoundResult]

	ball ecs.EntityId

	reported int
	phase    Phase
}

// New builds the arena with sprites from lib.
func New(cfg config.Config, lib *assets.Library) (*Pong, error) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Paddle](registry)
	ecs.RegisterComponent[Ball](registry)
	ecs.RegisterComponent[Wall](registry)

	world := core.NewWorld(registry, ecs.NewFixedClock(cfg.Timing.Step, cfg.Timing.MaxSteps))
	p := &Pong{
		world:  world,
		cfg:    cfg.Pong,
		match:  ecs.NewSingleton[Match](world.Storage),
		score:  ecs.NewSingleton[Score](world.Storage),
		result: ecs.NewSingleton[RoundResult](world.Storage),
	}

	s := world.Scheduler
	s.Register(&PaddleSystem{Config: cfg.Pong})
	s.Register(&MatchSystem{Config: cfg.Pong})
	s.Register(&BallSystem{Config: cfg.Pong})
	s.Register(&physics.IntegrateSystem{})
	s.Register(&BounceSystem{Rand: core.NewRand(cfg.Pong.Seed)})
	s.Register(&ScoreSystem{Config: cfg.Pong})
	world.Renderer.Register(&core.DrawSystem{})

	if err := p.populate(lib); err != nil {
		return nil, err
	}
	p.Reset()
	return p, nil
}

// stretched returns the named cell drawn over a w x h box.
func stretched(lib *assets.Library, cell string, w, h float32) (sprite.Sprite, error) {
	spr, err := lib.Sprite(cell, h)
	if err != nil {
		return sprite.Sprite{}, fmt.Errorf("pong: %w", err)
	}
	spr.Aspect = w / h
	return spr, nil
}

func (p *Pong) populate(lib *assets.Library) error {
	bar, err := stretched(lib, assets.CellBar, 2*BarHalfLen, BarOuter-BarInner)
	if err != nil {
		return err
	}
	paddle, err := stretched(lib, assets.CellPaddle, PaddleW, PaddleH)
	if err != nil {
		return err
	}
	ball, err := stretched(lib, assets.CellBall, BallSize, BallSize)
	if err != nil {
		return err
	}

	barSize := geom.V2(2*BarHalfLen, BarOuter-BarInner)
	barY := float32(BarInner+BarOuter) / 2
	for _, normal := range []float32{-1, 1} {
		p.world.Storage.Spawn(
			Wall{Normal: normal},
			physics.Body{Position: geom.V2(0, -normal*barY), Static: true},
			physics.Collider{Size: barSize},
			core.Drawable{Sprite: bar},
		)
	}

	for _, side := range []Side{Left, Right} {
		p.world.Storage.Spawn(
			Paddle{Side: side, CPU: side == Right},
			physics.Body{Position: geom.V2(float32(side)*PaddleX, PaddleHomeY), Static: true},
			physics.Collider{Size: geom.V2(PaddleW, PaddleH)},
			core.Drawable{Sprite: paddle, Layer: 1},
		)
	}

	p.ball = p.world.Storage.Spawn(
		Ball{DirX: 1, DirY: 1},
		physics.Body{},
		physics.Collider{Size: geom.V2(BallSize, BallSize)},
		core.Drawable{Sprite: ball, Layer: 2},
	)
	return nil
}

func (p *Pong) Name() string       { return "pong" }
func (p *Pong) World() *core.World { return p.world }

// Reset starts a new match with both paddles home.
func (p *Pong) Reset() {
	p.match.Set(Match{Phase: Serving, Timer: p.cfg.ServeDelay})
	p.score.Set(Score{})
	p.result.Set(RoundResult{})
	p.reported = 0
	p.phase = Serving

	q := ecs.NewQuery[struct {
		*Paddle
		*physics.Body
	}](p.world.Storage)
	q.Execute()
	for item := range q.Values() {
		item.Position[1] = PaddleHomeY
	}
	if b := p.ballState(); b != nil {
		*b.Ball = Ball{DirX: 1, DirY: 1}
		b.Position = geom.Vec3{}
		b.Velocity = geom.Vec3{}
	}
}

func (p *Pong) Update(state input.State, elapsed float64) error {
	p.world.Advance(state, elapsed)
	return nil
}

// Announcements reports finished rounds and the end of a match.
func (p *Pong) Announcements() []string {
	var out []string
	if r := p.result.Get(); r.Round > p.reported {
		p.reported = r.Round
		out = append(out, r.Message())
	}
	if m := p.match.Get(); m.Phase != p.phase {
		p.phase = m.Phase
		if m.Phase == Over {
			s := p.score.Get()
			out = append(out, fmt.Sprintf("%s player wins the match %d-%d", m.Winner, s.Of(m.Winner), s.Of(m.Winner.Opponent())))
		}
	}
	return out
}

func (p *Pong) Draw(canvas render.Canvas) {
	canvas.SetCamera(render.DefaultCamera())
	canvas.Clear(render.Black)
	p.world.Render(canvas)

	const size = 0.4
	s := p.score.Get()
	canvas.DrawText(fmt.Sprint(s.Left), render.CenteredText(fmt.Sprint(s.Left), geom.V2(-1, 2.2), size), size, render.White)
	canvas.DrawText(fmt.Sprint(s.Right), render.CenteredText(fmt.Sprint(s.Right), geom.V2(1, 2.2), size), size, render.White)

	if m := p.match.Get(); m.Phase == Over {
		core.DrawBanner(canvas, strings.ToUpper(m.Winner.String())+" PLAYER WINS", 0.5)
		core.DrawBanner(canvas, "PRESS ENTER", -0.5)
	}
}

func (p *Pong) ballState() *ballItem {
	return ecs.NewView[ballItem](p.world.Storage).Get(p.ball)
}

// PaddleY returns the height of the paddle on side.
func (p *Pong) PaddleY(side Side) float32 {
	q := ecs.NewQuery[paddleItem](p.world.Storage)
	q.Execute()
	for item := range q.Values() {
		if item.Side == side {
			return item.Position.Y()
		}
	}
	return 0
}

// Match returns the state of the current match.
func (p *Pong) Match() Match { return *p.match.Get() }

// Score returns the current score.
func (p *Pong) Score() Score { return *p.score.Get() }

// LastRound returns the result of the most recent round.
func (p *Pong) LastRound() RoundResult { return *p.result.Get() }

var _ core.Game = (*Pong)(nil)
