// Package invaders is Space Invaders with a menu, waves and lives.
package invaders

import (
	"fmt"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/physics"
	"github.com/plus3/arcade/render"
)

// Invaders is the third assignment, with the game modes of the fourth.
type Invaders struct {
	world *core.World
	cfg   config.Invaders
	state *ecs.Singleton[State]

	mode Mode
}

func loadSprites(lib *assets.Library) (*Sprites, error) {
	s := &Sprites{}
	cells := [3][2]string{
		{assets.CellInvaderA0, assets.CellInvaderA1},
		{assets.CellInvaderB0, assets.CellInvaderB1},
		{assets.CellInvaderC0, assets.CellInvaderC1},
	}
	for kind, pair := range cells {
		for i, cell := range pair {
			spr, err := lib.Sprite(cell, InvaderSize)
			if err != nil {
				return nil, err
			}
			s.Invaders[kind][i] = spr
		}
	}

	var err error
	if s.Ship, err = lib.Sprite(assets.CellShip, ShipSize); err != nil {
		return nil, err
	}
	if s.Explosion, err = lib.Sprite(assets.CellExplosion, InvaderSize); err != nil {
		return nil, err
	}
	if s.PlayerShot, err = lib.Sprite(assets.CellPlayerBullet, BulletH); err != nil {
		return nil, err
	}
	if s.EnemyShot, err = lib.Sprite(assets.CellEnemyBullet, BulletH); err != nil {
		return nil, err
	}
	s.PlayerShot.Aspect = BulletW / BulletH
	s.EnemyShot.Aspect = BulletW / BulletH
	return s, nil
}

// New sets the game up on its main menu.
func New(cfg config.Config, lib *assets.Library) (*Invaders, error) {
	sprites, err := loadSprites(lib)
	if err != nil {
		return nil, fmt.Errorf("invaders: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Ship](registry)
	ecs.RegisterComponent[Invader](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Explosion](registry)

	world := core.NewWorld(registry, ecs.NewFixedClock(cfg.Timing.Step, cfg.Timing.MaxSteps))
	g := &Invaders{
		world: world,
		cfg:   cfg.Invaders,
		state: ecs.NewSingleton[State](world.Storage),
	}
	ecs.NewSingleton[Formation](world.Storage)

	s := world.Scheduler
	s.Register(&WaveSystem{Config: cfg.Invaders, Sprites: sprites})
	s.Register(&ModeSystem{Config: cfg.Invaders})
	s.Register(&ShipSystem{Config: cfg.Invaders, Sprites: sprites})
	s.Register(&FormationSystem{Config: cfg.Invaders, Sprites: sprites, Rand: core.NewRand(cfg.Invaders.Seed)})
	s.Register(&physics.IntegrateSystem{})
	s.Register(&HitSystem{Sprites: sprites})
	s.Register(&ExplosionSystem{})
	world.Renderer.Register(&core.DrawSystem{})

	world.Storage.Spawn(
		Ship{},
		physics.Body{Position: geom.V2(0, ShipY), Static: true},
		physics.Collider{Size: geom.V2(ShipSize, ShipSize)},
		core.Drawable{Sprite: sprites.Ship, Layer: 1},
	)
	g.Reset()
	return g, nil
}

func (g *Invaders) Name() string       { return "invaders" }
func (g *Invaders) World() *core.World { return g.world }

// Reset clears the field and returns to the main menu.
func (g *Invaders) Reset() {
	q := ecs.NewQuery[struct {
		ecs.EntityId
		*physics.Body
	}](g.world.Storage)
	q.Execute()
	for id, item := range q.Iter() {
		if g.world.Storage.HasComponent(id, shipType) {
			item.Position = geom.V2(0, ShipY)
			continue
		}
		g.world.Storage.Delete(id)
	}
	g.state.Set(State{Mode: MainMenu, Lives: g.cfg.Lives})
	g.mode = MainMenu
}

func (g *Invaders) Update(state input.State, elapsed float64) error {
	g.world.Advance(state, elapsed)
	return nil
}

// Announcements reports mode changes.
func (g *Invaders) Announcements() []string {
	st := g.state.Get()
	if st.Mode == g.mode {
		return nil
	}
	g.mode = st.Mode
	if st.Mode == GameOver {
		return []string{fmt.Sprintf("game over: score %d on wave %d", st.Score, st.Wave)}
	}
	return []string{"mode: " + st.Mode.String()}
}

func (g *Invaders) Draw(canvas render.Canvas) {
	canvas.SetCamera(render.DefaultCamera())
	canvas.Clear(render.Night)

	st := g.state.Get()
	switch st.Mode {
	case MainMenu:
		core.DrawBanner(canvas, "SPACE INVADERS", 0.5)
		core.DrawBanner(canvas, "PRESS ENTER", -0.5)
		return
	case GameOver:
		g.world.Render(canvas)
		core.DrawBanner(canvas, "GAME OVER", 0.5)
		core.DrawBanner(canvas, "PRESS ENTER", -0.5)
	default:
		g.world.Render(canvas)
	}

	const size = 0.3
	canvas.DrawText(fmt.Sprintf("SCORE %d", st.Score), geom.V2(-5, 2.75), size, render.White)
	lives := fmt.Sprintf("LIVES %d", st.Lives)
	canvas.DrawText(lives, render.CenteredText(lives, geom.V2(3.8, 2.75), size), size, render.White)
}

// State returns the game-wide state.
func (g *Invaders) State() State { return *g.state.Get() }

// Count returns how many entities carry component T.
func Count[T any](g *Invaders) int {
	q := ecs.NewQuery[struct{ C *T }](g.world.Storage)
	q.Execute()
	return q.Len()
}

var _ core.Game = (*Invaders)(nil)
