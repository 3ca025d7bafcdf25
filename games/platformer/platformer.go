// Package platformer is a side-scrolling tile game: run, jump, collect every
// coin and stomp the walkers.
package platformer

import (
	_ "embed"
	"fmt"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/physics"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
	"github.com/plus3/arcade/tilemap"
)

//go:embed levels/level1.toml
var builtinLevel []byte

// Tile ids used by level files.
const (
	TileGround = 1
	TileBrick  = 2
	TileDirt   = 3
)

const (
	CoinSize  = 0.2
	CoinValue = 10
	// AnimFPS is the rate of every two-frame loop.
	AnimFPS = 8
)

// Camera is the zoomed view the platformer is played through.
func Camera() render.Camera {
	return render.Camera{Left: -2.665, Right: 2.665, Bottom: -1.5, Top: 1.5}
}

type looks struct {
	poses  Poses
	walker Animated
	coin   Animated
	tiles  map[int]sprite.Sprite
}

func loadLooks(lib *assets.Library, tileSize float32) (*looks, error) {
	sheet, err := lib.Sheet(assets.TextureSheet, assets.AtlasGrid, assets.AtlasGrid)
	if err != nil {
		return nil, err
	}
	cells := func(names ...string) ([]int, error) {
		out := make([]int, len(names))
		for i, name := range names {
			if out[i], err = assets.Cell(name); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	loop := func(size float32, names ...string) (Animated, error) {
		frames, err := cells(names...)
		if err != nil {
			return Animated{}, err
		}
		return Animated{
			Anim:  sprite.Animation{Frames: frames, FPS: AnimFPS, Loop: true},
			Sheet: sheet,
			Size:  size,
		}, nil
	}

	l := &looks{tiles: make(map[int]sprite.Sprite)}
	if l.poses.Walk, err = loop(BodySize, assets.CellPlayerWalk0, assets.CellPlayerWalk1); err != nil {
		return nil, err
	}
	if l.walker, err = loop(BodySize, assets.CellWalker0, assets.CellWalker1); err != nil {
		return nil, err
	}
	if l.coin, err = loop(CoinSize, assets.CellCoin0, assets.CellCoin1); err != nil {
		return nil, err
	}
	if l.poses.Idle, err = lib.Sprite(assets.CellPlayerIdle, BodySize); err != nil {
		return nil, err
	}
	if l.poses.Jump, err = lib.Sprite(assets.CellPlayerJump, BodySize); err != nil {
		return nil, err
	}
	for id, cell := range map[int]string{
		TileGround: assets.CellGround,
		TileBrick:  assets.CellBrick,
		TileDirt:   assets.CellDirt,
	} {
		if l.tiles[id], err = lib.Sprite(cell, tileSize); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// LoadLevel returns the level file named by cfg, or the built-in level.
func LoadLevel(cfg config.Platformer) (*tilemap.Level, error) {
	if cfg.Level == "" {
		return tilemap.ParseLevel(builtinLevel)
	}
	return tilemap.LoadLevelFile(cfg.Level)
}

// Platformer runs one level.
type Platformer struct {
	world  *core.World
	cfg    config.Platformer
	level  *tilemap.Level
	looks  *looks
	state  *ecs.Singleton[State]
	camera *ecs.Singleton[render.Camera]

	mode Mode
}

// New loads the level and places the player on it.
func New(cfg config.Config, lib *assets.Library) (*Platformer, error) {
	level, err := LoadLevel(cfg.Platformer)
	if err != nil {
		return nil, fmt.Errorf("platformer: %w", err)
	}
	if len(level.SpawnsOf(tilemap.SpawnPlayer)) != 1 {
		return nil, fmt.Errorf("platformer: level %q: %w: need exactly one player spawn", level.Name, tilemap.ErrBadLevel)
	}
	lk, err := loadLooks(lib, level.Map.TileSize)
	if err != nil {
		return nil, fmt.Errorf("platformer: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Walker](registry)
	ecs.RegisterComponent[Coin](registry)
	ecs.RegisterComponent[Animated](registry)

	world := core.NewWorld(registry, ecs.NewFixedClock(cfg.Timing.Step, cfg.Timing.MaxSteps))
	g := &Platformer{
		world:  world,
		cfg:    cfg.Platformer,
		level:  level,
		looks:  lk,
		state:  ecs.NewSingleton[State](world.Storage),
		camera: ecs.NewSingleton(world.Storage, Camera()),
	}
	ecs.NewSingleton(world.Storage, Stage{Map: level.Map})

	s := world.Scheduler
	s.Register(&ModeSystem{Restart: g.Reset})
	s.Register(&ControlSystem{Config: cfg.Platformer})
	s.Register(&PatrolSystem{Config: cfg.Platformer})
	s.Register(&physics.ContactResetSystem{})
	s.Register(&physics.IntegrateSystem{})
	s.Register(&TileSystem{})
	s.Register(&InteractSystem{Config: cfg.Platformer})
	s.Register(&AnimateSystem{Poses: &lk.poses})
	s.Register(&CameraSystem{})
	world.Renderer.Register(&TileDrawSystem{Sprites: lk.tiles})
	world.Renderer.Register(&core.DrawSystem{})

	g.Reset()
	return g, nil
}

func (g *Platformer) Name() string       { return "platformer" }
func (g *Platformer) World() *core.World { return g.world }

// Reset puts every entity back where the level places it.
func (g *Platformer) Reset() {
	storage := g.world.Storage
	q := ecs.NewQuery[struct {
		ecs.EntityId
		*physics.Body
	}](storage)
	q.Execute()
	for id := range q.Iter() {
		storage.Delete(id)
	}

	m := g.level.Map
	at := func(sp tilemap.Spawn) geom.Vec3 { return m.TileCenter(sp.Col, sp.Row) }
	box := physics.Collider{Size: geom.V2(BodySize, BodySize)}

	spawn := at(g.level.SpawnsOf(tilemap.SpawnPlayer)[0])
	storage.Spawn(
		Player{Spawn: spawn},
		physics.Body{Position: spawn, Friction: geom.V2(g.cfg.Friction, physics.DefaultFriction)},
		box,
		physics.Contacts{},
		core.Drawable{Sprite: g.looks.poses.Idle, Layer: 2},
	)
	for i, sp := range g.level.SpawnsOf(tilemap.SpawnEnemy) {
		look := g.looks.walker
		look.Start = float32(i) * 0.07
		storage.Spawn(
			Walker{Dir: -1},
			physics.Body{Position: at(sp)},
			box,
			physics.Contacts{},
			look,
			core.Drawable{Sprite: look.At(0), Layer: 1},
		)
	}
	coins := g.level.SpawnsOf(tilemap.SpawnCoin)
	for i, sp := range coins {
		look := g.looks.coin
		look.Start = float32(i) * 0.05
		storage.Spawn(
			Coin{Value: CoinValue},
			physics.Body{Position: at(sp), Static: true},
			physics.Collider{Size: geom.V2(CoinSize, CoinSize)},
			look,
			core.Drawable{Sprite: look.At(0)},
		)
	}

	g.state.Set(State{Mode: Playing, Lives: g.cfg.Lives, TotalCoins: len(coins)})
	g.mode = Playing
	cam := Camera()
	cam.Follow(spawn, 1, m.Bounds())
	g.camera.Set(cam)
}

func (g *Platformer) Update(state input.State, elapsed float64) error {
	g.world.Advance(state, elapsed)
	return nil
}

// Announcements reports a finished run.
func (g *Platformer) Announcements() []string {
	st := g.state.Get()
	if st.Mode == g.mode {
		return nil
	}
	g.mode = st.Mode
	switch st.Mode {
	case Won:
		return []string{fmt.Sprintf("%s cleared: score %d", g.level.Name, st.Score)}
	case Lost:
		return []string{fmt.Sprintf("game over: %d of %d coins", st.Coins, st.TotalCoins)}
	}
	return nil
}

func (g *Platformer) Draw(canvas render.Canvas) {
	cam := *g.camera.Get()
	canvas.SetCamera(cam)
	canvas.Clear(render.Sky)
	g.world.Render(canvas)

	st := g.state.Get()
	view := cam.Visible()
	const size = 0.15
	y := view.Top() - 0.2
	canvas.DrawText(fmt.Sprintf("COINS %d/%d", st.Coins, st.TotalCoins), geom.V2(view.Left()+0.2, y), size, render.White)
	lives := fmt.Sprintf("LIVES %d", st.Lives)
	w := sprite.TextWidth(lives, size, size*render.TextSpacing)
	canvas.DrawText(lives, geom.V2(view.Right()-0.2-w+size/2, y), size, render.White)

	switch st.Mode {
	case Won:
		core.DrawBanner(canvas, "YOU WIN", 0.25)
		core.DrawBanner(canvas, "PRESS ENTER", -0.25)
	case Lost:
		core.DrawBanner(canvas, "GAME OVER", 0.25)
		core.DrawBanner(canvas, "PRESS ENTER", -0.25)
	}
}

// State returns the game-wide state.
func (g *Platformer) State() State { return *g.state.Get() }

// Camera returns the current view.
func (g *Platformer) Camera() render.Camera { return *g.camera.Get() }

// Level returns the level being played.
func (g *Platformer) Level() *tilemap.Level { return g.level }

var _ core.Game = (*Platformer)(nil)
