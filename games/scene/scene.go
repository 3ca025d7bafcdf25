// Package scene is a static textured landscape with a sun crossing the sky.
package scene

import (
	"fmt"
	"image/color"

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

const (
	// SunStart is the sun's x offset when its trip begins.
	SunStart = -2
	// SunTravel is how far the sun moves before starting over.
	SunTravel = 2
	// SunSpeed is in world units per second.
	SunSpeed = 1
)

var (
	sky      = color.RGBA{51, 128, 230, 255}
	sunHome  = geom.V2(2.75, 1.75)
	viewHalf = geom.V2(3.55, 2)
)

// Sun is the moving light. Dist is how far it has travelled this trip.
type Sun struct {
	Dist float32
}

// SunSystem moves the sun and wraps it once it has travelled SunTravel.
type SunSystem struct {
	Suns ecs.Query[struct {
		*Sun
		*physics.Body
	}]
}

func (s *SunSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Suns.Values() {
		item.Sun.Dist += SunSpeed * float32(frame.DeltaTime)
		if item.Sun.Dist > SunTravel {
			item.Sun.Dist = 0
		}
		item.Body.Position = sunHome.Add(geom.V2(SunStart+item.Sun.Dist, 0))
	}
}

// Scene is the first assignment: no input, just textured quads.
type Scene struct {
	world  *core.World
	lib    *assets.Library
	camera render.Camera
}

// New builds the scene from the textures in lib.
func New(cfg config.Config, lib *assets.Library) (*Scene, error) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Sun](registry)

	s := &Scene{
		world: core.NewWorld(registry, ecs.NewFixedClock(cfg.Timing.Step, cfg.Timing.MaxSteps)),
		lib:   lib,
		camera: render.Camera{
			Left: -viewHalf.X(), Right: viewHalf.X(),
			Bottom: -viewHalf.Y(), Top: viewHalf.Y(),
		},
	}
	s.world.Scheduler.Register(&SunSystem{})
	s.world.Renderer.Register(&core.DrawSystem{})

	if err := s.populate(); err != nil {
		return nil, err
	}
	return s, nil
}

// box returns a sprite of the named texture stretched over r.
func (s *Scene) box(name string, r geom.Rect) (sprite.Sprite, error) {
	spr, err := s.lib.Whole(name, r.Size().Y())
	if err != nil {
		return sprite.Sprite{}, fmt.Errorf("scene: %w", err)
	}
	spr.Aspect = r.Size().X() / r.Size().Y()
	return spr, nil
}

func (s *Scene) spawn(name string, r geom.Rect, layer int, extra ...any) error {
	spr, err := s.box(name, r)
	if err != nil {
		return err
	}
	components := append([]any{
		physics.Body{Position: r.Center, Static: true},
		physics.Collider{Size: r.Size()},
		core.Drawable{Sprite: spr, Layer: layer},
	}, extra...)
	s.world.Storage.Spawn(components...)
	return nil
}

func (s *Scene) populate() error {
	// the grass texture repeats once per unit along the ground
	for x := -viewHalf.X(); x < viewHalf.X(); x++ {
		r := geom.RectFromEdges(x, -viewHalf.Y(), x+1, -1)
		if err := s.spawn(assets.TextureGrass, r, 0); err != nil {
			return err
		}
	}
	if err := s.spawn(assets.TextureCactus, geom.RectFromEdges(-3, -1, -2.25, 0.8), 1); err != nil {
		return err
	}
	if err := s.spawn(assets.TextureBush, geom.RectFromEdges(-1.5, -1, -1, -0.5), 1); err != nil {
		return err
	}
	sun := geom.RectFromCenter(sunHome.Add(geom.V2(SunStart, 0)), geom.V2(0.5, 0.5))
	return s.spawn(assets.TextureSun, sun, 2, Sun{})
}

func (s *Scene) Name() string          { return "scene" }
func (s *Scene) World() *core.World    { return s.world }
func (s *Scene) Camera() render.Camera { return s.camera }

// Reset sends the sun back to the start of its trip.
func (s *Scene) Reset() {
	q := ecs.NewQuery[struct {
		*Sun
		*physics.Body
	}](s.world.Storage)
	q.Execute()
	for item := range q.Values() {
		item.Sun.Dist = 0
		item.Body.Position = sunHome.Add(geom.V2(SunStart, 0))
	}
}

func (s *Scene) Update(state input.State, elapsed float64) error {
	s.world.Advance(state, elapsed)
	return nil
}

func (s *Scene) Draw(canvas render.Canvas) {
	canvas.SetCamera(s.camera)
	canvas.Clear(sky)
	s.world.Render(canvas)
}

// SunPosition returns the centre of the sun.
func (s *Scene) SunPosition() geom.Vec3 {
	q := ecs.NewQuery[struct {
		*Sun
		*physics.Body
	}](s.world.Storage)
	q.Execute()
	if _, item, ok := q.First(); ok {
		return item.Body.Position
	}
	return geom.Vec3{}
}

var _ core.Game = (*Scene)(nil)
