package platformer

import (
	"github.com/plus3/arcade/audio"
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

const (
	// BodySize is the collider size of the player and the walkers.
	BodySize = 0.3
	// WalkerSpeed is in world units per second.
	WalkerSpeed = 0.6
	// StompBounce is the share of the jump velocity a stomp gives back.
	StompBounce = 0.75
	StompPoints = 50
	// FallMargin is how far below the map a body may fall before it is
	// lost.
	FallMargin = 1.0
	// CameraRate is the fraction of the distance to the player the camera
	// closes each step.
	CameraRate = 0.15
)

type playerItem struct {
	*Player
	*physics.Body
	*physics.Collider
	*physics.Contacts
}

type walkerItem struct {
	ecs.EntityId
	*Walker
	*physics.Body
	*physics.Collider
	*physics.Contacts
}

// ControlSystem turns input into acceleration and jumps. It runs before
// contacts are reset so it sees the ground found by the previous step.
type ControlSystem struct {
	Players ecs.Query[playerItem]
	State   ecs.Singleton[State]
	Input   ecs.Singleton[input.State]
	Sound   ecs.Singleton[audio.Queue]

	Config config.Platformer
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	if s.State.Get().Mode != Playing {
		in = &input.State{}
	}
	for p := range s.Players.Values() {
		axis := in.Axis(input.Left, input.Right)
		p.Acceleration = geom.V2(axis*s.Config.MoveAccel, s.Config.Gravity)
		if in.JustPressed(input.Jump) && p.Contacts.Bottom {
			p.Velocity[1] = s.Config.JumpVelocity
			s.Sound.Get().Push(audio.CueJump)
		}
	}
}

// PatrolSystem walks enemies and turns them at walls and ledges.
type PatrolSystem struct {
	Walkers ecs.Query[walkerItem]
	Stage   ecs.Singleton[Stage]

	Config config.Platformer
}

func (s *PatrolSystem) Execute(frame *ecs.UpdateFrame) {
	m := s.Stage.Get().Map
	for w := range s.Walkers.Values() {
		if w.Contacts.Bottom {
			box := physics.Bounds(*w.Body, *w.Collider)
			ahead := box.Center.X() + w.Dir*(box.Half.X()+tilemap.Epsilon)
			ledge := !m.SolidAt(geom.V2(ahead, box.Bottom()-2*tilemap.Epsilon))
			wall := (w.Dir < 0 && w.Contacts.Left) || (w.Dir > 0 && w.Contacts.Right)
			if ledge || wall {
				w.Dir = -w.Dir
			}
		}
		w.Velocity[0] = w.Dir * WalkerSpeed
		w.Acceleration = geom.V2(0, s.Config.Gravity)
	}
}

// TileSystem pushes every moving body out of the solid tiles.
type TileSystem struct {
	Bodies ecs.Query[struct {
		*physics.Body
		*physics.Collider
		*physics.Contacts
	}]
	Stage ecs.Singleton[Stage]
}

func (s *TileSystem) Execute(frame *ecs.UpdateFrame) {
	m := s.Stage.Get().Map
	for b := range s.Bodies.Values() {
		if !b.Static {
			m.Resolve(b.Body, *b.Collider, b.Contacts)
		}
	}
}

// InteractSystem handles coins, stomps, hurts and falls.
type InteractSystem struct {
	Players ecs.Query[playerItem]
	Walkers ecs.Query[walkerItem]
	Coins   ecs.Query[struct {
		ecs.EntityId
		*Coin
		*physics.Body
		*physics.Collider
	}]
	State ecs.Singleton[State]
	Stage ecs.Singleton[Stage]
	Sound ecs.Singleton[audio.Queue]

	Config config.Platformer
}

func (s *InteractSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	if st.Mode != Playing {
		return
	}
	floor := s.Stage.Get().Map.Bounds().Bottom() - FallMargin

	for p := range s.Players.Values() {
		for c := range s.Coins.Values() {
			if !physics.Overlapping(*p.Body, *p.Collider, *c.Body, *c.Collider) {
				continue
			}
			frame.Commands.Delete(c.EntityId)
			st.Coins++
			st.Score += c.Value
			s.Sound.Get().Push(audio.CueCoin)
		}

		hurt := p.Position.Y() < floor
		for w := range s.Walkers.Values() {
			if hurt || !physics.Overlapping(*p.Body, *p.Collider, *w.Body, *w.Collider) {
				continue
			}
			if p.Velocity.Y() < 0 && physics.Bounds(*p.Body, *p.Collider).Bottom() > w.Position.Y() {
				frame.Commands.Delete(w.EntityId)
				p.Velocity[1] = s.Config.JumpVelocity * StompBounce
				st.Score += StompPoints
				s.Sound.Get().Push(audio.CueExplode)
				continue
			}
			hurt = true
		}

		if hurt {
			st.Lives--
			s.Sound.Get().Push(audio.CueHurt)
			p.Position = p.Spawn
			p.Velocity = geom.Vec3{}
			if st.Lives <= 0 {
				st.Mode = Lost
			}
		}
	}

	if st.TotalCoins > 0 && st.Coins >= st.TotalCoins && st.Mode == Playing {
		st.Mode = Won
	}
}

// ModeSystem restarts a finished run on Confirm.
type ModeSystem struct {
	State ecs.Singleton[State]
	Input ecs.Singleton[input.State]

	Restart func()
}

func (s *ModeSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Mode == Playing || !s.Input.Get().JustPressed(input.Confirm) {
		return
	}
	frame.Commands.Defer(s.Restart)
}

// AnimateSystem advances Animated drawables and picks the player's pose.
type AnimateSystem struct {
	Animated ecs.Query[struct {
		*Animated
		*core.Drawable
	}]
	Players ecs.Query[struct {
		*Player
		*physics.Body
		*physics.Contacts
		*core.Drawable
	}]
	Time ecs.Singleton[core.Time]

	Poses *Poses
}

// Poses are the player's looks.
type Poses struct {
	Idle, Jump sprite.Sprite
	Walk       Animated
}

func (s *AnimateSystem) Execute(frame *ecs.UpdateFrame) {
	now := float32(s.Time.Get().Seconds)
	for a := range s.Animated.Values() {
		a.Sprite = a.At(now)
	}
	for p := range s.Players.Values() {
		switch {
		case !p.Contacts.Bottom:
			p.Sprite = s.Poses.Jump
		case geom.Abs(p.Velocity.X()) > 0.1:
			p.Sprite = s.Poses.Walk.At(now)
		default:
			p.Sprite = s.Poses.Idle
		}
	}
}

// CameraSystem keeps the player in view.
type CameraSystem struct {
	Players ecs.Query[struct {
		*Player
		*physics.Body
	}]
	Camera ecs.Singleton[render.Camera]
	Stage  ecs.Singleton[Stage]
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	if _, p, ok := s.Players.First(); ok {
		s.Camera.Get().Follow(p.Position, CameraRate, s.Stage.Get().Map.Bounds())
	}
}

// TileDrawSystem draws the visible tiles of the stage.
type TileDrawSystem struct {
	Stage  ecs.Singleton[Stage]
	Target ecs.Singleton[render.Target]

	Sprites map[int]sprite.Sprite
}

func (s *TileDrawSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Target.Get().Canvas
	m := s.Stage.Get().Map
	if canvas == nil || m == nil {
		return
	}
	view := canvas.Camera().Visible()
	m.Each(func(col, row, id int) {
		spr, ok := s.Sprites[id]
		if !ok {
			return
		}
		if tile := m.TileBounds(col, row); tile.Overlaps(view) {
			canvas.DrawSprite(spr, tile.Center, 0)
		}
	})
}
