package invaders

import (
	"math/rand/v2"
	"reflect"
	"slices"

	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/physics"
	"github.com/plus3/arcade/sprite"
)

// Arena and formation measurements in world units.
const (
	ArenaHalfW   = 5.0
	ArenaTop     = 3.0
	ShipY        = -2.5
	ShipSize     = 0.5
	ShipLine     = ShipY + ShipSize/2
	ShipSpeed    = 4.0
	InvaderSize  = 0.5
	ColSpacing   = 0.9
	RowSpacing   = 0.7
	FormationTop = 2.2
	DropStep     = 0.25
	BulletW      = 0.08
	BulletH      = 0.25
	PlayerShot   = 6.0
	EnemyShot    = 3.0
	ExplosionTTL = 0.3
)

var shipType = reflect.TypeFor[Ship]()

type shipItem struct {
	*Ship
	*physics.Body
	*physics.Collider
}

type invaderItem struct {
	ecs.EntityId
	*Invader
	*physics.Body
	*physics.Collider
	*core.Drawable
}

type bulletItem struct {
	ecs.EntityId
	*Bullet
	*physics.Body
	*physics.Collider
}

// Sprites are the looks spawned entities get.
type Sprites struct {
	Invaders   [3][2]sprite.Sprite
	PlayerShot sprite.Sprite
	EnemyShot  sprite.Sprite
	Explosion  sprite.Sprite
	Ship       sprite.Sprite
}

func bullet(owner Owner, pos geom.Vec3, speed float32, look sprite.Sprite) []any {
	return []any{
		Bullet{Owner: owner},
		physics.Body{Position: pos, Velocity: geom.V2(0, speed)},
		physics.Collider{Size: geom.V2(BulletW, BulletH)},
		core.Drawable{Sprite: look, Layer: 1},
	}
}

// WaveSystem spawns a new formation whenever a level has none. It runs
// first so it sees last step's kills already applied.
type WaveSystem struct {
	State     ecs.Singleton[State]
	Formation ecs.Singleton[Formation]
	Invaders  ecs.Query[invaderItem]
	Sound     ecs.Singleton[audio.Queue]

	Config  config.Invaders
	Sprites *Sprites
}

func (s *WaveSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	if st.Mode != Level || s.Invaders.Len() > 0 {
		return
	}
	st.Wave++

	rows, cols := s.Config.Rows, s.Config.Cols
	left := -float32(cols-1) * ColSpacing / 2
	for row := 0; row < rows; row++ {
		kind, points := 0, 10
		switch row {
		case 0:
			kind, points = 2, 30
		case 1:
			kind, points = 1, 20
		}
		frames := s.Sprites.Invaders[kind]
		for col := 0; col < cols; col++ {
			pos := geom.V2(left+float32(col)*ColSpacing, FormationTop-float32(row)*RowSpacing)
			frame.Commands.Spawn(
				Invader{Row: row, Col: col, Points: points, Frames: frames},
				physics.Body{Position: pos, Static: true},
				physics.Collider{Size: geom.V2(InvaderSize, InvaderSize)},
				core.Drawable{Sprite: frames[0], Layer: 1},
			)
		}
	}
	*s.Formation.Get() = Formation{Dir: 1, Total: rows * cols, FireTimer: s.fireInterval(st.Wave)}
	if st.Wave > 1 {
		s.Sound.Get().Push(audio.CueSelect)
	}
}

func (s *WaveSystem) fireInterval(wave int) float32 {
	return s.Config.EnemyFireRate / (1 + 0.2*float32(wave-1))
}

// ModeSystem moves between the menu, the level and the game-over screen.
type ModeSystem struct {
	State  ecs.Singleton[State]
	Input  ecs.Singleton[input.State]
	Sound  ecs.Singleton[audio.Queue]
	Ships  ecs.Query[shipItem]
	Actors ecs.Query[struct {
		ecs.EntityId
		*physics.Body
	}]

	Config config.Invaders
}

func (s *ModeSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	if !s.Input.Get().JustPressed(input.Confirm) {
		return
	}
	switch st.Mode {
	case MainMenu:
		*st = State{Mode: Level, Lives: s.Config.Lives}
		for ship := range s.Ships.Values() {
			ship.Position = geom.V2(0, ShipY)
			ship.Cooldown = 0
		}
		s.Sound.Get().Push(audio.CueSelect)
	case GameOver:
		st.Mode = MainMenu
		// everything but the ship goes
		for id := range s.Actors.Iter() {
			if !frame.Storage.HasComponent(id, shipType) {
				frame.Commands.Delete(id)
			}
		}
		s.Sound.Get().Push(audio.CueSelect)
	}
}

// ShipSystem moves the ship and fires player bullets.
type ShipSystem struct {
	State   ecs.Singleton[State]
	Input   ecs.Singleton[input.State]
	Sound   ecs.Singleton[audio.Queue]
	Ships   ecs.Query[shipItem]
	Bullets ecs.Query[bulletItem]

	Config  config.Invaders
	Sprites *Sprites
}

func (s *ShipSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Mode != Level {
		return
	}
	dt := float32(frame.DeltaTime)
	in := s.Input.Get()

	live := 0
	for b := range s.Bullets.Values() {
		if b.Owner == PlayerOwned {
			live++
		}
	}

	for ship := range s.Ships.Values() {
		limit := float32(ArenaHalfW - ShipSize/2)
		x := ship.Position.X() + in.Axis(input.Left, input.Right)*ShipSpeed*dt
		ship.Position[0] = geom.Clamp(x, -limit, limit)

		ship.Cooldown = max(ship.Cooldown-dt, 0)
		if !in.Down(input.Fire) || ship.Cooldown > 0 || live >= s.Config.MaxBullets {
			continue
		}
		ship.Cooldown = s.Config.FireCooldown
		muzzle := ship.Position.Add(geom.V2(0, ShipSize/2+BulletH/2))
		frame.Commands.Spawn(bullet(PlayerOwned, muzzle, PlayerShot, s.Sprites.PlayerShot)...)
		live++
		s.Sound.Get().Push(audio.CueShoot)
	}
}

// FormationSystem marches the invaders, animates them, and lets the
// lowest invader of a random column fire.
type FormationSystem struct {
	State     ecs.Singleton[State]
	Formation ecs.Singleton[Formation]
	Invaders  ecs.Query[invaderItem]
	Sound     ecs.Singleton[audio.Queue]

	Config  config.Invaders
	Sprites *Sprites
	Rand    *rand.Rand

	lowest map[int]invaderItem
}

// speed grows with the wave and with the share of the formation destroyed.
func (s *FormationSystem) speed(f *Formation, alive, wave int) float32 {
	base := s.Config.MarchSpeed * (1 + 0.25*float32(wave-1))
	if f.Total == 0 {
		return base
	}
	lost := 1 - float32(alive)/float32(f.Total)
	return base * (1 + 2*lost)
}

func (s *FormationSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	alive := s.Invaders.Len()
	if st.Mode != Level || alive == 0 {
		return
	}
	dt := float32(frame.DeltaTime)
	f := s.Formation.Get()

	dx := f.Dir * s.speed(f, alive, st.Wave) * dt
	edge := false
	for inv := range s.Invaders.Values() {
		x := inv.Position.X() + dx
		if x+InvaderSize/2 >= ArenaHalfW || x-InvaderSize/2 <= -ArenaHalfW {
			edge = true
			break
		}
	}
	for inv := range s.Invaders.Values() {
		if edge {
			inv.Position[1] -= DropStep
		} else {
			inv.Position[0] += dx
		}
		if inv.Position.Y()-InvaderSize/2 <= ShipLine {
			st.Mode = GameOver
		}
	}
	if edge {
		f.Dir = -f.Dir
	}

	// the fewer left, the faster they flap
	f.AnimTimer += dt
	if period := max(0.1, 0.5*float32(alive)/float32(max(f.Total, 1))); f.AnimTimer >= period {
		f.AnimTimer = 0
		f.Frame = 1 - f.Frame
		for inv := range s.Invaders.Values() {
			inv.Sprite = inv.Frames[f.Frame]
		}
	}

	f.FireTimer -= dt
	if f.FireTimer > 0 {
		return
	}
	f.FireTimer = s.Config.EnemyFireRate / (1 + 0.2*float32(st.Wave-1))
	if shooter, ok := s.pickShooter(); ok {
		muzzle := shooter.Position.Sub(geom.V2(0, InvaderSize/2+BulletH/2))
		frame.Commands.Spawn(bullet(EnemyOwned, muzzle, -EnemyShot, s.Sprites.EnemyShot)...)
		s.Sound.Get().Push(audio.CueShoot)
	}
}

// pickShooter returns the bottom invader of a random occupied column.
func (s *FormationSystem) pickShooter() (invaderItem, bool) {
	if s.lowest == nil {
		s.lowest = make(map[int]invaderItem)
	}
	clear(s.lowest)
	for inv := range s.Invaders.Values() {
		if cur, ok := s.lowest[inv.Col]; !ok || inv.Position.Y() < cur.Position.Y() {
			s.lowest[inv.Col] = inv
		}
	}
	if len(s.lowest) == 0 {
		return invaderItem{}, false
	}
	cols := make([]int, 0, len(s.lowest))
	for col := range s.lowest {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	return s.lowest[cols[s.Rand.IntN(len(cols))]], true
}

// HitSystem resolves bullet hits and drops bullets that left the arena.
type HitSystem struct {
	State    ecs.Singleton[State]
	Sound    ecs.Singleton[audio.Queue]
	Bullets  ecs.Query[bulletItem]
	Invaders ecs.Query[invaderItem]
	Ships    ecs.Query[shipItem]

	Sprites *Sprites

	dead map[ecs.EntityId]bool
}

func (s *HitSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	if st.Mode != Level {
		return
	}
	if s.dead == nil {
		s.dead = make(map[ecs.EntityId]bool)
	}
	clear(s.dead)

	kill := func(id ecs.EntityId) {
		s.dead[id] = true
		frame.Commands.Delete(id)
	}

	for b := range s.Bullets.Values() {
		if y := b.Position.Y(); y > ArenaTop+BulletH || y < -ArenaTop-BulletH {
			kill(b.EntityId)
			continue
		}

		if b.Owner == PlayerOwned {
			for inv := range s.Invaders.Values() {
				if s.dead[inv.EntityId] || !physics.Overlapping(*b.Body, *b.Collider, *inv.Body, *inv.Collider) {
					continue
				}
				kill(b.EntityId)
				kill(inv.EntityId)
				st.Score += inv.Points
				frame.Commands.Spawn(
					Explosion{TTL: ExplosionTTL},
					physics.Body{Position: inv.Position, Static: true},
					physics.Collider{Size: geom.V2(InvaderSize, InvaderSize)},
					core.Drawable{Sprite: s.Sprites.Explosion, Layer: 2},
				)
				s.Sound.Get().Push(audio.CueExplode)
				break
			}
			continue
		}

		for ship := range s.Ships.Values() {
			if !physics.Overlapping(*b.Body, *b.Collider, *ship.Body, *ship.Collider) {
				continue
			}
			kill(b.EntityId)
			st.Lives--
			s.Sound.Get().Push(audio.CueHurt)
			if st.Lives <= 0 {
				st.Mode = GameOver
			}
		}
	}
}

// ExplosionSystem removes explosions once they have burned out.
type ExplosionSystem struct {
	Explosions ecs.Query[struct {
		ecs.EntityId
		*Explosion
	}]
}

func (s *ExplosionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for id, e := range s.Explosions.Iter() {
		e.TTL -= dt
		if e.TTL <= 0 {
			frame.Commands.Delete(id)
		}
	}
}
