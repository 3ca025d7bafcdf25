package platformer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
	"github.com/plus3/arcade/tilemap"
)

const frame = 1.0 / 60.0

// room is a walled box with a floor on row 4. Origin is the top-left
// corner, so the floor's top is at y = -1.2.
const room = `
name = "room"
width = 12
height = 5
tile_size = 0.3
solid = [1]
rows = [
  "#..........#",
  "#..........#",
  "#..........#",
  "#..........#",
  "############",
]

[legend]
"." = 0
"#" = 1
%s`

func spawns(lines ...string) string {
	var b strings.Builder
	for _, l := range lines {
		var kind string
		var col, row int
		_, _ = fmt.Sscanf(l, "%s %d %d", &kind, &col, &row)
		fmt.Fprintf(&b, "\n[[spawn]]\nkind = %q\ncol = %d\nrow = %d\n", kind, col, row)
	}
	return b.String()
}

func newGame(t *testing.T, level string, mutate ...func(*config.Platformer)) *Platformer {
	t.Helper()
	cfg := config.Default()
	if level != "" {
		path := filepath.Join(t.TempDir(), "level.toml")
		require.NoError(t, os.WriteFile(path, []byte(level), 0o644))
		cfg.Platformer.Level = path
	}
	for _, m := range mutate {
		m(&cfg.Platformer)
	}
	g, err := New(cfg, assets.Builtin())
	require.NoError(t, err)
	return g
}

func newRoom(t *testing.T, mutate ...func(*config.Platformer)) *Platformer {
	return newGame(t, fmt.Sprintf(room, spawns("player 1 3", "coin 9 1")), mutate...)
}

func step(g *Platformer, st input.State) {
	_ = g.Update(st, frame)
}

func idle(g *Platformer, frames int) {
	for range frames {
		step(g, input.State{})
	}
}

func hold(g *Platformer, a input.Action, frames int) {
	src := input.HoldScript(input.Repeat(a, frames)...)
	for !src.Done() {
		step(g, src.Poll())
	}
}

func press(g *Platformer, a input.Action) {
	step(g, input.State{Held: a, Pressed: a})
}

func player(g *Platformer) playerItem {
	q := ecs.NewQuery[playerItem](g.world.Storage)
	q.Execute()
	_, p, _ := q.First()
	return p
}

func playerSprite(g *Platformer) sprite.Sprite {
	q := ecs.NewQuery[struct {
		*Player
		*core.Drawable
	}](g.world.Storage)
	q.Execute()
	_, p, _ := q.First()
	return p.Sprite
}

func walkers(g *Platformer) []walkerItem {
	q := ecs.NewQuery[walkerItem](g.world.Storage)
	q.Execute()
	var out []walkerItem
	for w := range q.Values() {
		out = append(out, w)
	}
	return out
}

func count[T any](g *Platformer) int {
	q := ecs.NewQuery[struct{ C *T }](g.world.Storage)
	q.Execute()
	return q.Len()
}

func TestBuiltinLevel(t *testing.T) {
	g := newGame(t, "")
	assert.Equal(t, "Meadow", g.Level().Name)

	st := g.State()
	assert.Equal(t, Playing, st.Mode)
	assert.Equal(t, 3, st.Lives)
	assert.Equal(t, 7, st.TotalCoins)
	assert.Equal(t, 7, count[Coin](g))
	assert.Len(t, walkers(g), 2)

	idle(g, 30)
	p := player(g)
	assert.True(t, p.Contacts.Bottom)
	assert.InDelta(t, -2.4+BodySize/2, p.Position.Y(), 0.01)
}

func TestLevelNeedsOnePlayer(t *testing.T) {
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "level.toml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(room, spawns("coin 3 3"))), 0o644))
	cfg.Platformer.Level = path
	_, err := New(cfg, assets.Builtin())
	assert.ErrorIs(t, err, tilemap.ErrBadLevel)

	cfg.Platformer.Level = filepath.Join(t.TempDir(), "missing.toml")
	_, err = New(cfg, assets.Builtin())
	assert.Error(t, err)
}

func TestLandsOnFloor(t *testing.T) {
	g := newRoom(t)
	idle(g, 10)

	p := player(g)
	assert.True(t, p.Contacts.Bottom)
	assert.InDelta(t, -1.2+BodySize/2+tilemap.Epsilon, p.Position.Y(), 1e-3)
	assert.Zero(t, p.Velocity.Y())
	assert.Equal(t, g.looks.poses.Idle, playerSprite(g))
}

func TestJumpOnlyFromGround(t *testing.T) {
	g := newRoom(t)
	idle(g, 10)
	g.world.DrainSounds()

	press(g, input.Jump)
	up := player(g).Velocity.Y()
	assert.Greater(t, up, float32(1.4))
	assert.False(t, player(g).Contacts.Bottom)
	assert.Equal(t, []audio.Cue{audio.CueJump}, g.world.DrainSounds())
	assert.Equal(t, g.looks.poses.Jump, playerSprite(g))

	// a second press in the air is ignored
	step(g, input.State{})
	press(g, input.Jump)
	assert.Less(t, player(g).Velocity.Y(), up)
	assert.Empty(t, g.world.DrainSounds())

	idle(g, 90)
	assert.True(t, player(g).Contacts.Bottom)
}

func TestWalking(t *testing.T) {
	g := newRoom(t)
	idle(g, 10)
	x := player(g).Position.X()

	hold(g, input.Right, 30)
	p := player(g)
	assert.Greater(t, p.Position.X(), x+0.2)
	assert.LessOrEqual(t, p.Velocity.X(), g.cfg.MoveAccel/g.cfg.Friction+0.01)

	walk := g.looks.poses.Walk
	frames := []sprite.Sprite{walk.At(0), walk.At(1.0/AnimFPS + 0.01)}
	assert.Contains(t, frames, playerSprite(g))

	idle(g, 90)
	assert.Equal(t, g.looks.poses.Idle, playerSprite(g))
}

func TestWallsStopThePlayer(t *testing.T) {
	g := newRoom(t)
	hold(g, input.Left, 60)

	p := player(g)
	assert.True(t, p.Contacts.Left)
	assert.InDelta(t, 0.3+BodySize/2, p.Position.X(), 0.01)
}

func TestCollectingEveryCoinWins(t *testing.T) {
	g := newGame(t, fmt.Sprintf(room, spawns("player 1 3", "coin 3 3")))
	idle(g, 5)
	g.world.DrainSounds()

	hold(g, input.Right, 60)
	st := g.State()
	assert.Equal(t, 1, st.Coins)
	assert.Equal(t, CoinValue, st.Score)
	assert.Equal(t, Won, st.Mode)
	assert.Zero(t, count[Coin](g))
	assert.Contains(t, g.world.DrainSounds(), audio.CueCoin)
	assert.Equal(t, []string{"room cleared: score 10"}, g.Announcements())

	rec := render.NewRecorder()
	g.Draw(rec)
	assert.Contains(t, rec.Texts(), "YOU WIN")
	assert.Contains(t, rec.Texts(), "COINS 1/1")

	// the player is frozen once the run is over
	x := player(g).Position.X()
	hold(g, input.Right, 20)
	assert.InDelta(t, x, player(g).Position.X(), 0.1)

	press(g, input.Confirm)
	step(g, input.State{})
	assert.Equal(t, Playing, g.State().Mode)
	assert.Zero(t, g.State().Coins)
	assert.Equal(t, 1, count[Coin](g))
	assert.Empty(t, g.Announcements())
}

func TestStompingAWalker(t *testing.T) {
	g := newGame(t, fmt.Sprintf(room, spawns("player 1 3", "enemy 7 3", "coin 9 1")))
	idle(g, 5)
	g.world.DrainSounds()

	w := walkers(g)[0]
	p := player(g)
	p.Position = w.Position.Add(geom.V2(0, 0.28))
	p.Velocity = geom.V2(0, -1)
	step(g, input.State{})

	assert.Empty(t, walkers(g))
	assert.Greater(t, player(g).Velocity.Y(), float32(1))
	assert.Equal(t, StompPoints, g.State().Score)
	assert.Equal(t, 3, g.State().Lives)
	assert.Contains(t, g.world.DrainSounds(), audio.CueExplode)
}

func TestWalkerHurtsFromTheSide(t *testing.T) {
	g := newGame(t, fmt.Sprintf(room, spawns("player 1 3", "enemy 7 3", "coin 9 1")))
	idle(g, 5)
	g.world.DrainSounds()
	spawn := player(g).Spawn

	w := walkers(g)[0]
	p := player(g)
	p.Position = w.Position.Sub(geom.V2(0.2, 0))
	step(g, input.State{})

	assert.Len(t, walkers(g), 1)
	assert.Equal(t, 2, g.State().Lives)
	assert.InDelta(t, spawn.X(), player(g).Position.X(), 0.05)
	assert.Contains(t, g.world.DrainSounds(), audio.CueHurt)
}

func TestFallingCostsALife(t *testing.T) {
	g := newRoom(t, func(c *config.Platformer) { c.Lives = 1 })
	idle(g, 5)

	p := player(g)
	p.Position = geom.V2(1, g.Level().Map.Bounds().Bottom()-FallMargin-0.5)
	step(g, input.State{})

	st := g.State()
	assert.Zero(t, st.Lives)
	assert.Equal(t, Lost, st.Mode)
	assert.Equal(t, []string{"game over: 0 of 1 coins"}, g.Announcements())

	rec := render.NewRecorder()
	g.Draw(rec)
	assert.Contains(t, rec.Texts(), "GAME OVER")
	assert.Contains(t, rec.Texts(), "PRESS ENTER")

	press(g, input.Confirm)
	step(g, input.State{})
	assert.Equal(t, Playing, g.State().Mode)
	assert.Equal(t, 1, g.State().Lives)
}

func TestWalkerTurnsAtWalls(t *testing.T) {
	g := newGame(t, fmt.Sprintf(room, spawns("player 1 3", "enemy 9 3", "coin 1 1")))
	walkers(g)[0].Dir = 1

	idle(g, 60)
	w := walkers(g)[0]
	assert.Equal(t, float32(-1), w.Dir)
	assert.Less(t, w.Position.X(), float32(3.3-BodySize/2))
}

func TestWalkerStaysOnItsLedge(t *testing.T) {
	g := newGame(t, "")
	m := g.Level().Map
	left := m.TileBounds(6, 13).Left()
	right := m.TileBounds(8, 13).Right()

	high := func() walkerItem {
		ws := walkers(g)
		if ws[0].Position.Y() > ws[1].Position.Y() {
			return ws[0]
		}
		return ws[1]
	}
	for range 300 {
		step(g, input.State{})
		w := high()
		require.True(t, w.Position.X() > left && w.Position.X() < right, "walker left its ledge at %v", w.Position)
	}
	assert.InDelta(t, m.TileBounds(6, 13).Top()+BodySize/2, high().Position.Y(), 0.01)
}

func TestCameraFollowsPlayer(t *testing.T) {
	g := newGame(t, "")
	cam := g.Camera()
	assert.InDelta(t, 0, cam.Eye.X(), 1e-5)
	assert.InDelta(t, -3.3+1.5, cam.Eye.Y(), 1e-5)

	p := player(g)
	p.Static = true
	p.Position = geom.V2(0, 2.5)
	idle(g, 60)
	assert.InDelta(t, 3.3-1.5, g.Camera().Eye.Y(), 0.01)
}

func TestDraw(t *testing.T) {
	g := newGame(t, "")
	rec := render.NewRecorder()
	g.Draw(rec)

	assert.Equal(t, g.Camera(), rec.Camera())
	assert.Equal(t, 1, rec.Count(render.OpClear))
	assert.Contains(t, rec.Texts(), "COINS 0/7")
	assert.Contains(t, rec.Texts(), "LIVES 3")

	tiles := 0
	g.Level().Map.Each(func(col, row, id int) { tiles++ })
	entities := 1 + 2 + 7
	assert.Greater(t, rec.Count(render.OpSprite), entities)
	assert.Less(t, rec.Count(render.OpSprite), tiles+entities)
}
