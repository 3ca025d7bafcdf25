package tty

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
)

type fakeTextures map[sprite.TextureID]image.Image

func (f fakeTextures) Source(id sprite.TextureID) image.Image {
	return f[id]
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestCanvasFillRect(t *testing.T) {
	screen := newScreen(t)
	c := NewCanvas(screen, fakeTextures{})

	c.Clear(render.Black)
	c.FillRect(geom.RectFromCenter(geom.V2(0, 0), geom.V2(1, 1)), render.Red)

	assert.Equal(t, Block, runeAt(screen, 40, 12))
	assert.Equal(t, Block, runeAt(screen, 38, 12))
	assert.Equal(t, ' ', runeAt(screen, 0, 0))
	assert.Equal(t, ' ', runeAt(screen, 79, 23))
}

func TestCanvasClipsOffscreen(t *testing.T) {
	screen := newScreen(t)
	c := NewCanvas(screen, fakeTextures{})
	c.Clear(render.Black)

	x0, _, x1, _, ok := c.cells(geom.RectFromCenter(geom.V2(-5.33, 0), geom.V2(2, 1)))
	require.True(t, ok)
	assert.Equal(t, 0, x0)
	assert.Greater(t, x1, 0)

	_, _, _, _, ok = c.cells(geom.RectFromCenter(geom.V2(20, 0), geom.V2(1, 1)))
	assert.False(t, ok)
}

func TestCanvasFollowsCamera(t *testing.T) {
	screen := newScreen(t)
	c := NewCanvas(screen, fakeTextures{})
	c.Clear(render.Black)

	cam := render.DefaultCamera()
	cam.Eye = geom.V2(10, 0)
	c.SetCamera(cam)
	c.FillRect(geom.RectFromCenter(geom.V2(10, 0), geom.V2(0.5, 0.5)), render.Green)

	assert.Equal(t, Block, runeAt(screen, 40, 12))
	assert.Equal(t, cam, c.Camera())
}

func TestCanvasText(t *testing.T) {
	screen := newScreen(t)
	c := NewCanvas(screen, fakeTextures{})
	c.Clear(render.Black)

	c.DrawText("HI", geom.V2(0, 0), 0, render.White)
	assert.Equal(t, 'H', runeAt(screen, 40, 12))
	assert.Equal(t, 'I', runeAt(screen, 41, 12))

	// off the bottom edge is dropped
	c.DrawText("X", geom.V2(0, -10), 0, render.White)
}

func TestCanvasSpriteTint(t *testing.T) {
	red := color.RGBA{200, 10, 20, 255}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(img, image.Rect(0, 0, 2, 4), &image.Uniform{red}, image.Point{}, draw.Src)

	screen := newScreen(t)
	c := NewCanvas(screen, fakeTextures{1: img})
	c.Clear(render.Black)

	left := sprite.Sprite{Texture: 1, U: 0, V: 0, W: 0.5, H: 1, Size: 1, Aspect: 1}
	assert.Equal(t, red, c.tint(left))

	// transparent pixels are ignored
	right := sprite.Sprite{Texture: 1, U: 0.5, V: 0, W: 0.5, H: 1, Size: 1, Aspect: 1}
	assert.Equal(t, render.White, c.tint(right))

	untextured := sprite.Sprite{Size: 1, Aspect: 1}
	assert.Equal(t, render.White, c.tint(untextured))

	c.DrawSprite(left, geom.V2(0, 0), 0)
	assert.Equal(t, Block, runeAt(screen, 40, 12))
	assert.Len(t, c.tints, 3)
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestInputHoldsUntilTimeout(t *testing.T) {
	clk := &clock{now: time.Unix(100, 0)}
	in := NewInput(100 * time.Millisecond)
	in.SetClock(clk.Now)

	got := in.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, input.Left, got)

	st := in.Poll()
	assert.True(t, st.Down(input.Left))
	assert.True(t, st.JustPressed(input.Left))

	clk.now = clk.now.Add(50 * time.Millisecond)
	st = in.Poll()
	assert.True(t, st.Down(input.Left))
	assert.False(t, st.JustPressed(input.Left))

	clk.now = clk.now.Add(60 * time.Millisecond)
	st = in.Poll()
	assert.False(t, st.Down(input.Left))
}

func TestInputRunes(t *testing.T) {
	in := NewInput(0)
	assert.Equal(t, DefaultHold, in.hold)

	got := in.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.Equal(t, input.Fire|input.Jump, got)

	assert.Equal(t, input.None, in.Handle(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone)))
	assert.Equal(t, input.Quit, in.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))

	st := in.Poll()
	assert.True(t, st.JustPressed(input.Fire))
	assert.True(t, st.JustPressed(input.Jump))
	assert.True(t, st.JustPressed(input.Quit))
}

func TestInputRepeatPresses(t *testing.T) {
	clk := &clock{now: time.Unix(100, 0)}
	in := NewInput(time.Second)
	in.SetClock(clk.Now)

	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.True(t, in.Poll().JustPressed(input.Fire))
	assert.False(t, in.Poll().JustPressed(input.Fire))

	// auto-repeat while still held fires again
	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	st := in.Poll()
	assert.True(t, st.JustPressed(input.Fire))
	assert.True(t, st.Down(input.Fire))
}

func TestPumpStopsWhenDone(t *testing.T) {
	screen := newScreen(t)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	// nobody reads events, so the pump is stuck delivering its first one
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		Pump(screen, events, done)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump kept running after done was closed")
	}
	_, ok := <-events
	assert.False(t, ok, "events is closed")
}

func TestPumpForwardsUntilFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	events := make(chan tcell.Event, 16)
	go Pump(screen, events, make(chan struct{}))

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	var key *tcell.EventKey
	for key == nil {
		select {
		case ev := <-events:
			key, _ = ev.(*tcell.EventKey)
		case <-time.After(time.Second):
			t.Fatal("no key event")
		}
	}
	assert.Equal(t, 'x', key.Rune())

	screen.Fini()
	for range events {
	}
}
