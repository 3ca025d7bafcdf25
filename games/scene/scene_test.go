package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

func newScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(config.Default(), assets.Builtin())
	require.NoError(t, err)
	return s
}

func run(s *Scene, seconds float64) {
	step := 1.0 / 60.0
	for i := 0; i < int(seconds/step+0.5); i++ {
		_ = s.Update(input.State{}, step)
	}
}

func TestSunTravels(t *testing.T) {
	s := newScene(t)
	start := s.SunPosition()
	assert.InDelta(t, 0.75, start.X(), 1e-5)

	run(s, 1)
	assert.InDelta(t, 1.75, s.SunPosition().X(), 0.05)
	assert.InDelta(t, 1.75, s.SunPosition().Y(), 1e-6)
}

func TestSunWraps(t *testing.T) {
	s := newScene(t)
	run(s, 2.5)
	assert.InDelta(t, 0.75+0.5, s.SunPosition().X(), 0.05)

	s.Reset()
	assert.InDelta(t, 0.75, s.SunPosition().X(), 1e-5)
}

func TestDrawIsTexturedOnly(t *testing.T) {
	s := newScene(t)
	rec := render.NewRecorder()
	s.Draw(rec)

	assert.Equal(t, 1, rec.Count(render.OpClear))
	assert.Zero(t, rec.Count(render.OpRect))
	// eight grass tiles, cactus, bush, sun
	assert.Equal(t, 11, rec.Count(render.OpSprite))
	assert.Equal(t, s.Camera(), rec.Camera())

	// the sun is drawn last
	last := rec.Ops[len(rec.Ops)-1]
	sun, ok := s.lib.Lookup(assets.TextureSun)
	require.True(t, ok)
	assert.Equal(t, sun, last.Sprite.Texture)
}

func TestMissingTexture(t *testing.T) {
	_, err := New(config.Default(), assets.NewLibrary())
	assert.ErrorIs(t, err, assets.ErrTextureNotFound)
}
