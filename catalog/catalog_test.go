package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/catalog"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

func TestNamesMatchConfig(t *testing.T) {
	assert.Equal(t, config.Games, catalog.Names())
}

func TestNewBuildsEveryGame(t *testing.T) {
	cfg := config.Default()
	lib := assets.Builtin()
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			g, err := catalog.New(name, cfg, lib)
			require.NoError(t, err)
			assert.Equal(t, name, g.Name())
			assert.NotNil(t, g.World())

			require.NoError(t, g.Update(input.State{}, 1.0/60.0))
			rec := render.NewRecorder()
			g.Draw(rec)
			assert.NotZero(t, rec.Count(render.OpClear))
		})
	}
}

func TestUnknownGame(t *testing.T) {
	_, err := catalog.New("tetris", config.Default(), assets.Builtin())
	assert.ErrorIs(t, err, catalog.ErrUnknownGame)
}

func TestMissingTextures(t *testing.T) {
	for _, name := range catalog.Names() {
		_, err := catalog.New(name, config.Default(), assets.NewLibrary())
		assert.ErrorIs(t, err, assets.ErrTextureNotFound, name)
	}
}
