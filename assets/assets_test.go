package assets_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/sheet.png":  {Data: encodePNG(t, 64, 32, color.White)},
		"textures/broken.png": {Data: []byte("not a png")},
	}
	lib := assets.NewLibrary()

	id, err := lib.Load(fsys, "textures/sheet.png")
	require.NoError(t, err)
	assert.Equal(t, sprite.TextureID(1), id)
	assert.Equal(t, 64, lib.Source(id).Bounds().Dx())

	found, ok := lib.Lookup("sheet")
	assert.True(t, ok)
	assert.Equal(t, id, found)

	_, err = lib.Load(fsys, "textures/missing.png")
	assert.ErrorIs(t, err, assets.ErrTextureNotFound)
	assert.Contains(t, err.Error(), "textures/missing.png")

	_, err = lib.Load(fsys, "textures/broken.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, assets.ErrTextureNotFound)

	assert.Equal(t, 1, lib.Len())
	assert.Nil(t, lib.Source(sprite.NoTexture))
	assert.Nil(t, lib.Source(9))
}

func TestAddReplacesInPlace(t *testing.T) {
	lib := assets.NewLibrary()
	first := lib.Add("a", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	second := lib.Add("b", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	again := lib.Add("a", image.NewRGBA(image.Rect(0, 0, 4, 4)))

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 4, lib.Source(first).Bounds().Dx())
	assert.Equal(t, []string{"a", "b"}, lib.Names())
}

func TestBuiltin(t *testing.T) {
	lib := assets.Builtin()

	for _, name := range []string{
		assets.TextureSheet, assets.TextureFont, assets.TextureGrass,
		assets.TextureSun, assets.TextureBush, assets.TextureCactus,
	} {
		id, ok := lib.Lookup(name)
		require.True(t, ok, name)
		assert.NotNil(t, lib.Source(id))
	}

	sheet, err := lib.Sheet(assets.TextureSheet, assets.AtlasGrid, assets.AtlasGrid)
	require.NoError(t, err)
	assert.Equal(t, assets.AtlasGrid*assets.CellPixels, sheet.Width)
	w, h := sheet.CellSize()
	assert.Equal(t, assets.CellPixels, w)
	assert.Equal(t, assets.CellPixels, h)

	// the ball cell has an opaque center and transparent corners
	ball, err := lib.Sprite(assets.CellBall, 0.25)
	require.NoError(t, err)
	rect := ball.PixelRect(sheet.Width, sheet.Height)
	src := lib.Source(sheet.Texture)
	_, _, _, a := src.At(rect.Min.X+16, rect.Min.Y+16).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = src.At(rect.Min.X, rect.Min.Y).RGBA()
	assert.Zero(t, a)

	font, ok := lib.Font()
	require.True(t, ok)
	assert.Equal(t, sprite.FontGrid, font.Cols)
}

func TestCell(t *testing.T) {
	index, err := assets.Cell(assets.CellShip)
	require.NoError(t, err)
	assert.Equal(t, 3, index)

	_, err = assets.Cell("dragon")
	assert.ErrorIs(t, err, assets.ErrUnknownCell)

	_, err = assets.Builtin().Sprite("dragon", 1)
	assert.ErrorIs(t, err, assets.ErrUnknownCell)

	_, err = assets.NewLibrary().Sprite(assets.CellShip, 1)
	assert.ErrorIs(t, err, assets.ErrTextureNotFound)
}

func TestLoadOverrides(t *testing.T) {
	lib := assets.Builtin()
	sheetID, _ := lib.Lookup(assets.TextureSheet)

	fsys := fstest.MapFS{
		"sheet.png": {Data: encodePNG(t, 512, 512, color.Black)},
		"other.png": {Data: encodePNG(t, 8, 8, color.Black)},
	}
	replaced, err := lib.LoadOverrides(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{assets.TextureSheet}, replaced)

	id, _ := lib.Lookup(assets.TextureSheet)
	assert.Equal(t, sheetID, id)
	assert.Equal(t, 512, lib.Source(id).Bounds().Dx())
	_, ok := lib.Lookup("other")
	assert.False(t, ok)
}

func TestWhole(t *testing.T) {
	lib := assets.Builtin()
	sun, err := lib.Whole(assets.TextureSun, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(1), sun.W)
	assert.Equal(t, float32(1), sun.Aspect)

	_, err = lib.Whole("moon", 1)
	assert.ErrorIs(t, err, assets.ErrTextureNotFound)
}
