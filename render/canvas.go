package render

import (
	"image/color"

	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/sprite"
)

// TextSpacing is the gap between glyphs as a fraction of the text size.
// Font cells are mostly empty, so glyphs overlap their cells.
const TextSpacing = -0.45

// Canvas is a frame being drawn. Coordinates are world units seen through
// the canvas camera.
type Canvas interface {
	Clear(c color.RGBA)
	FillRect(r geom.Rect, c color.RGBA)
	// DrawSprite draws s centered at center, rotated by rotation radians
	// counter-clockwise.
	DrawSprite(s sprite.Sprite, center geom.Vec3, rotation float32)
	// DrawText draws a line of text whose first glyph is centered at at.
	DrawText(text string, at geom.Vec3, size float32, c color.RGBA)
	Camera() Camera
	SetCamera(cam Camera)
}

// Target is the singleton through which render systems reach the canvas of
// the current frame.
type Target struct {
	Canvas Canvas
}

// CenteredText returns the first-glyph position that centers text on
// center.
func CenteredText(text string, center geom.Vec3, size float32) geom.Vec3 {
	w := sprite.TextWidth(text, size, size*TextSpacing)
	return geom.V2(center.X()-w/2+size/2, center.Y())
}

var (
	White  = color.RGBA{255, 255, 255, 255}
	Black  = color.RGBA{0, 0, 0, 255}
	Grey   = color.RGBA{128, 128, 128, 255}
	Red    = color.RGBA{230, 70, 60, 255}
	Green  = color.RGBA{90, 210, 100, 255}
	Blue   = color.RGBA{70, 120, 230, 255}
	Yellow = color.RGBA{250, 220, 70, 255}
	Sky    = color.RGBA{110, 170, 230, 255}
	Night  = color.RGBA{10, 10, 30, 255}
)
