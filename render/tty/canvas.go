// Package tty draws games on a terminal with tcell.
package tty

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
)

// Textures resolves texture ids to images; assets.Library implements it.
type Textures interface {
	Source(id sprite.TextureID) image.Image
}

// Block is the rune used to draw sprites.
const Block = '█'

type tintKey struct {
	texture    sprite.TextureID
	u, v, w, h float32
}

// Canvas maps world rectangles onto character cells. Sprites are drawn as
// solid blocks tinted with the average colour of their texture region.
type Canvas struct {
	screen   tcell.Screen
	textures Textures
	camera   render.Camera
	tints    map[tintKey]color.RGBA
}

// NewCanvas draws on screen.
func NewCanvas(screen tcell.Screen, textures Textures) *Canvas {
	return &Canvas{
		screen:   screen,
		textures: textures,
		camera:   render.DefaultCamera(),
		tints:    make(map[tintKey]color.RGBA),
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cell maps a world point to the character cell containing it.
func (c *Canvas) cell(p geom.Vec3) (int, int) {
	w, h := c.screen.Size()
	x, y := c.camera.ToScreen(p, w, h)
	return int(math.Floor(float64(x))), int(math.Floor(float64(y)))
}

// cells returns the inclusive cell range covered by r, clipped to the
// screen. ok is false when nothing is visible.
func (c *Canvas) cells(r geom.Rect) (x0, y0, x1, y1 int, ok bool) {
	w, h := c.screen.Size()
	x0, y0 = c.cell(geom.V2(r.Left(), r.Top()))
	x1, y1 = c.cell(geom.V2(r.Right(), r.Bottom()))
	// a box thinner than a cell still shows up
	x1, y1 = max(x1, x0), max(y1, y0)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w-1), min(y1, h-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

func (c *Canvas) Clear(col color.RGBA) {
	c.screen.Fill(' ', tcell.StyleDefault.Background(rgb(col)))
}

func (c *Canvas) FillRect(r geom.Rect, col color.RGBA) {
	x0, y0, x1, y1, ok := c.cells(r)
	if !ok {
		return
	}
	style := tcell.StyleDefault.Foreground(rgb(col))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.screen.SetContent(x, y, Block, nil, style)
		}
	}
}

func (c *Canvas) DrawSprite(s sprite.Sprite, center geom.Vec3, rotation float32) {
	w, h := s.Quad()
	if rotation != 0 {
		// a rotated quad fills the square around it
		w = max(w, h)
		h = w
	}
	c.FillRect(geom.RectFromCenter(center, geom.V2(w, h)), c.tint(s))
}

// tint averages the opaque pixels of the sprite's region.
func (c *Canvas) tint(s sprite.Sprite) color.RGBA {
	key := tintKey{s.Texture, s.U, s.V, s.W, s.H}
	if col, ok := c.tints[key]; ok {
		return col
	}
	col := render.White
	if img := c.textures.Source(s.Texture); img != nil {
		b := img.Bounds()
		col = average(img, s.PixelRect(b.Dx(), b.Dy()).Add(b.Min))
	}
	c.tints[key] = col
	return col
}

func average(img image.Image, r image.Rectangle) color.RGBA {
	var sr, sg, sb, n uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pa < 0x8000 {
				continue
			}
			sr += uint64(pr >> 8)
			sg += uint64(pg >> 8)
			sb += uint64(pb >> 8)
			n++
		}
	}
	if n == 0 {
		return render.White
	}
	return color.RGBA{uint8(sr / n), uint8(sg / n), uint8(sb / n), 255}
}

func (c *Canvas) DrawText(text string, at geom.Vec3, size float32, col color.RGBA) {
	x, y := c.cell(at.Sub(geom.V2(size/2, 0)))
	w, h := c.screen.Size()
	if y < 0 || y >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(rgb(col)).Bold(true)
	for i, r := range []rune(text) {
		if cx := x + i; cx >= 0 && cx < w {
			c.screen.SetContent(cx, y, r, nil, style)
		}
	}
}

func (c *Canvas) Camera() render.Camera { return c.camera }

func (c *Canvas) SetCamera(cam render.Camera) { c.camera = cam }

// Show flushes the frame to the terminal.
func (c *Canvas) Show() {
	c.screen.Show()
}

var _ render.Canvas = (*Canvas)(nil)
