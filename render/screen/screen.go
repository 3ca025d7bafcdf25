// Package screen draws render.Canvas calls onto an ebiten image.
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
)

// Textures resolves texture ids to decoded images. assets.Library
// implements it.
type Textures interface {
	Source(id sprite.TextureID) image.Image
	Font() (sprite.Sheet, bool)
}

// Canvas is the ebiten implementation of render.Canvas. Call Begin with the
// screen image at the start of every Draw.
type Canvas struct {
	textures Textures
	images   map[sprite.TextureID]*ebiten.Image
	dst      *ebiten.Image
	camera   render.Camera
}

// New returns a canvas reading textures from t.
func New(t Textures) *Canvas {
	return &Canvas{
		textures: t,
		images:   make(map[sprite.TextureID]*ebiten.Image),
		camera:   render.DefaultCamera(),
	}
}

// Begin targets dst for the following calls.
func (c *Canvas) Begin(dst *ebiten.Image) {
	c.dst = dst
}

// Purge drops cached GPU images so replaced textures are uploaded again.
func (c *Canvas) Purge() {
	for id, img := range c.images {
		img.Deallocate()
		delete(c.images, id)
	}
}

func (c *Canvas) image(id sprite.TextureID) *ebiten.Image {
	if id == sprite.NoTexture {
		return nil
	}
	if img, ok := c.images[id]; ok {
		return img
	}
	src := c.textures.Source(id)
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	c.images[id] = img
	return img
}

func (c *Canvas) size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear(col color.RGBA) {
	c.dst.Fill(col)
}

func (c *Canvas) FillRect(r geom.Rect, col color.RGBA) {
	w, h := c.size()
	x0, y0 := c.camera.ToScreen(geom.V2(r.Left(), r.Top()), w, h)
	x1, y1 := c.camera.ToScreen(geom.V2(r.Right(), r.Bottom()), w, h)
	vector.DrawFilledRect(c.dst, x0, y0, x1-x0, y1-y0, col, false)
}

func (c *Canvas) DrawSprite(s sprite.Sprite, center geom.Vec3, rotation float32) {
	c.drawSprite(s, center, rotation, render.White)
}

func (c *Canvas) drawSprite(s sprite.Sprite, center geom.Vec3, rotation float32, col color.RGBA) {
	qw, qh := s.Quad()
	img := c.image(s.Texture)
	if img == nil {
		c.FillRect(geom.RectFromCenter(center, geom.V2(qw, qh)), col)
		return
	}

	tw, th := img.Bounds().Dx(), img.Bounds().Dy()
	src := s.PixelRect(tw, th)
	if src.Empty() {
		return
	}
	sub := img.SubImage(src).(*ebiten.Image)

	w, h := c.size()
	sx, sy := c.camera.UnitsToPixels(w, h)
	x, y := c.camera.ToScreen(center, w, h)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(src.Dx())/2, -float64(src.Dy())/2)
	op.GeoM.Scale(float64(qw*sx)/float64(src.Dx()), float64(qh*sy)/float64(src.Dy()))
	op.GeoM.Rotate(-float64(rotation))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	op.Filter = ebiten.FilterNearest
	c.dst.DrawImage(sub, op)
}

func (c *Canvas) DrawText(text string, at geom.Vec3, size float32, col color.RGBA) {
	font, ok := c.textures.Font()
	if !ok || c.image(font.Texture) == nil {
		w, h := c.size()
		x, y := c.camera.ToScreen(at, w, h)
		ebitenutil.DebugPrintAt(c.dst, text, int(x), int(y)-8)
		return
	}
	for _, g := range sprite.LayoutText(text, size, size*render.TextSpacing) {
		if g.Index == ' ' {
			continue
		}
		glyph := sprite.FromIndex(font, g.Index, size)
		c.drawSprite(glyph, at.Add(geom.V2(g.OffsetX, 0)), 0, col)
	}
}

func (c *Canvas) Camera() render.Camera { return c.camera }

func (c *Canvas) SetCamera(cam render.Camera) { c.camera = cam }

var _ render.Canvas = (*Canvas)(nil)
