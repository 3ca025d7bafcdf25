// Package sprite describes regions of textures: sprite-sheet cells,
// frame animations and bitmap-font text layout. It knows nothing about how
// textures are stored or drawn.
package sprite

import "image"

// TextureID is an opaque handle to a texture held by an asset library.
type TextureID uint32

// NoTexture means "draw untextured".
const NoTexture TextureID = 0

// Sheet is a texture divided into a uniform grid of equally sized cells.
type Sheet struct {
	Texture       TextureID
	Width, Height int
	Cols, Rows    int
}

// CellSize returns the pixel size of one cell.
func (s Sheet) CellSize() (w, h int) {
	return s.Width / s.Cols, s.Height / s.Rows
}

// Len returns the number of cells.
func (s Sheet) Len() int {
	return s.Cols * s.Rows
}

// Sprite is a region of a texture plus the height it is drawn at in world
// units. U, V, W and H are normalized texture coordinates with V measured
// from the top of the image.
type Sprite struct {
	Texture    TextureID
	U, V, W, H float32
	Size       float32
	Aspect     float32
}

// FromIndex returns the sprite for a linear cell index of sheet, counting
// left to right and top to bottom.
func FromIndex(sheet Sheet, index int, size float32) Sprite {
	col := index % sheet.Cols
	row := index / sheet.Cols
	w := 1 / float32(sheet.Cols)
	h := 1 / float32(sheet.Rows)
	cw, ch := sheet.CellSize()
	return Sprite{
		Texture: sheet.Texture,
		U:       float32(col) * w,
		V:       float32(row) * h,
		W:       w,
		H:       h,
		Size:    size,
		Aspect:  aspect(cw, ch),
	}
}

// FromPixels returns the sprite covering the pixel rectangle x,y,w,h of
// sheet.
func FromPixels(sheet Sheet, x, y, w, h int, size float32) Sprite {
	tw, th := float32(sheet.Width), float32(sheet.Height)
	return Sprite{
		Texture: sheet.Texture,
		U:       float32(x) / tw,
		V:       float32(y) / th,
		W:       float32(w) / tw,
		H:       float32(h) / th,
		Size:    size,
		Aspect:  aspect(w, h),
	}
}

func aspect(w, h int) float32 {
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Quad returns the world width and height the sprite is drawn at.
func (s Sprite) Quad() (w, h float32) {
	a := s.Aspect
	if a == 0 {
		a = 1
	}
	return s.Size * a, s.Size
}

// PixelRect returns the source rectangle of the sprite in a texture of the
// given pixel size.
func (s Sprite) PixelRect(texW, texH int) image.Rectangle {
	x0 := int(s.U*float32(texW) + 0.5)
	y0 := int(s.V*float32(texH) + 0.5)
	x1 := int((s.U+s.W)*float32(texW) + 0.5)
	y1 := int((s.V+s.H)*float32(texH) + 0.5)
	return image.Rect(x0, y0, x1, y1)
}

// Textured reports whether the sprite refers to a texture.
func (s Sprite) Textured() bool {
	return s.Texture != NoTexture
}
