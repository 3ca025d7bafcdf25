package sprite

// FontGrid is the number of cells per side of a bitmap font sheet. Glyphs
// are addressed by byte value.
const FontGrid = 16

// Glyph is one character of laid-out text.
type Glyph struct {
	Index   int
	OffsetX float32
}

// LayoutText places each byte of text on a line. Glyph i is offset by
// (size+spacing)*i from the first glyph's center.
func LayoutText(text string, size, spacing float32) []Glyph {
	glyphs := make([]Glyph, len(text))
	for i := 0; i < len(text); i++ {
		glyphs[i] = Glyph{
			Index:   int(text[i]),
			OffsetX: (size + spacing) * float32(i),
		}
	}
	return glyphs
}

// TextWidth returns the distance from the left edge of the first glyph to
// the right edge of the last.
func TextWidth(text string, size, spacing float32) float32 {
	if len(text) == 0 {
		return 0
	}
	return (size+spacing)*float32(len(text)-1) + size
}

// FontSheet returns the sheet description of a square bitmap font texture.
func FontSheet(texture TextureID, width, height int) Sheet {
	return Sheet{Texture: texture, Width: width, Height: height, Cols: FontGrid, Rows: FontGrid}
}
