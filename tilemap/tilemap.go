// Package tilemap is a fixed-size grid of tile ids with collision against
// physics bodies.
package tilemap

import (
	"math"

	"github.com/plus3/arcade/geom"
)

// Epsilon is the gap left between a resolved body and the tile it hit.
const Epsilon = 0.001

// probe is how far past an edge the resolvers look, so a body resting
// exactly Epsilon away still reports contact.
const probe = 2 * Epsilon

// Empty is the tile id of an empty cell.
const Empty = 0

// Map is a grid of tile ids. Row 0 is the top row and Origin is the world
// position of the map's top-left corner.
type Map struct {
	Width, Height int
	TileSize      float32
	Origin        geom.Vec3

	tiles []int
	solid map[int]bool
}

// New returns an empty map.
func New(width, height int, tileSize float32, origin geom.Vec3) *Map {
	return &Map{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Origin:   origin,
		tiles:    make([]int, width*height),
		solid:    make(map[int]bool),
	}
}

// SetSolid marks tile ids as solid.
func (m *Map) SetSolid(ids ...int) {
	for _, id := range ids {
		if id != Empty {
			m.solid[id] = true
		}
	}
}

func (m *Map) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.Width && row < m.Height
}

// At returns the tile id at col,row. Cells outside the map are empty.
func (m *Map) At(col, row int) int {
	if !m.inside(col, row) {
		return Empty
	}
	return m.tiles[row*m.Width+col]
}

// Set stores id at col,row. Writes outside the map are ignored.
func (m *Map) Set(col, row, id int) {
	if m.inside(col, row) {
		m.tiles[row*m.Width+col] = id
	}
}

// IsSolid reports whether the tile at col,row is solid.
func (m *Map) IsSolid(col, row int) bool {
	return m.solid[m.At(col, row)]
}

// SolidAt reports whether the world point p lies in a solid tile.
func (m *Map) SolidAt(p geom.Vec3) bool {
	return m.IsSolid(m.WorldToTile(p.X(), p.Y()))
}

// WorldToTile maps a world point to the cell containing it.
func (m *Map) WorldToTile(x, y float32) (col, row int) {
	col = int(math.Floor(float64((x - m.Origin.X()) / m.TileSize)))
	row = int(math.Floor(float64((m.Origin.Y() - y) / m.TileSize)))
	return col, row
}

// TileCenter returns the world center of a cell.
func (m *Map) TileCenter(col, row int) geom.Vec3 {
	return geom.V2(
		m.Origin.X()+(float32(col)+0.5)*m.TileSize,
		m.Origin.Y()-(float32(row)+0.5)*m.TileSize,
	)
}

// TileBounds returns the world box of a cell.
func (m *Map) TileBounds(col, row int) geom.Rect {
	return geom.RectFromCenter(m.TileCenter(col, row), geom.V2(m.TileSize, m.TileSize))
}

// Bounds returns the world box covering the whole map.
func (m *Map) Bounds() geom.Rect {
	w := float32(m.Width) * m.TileSize
	h := float32(m.Height) * m.TileSize
	return geom.RectFromEdges(m.Origin.X(), m.Origin.Y()-h, m.Origin.X()+w, m.Origin.Y())
}

// Each calls fn for every non-empty cell, row by row.
func (m *Map) Each(fn func(col, row, id int)) {
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			if id := m.At(col, row); id != Empty {
				fn(col, row, id)
			}
		}
	}
}
