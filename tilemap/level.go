package tilemap

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/plus3/arcade/geom"
)

// ErrBadLevel is returned for level documents that do not describe a
// consistent grid.
var ErrBadLevel = errors.New("bad level")

// SpawnKind names what a level spawn point creates.
type SpawnKind string

const (
	SpawnPlayer SpawnKind = "player"
	SpawnEnemy  SpawnKind = "enemy"
	SpawnCoin   SpawnKind = "coin"
)

// Spawn is an entity placement in tile coordinates.
type Spawn struct {
	Kind SpawnKind `toml:"kind"`
	Col  int       `toml:"col"`
	Row  int       `toml:"row"`
}

// Level is a parsed level document.
type Level struct {
	Name   string
	Map    *Map
	Spawns []Spawn
}

// SpawnsOf returns the spawns of one kind in document order.
func (l *Level) SpawnsOf(kind SpawnKind) []Spawn {
	var out []Spawn
	for _, s := range l.Spawns {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

type levelDoc struct {
	Name     string         `toml:"name"`
	Width    int            `toml:"width"`
	Height   int            `toml:"height"`
	TileSize float32        `toml:"tile_size"`
	OriginX  float32        `toml:"origin_x"`
	OriginY  float32        `toml:"origin_y"`
	Solid    []int          `toml:"solid"`
	Rows     []string       `toml:"rows"`
	Legend   map[string]int `toml:"legend"`
	Spawn    []Spawn        `toml:"spawn"`
}

// LoadLevel decodes a TOML level from r.
func LoadLevel(r io.Reader) (*Level, error) {
	var doc levelDoc
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	return build(doc, md)
}

// LoadLevelFile decodes the TOML level at path.
func LoadLevelFile(path string) (*Level, error) {
	var doc levelDoc
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode level %s: %w", path, err)
	}
	level, err := build(doc, md)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel decodes a TOML level held in memory.
func ParseLevel(data []byte) (*Level, error) {
	var doc levelDoc
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	return build(doc, md)
}

func build(doc levelDoc, md toml.MetaData) (*Level, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrBadLevel, undecoded)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadLevel, doc.Width, doc.Height)
	}
	if doc.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tile_size must be positive", ErrBadLevel)
	}
	if len(doc.Rows) != doc.Height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBadLevel, len(doc.Rows), doc.Height)
	}

	legend := make(map[rune]int, len(doc.Legend))
	for key, id := range doc.Legend {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) {
			return nil, fmt.Errorf("%w: legend key %q must be one character", ErrBadLevel, key)
		}
		legend[r] = id
	}

	m := New(doc.Width, doc.Height, doc.TileSize, geom.V2(doc.OriginX, doc.OriginY))
	m.SetSolid(doc.Solid...)

	for row, line := range doc.Rows {
		if n := utf8.RuneCountInString(line); n != doc.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLevel, row, n, doc.Width)
		}
		col := 0
		for _, r := range line {
			id, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("%w: row %d col %d: unknown tile %q", ErrBadLevel, row, col, r)
			}
			m.Set(col, row, id)
			col++
		}
	}

	kinds := []SpawnKind{SpawnPlayer, SpawnEnemy, SpawnCoin}
	for i, s := range doc.Spawn {
		if !slices.Contains(kinds, s.Kind) {
			return nil, fmt.Errorf("%w: spawn %d has unknown kind %q", ErrBadLevel, i, s.Kind)
		}
		if !m.inside(s.Col, s.Row) {
			return nil, fmt.Errorf("%w: spawn %d at %d,%d is outside the map", ErrBadLevel, i, s.Col, s.Row)
		}
	}

	return &Level{Name: doc.Name, Map: m, Spawns: doc.Spawn}, nil
}
