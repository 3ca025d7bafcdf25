package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Texture names registered by Builtin.
const (
	TextureSheet  = "sheet"
	TextureFont   = "font"
	TextureGrass  = "grass"
	TextureSun    = "sun"
	TextureBush   = "bush"
	TextureCactus = "cactus"
)

const (
	// AtlasGrid is the number of cells per side of the atlas sheet.
	AtlasGrid = 8
	// CellPixels is the pixel size of one atlas cell.
	CellPixels = 32

	patternSize = 8
	fontCell    = 16
)

// Atlas cell names.
const (
	CellPaddle       = "paddle"
	CellBall         = "ball"
	CellBar          = "bar"
	CellShip         = "ship"
	CellInvaderA0    = "invader-a0"
	CellInvaderA1    = "invader-a1"
	CellInvaderB0    = "invader-b0"
	CellInvaderB1    = "invader-b1"
	CellInvaderC0    = "invader-c0"
	CellInvaderC1    = "invader-c1"
	CellPlayerBullet = "player-bullet"
	CellEnemyBullet  = "enemy-bullet"
	CellExplosion    = "explosion"
	CellPlayerIdle   = "player-idle"
	CellPlayerWalk0  = "player-walk0"
	CellPlayerWalk1  = "player-walk1"
	CellPlayerJump   = "player-jump"
	CellWalker0      = "walker0"
	CellWalker1      = "walker1"
	CellCoin0        = "coin0"
	CellCoin1        = "coin1"
	CellGround       = "ground"
	CellDirt         = "dirt"
	CellBrick        = "brick"
)

var cells = map[string]int{
	CellPaddle:       0,
	CellBall:         1,
	CellBar:          2,
	CellShip:         3,
	CellInvaderA0:    4,
	CellInvaderA1:    5,
	CellInvaderB0:    6,
	CellInvaderB1:    7,
	CellInvaderC0:    8,
	CellInvaderC1:    9,
	CellPlayerBullet: 10,
	CellEnemyBullet:  11,
	CellExplosion:    12,
	CellPlayerIdle:   16,
	CellPlayerWalk0:  17,
	CellPlayerWalk1:  18,
	CellPlayerJump:   19,
	CellWalker0:      20,
	CellWalker1:      21,
	CellCoin0:        22,
	CellCoin1:        23,
	CellGround:       24,
	CellDirt:         25,
	CellBrick:        26,
}

// Cell returns the sheet index of a named atlas cell.
func Cell(name string) (int, error) {
	index, ok := cells[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCell, name)
	}
	return index, nil
}

// pattern is an 8x8 picture; each rune picks a colour from the palette and
// '.' is transparent.
type pattern struct {
	rows    [patternSize]string
	palette map[rune]color.RGBA
}

var (
	white  = color.RGBA{240, 240, 240, 255}
	grey   = color.RGBA{150, 150, 160, 255}
	red    = color.RGBA{220, 60, 50, 255}
	orange = color.RGBA{250, 160, 40, 255}
	yellow = color.RGBA{250, 220, 60, 255}
	green  = color.RGBA{80, 200, 90, 255}
	dgreen = color.RGBA{40, 120, 50, 255}
	cyan   = color.RGBA{80, 210, 230, 255}
	blue   = color.RGBA{70, 110, 230, 255}
	purple = color.RGBA{180, 90, 220, 255}
	brown  = color.RGBA{130, 80, 40, 255}
	skin   = color.RGBA{240, 190, 150, 255}
)

func pal(pairs ...any) map[rune]color.RGBA {
	m := make(map[rune]color.RGBA, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(rune)] = pairs[i+1].(color.RGBA)
	}
	return m
}

var patterns = map[string]pattern{
	CellPaddle: {[8]string{
		"..####..", "..####..", "..####..", "..####..",
		"..####..", "..####..", "..####..", "..####..",
	}, pal('#', white)},
	CellBall: {[8]string{
		"..####..", ".######.", "########", "########",
		"########", "########", ".######.", "..####..",
	}, pal('#', white)},
	CellBar: {[8]string{
		"########", "########", "########", "########",
		"########", "########", "########", "########",
	}, pal('#', grey)},
	CellShip: {[8]string{
		"...##...", "...##...", "..####..", "..#oo#..",
		".######.", "########", "##.##.##", "#......#",
	}, pal('#', green, 'o', cyan)},
	CellInvaderA0: {[8]string{
		"...##...", "..####..", ".######.", "##.##.##",
		"########", "..#..#..", ".#.##.#.", "#.#..#.#",
	}, pal('#', purple)},
	CellInvaderA1: {[8]string{
		"...##...", "..####..", ".######.", "##.##.##",
		"########", ".#.##.#.", "#......#", ".#....#.",
	}, pal('#', purple)},
	CellInvaderB0: {[8]string{
		"..#..#..", "...##...", "..####..", ".##.##.#",
		"########", "#.####.#", "#.#..#.#", "...##...",
	}, pal('#', cyan)},
	CellInvaderB1: {[8]string{
		"..#..#..", "#..##..#", "#.####.#", "###.##.#",
		"########", ".######.", "..#..#..", ".#....#.",
	}, pal('#', cyan)},
	CellInvaderC0: {[8]string{
		"..####..", ".######.", "##.##.##", "########",
		"..#..#..", ".#.##.#.", "#......#", "........",
	}, pal('#', red)},
	CellInvaderC1: {[8]string{
		"..####..", ".######.", "##.##.##", "########",
		".#.##.#.", "#......#", ".#....#.", "........",
	}, pal('#', red)},
	CellPlayerBullet: {[8]string{
		"...##...", "...##...", "...##...", "...##...",
		"...##...", "...##...", "...##...", "...##...",
	}, pal('#', yellow)},
	CellEnemyBullet: {[8]string{
		"...#....", "....#...", "...#....", "....#...",
		"...#....", "....#...", "...#....", "....#...",
	}, pal('#', orange)},
	CellExplosion: {[8]string{
		"#..#..#.", ".#.#.#..", "..ooo...", "##ooo.##",
		"..ooo...", ".#.#.#..", "#..#..#.", "........",
	}, pal('#', orange, 'o', yellow)},
	CellPlayerIdle: {[8]string{
		"..###...", "..sss...", "..sss...", ".#####..",
		"#.###.#.", "..###...", "..#.#...", "..#.#...",
	}, pal('#', blue, 's', skin)},
	CellPlayerWalk0: {[8]string{
		"..###...", "..sss...", "..sss...", ".#####..",
		"#.###.#.", "..###...", ".#...#..", "#.....#.",
	}, pal('#', blue, 's', skin)},
	CellPlayerWalk1: {[8]string{
		"..###...", "..sss...", "..sss...", ".#####..",
		".####...", "..###...", "..##....", "..#.#...",
	}, pal('#', blue, 's', skin)},
	CellPlayerJump: {[8]string{
		"#.###.#.", "#.sss.#.", "..sss...", ".#####..",
		"..###...", "..###...", ".#...#..", "........",
	}, pal('#', blue, 's', skin)},
	CellWalker0: {[8]string{
		"........", "..####..", ".#o##o#.", "########",
		"########", ".######.", ".#....#.", "##....##",
	}, pal('#', red, 'o', white)},
	CellWalker1: {[8]string{
		"........", "..####..", ".#o##o#.", "########",
		"########", ".######.", "..#..#..", ".##..##.",
	}, pal('#', red, 'o', white)},
	CellCoin0: {[8]string{
		"..####..", ".#oooo#.", "#oo##oo#", "#o#oo#o#",
		"#o#oo#o#", "#oo##oo#", ".#oooo#.", "..####..",
	}, pal('#', orange, 'o', yellow)},
	CellCoin1: {[8]string{
		"...##...", "..#oo#..", "..#oo#..", "..#o##..",
		"..#o##..", "..#oo#..", "..#oo#..", "...##...",
	}, pal('#', orange, 'o', yellow)},
	CellGround: {[8]string{
		"gggggggg", "gGgggGgg", "dgddgddg", "dddddddd",
		"ddbddddd", "dddddbdd", "dbdddddd", "dddddddd",
	}, pal('g', green, 'G', dgreen, 'd', brown, 'b', color.RGBA{100, 60, 30, 255})},
	CellDirt: {[8]string{
		"dddddddd", "ddbddddd", "dddddbdd", "dddddddd",
		"dbdddddd", "ddddddbd", "dddbdddd", "dddddddd",
	}, pal('d', brown, 'b', color.RGBA{100, 60, 30, 255})},
	CellBrick: {[8]string{
		"rrrm rrr", "rrrmrrrr", "mmmmmmmm", "rmrrrrmr",
		"rmrrrrmr", "mmmmmmmm", "rrrmrrrr", "rrrmrrrr",
	}, pal('r', red, 'm', grey, ' ', red)},
}

var scenePatterns = map[string]pattern{
	TextureBush: {[8]string{
		"........", "..gg....", ".gGgg.g.", "gggGggGg",
		"gGggggGg", "gggggGgg", ".gGgggg.", "..gggg..",
	}, pal('g', green, 'G', dgreen)},
	TextureCactus: {[8]string{
		"...gg...", "...gg.g.", "g..gg.g.", "g..gggg.",
		"gggggg..", "...gg...", "...gg...", "...gg...",
	}, pal('g', dgreen)},
}

// Builtin returns a library holding the procedurally drawn atlas sheet,
// the bitmap font and the scene textures.
func Builtin() *Library {
	lib := NewLibrary()
	lib.Add(TextureSheet, drawAtlas())
	lib.Add(TextureFont, drawFont())
	lib.Add(TextureGrass, drawGrass())
	lib.Add(TextureSun, drawSun())
	lib.Add(TextureBush, scalePattern(scenePatterns[TextureBush], 8))
	lib.Add(TextureCactus, scalePattern(scenePatterns[TextureCactus], 8))
	return lib
}

func drawAtlas() *image.RGBA {
	size := AtlasGrid * CellPixels
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for name, p := range patterns {
		index := cells[name]
		x0 := (index % AtlasGrid) * CellPixels
		y0 := (index / AtlasGrid) * CellPixels
		cell := scalePattern(p, CellPixels/patternSize)
		draw.Draw(img, image.Rect(x0, y0, x0+CellPixels, y0+CellPixels), cell, image.Point{}, draw.Src)
	}
	return img
}

func scalePattern(p pattern, scale int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, patternSize*scale, patternSize*scale))
	for y, row := range p.rows {
		for x, r := range row {
			c, ok := p.palette[r]
			if !ok {
				continue
			}
			draw.Draw(img, image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale),
				image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

// drawFont renders the printable ASCII range of basicfont into a 16x16
// grid of 16-pixel cells, indexed by byte value.
func drawFont() *image.RGBA {
	size := 16 * fontCell
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	for c := 0x20; c < 0x7f; c++ {
		col, row := c%16, c/16
		d.Dot = fixed.P(col*fontCell+4, row*fontCell+12)
		d.DrawString(string(rune(c)))
	}
	return img
}

func drawGrass() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 128, 32))
	draw.Draw(img, img.Bounds(), image.NewUniform(brown), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, 128, 10), image.NewUniform(green), image.Point{}, draw.Src)
	for x := 0; x < 128; x += 6 {
		draw.Draw(img, image.Rect(x, 10, x+2, 13), image.NewUniform(dgreen), image.Point{}, draw.Src)
	}
	return img
}

func drawSun() *image.RGBA {
	const r = 32
	img := image.NewRGBA(image.Rect(0, 0, 2*r, 2*r))
	for y := 0; y < 2*r; y++ {
		for x := 0; x < 2*r; x++ {
			dx, dy := x-r, y-r
			switch d := dx*dx + dy*dy; {
			case d < (r-8)*(r-8):
				img.SetRGBA(x, y, yellow)
			case d < r*r && (dx+dy)%4 == 0:
				img.SetRGBA(x, y, orange)
			}
		}
	}
	return img
}
