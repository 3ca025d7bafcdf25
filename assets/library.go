// Package assets owns decoded texture images and the names games use to
// find them.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/plus3/arcade/sprite"
)

var (
	// ErrTextureNotFound is returned when a texture file does not exist.
	ErrTextureNotFound = errors.New("texture not found")
	// ErrUnknownCell is returned for atlas cell names that do not exist.
	ErrUnknownCell = errors.New("unknown atlas cell")
)

// Library maps texture ids and names to decoded images. Texture ids start
// at 1; sprite.NoTexture is never handed out.
type Library struct {
	images []image.Image
	names  map[string]sprite.TextureID
	order  []string
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{names: make(map[string]sprite.TextureID)}
}

// Add stores img under name. Adding a name twice replaces the image and
// keeps the id, so sprites built earlier pick up the new pixels.
func (l *Library) Add(name string, img image.Image) sprite.TextureID {
	if id, ok := l.names[name]; ok {
		l.images[id-1] = img
		return id
	}
	l.images = append(l.images, img)
	id := sprite.TextureID(len(l.images))
	l.names[name] = id
	l.order = append(l.order, name)
	return id
}

// Load decodes the PNG at p in fsys and adds it under its base name without
// extension, so "textures/sheet.png" becomes "sheet".
func (l *Library) Load(fsys fs.FS, p string) (sprite.TextureID, error) {
	f, err := fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sprite.NoTexture, fmt.Errorf("%w: %s", ErrTextureNotFound, p)
		}
		return sprite.NoTexture, fmt.Errorf("open texture %s: %w", p, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return sprite.NoTexture, fmt.Errorf("decode texture %s: %w", p, err)
	}
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	return l.Add(name, img), nil
}

// LoadOverrides replaces built-in textures with files of the same name
// found in fsys (sheet.png, font.png and the scene textures). Missing files
// are skipped. It returns the names that were replaced.
func (l *Library) LoadOverrides(fsys fs.FS) ([]string, error) {
	var replaced []string
	for _, name := range l.order {
		_, err := l.Load(fsys, name+".png")
		if errors.Is(err, ErrTextureNotFound) {
			continue
		}
		if err != nil {
			return replaced, err
		}
		replaced = append(replaced, name)
	}
	return replaced, nil
}

// Source returns the image for id, or nil.
func (l *Library) Source(id sprite.TextureID) image.Image {
	if id == sprite.NoTexture || int(id) > len(l.images) {
		return nil
	}
	return l.images[id-1]
}

// Lookup returns the id registered for name.
func (l *Library) Lookup(name string) (sprite.TextureID, bool) {
	id, ok := l.names[name]
	return id, ok
}

// Names returns texture names in the order they were first added.
func (l *Library) Names() []string {
	return l.order
}

// Len returns the number of textures.
func (l *Library) Len() int {
	return len(l.images)
}

// Sheet describes the named texture as a grid of cols x rows cells.
func (l *Library) Sheet(name string, cols, rows int) (sprite.Sheet, error) {
	id, ok := l.names[name]
	if !ok {
		return sprite.Sheet{}, fmt.Errorf("%w: %s", ErrTextureNotFound, name)
	}
	b := l.images[id-1].Bounds()
	return sprite.Sheet{Texture: id, Width: b.Dx(), Height: b.Dy(), Cols: cols, Rows: rows}, nil
}

// Whole returns a sprite covering the entire named texture.
func (l *Library) Whole(name string, size float32) (sprite.Sprite, error) {
	sheet, err := l.Sheet(name, 1, 1)
	if err != nil {
		return sprite.Sprite{}, err
	}
	return sprite.FromIndex(sheet, 0, size), nil
}

// Sprite returns the sprite for a named cell of the atlas sheet.
func (l *Library) Sprite(cell string, size float32) (sprite.Sprite, error) {
	index, err := Cell(cell)
	if err != nil {
		return sprite.Sprite{}, err
	}
	sheet, err := l.Sheet(TextureSheet, AtlasGrid, AtlasGrid)
	if err != nil {
		return sprite.Sprite{}, err
	}
	return sprite.FromIndex(sheet, index, size), nil
}

// Font returns the font sheet, if a font texture is loaded.
func (l *Library) Font() (sprite.Sheet, bool) {
	id, ok := l.names[TextureFont]
	if !ok {
		return sprite.Sheet{}, false
	}
	b := l.images[id-1].Bounds()
	return sprite.FontSheet(id, b.Dx(), b.Dy()), true
}
