package core

import (
	"image/color"
	"sort"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/physics"
	"github.com/plus3/arcade/render"
	"github.com/plus3/arcade/sprite"
)

// Drawable makes a body visible. Without a texture the collider box is
// filled with Color.
type Drawable struct {
	Sprite   sprite.Sprite
	Color    color.RGBA
	Layer    int
	Hidden   bool
	Rotation float32
}

type drawItem struct {
	*physics.Body
	*physics.Collider
	*Drawable
}

// DrawSystem draws every visible body, lowest layer first.
type DrawSystem struct {
	Items  ecs.Query[drawItem]
	Target ecs.Singleton[render.Target]

	sorted []drawItem
}

func (s *DrawSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Target.Get().Canvas
	if canvas == nil {
		return
	}

	s.sorted = s.sorted[:0]
	for item := range s.Items.Values() {
		if !item.Hidden {
			s.sorted = append(s.sorted, item)
		}
	}
	sort.SliceStable(s.sorted, func(i, j int) bool {
		return s.sorted[i].Layer < s.sorted[j].Layer
	})

	for _, item := range s.sorted {
		if item.Sprite.Textured() {
			canvas.DrawSprite(item.Sprite, item.Position, item.Rotation)
			continue
		}
		canvas.FillRect(physics.Bounds(*item.Body, *item.Collider), item.Color)
	}
}
