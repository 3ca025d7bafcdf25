package render

import (
	"image/color"

	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/sprite"
)

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpClear OpKind = iota
	OpRect
	OpSprite
	OpText
)

// Op is one draw call captured by a Recorder.
type Op struct {
	Kind     OpKind
	Rect     geom.Rect
	Sprite   sprite.Sprite
	At       geom.Vec3
	Rotation float32
	Text     string
	Size     float32
	Color    color.RGBA
}

// Recorder is a Canvas that keeps every call instead of drawing it.
type Recorder struct {
	Ops    []Op
	camera Camera
}

// NewRecorder returns a recorder using the default camera.
func NewRecorder() *Recorder {
	return &Recorder{camera: DefaultCamera()}
}

func (r *Recorder) Clear(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) FillRect(rect geom.Rect, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Rect: rect, Color: c})
}

func (r *Recorder) DrawSprite(s sprite.Sprite, center geom.Vec3, rotation float32) {
	r.Ops = append(r.Ops, Op{Kind: OpSprite, Sprite: s, At: center, Rotation: rotation})
}

func (r *Recorder) DrawText(text string, at geom.Vec3, size float32, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: text, At: at, Size: size, Color: c})
}

func (r *Recorder) Camera() Camera { return r.camera }

func (r *Recorder) SetCamera(cam Camera) { r.camera = cam }

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
