// Package render defines the camera and the drawing surface games draw on.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/arcade/geom"
)

// Camera is an orthographic view of the world. Left, Right, Bottom and Top
// are the extents of the view around Eye.
type Camera struct {
	Left, Right, Bottom, Top float32
	Eye                      geom.Vec3
}

// DefaultCamera is the 16:9 view used by every game.
func DefaultCamera() Camera {
	return Camera{Left: -5.33, Right: 5.33, Bottom: -3, Top: 3}
}

// Width returns the visible world width.
func (c Camera) Width() float32 { return c.Right - c.Left }

// Height returns the visible world height.
func (c Camera) Height() float32 { return c.Top - c.Bottom }

// Projection returns the orthographic projection matrix.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Ortho2D(c.Left, c.Right, c.Bottom, c.Top)
}

// View returns the view matrix, a translation by -Eye.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Eye.X(), -c.Eye.Y(), 0)
}

// ToScreen maps a world point to pixel coordinates on a w x h surface with
// y pointing down.
func (c Camera) ToScreen(p geom.Vec3, w, h int) (x, y float32) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	x = (clip.X() + 1) / 2 * float32(w)
	y = (1 - clip.Y()) / 2 * float32(h)
	return x, y
}

// UnitsToPixels returns how many pixels one world unit covers on each axis.
func (c Camera) UnitsToPixels(w, h int) (sx, sy float32) {
	return float32(w) / c.Width(), float32(h) / c.Height()
}

// Visible returns the world box the camera shows.
func (c Camera) Visible() geom.Rect {
	return geom.RectFromEdges(
		c.Eye.X()+c.Left, c.Eye.Y()+c.Bottom,
		c.Eye.X()+c.Right, c.Eye.Y()+c.Top,
	)
}

// Follow moves Eye a fraction rate of the way toward target and keeps the
// view inside bounds. A view larger than bounds is centered on them.
func (c *Camera) Follow(target geom.Vec3, rate float32, bounds geom.Rect) {
	rate = geom.Clamp(rate, 0, 1)
	x := geom.Lerp(c.Eye.X(), target.X(), rate)
	y := geom.Lerp(c.Eye.Y(), target.Y(), rate)
	c.Eye = geom.V2(
		clampAxis(x, c.Left, c.Right, bounds.Left(), bounds.Right()),
		clampAxis(y, c.Bottom, c.Top, bounds.Bottom(), bounds.Top()),
	)
}

func clampAxis(eye, lo, hi, boundLo, boundHi float32) float32 {
	minEye := boundLo - lo
	maxEye := boundHi - hi
	if minEye > maxEye {
		return (boundLo + boundHi) / 2
	}
	return geom.Clamp(eye, minEye, maxEye)
}
