// Package geom holds the small amount of 2D maths shared by the games:
// vectors, axis-aligned boxes and a few scalar helpers. The world is y-up.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is an x/y/z triple. The games only use x and y; z is kept so that
// positions can be fed straight into 3D projection matrices.
type Vec3 = mgl32.Vec3

// V2 returns a Vec3 with z = 0.
func V2(x, y float32) Vec3 {
	return Vec3{x, y, 0}
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return mgl32.Clamp(v, lo, hi)
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return mgl32.DegToRad(deg)
}

// Approach moves v toward target by at most step.
func Approach(v, target, step float32) float32 {
	if v < target {
		return min(v+step, target)
	}
	return max(v-step, target)
}

// Sign returns -1, 0 or 1.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Abs is math.Abs for float32.
func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
