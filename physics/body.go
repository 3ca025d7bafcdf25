// Package physics integrates bodies and resolves AABB contacts between them.
package physics

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

// DefaultFriction is the per-second velocity damping used by the
// platformer bodies.
const DefaultFriction = 0.1

// Body is the kinematic state of an entity.
type Body struct {
	Position     geom.Vec3
	Velocity     geom.Vec3
	Acceleration geom.Vec3
	Friction     geom.Vec3
	Static       bool
}

// Collider gives a Body its box. Size is the full width and height.
type Collider struct {
	Size geom.Vec3
}

// Contacts records which sides of a body touched something during the
// current step.
type Contacts struct {
	Top, Bottom, Left, Right bool
}

// Register adds the physics components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[Contacts](registry)
}

// Integrate advances b by dt with semi-implicit Euler: friction pulls the
// velocity toward zero, acceleration is added, then the position moves.
func (b *Body) Integrate(dt float32) {
	if b.Static {
		return
	}
	for axis := 0; axis < 2; axis++ {
		v := geom.Lerp(b.Velocity[axis], 0, dt*b.Friction[axis])
		v += b.Acceleration[axis] * dt
		b.Velocity[axis] = v
		b.Position[axis] += v * dt
	}
	b.Velocity[2] = 0
}

// Bounds returns the world box of a body.
func Bounds(b Body, c Collider) geom.Rect {
	return geom.RectFromCenter(b.Position, c.Size)
}

// Overlapping reports whether two bodies' boxes overlap.
func Overlapping(a Body, ca Collider, b Body, cb Collider) bool {
	return Bounds(a, ca).Overlaps(Bounds(b, cb))
}

// Separate pushes a out of b along the axis of least penetration. Velocity
// into b along that axis is cancelled. It returns the side of a that made
// contact, or SideNone when the boxes do not overlap.
func Separate(a *Body, ca Collider, b Body, cb Collider) geom.Side {
	ra, rb := Bounds(*a, ca), Bounds(b, cb)
	dx, dy, ok := ra.Penetration(rb)
	if !ok {
		return geom.SideNone
	}
	side := ra.ContactSides(rb)
	a.Position[0] += dx
	a.Position[1] += dy

	switch side {
	case geom.SideBottom:
		a.Velocity[1] = max(a.Velocity[1], 0)
	case geom.SideTop:
		a.Velocity[1] = min(a.Velocity[1], 0)
	case geom.SideLeft:
		a.Velocity[0] = max(a.Velocity[0], 0)
	case geom.SideRight:
		a.Velocity[0] = min(a.Velocity[0], 0)
	}
	return side
}

// Mark sets the flags named by side.
func (c *Contacts) Mark(side geom.Side) {
	c.Top = c.Top || side&geom.SideTop != 0
	c.Bottom = c.Bottom || side&geom.SideBottom != 0
	c.Left = c.Left || side&geom.SideLeft != 0
	c.Right = c.Right || side&geom.SideRight != 0
}

// Reset clears every flag.
func (c *Contacts) Reset() {
	*c = Contacts{}
}

// Any reports whether any side is in contact.
func (c Contacts) Any() bool {
	return c.Top || c.Bottom || c.Left || c.Right
}
