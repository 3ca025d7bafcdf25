package geom

// Side names one or more edges of a Rect.
type Side uint8

const (
	SideTop Side = 1 << iota
	SideBottom
	SideLeft
	SideRight

	SideNone Side = 0
)

// Has reports whether every side in o is set in s.
func (s Side) Has(o Side) bool {
	return o != 0 && s&o == o
}

func (s Side) String() string {
	if s == SideNone {
		return "none"
	}
	out := ""
	for _, n := range []struct {
		side Side
		name string
	}{{SideTop, "top"}, {SideBottom, "bottom"}, {SideLeft, "left"}, {SideRight, "right"}} {
		if s&n.side == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// Rect is an axis-aligned box stored as a center and half-extents.
type Rect struct {
	Center Vec3
	Half   Vec3
}

// RectFromCenter builds a Rect from its center and full size.
func RectFromCenter(center, size Vec3) Rect {
	return Rect{Center: center, Half: size.Mul(0.5)}
}

// RectFromEdges builds a Rect from its left, bottom, right and top edges.
func RectFromEdges(l, b, r, t float32) Rect {
	return Rect{
		Center: V2((l+r)/2, (b+t)/2),
		Half:   V2(Abs(r-l)/2, Abs(t-b)/2),
	}
}

func (r Rect) Left() float32   { return r.Center.X() - r.Half.X() }
func (r Rect) Right() float32  { return r.Center.X() + r.Half.X() }
func (r Rect) Bottom() float32 { return r.Center.Y() - r.Half.Y() }
func (r Rect) Top() float32    { return r.Center.Y() + r.Half.Y() }

// Min is the bottom-left corner.
func (r Rect) Min() Vec3 { return V2(r.Left(), r.Bottom()) }

// Max is the top-right corner.
func (r Rect) Max() Vec3 { return V2(r.Right(), r.Top()) }

// Size is the full width and height.
func (r Rect) Size() Vec3 { return r.Half.Mul(2) }

// Translate returns r moved by d.
func (r Rect) Translate(d Vec3) Rect {
	return Rect{Center: r.Center.Add(d), Half: r.Half}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec3) bool {
	return p.X() >= r.Left() && p.X() <= r.Right() && p.Y() >= r.Bottom() && p.Y() <= r.Top()
}

// Overlaps reports whether r and o share any area. The boxes are disjoint
// only when one of the four separating-axis conditions holds; boxes that
// merely touch count as overlapping.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right() < o.Left() || r.Left() > o.Right() ||
		r.Top() < o.Bottom() || r.Bottom() > o.Top() {
		return false
	}
	return true
}

// Penetration returns the smallest translation that moves r out of o along
// a single axis. ok is false when the boxes do not overlap.
func (r Rect) Penetration(o Rect) (dx, dy float32, ok bool) {
	if !r.Overlaps(o) {
		return 0, 0, false
	}
	overlapX := min(r.Right(), o.Right()) - max(r.Left(), o.Left())
	overlapY := min(r.Top(), o.Top()) - max(r.Bottom(), o.Bottom())

	if overlapX < overlapY {
		if r.Center.X() < o.Center.X() {
			return -overlapX, 0, true
		}
		return overlapX, 0, true
	}
	if r.Center.Y() < o.Center.Y() {
		return 0, -overlapY, true
	}
	return 0, overlapY, true
}

// ContactSides names the side of r that is in contact with o, taken from
// the axis of least penetration and the relative position of the centers.
func (r Rect) ContactSides(o Rect) Side {
	dx, dy, ok := r.Penetration(o)
	if !ok {
		return SideNone
	}
	switch {
	case dx < 0:
		return SideRight
	case dx > 0:
		return SideLeft
	case dy < 0:
		return SideTop
	case dy > 0:
		return SideBottom
	}
	// Touching edges: the penetration is zero, so fall back on the centers
	// along the axis with the larger gap between them.
	cx := o.Center.X() - r.Center.X()
	cy := o.Center.Y() - r.Center.Y()
	if Abs(cx)-r.Half.X()-o.Half.X() > Abs(cy)-r.Half.Y()-o.Half.Y() {
		if cx > 0 {
			return SideRight
		}
		return SideLeft
	}
	if cy > 0 {
		return SideTop
	}
	return SideBottom
}
