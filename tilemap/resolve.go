package tilemap

import (
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/physics"
)

// ResolveBottom tests the body's bottom edge against the cell beneath its
// center. On contact the body is lifted to sit Epsilon above the tile and
// any downward velocity is removed.
func (m *Map) ResolveBottom(body *physics.Body, c physics.Collider, contacts *physics.Contacts) bool {
	box := physics.Bounds(*body, c)
	col, row := m.WorldToTile(box.Center.X(), box.Bottom()-probe)
	if !m.IsSolid(col, row) {
		return false
	}
	penetration := m.TileBounds(col, row).Top() - box.Bottom()
	body.Position[1] += penetration + Epsilon
	body.Velocity[1] = max(body.Velocity[1], 0)
	if contacts != nil {
		contacts.Bottom = true
	}
	return true
}

// ResolveTop is ResolveBottom for the body's head.
func (m *Map) ResolveTop(body *physics.Body, c physics.Collider, contacts *physics.Contacts) bool {
	box := physics.Bounds(*body, c)
	col, row := m.WorldToTile(box.Center.X(), box.Top()+probe)
	if !m.IsSolid(col, row) {
		return false
	}
	penetration := box.Top() - m.TileBounds(col, row).Bottom()
	body.Position[1] -= penetration + Epsilon
	body.Velocity[1] = min(body.Velocity[1], 0)
	if contacts != nil {
		contacts.Top = true
	}
	return true
}

// ResolveLeft tests the cell left of the body's center.
func (m *Map) ResolveLeft(body *physics.Body, c physics.Collider, contacts *physics.Contacts) bool {
	box := physics.Bounds(*body, c)
	col, row := m.WorldToTile(box.Left()-probe, box.Center.Y())
	if !m.IsSolid(col, row) {
		return false
	}
	penetration := m.TileBounds(col, row).Right() - box.Left()
	body.Position[0] += penetration + Epsilon
	body.Velocity[0] = max(body.Velocity[0], 0)
	if contacts != nil {
		contacts.Left = true
	}
	return true
}

// ResolveRight tests the cell right of the body's center.
func (m *Map) ResolveRight(body *physics.Body, c physics.Collider, contacts *physics.Contacts) bool {
	box := physics.Bounds(*body, c)
	col, row := m.WorldToTile(box.Right()+probe, box.Center.Y())
	if !m.IsSolid(col, row) {
		return false
	}
	penetration := box.Right() - m.TileBounds(col, row).Left()
	body.Position[0] -= penetration + Epsilon
	body.Velocity[0] = min(body.Velocity[0], 0)
	if contacts != nil {
		contacts.Right = true
	}
	return true
}

// Resolve runs the vertical resolvers before the horizontal ones and
// returns every side that made contact.
func (m *Map) Resolve(body *physics.Body, c physics.Collider, contacts *physics.Contacts) geom.Side {
	var sides geom.Side
	if m.ResolveBottom(body, c, contacts) {
		sides |= geom.SideBottom
	}
	if m.ResolveTop(body, c, contacts) {
		sides |= geom.SideTop
	}
	if m.ResolveLeft(body, c, contacts) {
		sides |= geom.SideLeft
	}
	if m.ResolveRight(body, c, contacts) {
		sides |= geom.SideRight
	}
	return sides
}
