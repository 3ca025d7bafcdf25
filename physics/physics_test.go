package physics_test

import (
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate(t *testing.T) {
	b := physics.Body{
		Velocity:     geom.Vec3{1, 0, 5},
		Acceleration: geom.V2(0, -3),
	}
	b.Integrate(0.5)

	assert.InDelta(t, 1.0, b.Velocity.X(), 1e-6)
	assert.InDelta(t, -1.5, b.Velocity.Y(), 1e-6)
	assert.Zero(t, b.Velocity.Z(), "z velocity is always cleared")
	assert.InDelta(t, 0.5, b.Position.X(), 1e-6)
	assert.InDelta(t, -0.75, b.Position.Y(), 1e-6)
}

func TestIntegrateFriction(t *testing.T) {
	b := physics.Body{
		Velocity: geom.V2(2, 0),
		Friction: geom.V2(physics.DefaultFriction, physics.DefaultFriction),
	}
	b.Integrate(1)

	// lerp(2, 0, 0.1) = 1.8
	assert.InDelta(t, 1.8, b.Velocity.X(), 1e-6)
	assert.InDelta(t, 1.8, b.Position.X(), 1e-6)
}

func TestIntegrateStatic(t *testing.T) {
	b := physics.Body{Velocity: geom.V2(1, 1), Static: true}
	b.Integrate(1)
	assert.Equal(t, geom.Vec3{}, b.Position)
}

func TestSeparate(t *testing.T) {
	ground := physics.Body{Position: geom.V2(0, -1), Static: true}
	groundBox := physics.Collider{Size: geom.V2(10, 1)}
	box := physics.Collider{Size: geom.V2(0.3, 0.3)}

	falling := physics.Body{Position: geom.V2(0, -0.4), Velocity: geom.V2(0.5, -2)}
	require.True(t, physics.Overlapping(falling, box, ground, groundBox))
	side := physics.Separate(&falling, box, ground, groundBox)

	assert.Equal(t, geom.SideBottom, side)
	assert.InDelta(t, -0.35, falling.Position.Y(), 1e-5)
	assert.Zero(t, falling.Velocity.Y())
	assert.Equal(t, float32(0.5), falling.Velocity.X(), "tangential velocity is kept")

	away := physics.Body{Position: geom.V2(0, 3)}
	assert.Equal(t, geom.SideNone, physics.Separate(&away, box, ground, groundBox))
	assert.Equal(t, geom.V2(0, 3), away.Position)
}

func TestContacts(t *testing.T) {
	var c physics.Contacts
	assert.False(t, c.Any())

	c.Mark(geom.SideBottom)
	c.Mark(geom.SideLeft)
	assert.Equal(t, physics.Contacts{Bottom: true, Left: true}, c)
	assert.True(t, c.Any())

	c.Reset()
	assert.Equal(t, physics.Contacts{}, c)
}

func TestSystems(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	physics.Register(registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&physics.ContactResetSystem{})
	scheduler.Register(&physics.IntegrateSystem{})

	id := storage.Spawn(
		physics.Body{Velocity: geom.V2(1, 0)},
		physics.Collider{Size: geom.V2(1, 1)},
		physics.Contacts{Bottom: true},
	)
	scheduler.Once(0.25)

	body := ecs.ReadComponent[physics.Body](storage, id)
	require.NotNil(t, body)
	assert.InDelta(t, 0.25, body.Position.X(), 1e-6)
	assert.False(t, ecs.ReadComponent[physics.Contacts](storage, id).Bottom)
}
