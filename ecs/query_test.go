package ecs_test

import (
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRequiresExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { query.Len() })
	assert.Panics(t, func() { query.Iter() })

	var unbound ecs.Query[struct{ *Position }]
	assert.Panics(t, func() { unbound.Execute() })
}

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	storage.Spawn(Position{X: 1})
	query.Execute()
	assert.Equal(t, 1, query.Len())

	// entities spawned after Execute are not visible until the next one
	storage.Spawn(Position{X: 2}, Health{})
	assert.Equal(t, 1, query.Len())

	query.Execute()
	assert.Equal(t, 2, query.Len())

	var xs []float32
	for item := range query.Values() {
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []float32{1, 2}, xs)
}

func TestQueryFirst(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct {
		*Position
		*PlayerTag
	}](storage)

	query.Execute()
	_, _, ok := query.First()
	assert.False(t, ok)

	storage.Spawn(Position{})
	player := storage.Spawn(Position{X: 5}, PlayerTag{})
	query.Execute()

	id, item, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, player, id)
	assert.Equal(t, float32(5), item.Position.X)
}

func TestQueryDropsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	a := storage.Spawn(Position{})
	storage.Spawn(Position{})
	query.Execute()
	require.Equal(t, 2, query.Len())

	storage.Delete(a)
	query.Execute()
	assert.Equal(t, 1, query.Len())
	for id := range query.Iter() {
		assert.NotEqual(t, a, id)
	}
}
