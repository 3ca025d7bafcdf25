package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnerSystem struct {
	Positions ecs.Query[struct{ *Position }]
	Seen      []int
}

func (s *spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Positions.Len())
	frame.Commands.Spawn(Position{})
}

func TestCommandsDeferredUntilEndOfFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	first := &spawnerSystem{}
	second := &spawnerSystem{}
	scheduler.Register(first)
	scheduler.Register(second)

	scheduler.Once(0.1)
	assert.Equal(t, []int{0}, first.Seen)
	assert.Equal(t, []int{0}, second.Seen, "spawns from earlier systems are not visible")

	scheduler.Once(0.1)
	assert.Equal(t, []int{0, 2}, first.Seen)
	assert.Equal(t, []int{0, 2}, second.Seen)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := newFlushableCommands(t, storage)

	doomed := storage.Spawn(Position{X: 1})
	kept := storage.Spawn(Position{X: 2})

	commands.Delete(doomed)
	commands.AddComponent(doomed, Velocity{})
	commands.AddComponent(kept, Velocity{DX: 3})
	commands.AddComponent(kept, Name{Value: "kept"})
	commands.RemoveComponent(kept, reflect.TypeFor[Health]())

	var deferredAlive int
	commands.Defer(func() {
		deferredAlive = storage.CollectStats().TotalEntityCount
	})
	require.Equal(t, 6, commands.Pending())

	commands.Flush(storage)
	assert.Zero(t, commands.Pending())
	assert.False(t, storage.Alive(doomed))
	assert.Equal(t, 1, deferredAlive, "defers run after structural changes")

	view := ecs.NewView[struct {
		*Position
		*Velocity
		*Name
	}](storage)
	n := 0
	for _, item := range view.Iter() {
		n++
		assert.Equal(t, float32(2), item.Position.X)
		assert.Equal(t, float32(3), item.Velocity.DX)
		assert.Equal(t, "kept", item.Name.Value)
	}
	assert.Equal(t, 1, n, "both adds reach the entity after it moves")
}

// newFlushableCommands obtains a Commands buffer through a scheduler frame.
func newFlushableCommands(t *testing.T, storage *ecs.Storage) *ecs.Commands {
	t.Helper()
	capture := &captureSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(capture)
	scheduler.Once(0)
	require.NotNil(t, capture.commands)
	return capture.commands
}

type captureSystem struct {
	commands *ecs.Commands
}

func (s *captureSystem) Execute(frame *ecs.UpdateFrame) {
	s.commands = frame.Commands
}
