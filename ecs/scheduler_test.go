package ecs_test

import (
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type ScoreSystem struct {
	Score  ecs.Singleton[Score]
	Frames []int64
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Score.Get() += 1
	s.Frames = append(s.Frames, frame.Frame)
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(*ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	var log []string
	scheduler.Register(&orderSystem{name: "input", log: &log})
	scheduler.Register(&orderSystem{name: "physics", log: &log})
	scheduler.Register(&orderSystem{name: "render", log: &log})

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	assert.Equal(t, []string{"input", "physics", "render", "input", "physics", "render"}, log)
}

func TestSchedulerBindsQueries(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(movement)

	id := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
	storage.Spawn(Position{X: 100})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, 2, movement.ExecuteCount)
	pos := ecs.ReadComponent[Position](storage, id)
	assert.InDelta(t, 1.0, pos.X, 1e-6)
	assert.InDelta(t, 2.0, pos.Y, 1e-6)
}

func TestSchedulerBindsSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage, 10)

	scheduler := ecs.NewScheduler(storage)
	system := &ScoreSystem{}
	scheduler.Register(system)

	scheduler.Once(0)
	scheduler.Once(0)

	var score *Score
	require.True(t, storage.ReadSingleton(&score))
	assert.Equal(t, Score(12), *score)
	assert.Equal(t, []int64{0, 1}, system.Frames)
}

func TestSchedulerAdvance(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.UseClock(ecs.NewFixedClock(0.01, 6))

	movement := &MovementSystem{}
	scheduler.Register(movement)

	var steps []int
	scheduler.OnStep(func(step int) { steps = append(steps, step) })

	result := scheduler.Advance(0.035)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, []int{0, 1, 2}, steps)
	assert.Equal(t, 3, movement.ExecuteCount)

	result = scheduler.Advance(1)
	assert.Equal(t, 6, result.Steps)
	assert.Greater(t, result.Dropped, 0.9)
	assert.Equal(t, 9, movement.ExecuteCount)
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	ecs.NewSingleton[Score](scheduler.Storage())
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&ScoreSystem{})

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Zero(t, stats.Systems[0].MinDuration)

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "ScoreSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	}
}
