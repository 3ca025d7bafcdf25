// Package core holds the wiring shared by every game: one entity storage,
// a fixed-step scheduler for simulation, a render scheduler, and the
// singletons through which systems reach input, sound and the canvas.
package core

import (
	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/physics"
	"github.com/plus3/arcade/render"
)

// Time is the simulated time of a world. It only moves in fixed steps.
type Time struct {
	Seconds float64
	Steps   int64
}

// World bundles the storage and schedulers of one game.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Renderer  *ecs.Scheduler
	Input     *ecs.Singleton[input.State]
	Sounds    *ecs.Singleton[audio.Queue]
	Target    *ecs.Singleton[render.Target]
	Time      *ecs.Singleton[Time]

	// presses that arrived on a frame too short to run a step
	carry input.Action
}

// NewWorld registers the shared components in registry and returns an
// empty world stepped by clock. The first simulation system keeps Time.
func NewWorld(registry *ecs.ComponentRegistry, clock *ecs.FixedClock) *World {
	physics.Register(registry)
	ecs.RegisterComponent[Drawable](registry)

	storage := ecs.NewStorage(registry)
	w := &World{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Renderer:  ecs.NewScheduler(storage),
		Input:     ecs.NewSingleton[input.State](storage),
		Sounds:    ecs.NewSingleton[audio.Queue](storage),
		Target:    ecs.NewSingleton[render.Target](storage),
		Time:      ecs.NewSingleton[Time](storage),
	}
	w.Scheduler.UseClock(clock)
	w.Scheduler.OnStep(func(step int) {
		if step == 0 {
			w.Input.Get().Consume()
		}
	})
	w.Scheduler.Register(&TimeSystem{})
	return w
}

// Advance stores the input of a frame and runs the fixed steps elapsed
// seconds pay for. Pressed actions are seen by the first step only.
func (w *World) Advance(state input.State, elapsed float64) ecs.StepResult {
	state.Pressed |= w.carry
	w.carry = input.None
	w.Input.Set(state)

	result := w.Scheduler.Advance(elapsed)
	if result.Steps == 0 {
		w.carry = state.Pressed
	}
	return result
}

// Render runs the render systems against canvas.
func (w *World) Render(canvas render.Canvas) {
	w.Target.Set(render.Target{Canvas: canvas})
	w.Renderer.Once(0)
	w.Target.Set(render.Target{})
}

// DrainSounds returns the cues raised since the last call.
func (w *World) DrainSounds() []audio.Cue {
	return w.Sounds.Get().Drain()
}

// Now returns the simulated time in seconds.
func (w *World) Now() float64 {
	return w.Time.Get().Seconds
}

// TimeSystem advances the Time singleton.
type TimeSystem struct {
	Time ecs.Singleton[Time]
}

func (s *TimeSystem) Execute(frame *ecs.UpdateFrame) {
	t := s.Time.Get()
	t.Seconds += frame.DeltaTime
	t.Steps++
}
