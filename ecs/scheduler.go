package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// binder is implemented by Query and Singleton so the scheduler can wire
// them to its storage.
type binder interface {
	Init(storage *Storage)
}

type executor interface {
	Execute()
}

type systemEntry struct {
	system  System
	name    string
	queries []executor

	executions int64
	min, max   time.Duration
	last       time.Duration
	total      time.Duration
}

// Scheduler runs registered systems in order against one Storage.
type Scheduler struct {
	storage  *Storage
	entries  []*systemEntry
	commands *Commands
	clock    *FixedClock
	onStep   func(step int)
	frames   int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the storage systems run against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	entry := &systemEntry{
		system: system,
		name:   systemName(system),
		min:    time.Duration(1<<63 - 1),
	}
	entry.queries = s.bindFields(system)
	s.entries = append(s.entries, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []executor {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	v = v.Elem()

	var queries []executor
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		b, ok := field.Addr().Interface().(binder)
		if !ok {
			continue
		}
		b.Init(s.storage)
		if e, ok := b.(executor); ok {
			queries = append(queries, e)
		}
	}
	return queries
}

// Once executes every system with the given delta time and then flushes
// the commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.frames, s.storage, s.commands)
	s.frames++

	for _, entry := range s.entries {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (e *systemEntry) record(d time.Duration) {
	e.executions++
	e.last = d
	e.total += d
	if e.executions == 1 || d < e.min {
		e.min = d
	}
	e.max = max(e.max, d)
}

// UseClock attaches the fixed-step clock used by Advance.
func (s *Scheduler) UseClock(clock *FixedClock) {
	s.clock = clock
}

// Clock returns the attached clock, or nil.
func (s *Scheduler) Clock() *FixedClock {
	return s.clock
}

// OnStep registers fn to run after each fixed step taken by Advance. The
// argument is the step's index within the current Advance call.
func (s *Scheduler) OnStep(fn func(step int)) {
	s.onStep = fn
}

// Advance feeds elapsed wall time to the clock and runs Once for every
// whole step it yields.
func (s *Scheduler) Advance(elapsed float64) StepResult {
	if s.clock == nil {
		s.clock = NewFixedClock(DefaultStep, DefaultMaxSteps)
	}
	result := s.clock.Advance(elapsed)
	for i := 0; i < result.Steps; i++ {
		s.Once(s.clock.Step)
		if s.onStep != nil {
			s.onStep(i)
		}
	}
	return result
}

// Run drives Advance from a ticker until ctx is cancelled. Each tick feeds
// the wall time elapsed since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.entries)),
	}
	for i, e := range s.entries {
		var avg, minD time.Duration
		if e.executions > 0 {
			avg = e.total / time.Duration(e.executions)
			minD = e.min
		}
		stats.Systems[i] = SystemStats{
			Name:           e.name,
			ExecutionCount: e.executions,
			MinDuration:    minD,
			MaxDuration:    e.max,
			AvgDuration:    avg,
			LastDuration:   e.last,
			TotalDuration:  e.total,
		}
		stats.TotalExecutions += e.executions
	}
	return stats
}
