package ecs_test

import (
	"math"
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFixedClockAccumulates(t *testing.T) {
	clock := ecs.NewFixedClock(0.01, 6)

	r := clock.Advance(0.005)
	assert.Equal(t, 0, r.Steps)
	assert.InDelta(t, 0.005, clock.Remainder(), 1e-9)
	assert.InDelta(t, 0.5, r.Alpha, 1e-6)

	r = clock.Advance(0.006)
	assert.Equal(t, 1, r.Steps)
	assert.InDelta(t, 0.001, clock.Remainder(), 1e-9)

	r = clock.Advance(0.03)
	assert.Equal(t, 3, r.Steps)
	assert.Zero(t, r.Dropped)
	assert.Equal(t, int64(4), clock.TotalSteps())
}

func TestFixedClockExactMultiples(t *testing.T) {
	clock := ecs.NewFixedClock(ecs.DefaultStep, ecs.DefaultMaxSteps)

	r := clock.Advance(3 * ecs.DefaultStep)
	assert.Equal(t, 3, r.Steps)
	assert.InDelta(t, 0, clock.Remainder(), 1e-9)
}

func TestFixedClockCapsSteps(t *testing.T) {
	clock := ecs.NewFixedClock(0.01, 6)

	r := clock.Advance(0.1)
	assert.Equal(t, 6, r.Steps)
	assert.InDelta(t, 0.04, r.Dropped, 1e-9)
	assert.Zero(t, clock.Remainder(), "the surplus is not carried over")
	assert.InDelta(t, 0.04, clock.TotalDropped(), 1e-9)

	r = clock.Advance(0.01)
	assert.Equal(t, 1, r.Steps)
}

func TestFixedClockIgnoresNegativeTime(t *testing.T) {
	clock := ecs.NewFixedClock(0.01, 6)
	clock.Advance(0.005)

	r := clock.Advance(-1)
	assert.Equal(t, 0, r.Steps)
	assert.InDelta(t, 0.005, clock.Remainder(), 1e-9)

	clock.Reset()
	assert.Zero(t, clock.Remainder())
	assert.Zero(t, clock.TotalSteps())
}

func TestFixedClockHugeFrames(t *testing.T) {
	clock := ecs.NewFixedClock(0.01, 6)

	r := clock.Advance(1e300)
	assert.Equal(t, 6, r.Steps)
	assert.Zero(t, clock.Remainder())

	r = clock.Advance(math.Inf(1))
	assert.Equal(t, 0, r.Steps, "infinite frames are ignored")
	assert.Zero(t, r.Alpha)

	r = clock.Advance(0.01)
	assert.Equal(t, 1, r.Steps)
	assert.Equal(t, int64(7), clock.TotalSteps())
}

func TestFixedClockRejectsBadConfig(t *testing.T) {
	assert.Panics(t, func() { ecs.NewFixedClock(0, 6) })
	assert.Panics(t, func() { ecs.NewFixedClock(0.01, 0) })
}
