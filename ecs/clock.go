package ecs

import "math"

const (
	// DefaultStep is one simulation tick at 60 Hz.
	DefaultStep = 1.0 / 60.0
	// DefaultMaxSteps bounds how many ticks a single frame may run.
	DefaultMaxSteps = 6
)

// FixedClock turns variable frame times into a whole number of fixed steps.
// Time that does not fill a step carries over to the next frame. When a
// frame would need more than MaxSteps ticks the surplus is dropped rather
// than replayed, so a long stall never snowballs into a spiral of catch-up
// frames.
type FixedClock struct {
	Step     float64
	MaxSteps int

	remainder float64
	dropped   float64
	steps     int64
}

// StepResult describes one Advance call.
type StepResult struct {
	Steps   int
	Dropped float64
	// Alpha is the fraction of a step left in the accumulator, usable for
	// interpolating between the last two simulated states.
	Alpha float64
}

// NewFixedClock creates a clock; step must be positive and maxSteps >= 1.
func NewFixedClock(step float64, maxSteps int) *FixedClock {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		panic("fixed clock step must be a positive finite duration")
	}
	if maxSteps < 1 {
		panic("fixed clock needs at least one step per frame")
	}
	return &FixedClock{Step: step, MaxSteps: maxSteps}
}

// Advance adds elapsed seconds and reports how many steps to simulate.
func (c *FixedClock) Advance(elapsed float64) StepResult {
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}
	total := c.remainder + elapsed

	// The small bias keeps exact multiples such as 3 * (1/60) from losing a
	// step to rounding. Anything past the cap is compared as a float so a
	// huge frame cannot overflow the conversion.
	steps := math.Floor(total/c.Step + 1e-9)
	n := c.MaxSteps + 1
	if steps <= float64(c.MaxSteps) {
		n = int(steps)
	}
	var dropped float64
	if n > c.MaxSteps {
		dropped = total - float64(c.MaxSteps)*c.Step
		n = c.MaxSteps
		c.remainder = 0
		c.dropped += dropped
	} else {
		c.remainder = math.Max(0, total-float64(n)*c.Step)
	}
	c.steps += int64(n)

	return StepResult{
		Steps:   n,
		Dropped: dropped,
		Alpha:   c.remainder / c.Step,
	}
}

// Remainder returns the carried-over time in seconds.
func (c *FixedClock) Remainder() float64 {
	return c.remainder
}

// TotalDropped returns all time discarded because of the step cap.
func (c *FixedClock) TotalDropped() float64 {
	return c.dropped
}

// TotalSteps returns the number of steps handed out so far.
func (c *FixedClock) TotalSteps() int64 {
	return c.steps
}

// Reset clears the accumulator and counters.
func (c *FixedClock) Reset() {
	c.remainder = 0
	c.dropped = 0
	c.steps = 0
}
