package tty

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/arcade/input"
)

// DefaultHold is how long a key counts as held after its last event.
// Terminals report presses and auto-repeats but never releases.
const DefaultHold = 250 * time.Millisecond

// Input turns tcell key events into input states.
type Input struct {
	keys    map[tcell.Key]input.Action
	runes   map[rune]input.Action
	hold    time.Duration
	until   map[input.Action]time.Time
	pending input.Action
	edges   input.Edges
	now     func() time.Time
}

// NewInput returns an input source with the default bindings.
func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{
		keys: map[tcell.Key]input.Action{
			tcell.KeyUp:     input.Up,
			tcell.KeyDown:   input.Down,
			tcell.KeyLeft:   input.Left,
			tcell.KeyRight:  input.Right,
			tcell.KeyEnter:  input.Confirm,
			tcell.KeyEscape: input.Quit,
			tcell.KeyCtrlC:  input.Quit,
		},
		runes: map[rune]input.Action{
			'w': input.Up,
			's': input.Down,
			'a': input.Left,
			'd': input.Right,
			' ': input.Fire | input.Jump,
			'z': input.Fire,
			'x': input.Jump,
			'p': input.Pause,
			'r': input.Restart,
			'q': input.Quit,
		},
		hold:  hold,
		until: make(map[input.Action]time.Time),
		now:   time.Now,
	}
}

// SetClock replaces the time source.
func (in *Input) SetClock(now func() time.Time) {
	in.now = now
}

// Handle records a key event. It returns the actions the event mapped to.
func (in *Input) Handle(ev *tcell.EventKey) input.Action {
	var actions input.Action
	if ev.Key() == tcell.KeyRune {
		actions = in.runes[ev.Rune()]
	} else {
		actions = in.keys[ev.Key()]
	}
	if actions == input.None {
		return actions
	}

	deadline := in.now().Add(in.hold)
	for _, a := range input.Actions() {
		if actions&a != 0 {
			in.until[a] = deadline
		}
	}
	in.pending |= actions
	return actions
}

// Poll returns the actions held now. Every key event since the previous
// poll counts as a press, so auto-repeat re-triggers Pressed.
func (in *Input) Poll() input.State {
	now := in.now()
	var held input.Action
	for a, until := range in.until {
		if now.Before(until) {
			held |= a
		} else {
			delete(in.until, a)
		}
	}
	st := in.edges.Next(held | in.pending)
	st.Pressed |= in.pending
	in.pending = input.None
	return st
}

var _ input.Source = (*Input)(nil)

// Pump forwards screen events to events until the screen is finalized or
// done is closed, then closes events. PollEvent blocks, so callers run it
// on its own goroutine.
func Pump(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
