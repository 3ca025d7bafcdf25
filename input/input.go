// Package input reduces device state to a small set of game actions.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a bit set of game actions.
type Action uint16

const (
	Up Action = 1 << iota
	Down
	Left
	Right
	Fire
	Jump
	Confirm
	Pause
	Restart
	Quit

	None Action = 0
)

// ErrUnknownAction is returned by ParseAction.
var ErrUnknownAction = errors.New("unknown action")

var actionNames = []struct {
	action Action
	name   string
}{
	{Up, "up"},
	{Down, "down"},
	{Left, "left"},
	{Right, "right"},
	{Fire, "fire"},
	{Jump, "jump"},
	{Confirm, "confirm"},
	{Pause, "pause"},
	{Restart, "restart"},
	{Quit, "quit"},
}

// Actions returns every single action in bit order.
func Actions() []Action {
	out := make([]Action, len(actionNames))
	for i, n := range actionNames {
		out[i] = n.action
	}
	return out
}

// ParseAction maps a lower-case action name to its Action.
func ParseAction(name string) (Action, error) {
	for _, n := range actionNames {
		if n.name == strings.ToLower(name) {
			return n.action, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Has reports whether every action in o is set.
func (a Action) Has(o Action) bool {
	return o != None && a&o == o
}

func (a Action) String() string {
	if a == None {
		return "none"
	}
	var parts []string
	for _, n := range actionNames {
		if a&n.action != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// State is the input seen by one frame. Held is level-triggered; Pressed
// holds the actions that went down this frame.
type State struct {
	Held    Action
	Pressed Action
}

// Down reports whether a is held.
func (s State) Down(a Action) bool {
	return s.Held&a != 0
}

// JustPressed reports whether a went down this frame.
func (s State) JustPressed(a Action) bool {
	return s.Pressed&a != 0
}

// Axis returns -1, 0 or 1 from a pair of opposing actions.
func (s State) Axis(negative, positive Action) float32 {
	var v float32
	if s.Down(negative) {
		v--
	}
	if s.Down(positive) {
		v++
	}
	return v
}

// Consume clears the edge-triggered actions so later fixed steps of the
// same frame do not see them again.
func (s *State) Consume() {
	s.Pressed = None
}

// Source produces the input state for a frame.
type Source interface {
	Poll() State
}

// Edges derives Pressed from successive Held values, for devices that only
// report what is currently down.
type Edges struct {
	prev Action
}

// Next returns the state for held given the previous frame.
func (e *Edges) Next(held Action) State {
	s := State{Held: held, Pressed: held &^ e.prev}
	e.prev = held
	return s
}

// Script replays a fixed sequence of states, then reports no input.
type Script struct {
	states []State
	pos    int
}

// NewScript replays states verbatim.
func NewScript(states ...State) *Script {
	return &Script{states: states}
}

// HoldScript replays held actions frame by frame, deriving Pressed from the
// changes between frames.
func HoldScript(held ...Action) *Script {
	var edges Edges
	states := make([]State, len(held))
	for i, h := range held {
		states[i] = edges.Next(h)
	}
	return &Script{states: states}
}

// Repeat returns n copies of a, for building hold scripts.
func Repeat(a Action, n int) []Action {
	out := make([]Action, n)
	for i := range out {
		out[i] = a
	}
	return out
}

// Poll returns the next scripted state.
func (s *Script) Poll() State {
	if s.pos >= len(s.states) {
		return State{}
	}
	st := s.states[s.pos]
	s.pos++
	return st
}

// Done reports whether every state has been replayed.
func (s *Script) Done() bool {
	return s.pos >= len(s.states)
}
