// Package keyboard maps ebiten keys to game actions.
package keyboard

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/arcade/input"
)

// Keymap binds each action to one or more keys.
type Keymap map[input.Action][]ebiten.Key

// DefaultKeymap returns the arrow-key layout with WASD alternatives.
func DefaultKeymap() Keymap {
	return Keymap{
		input.Up:      {ebiten.KeyArrowUp, ebiten.KeyW},
		input.Down:    {ebiten.KeyArrowDown, ebiten.KeyS},
		input.Left:    {ebiten.KeyArrowLeft, ebiten.KeyA},
		input.Right:   {ebiten.KeyArrowRight, ebiten.KeyD},
		input.Fire:    {ebiten.KeySpace, ebiten.KeyZ},
		input.Jump:    {ebiten.KeySpace, ebiten.KeyX},
		input.Confirm: {ebiten.KeyEnter},
		input.Pause:   {ebiten.KeyP},
		input.Restart: {ebiten.KeyR},
		input.Quit:    {ebiten.KeyEscape},
	}
}

// ParseKeymap overlays bindings given by action and key name, e.g.
// {"jump": ["Space", "ArrowUp"]}, on top of the default map.
func ParseKeymap(names map[string][]string) (Keymap, error) {
	km := DefaultKeymap()
	for actionName, keyNames := range names {
		action, err := input.ParseAction(actionName)
		if err != nil {
			return nil, err
		}
		keys := make([]ebiten.Key, 0, len(keyNames))
		for _, name := range keyNames {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("key %q for %s: %w", name, actionName, err)
			}
			keys = append(keys, key)
		}
		km[action] = keys
	}
	return km, nil
}

// Source polls the ebiten keyboard. Poll must be called from Game.Update.
type Source struct {
	Keymap Keymap
}

// NewSource returns a keyboard source using km.
func NewSource(km Keymap) *Source {
	return &Source{Keymap: km}
}

// Poll reads the current key state.
func (s *Source) Poll() input.State {
	var st input.State
	for action, keys := range s.Keymap {
		if slices.ContainsFunc(keys, ebiten.IsKeyPressed) {
			st.Held |= action
		}
		if slices.ContainsFunc(keys, inpututil.IsKeyJustPressed) {
			st.Pressed |= action
		}
	}
	return st
}
