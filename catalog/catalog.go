// Package catalog builds games by name.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/games/invaders"
	"github.com/plus3/arcade/games/platformer"
	"github.com/plus3/arcade/games/pong"
	"github.com/plus3/arcade/games/scene"
)

// ErrUnknownGame is returned by New for a name with no game.
var ErrUnknownGame = errors.New("unknown game")

type constructor func(config.Config, *assets.Library) (core.Game, error)

func wrap[G core.Game](fn func(config.Config, *assets.Library) (G, error)) constructor {
	return func(cfg config.Config, lib *assets.Library) (core.Game, error) {
		g, err := fn(cfg, lib)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

var games = map[string]constructor{
	"scene":      wrap(scene.New),
	"pong":       wrap(pong.New),
	"invaders":   wrap(invaders.New),
	"platformer": wrap(platformer.New),
}

// Names returns every game name in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(games))
}

// New builds the named game.
func New(name string, cfg config.Config, lib *assets.Library) (core.Game, error) {
	fn, ok := games[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return fn(cfg, lib)
}
