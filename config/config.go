// Package config holds the settings shared by the arcade front ends.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalid reports a config value out of range.
var ErrInvalid = errors.New("invalid config")

// Games lists the game names a config may select.
var Games = []string{"invaders", "platformer", "pong", "scene"}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Timing controls the fixed simulation step. Step is in seconds.
type Timing struct {
	Step     float64 `toml:"step"`
	MaxSteps int     `toml:"max_steps"`
}

// StepDuration returns Step as a duration.
func (t Timing) StepDuration() time.Duration {
	return time.Duration(t.Step * float64(time.Second))
}

type Audio struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

// Assets names a directory whose images replace built-in textures.
type Assets struct {
	Dir string `toml:"dir"`
}

type Pong struct {
	WinScore    int     `toml:"win_score"`
	BallSpeed   float32 `toml:"ball_speed"`
	PaddleSpeed float32 `toml:"paddle_speed"`
	CPUSpeed    float32 `toml:"cpu_speed"`
	ServeDelay  float32 `toml:"serve_delay"`
	// Seed fixes the bounce angles; 0 picks one at start-up.
	Seed uint64 `toml:"seed"`
}

type Invaders struct {
	Rows          int     `toml:"rows"`
	Cols          int     `toml:"cols"`
	Lives         int     `toml:"lives"`
	MaxBullets    int     `toml:"max_bullets"`
	FireCooldown  float32 `toml:"fire_cooldown"`
	EnemyFireRate float32 `toml:"enemy_fire_interval"`
	MarchSpeed    float32 `toml:"march_speed"`
	// Seed fixes which invaders fire; 0 picks one at start-up.
	Seed uint64 `toml:"seed"`
}

type Platformer struct {
	// Level is a level file; empty selects the built-in level.
	Level        string  `toml:"level"`
	Lives        int     `toml:"lives"`
	Gravity      float32 `toml:"gravity"`
	JumpVelocity float32 `toml:"jump_velocity"`
	MoveAccel    float32 `toml:"move_accel"`
	// Friction is the horizontal velocity damping per second.
	Friction float32 `toml:"friction"`
}

// Config is the whole settings file.
type Config struct {
	Game       string              `toml:"game"`
	Debug      bool                `toml:"debug"`
	Window     Window              `toml:"window"`
	Timing     Timing              `toml:"timing"`
	Audio      Audio               `toml:"audio"`
	Assets     Assets              `toml:"assets"`
	Keys       map[string][]string `toml:"keys"`
	Pong       Pong                `toml:"pong"`
	Invaders   Invaders            `toml:"invaders"`
	Platformer Platformer          `toml:"platformer"`
}

// Default returns a config with every value set.
func Default() Config {
	return Config{
		Game:   "platformer",
		Window: Window{Width: 1280, Height: 720, Title: "arcade"},
		Timing: Timing{Step: 1.0 / 60.0, MaxSteps: 6},
		Audio:  Audio{Enabled: true, Volume: 0.5, SampleRate: 44100},
		Pong: Pong{
			WinScore:    5,
			BallSpeed:   5,
			PaddleSpeed: 4,
			CPUSpeed:    2.5,
			ServeDelay:  1,
		},
		Invaders: Invaders{
			Rows:          2,
			Cols:          6,
			Lives:         3,
			MaxBullets:    10,
			FireCooldown:  0.35,
			EnemyFireRate: 1.2,
			MarchSpeed:    0.5,
		},
		Platformer: Platformer{
			Lives:        3,
			Gravity:      -3,
			JumpVelocity: 1.5,
			MoveAccel:    6,
			Friction:     4,
		},
	}
}

// Load reads path over the defaults. Keys the config does not know are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("load config %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return f.Close()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Validate checks every value is in range.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Timing.Step <= 0:
		return invalid("timing.step %v", c.Timing.Step)
	case c.Timing.MaxSteps < 1:
		return invalid("timing.max_steps %d", c.Timing.MaxSteps)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return invalid("audio.volume %v", c.Audio.Volume)
	case c.Audio.SampleRate <= 0:
		return invalid("audio.sample_rate %d", c.Audio.SampleRate)
	case !slices.Contains(Games, c.Game):
		return invalid("unknown game %q", c.Game)
	case c.Pong.WinScore <= 0:
		return invalid("pong.win_score %d", c.Pong.WinScore)
	case c.Invaders.Rows <= 0 || c.Invaders.Cols <= 0:
		return invalid("invaders formation %dx%d", c.Invaders.Rows, c.Invaders.Cols)
	case c.Invaders.MaxBullets <= 0:
		return invalid("invaders.max_bullets %d", c.Invaders.MaxBullets)
	case c.Invaders.Lives <= 0 || c.Platformer.Lives <= 0:
		return invalid("lives must be positive")
	}
	return nil
}
