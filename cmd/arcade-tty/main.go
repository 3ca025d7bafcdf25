package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/catalog"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/render/tty"
)

const frameInterval = 16 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	game := flag.String("game", "", "Game to play: scene, pong, invaders or platformer.")
	assetDir := flag.String("assets", "", "Directory of PNG textures replacing the built-in ones.")
	hold := flag.Duration("hold", tty.DefaultHold, "How long a key counts as held after its last event.")
	logPath := flag.String("log", "", "Write the log to this file instead of discarding it.")
	flag.Parse()

	// the terminal owns stdout and stderr while the game runs
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*configPath, *game, *assetDir, *hold); err != nil {
		log.Printf("arcade-tty: %v", err)
		fmt.Fprintf(os.Stderr, "arcade-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, game, assetDir string, hold time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if game != "" {
		cfg.Game = game
	}
	if assetDir != "" {
		cfg.Assets.Dir = assetDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	lib := assets.Builtin()
	if cfg.Assets.Dir != "" {
		if _, err := lib.LoadOverrides(os.DirFS(cfg.Assets.Dir)); err != nil {
			return fmt.Errorf("textures: %w", err)
		}
	}
	g, err := catalog.New(cfg.Game, cfg, lib)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go tty.Pump(screen, events, done)

	runner := core.NewRunner(g, nil)
	runner.Announce = func(msg string) {
		log.Printf("%s: %s", g.Name(), msg)
	}
	canvas := tty.NewCanvas(screen, lib)
	keys := tty.NewInput(hold)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	log.Printf("Starting %s", g.Name())

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.Handle(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if err := runner.Frame(keys.Poll(), elapsed); err != nil {
				if errors.Is(err, core.ErrQuit) {
					return nil
				}
				return err
			}
			runner.Draw(canvas)
			canvas.Show()
		}
	}
}
