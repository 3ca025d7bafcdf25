package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/audio/speaker"
	"github.com/plus3/arcade/catalog"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/debugui"
	"github.com/plus3/arcade/games/core"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/input/keyboard"
	"github.com/plus3/arcade/render/screen"
)

// Game adapts a core.Runner to ebiten.Game.
type Game struct {
	runner  *core.Runner
	keys    *keyboard.Source
	canvas  *screen.Canvas
	overlay *debugui.Overlay
	last    time.Time
}

func (g *Game) Update() error {
	now := time.Now()
	elapsed := now.Sub(g.last).Seconds()
	g.last = now

	state := g.keys.Poll()
	if g.overlay != nil {
		g.overlay.Update(elapsed)
		if g.overlay.WantsKeyboard() {
			state = input.State{}
		}
	}

	err := g.runner.Frame(state, elapsed)
	if errors.Is(err, core.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.canvas.Begin(dst)
	g.runner.Draw(g.canvas)
	if g.overlay != nil {
		g.overlay.Draw(dst)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	game := flag.String("game", "", "Game to play: scene, pong, invaders or platformer.")
	debug := flag.Bool("debug", false, "Show the debug overlay.")
	assetDir := flag.String("assets", "", "Directory of PNG textures replacing the built-in ones.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
		log.Printf("Loaded config from %s", *configPath)
	}
	if *game != "" {
		cfg.Game = *game
	}
	if *assetDir != "" {
		cfg.Assets.Dir = *assetDir
	}
	cfg.Debug = cfg.Debug || *debug
	cfg.Audio.Enabled = cfg.Audio.Enabled && !*mute
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	lib := assets.Builtin()
	if cfg.Assets.Dir != "" {
		replaced, err := lib.LoadOverrides(os.DirFS(cfg.Assets.Dir))
		if err != nil {
			log.Fatalf("Failed to load textures from %s: %v", cfg.Assets.Dir, err)
		}
		log.Printf("Replaced %d textures from %s: %v", len(replaced), cfg.Assets.Dir, replaced)
	}

	keymap, err := keyboard.ParseKeymap(cfg.Keys)
	if err != nil {
		log.Fatalf("keys: %v", err)
	}

	g, err := catalog.New(cfg.Game, cfg, lib)
	if err != nil {
		log.Fatalf("Failed to start %s: %v", cfg.Game, err)
	}

	var player audio.Player
	if cfg.Audio.Enabled {
		synth := audio.NewSynth(cfg.Audio.SampleRate, cfg.Audio.Volume)
		sp := speaker.New(ebaudio.NewContext(synth.SampleRate()), synth)
		sp.OnError(func(cue audio.Cue, err error) {
			log.Printf("sound %s: %v", cue, err)
		})
		defer sp.Close()
		player = sp
	}

	runner := core.NewRunner(g, player)
	runner.Announce = func(msg string) {
		log.Printf("%s: %s", g.Name(), msg)
	}

	app := &Game{
		runner: runner,
		keys:   keyboard.NewSource(keymap),
		canvas: screen.New(lib),
		last:   time.Now(),
	}
	if cfg.Debug {
		app.overlay = debugui.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, g.World())
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("Starting %s", g.Name())
	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("%s: %v", g.Name(), err)
	}
	log.Printf("Bye")
}
