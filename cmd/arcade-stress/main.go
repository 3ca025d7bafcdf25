package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/arcade/assets"
	"github.com/plus3/arcade/catalog"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
)

// monkeySystem holds random game actions, changing them every few steps.
type monkeySystem struct {
	Input ecs.Singleton[input.State]

	Rand  *rand.Rand
	edges input.Edges
	held  input.Action
	left  int
}

var monkeyActions = []input.Action{
	input.Up, input.Down, input.Left, input.Right, input.Fire, input.Jump, input.Confirm,
}

func (s *monkeySystem) Execute(frame *ecs.UpdateFrame) {
	if s.left <= 0 {
		s.held = input.None
		for _, a := range monkeyActions {
			if s.Rand.IntN(3) == 0 {
				s.held |= a
			}
		}
		s.left = 1 + s.Rand.IntN(30)
	}
	s.left--
	s.Input.Set(s.edges.Next(s.held))
}

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	game := flag.String("game", "", "Game to run; overrides the config.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	interval := flag.Duration("interval", time.Millisecond, "Wall time between scheduler ticks.")
	seed := flag.Uint64("seed", 1, "Seed for the random input.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *game != "" {
		cfg.Game = *game
	}

	g, err := catalog.New(cfg.Game, cfg, assets.Builtin())
	if err != nil {
		log.Fatalf("Failed to build game: %v", err)
	}
	world := g.World()
	world.Scheduler.Register(&monkeySystem{Rand: rand.New(rand.NewPCG(*seed, *seed))})

	log.Printf("Stressing %s for %s...", g.Name(), *duration)
	report := &Report{
		Game:           g.Name(),
		Duration:       *duration,
		Interval:       *interval,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	start := time.Now()
	world.Scheduler.Run(ctx, *interval)
	report.TotalTime = time.Since(start)

	runtime.ReadMemStats(&report.MemStatsEnd)
	clock := world.Scheduler.Clock()
	report.Steps = clock.TotalSteps()
	report.Dropped = time.Duration(clock.TotalDropped() * float64(time.Second))
	report.Entities = world.Storage.CollectStats().TotalEntityCount
	report.Systems = world.Scheduler.GetStats().Systems

	log.Println("Run finished.")
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
