package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neurosoup/config"
	"github.com/pthm-cable/neurosoup/game"
)

type flags struct {
	configPath     string
	headless       bool
	logStats       bool
	statsWindow    int
	outputDir      string
	seed           int64
	maxTicks       int
	stepsPerUpdate int
	spawnRate      int
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&f.headless, "headless", false, "Run without graphics")
	flag.BoolVar(&f.logStats, "log-stats", false, "Output stats via slog")
	flag.IntVar(&f.statsWindow, "stats-window", 0, "Stats window size in ticks (0 = use config)")
	flag.StringVar(&f.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Int64Var(&f.seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.IntVar(&f.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.IntVar(&f.stepsPerUpdate, "steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	flag.IntVar(&f.spawnRate, "spawn-rate", 0, "Spawn one random agent per N ticks on average (0 = use config)")
	flag.Parse()

	// JSON to stdout for structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(f); err != nil {
		slog.Error("neurosoup failed", "error", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	if f.spawnRate < 0 {
		return fmt.Errorf("-spawn-rate must be >= 0, got %d", f.spawnRate)
	}
	if f.maxTicks < 0 {
		return errors.New("-max-ticks must be >= 0")
	}

	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:             seed,
		Headless:         f.headless,
		LogStats:         f.logStats,
		StatsWindow:      f.statsWindow,
		OutputDir:        f.outputDir,
		StepsPerUpdate:   f.stepsPerUpdate,
		InverseSpawnRate: f.spawnRate,
	}

	if f.headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		runHeadless(ctx, opts, f)
		return nil
	}
	runWindow(opts, f)
	return nil
}

// runHeadless steps until maxTicks or until ctx is cancelled. Unload runs
// either way so CSV output is flushed.
func runHeadless(ctx context.Context, opts game.Options, f flags) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"run_id", g.RunID(),
		"seed", opts.Seed,
		"config", f.configPath,
		"max_ticks", f.maxTicks,
		"steps_per_update", f.stepsPerUpdate,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick(), "population", g.Count())
			return
		default:
		}

		g.UpdateHeadless()

		if reachedMaxTicks(g, f.maxTicks) {
			return
		}
	}
}

func runWindow(opts game.Options, f flags) {
	cfg := config.Cfg()
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Neuro Soup")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting simulation", "run_id", g.RunID(), "seed", opts.Seed, "config", f.configPath)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if reachedMaxTicks(g, f.maxTicks) {
			return
		}
	}
}

func reachedMaxTicks(g *game.Game, maxTicks int) bool {
	if maxTicks > 0 && int(g.Tick()) >= maxTicks {
		slog.Info("max ticks reached", "tick", g.Tick(), "population", g.Count())
		return true
	}
	return false
}
