package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/config"
	"github.com/pthm-cable/sparks/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "Sampler seed (0 = config seed, then time-based)")
	mode := flag.String("mode", "", "Sampler mode: uniform, gaussian, perlin, simplex (empty = use config)")
	dt := flag.Float64("dt", 0, "Fixed step in seconds (0 = 1/target_fps)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Config:         cfg,
		Seed:           *seed,
		Mode:           *mode,
		DT:             float32(*dt),
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		LogStats:       *logStats,
		Headless:       *headless,
	}

	if *headless {
		if *maxFrames <= 0 {
			slog.Error("headless mode needs -max-frames")
			os.Exit(1)
		}

		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"max_frames", *maxFrames,
			"output_dir", *outputDir,
		)

		for g.Frame() < *maxFrames {
			g.UpdateHeadless()
		}
		slog.Info("max frames reached",
			"frame", g.Frame(),
			"sim_time", g.SimTime(),
			"particles", g.Particles().Count(),
		)
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Sparks")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= *maxFrames {
			break
		}
	}
}
