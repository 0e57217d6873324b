package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefield/config"
	"github.com/pthm-cable/wavefield/game"
	"github.com/pthm-cable/wavefield/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	count := flag.Int("count", 0, "Particle count (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Count:     *count,
		Headless:  *headless,
		MaxTicks:  *maxTicks,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts game.Options) error {
	if opts.Headless {
		// Headless mode, no raylib window
		g, err := game.NewGameWithOptions(opts, nil)
		if err != nil {
			return err
		}
		defer g.Unload()

		slog.Info("starting headless run", "seed", opts.Seed, "max_ticks", opts.MaxTicks)
		return g.Run(ctx)
	}

	cfg := config.Cfg()

	flags := uint32(rl.FlagWindowResizable)
	if cfg.Screen.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts, renderer.New())
	if err != nil {
		return err
	}
	defer g.Unload()

	return g.Run(ctx)
}
