package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefield/camera"
	"github.com/pthm-cable/wavefield/clock"
	"github.com/pthm-cable/wavefield/config"
	"github.com/pthm-cable/wavefield/material"
	"github.com/pthm-cable/wavefield/particles"
	"github.com/pthm-cable/wavefield/scene"
	"github.com/pthm-cable/wavefield/telemetry"
	"github.com/pthm-cable/wavefield/ui"
)

// Game holds everything the render loop touches.
type Game struct {
	cfg    *config.Config
	opts   Options
	rng    *rand.Rand
	runID  string
	logger *slog.Logger

	// Scene
	geometry *particles.Geometry
	material *material.PointsMaterial
	scene    *scene.Scene
	points   ecs.Entity

	// View
	camera   *camera.Perspective
	controls *camera.OrbitControls
	clock    *clock.Clock

	backend Backend

	// Telemetry
	perf       *telemetry.PerfCollector
	output     *telemetry.OutputManager
	bookmarks  *telemetry.BookmarkDetector
	lastLogSec float64

	// UI (nil when headless)
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	debug     *ui.DebugPanel
	showPerf  bool

	// State
	tick    int64
	elapsed float64
	delta   float64
}

// NewGameWithOptions builds the particle field and its scene from the
// loaded config. A nil backend selects the headless backend.
func NewGameWithOptions(opts Options, backend Backend) (*Game, error) {
	cfg := config.Cfg()

	if backend == nil {
		backend = newHeadlessBackend()
	}

	count := cfg.Particles.Count
	if opts.Count > 0 {
		count = opts.Count
	}

	mat, err := material.FromConfig(cfg.Material)
	if err != nil {
		return nil, fmt.Errorf("building material: %w", err)
	}

	runID := uuid.NewString()
	g := &Game{
		cfg:      cfg,
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		runID:    runID,
		logger:   slog.Default().With("run_id", runID),
		material: mat,
		backend:  backend,
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
	g.bookmarks = telemetry.NewBookmarkDetector(10)

	g.geometry = particles.NewWithSpread(count, cfg.Particles.Spread, g.rng)
	g.scene = scene.New()
	g.points = g.scene.AddPoints(g.geometry, g.material)

	g.camera = newCamera(cfg.Camera)
	g.controls = newControls(g.camera, cfg.Controls)

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	g.clock = clock.NewWithSource(now)

	if !opts.Headless {
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Derived.ScreenW32)-270, 10)
		g.debug = ui.NewDebugPanel(10, 100, 240)
	}

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := g.writeRunOutput(); err != nil {
		g.output.Close()
		return nil, err
	}

	if err := backend.Init(g.scene); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("initializing backend: %w", err)
	}

	g.clock.Start()

	g.logger.Info("particle field ready",
		"count", g.geometry.Count(),
		"half_extent", cfg.Derived.HalfSpread,
		"seed", opts.Seed,
		"headless", opts.Headless,
		"blending", g.material.Blending.String(),
	)
	return g, nil
}

func newCamera(c config.CameraConfig) *camera.Perspective {
	return camera.NewPerspective(
		float32(c.Fov), float32(c.Near), float32(c.Far),
		vec3(c.Position), vec3(c.Target),
	)
}

func newControls(cam *camera.Perspective, c config.ControlsConfig) *camera.OrbitControls {
	ctl := camera.NewOrbitControls(cam)
	ctl.EnableDamping = c.EnableDamping
	ctl.DampingFactor = float32(c.DampingFactor)
	ctl.RotateSpeed = float32(c.RotateSpeed)
	ctl.ZoomSpeed = float32(c.ZoomSpeed)
	ctl.PanSpeed = float32(c.PanSpeed)
	ctl.MinDistance = float32(c.MinDistance)
	if c.MaxDistance > 0 {
		ctl.MaxDistance = float32(c.MaxDistance)
	}
	ctl.AutoRotate = c.AutoRotate
	ctl.AutoRotateSpeed = float32(c.AutoRotateSpeed)
	return ctl
}

func vec3(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func (g *Game) writeRunOutput() error {
	if g.output == nil {
		return nil
	}
	if err := g.output.WriteConfig(g.cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}
	info := telemetry.RunInfo{
		RunID:     g.runID,
		Seed:      g.opts.Seed,
		Count:     g.geometry.Count(),
		Headless:  g.opts.Headless,
		StartedAt: time.Now().UTC(),
	}
	if err := g.output.WriteRunInfo(info); err != nil {
		return fmt.Errorf("writing run info: %w", err)
	}
	return nil
}

// Tick runs one frame: read the clock, animate the wave, flag the position
// buffer, advance the controls, render, and wait for the next frame.
func (g *Game) Tick() {
	if !g.opts.Headless {
		g.handleInput()
	}

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseClock)
	g.delta = g.clock.Delta()
	g.elapsed = g.clock.ElapsedSeconds()

	// Animate marks the position attribute for re-upload
	g.perf.StartPhase(telemetry.PhaseAnimate)
	g.geometry.Animate(g.elapsed)

	g.perf.StartPhase(telemetry.PhaseControls)
	g.controls.Advance()

	g.perf.StartPhase(telemetry.PhaseRender)
	g.backend.BeginFrame()
	g.backend.DrawScene(g.scene, g.camera)
	if !g.opts.Headless {
		g.drawUI()
	}
	g.perf.EndTick()

	// Blocks until the next display refresh in graphical mode
	g.backend.EndFrame()
	g.perf.RecordFrame()

	g.tick++
	g.maybeLogPerf()
}

// Run ticks until the backend closes, ctx is done, or MaxTicks is reached.
func (g *Game) Run(ctx context.Context) error {
	g.logger.Info("render loop started", "max_ticks", g.opts.MaxTicks)

	for !g.backend.ShouldClose() {
		select {
		case <-ctx.Done():
			g.logger.Info("render loop cancelled", "tick", g.tick)
			return ctx.Err()
		default:
		}

		g.Tick()

		if g.opts.MaxTicks > 0 && g.tick >= int64(g.opts.MaxTicks) {
			g.logger.Info("max ticks reached", "tick", g.tick)
			return nil
		}
	}

	g.logger.Info("window closed", "tick", g.tick)
	return nil
}

func (g *Game) maybeLogPerf() {
	interval := g.cfg.Telemetry.LogIntervalSec
	if interval <= 0 || g.elapsed-g.lastLogSec < interval {
		return
	}
	g.lastLogSec = g.elapsed

	stats := g.perf.Stats()
	if g.opts.LogStats {
		stats.LogStats(g.logger, g.tick)
	}
	for _, b := range g.bookmarks.Check(stats, g.tick) {
		b.LogBookmark(g.logger)
	}
	if err := g.output.WritePerf(stats, g.tick, g.elapsed); err != nil {
		g.logger.Warn("perf output failed", "error", err)
	}
}

// Unload releases backend resources and closes output files.
func (g *Game) Unload() {
	g.backend.Unload()
	if err := g.output.Close(); err != nil {
		g.logger.Warn("closing output", "error", err)
	}
}

// TickCount returns the number of completed frames.
func (g *Game) TickCount() int64 { return g.tick }

// Elapsed returns the clock time used by the last frame, in seconds.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Geometry returns the animated particle geometry.
func (g *Game) Geometry() *particles.Geometry { return g.geometry }

// Material returns the point material.
func (g *Game) Material() *material.PointsMaterial { return g.material }

// Scene returns the scene graph.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Camera returns the perspective camera.
func (g *Game) Camera() *camera.Perspective { return g.camera }

// Controls returns the orbit controls.
func (g *Game) Controls() *camera.OrbitControls { return g.controls }

// RunID returns the identifier attached to logs and output of this run.
func (g *Game) RunID() string { return g.runID }
