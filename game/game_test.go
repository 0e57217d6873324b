package game

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefield/camera"
	"github.com/pthm-cable/wavefield/config"
	"github.com/pthm-cable/wavefield/particles"
	"github.com/pthm-cable/wavefield/scene"
	"github.com/pthm-cable/wavefield/telemetry"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

// fakeTime is a settable clock source.
type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(sec float64) {
	f.t = f.t.Add(time.Duration(sec * float64(time.Second)))
}

// recordingBackend logs calls and what the geometry looked like at draw time.
type recordingBackend struct {
	calls      []string
	closeAfter int
	frames     int
	initErr    error

	drawnVersion uint32
	drawnY       []float32
}

func (b *recordingBackend) Init(*scene.Scene) error {
	b.calls = append(b.calls, "init")
	return b.initErr
}

func (b *recordingBackend) BeginFrame() { b.calls = append(b.calls, "begin") }

func (b *recordingBackend) DrawScene(s *scene.Scene, _ *camera.Perspective) {
	b.calls = append(b.calls, "draw")
	s.EachPoints(func(_ ecs.Entity, _ *scene.Transform, pts *scene.Points) {
		pos := pts.Geometry.Attribute(particles.AttrPosition)
		b.drawnVersion = pos.Version
		b.drawnY = b.drawnY[:0]
		for i := 1; i < len(pos.Array); i += 3 {
			b.drawnY = append(b.drawnY, pos.Array[i])
		}
	})
}

func (b *recordingBackend) EndFrame() {
	b.calls = append(b.calls, "end")
	b.frames++
}

func (b *recordingBackend) ShouldClose() bool {
	return b.closeAfter > 0 && b.frames >= b.closeAfter
}

func (b *recordingBackend) Unload() { b.calls = append(b.calls, "unload") }

func newTestGame(t *testing.T, opts Options, b Backend) (*Game, *fakeTime) {
	t.Helper()
	ft := &fakeTime{t: time.Unix(1000, 0)}
	opts.Headless = true
	opts.Now = ft.now
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	g, err := NewGameWithOptions(opts, b)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g, ft
}

func TestNewGame_Defaults(t *testing.T) {
	g, _ := newTestGame(t, Options{}, nil)

	if g.Geometry().Count() != 5000 {
		t.Errorf("expected 5000 particles, got %d", g.Geometry().Count())
	}
	if len(g.Geometry().Positions()) != 15000 || len(g.Geometry().Colors()) != 15000 {
		t.Errorf("unexpected buffer lengths")
	}
	if g.Scene().Len() != 1 {
		t.Errorf("expected one scene object, got %d", g.Scene().Len())
	}
	if g.Material().Size != 0.3 || g.Material().DepthWrite {
		t.Errorf("unexpected material %+v", g.Material())
	}
	if g.Camera().Position.Z() != 3 {
		t.Errorf("expected camera at z=3, got %v", g.Camera().Position)
	}
	if !g.Controls().EnableDamping {
		t.Error("damping should be enabled by default")
	}
	if g.RunID() == "" {
		t.Error("run id should be set")
	}
}

func TestNewGame_CountOverride(t *testing.T) {
	g, _ := newTestGame(t, Options{Count: 16}, nil)
	if g.Geometry().Count() != 16 {
		t.Errorf("expected 16 particles, got %d", g.Geometry().Count())
	}
}

func TestNewGame_BackendInitError(t *testing.T) {
	b := &recordingBackend{initErr: errors.New("no gpu")}
	_, err := NewGameWithOptions(Options{Headless: true}, b)
	if err == nil || !strings.Contains(err.Error(), "no gpu") {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
}

func TestTick_StepOrder(t *testing.T) {
	b := &recordingBackend{}
	g, _ := newTestGame(t, Options{Count: 8}, b)

	g.Tick()
	g.Tick()

	want := []string{"init", "begin", "draw", "end", "begin", "draw", "end"}
	if strings.Join(b.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", b.calls, want)
	}
	if g.TickCount() != 2 {
		t.Errorf("expected 2 ticks, got %d", g.TickCount())
	}
}

func TestTick_DrawSeesCurrentFrame(t *testing.T) {
	b := &recordingBackend{}
	g, ft := newTestGame(t, Options{Count: 32}, b)

	ft.advance(math.Pi / 2)
	g.Tick()

	if math.Abs(g.Elapsed()-math.Pi/2) > 1e-6 {
		t.Errorf("expected elapsed pi/2, got %f", g.Elapsed())
	}

	pos := g.Geometry().Attribute(particles.AttrPosition)
	if b.drawnVersion != pos.Version || pos.Version != 1 {
		t.Errorf("draw saw version %d, attribute at %d", b.drawnVersion, pos.Version)
	}

	xs := g.Geometry().Positions()
	for i, y := range b.drawnY {
		want := float32(math.Sin(g.Elapsed() + float64(xs[i*3])))
		if y != want {
			t.Fatalf("particle %d: drawn y=%f, want %f", i, y, want)
		}
	}
}

func TestTick_VersionBumpsEveryFrame(t *testing.T) {
	g, ft := newTestGame(t, Options{Count: 4}, nil)

	for i := 1; i <= 5; i++ {
		ft.advance(1.0 / 60)
		g.Tick()
		if v := g.Geometry().Attribute(particles.AttrPosition).Version; v != uint32(i) {
			t.Errorf("frame %d: position version %d", i, v)
		}
		if math.Abs(g.delta-1.0/60) > 1e-6 {
			t.Errorf("frame %d: delta %f, want 1/60", i, g.delta)
		}
	}
	if v := g.Geometry().Attribute(particles.AttrColor).Version; v != 0 {
		t.Errorf("colors should never be flagged, version %d", v)
	}
}

func TestTick_AutoRotateMovesCamera(t *testing.T) {
	g, _ := newTestGame(t, Options{Count: 4}, nil)
	g.Controls().AutoRotate = true

	before := g.Camera().Position
	g.Tick()
	if g.Camera().Position == before {
		t.Error("camera should move with auto-rotate on")
	}
}

func TestHeadlessBackend_MirrorsGeometry(t *testing.T) {
	g, _ := newTestGame(t, Options{Count: 10}, nil)

	g.Tick()
	g.Tick()

	hb := g.backend.(*headlessBackend)
	if hb.frames != 2 {
		t.Errorf("expected 2 frames, got %d", hb.frames)
	}
	if hb.batches.Len() != 1 {
		t.Fatalf("expected 1 batch, got %d", hb.batches.Len())
	}
	bt := hb.batches.Get(g.points)
	if len(bt.Vertices) != 10 {
		t.Fatalf("expected 10 mirrored vertices")
	}
	// First frame uploads both attributes, second only positions
	if bt.Uploads != 3 {
		t.Errorf("expected 3 uploads, got %d", bt.Uploads)
	}
}

func TestHeadlessBackend_DropsRemovedPoints(t *testing.T) {
	g, _ := newTestGame(t, Options{Count: 10}, nil)
	hb := g.backend.(*headlessBackend)

	g.Tick()
	if hb.batches.Len() != 1 {
		t.Fatalf("expected 1 batch, got %d", hb.batches.Len())
	}

	g.Scene().Remove(g.points)
	g.Tick()
	if hb.batches.Len() != 0 {
		t.Errorf("batch should be dropped after the points left the scene, %d left", hb.batches.Len())
	}
}

func TestRun_MaxTicks(t *testing.T) {
	b := &recordingBackend{}
	g, _ := newTestGame(t, Options{Count: 4, MaxTicks: 5}, b)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.TickCount() != 5 || b.frames != 5 {
		t.Errorf("expected 5 ticks and frames, got %d and %d", g.TickCount(), b.frames)
	}
}

func TestRun_StopsWhenBackendCloses(t *testing.T) {
	b := &recordingBackend{closeAfter: 3}
	g, _ := newTestGame(t, Options{Count: 4}, b)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.TickCount() != 3 {
		t.Errorf("expected 3 ticks, got %d", g.TickCount())
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	g, _ := newTestGame(t, Options{Count: 4}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if g.TickCount() != 0 {
		t.Errorf("no tick should run after cancel, got %d", g.TickCount())
	}
}

func TestUnload_ReleasesBackend(t *testing.T) {
	b := &recordingBackend{}
	g, err := NewGameWithOptions(Options{Headless: true, Count: 4}, b)
	if err != nil {
		t.Fatal(err)
	}
	g.Unload()
	if b.calls[len(b.calls)-1] != "unload" {
		t.Errorf("expected unload call, got %v", b.calls)
	}
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	g, ft := newTestGame(t, Options{Count: 4, OutputDir: dir}, nil)

	interval := config.Cfg().Telemetry.LogIntervalSec
	for i := 0; i < 3; i++ {
		ft.advance(interval)
		g.Tick()
	}
	g.Unload()

	for _, name := range []string{"config.yaml", "run.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var rows []telemetry.PerfStatsCSV
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing perf.csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 perf rows, got %d", len(rows))
	}
	if rows[2].Tick != 3 {
		t.Errorf("last row tick = %d, want 3", rows[2].Tick)
	}
}
