package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefield/camera"
	"github.com/pthm-cable/wavefield/renderer/batch"
	"github.com/pthm-cable/wavefield/scene"
)

// Backend draws frames. EndFrame returns when the next frame may start.
type Backend interface {
	Init(s *scene.Scene) error
	BeginFrame()
	DrawScene(s *scene.Scene, cam *camera.Perspective)
	EndFrame()
	ShouldClose() bool
	Unload()
}

// headlessBackend mirrors geometry like a real backend but draws nothing.
type headlessBackend struct {
	batches *batch.Cache
	frames  int
}

func newHeadlessBackend() *headlessBackend {
	return &headlessBackend{batches: batch.NewCache()}
}

func (b *headlessBackend) Init(*scene.Scene) error { return nil }

func (b *headlessBackend) BeginFrame() {}

func (b *headlessBackend) DrawScene(s *scene.Scene, _ *camera.Perspective) {
	s.EachPoints(func(e ecs.Entity, _ *scene.Transform, pts *scene.Points) {
		b.batches.Get(e).Sync(pts.Geometry)
	})
	b.batches.Sweep()
}

func (b *headlessBackend) EndFrame() { b.frames++ }

func (b *headlessBackend) ShouldClose() bool { return false }

func (b *headlessBackend) Unload() {
	b.batches.Reset()
}
