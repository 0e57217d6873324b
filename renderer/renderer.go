package renderer

import (
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefield/camera"
	"github.com/pthm-cable/wavefield/material"
	"github.com/pthm-cable/wavefield/renderer/batch"
	"github.com/pthm-cable/wavefield/scene"
	"github.com/pthm-cable/wavefield/texture"
)

// Renderer draws a scene through raylib. All methods must be called on the
// thread that created the window, after rl.InitWindow.
type Renderer struct {
	background color.RGBA

	batches  *batch.Cache
	textures map[string]rl.Texture2D
	white    rl.Texture2D

	initialized bool
}

// New creates a renderer; GPU resources are created by Init.
func New() *Renderer {
	return &Renderer{
		background: rl.Black,
		batches:    batch.NewCache(),
		textures:   make(map[string]rl.Texture2D),
	}
}

// Init creates the fallback texture and loads the alpha map of every
// material already in the scene.
func (r *Renderer) Init(s *scene.Scene) error {
	if r.initialized {
		return nil
	}

	img := rl.NewImageFromImage(texture.Solid(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	r.white = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	r.initialized = true

	s.EachPoints(func(_ ecs.Entity, _ *scene.Transform, pts *scene.Points) {
		r.textureFor(pts.Material)
	})
	return nil
}

// BeginFrame starts a new frame and clears it.
func (r *Renderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(r.background)
}

// DrawScene draws every point set in the scene from the camera.
func (r *Renderer) DrawScene(s *scene.Scene, cam *camera.Perspective) {
	if !r.initialized {
		if err := r.Init(s); err != nil {
			slog.Error("renderer init failed, skipping frame", "error", err)
			return
		}
	}

	viewportH := float32(rl.GetScreenHeight())

	rl.BeginMode3D(toRaylib(cam))
	s.EachPoints(func(e ecs.Entity, tr *scene.Transform, pts *scene.Points) {
		b := r.batches.Get(e)
		b.Sync(pts.Geometry)
		r.drawPoints(cam, viewportH, tr, pts.Material, b)
	})
	rl.EndMode3D()

	if n := r.batches.Sweep(); n > 0 {
		slog.Debug("dropped batches for removed entities", "count", n)
	}
}

// EndFrame presents the frame. raylib waits here for the next display
// refresh (vsync or the target FPS).
func (r *Renderer) EndFrame() {
	rl.EndDrawing()
}

// ShouldClose reports whether the user asked to close the window.
func (r *Renderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// textureFor returns the sprite texture for a material, loading its alpha
// map on first use. A missing or broken mask falls back to the plain white
// texture, so points draw as unmasked squares.
func (r *Renderer) textureFor(mat *material.PointsMaterial) rl.Texture2D {
	if !mat.UsesAlphaMap() {
		return r.white
	}
	if tex, ok := r.textures[mat.AlphaMap]; ok {
		return tex
	}

	mask, err := texture.LoadAlphaMask(mat.AlphaMap)
	if err != nil {
		slog.Warn("alpha map unavailable, drawing without mask", "path", mat.AlphaMap, "error", err)
		r.textures[mat.AlphaMap] = r.white
		return r.white
	}

	img := rl.NewImageFromImage(mask)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	slog.Info("alpha map loaded", "path", mat.AlphaMap, "width", tex.Width, "height", tex.Height)
	r.textures[mat.AlphaMap] = tex
	return tex
}

// Unload frees GPU resources.
func (r *Renderer) Unload() {
	if !r.initialized {
		return
	}
	for path, tex := range r.textures {
		if tex.ID != r.white.ID {
			rl.UnloadTexture(tex)
		}
		delete(r.textures, path)
	}
	rl.UnloadTexture(r.white)
	r.batches.Reset()
	r.initialized = false
}

// toRaylib converts the camera into raylib's representation.
func toRaylib(cam *camera.Perspective) rl.Camera3D {
	return rl.NewCamera3D(
		rl.NewVector3(cam.Position.X(), cam.Position.Y(), cam.Position.Z()),
		rl.NewVector3(cam.Target.X(), cam.Target.Y(), cam.Target.Z()),
		rl.NewVector3(cam.Up.X(), cam.Up.Y(), cam.Up.Z()),
		cam.Fovy,
		rl.CameraPerspective,
	)
}
