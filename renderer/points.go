// Package renderer draws the particle field with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefield/camera"
	"github.com/pthm-cable/wavefield/material"
	"github.com/pthm-cable/wavefield/renderer/batch"
	"github.com/pthm-cable/wavefield/scene"
)

// drawPoints draws one point set as camera-facing billboards.
func (r *Renderer) drawPoints(cam *camera.Perspective, viewportH float32, tr *scene.Transform, mat *material.PointsMaterial, b *batch.Batch) {
	if len(b.Vertices) == 0 {
		return
	}

	tex := r.textureFor(mat)
	rlCam := toRaylib(cam)

	// State changes apply to everything queued, so flush first
	rl.DrawRenderBatchActive()
	if mat.Blending == material.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
	} else {
		rl.BeginBlendMode(rl.BlendAlpha)
	}
	if !mat.DepthWrite {
		rl.DisableDepthMask()
	}

	tint := rl.White
	for i := range b.Vertices {
		v := &b.Vertices[i]
		world := tr.Apply(v.Position.X(), v.Position.Y(), v.Position.Z())

		depth := cam.DepthOf(world)
		if depth < cam.Near || depth > cam.Far {
			continue
		}
		size := camera.PointWorldSize(mat.Size, mat.SizeAttenuation, depth, cam.Fovy, viewportH)
		if size <= 0 {
			continue
		}

		if mat.VertexColors {
			tint = v.Color
		}
		rl.DrawBillboard(rlCam, tex, rl.NewVector3(world.X(), world.Y(), world.Z()), size, tint)
	}

	rl.DrawRenderBatchActive()
	if !mat.DepthWrite {
		rl.EnableDepthMask()
	}
	rl.EndBlendMode()
}
