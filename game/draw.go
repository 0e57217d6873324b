package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefield/ui"
)

const controlsLegend = "Drag: orbit | Right-drag: pan | Wheel: zoom | SPACE: auto-rotate | R: reset | S: save view | D: debug | P: perf"

// drawUI draws the HUD and panels over the scene.
func (g *Game) drawUI() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	count := 0
	if pts := g.scene.Points(g.points); pts != nil {
		count = pts.Geometry.Count()
	}

	g.hud.Draw(ui.HUDData{
		Title:        g.cfg.Screen.Title,
		Count:        count,
		Tick:         g.tick,
		Elapsed:      g.elapsed,
		DeltaMs:      g.delta * 1000,
		FPS:          rl.GetFPS(),
		Blending:     g.material.Blending.String(),
		AutoRotate:   g.controls.AutoRotate,
		Distance:     g.camera.Distance(),
		ScreenWidth:  w,
		ScreenHeight: h,
	})
	g.hud.DrawControls(w, h, controlsLegend)

	if g.showPerf {
		g.perfPanel.Draw(g.perf.Stats())
	}

	res := g.debug.Draw(g.material, g.controls)
	if res.ResetCamera {
		g.controls.Reset()
	}
	if res.Changed {
		g.logger.Debug("material changed",
			"size", g.material.Size,
			"blending", g.material.Blending.String(),
			"depth_write", g.material.DepthWrite,
		)
	}
}
