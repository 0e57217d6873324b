package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.controls.AutoRotate = !g.controls.AutoRotate
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.controls.Reset()
	}
	// S makes the current view the one R returns to
	if rl.IsKeyPressed(rl.KeyS) {
		g.controls.SaveState()
		g.logger.Info("camera view saved", "position", g.camera.Position, "target", g.camera.Target)
	}

	if rl.IsKeyPressed(rl.KeyD) && g.debug != nil {
		g.logger.Debug("debug panel toggled", "visible", g.debug.Toggle())
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	g.handleResize()
	g.handleCameraInput()
}

// handleResize keeps UI anchored to the right edge.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() || g.perfPanel == nil {
		return
	}
	g.perfPanel.SetPosition(int32(rl.GetScreenWidth())-270, 10)
}

// handleCameraInput feeds mouse drags and the wheel to the orbit controls.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	if g.debug != nil && g.debug.Contains(mouse.X, mouse.Y) {
		return
	}

	viewportH := float32(rl.GetScreenHeight())
	delta := rl.GetMouseDelta()

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.controls.Rotate(delta.X, delta.Y, viewportH)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		g.controls.Pan(delta.X, delta.Y, viewportH)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.controls.Zoom(wheel)
	}
}
