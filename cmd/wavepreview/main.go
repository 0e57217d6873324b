// Wave preview tool - side view of the particle wave with sliders.
//
// Usage: go run ./cmd/wavepreview
package main

import (
	"fmt"
	"math"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefield/particles"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// PreviewParams holds the particle buffer parameters
type PreviewParams struct {
	Count  int
	Spread float32
	Seed   uint32
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Wave Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := PreviewParams{
		Count:  2000,
		Spread: particles.DefaultSpread,
		Seed:   12345,
	}

	geom := regenerate(params)

	var t float64
	animating := true

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
		}
		geom.Animate(t)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Side view: x across, y up
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
		drawSideView(geom, params.Spread)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minY, maxY := yRange(geom.Positions())
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min y: %.3f  Max y: %.3f  Particles: %d", minY, maxY, geom.Count()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.2f", t), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Particle Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		needsRegen := false

		rl.DrawText("Count", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "20000",
			float32(params.Count), 0, 20000,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Count), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != params.Count {
			params.Count = int(newCount)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Spread (cube edge)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSpread := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "20",
			params.Spread, 1, 20,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Spread), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSpread != params.Spread {
			params.Spread = newSpread
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Time", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newT := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "2pi",
			float32(math.Mod(t, 2*math.Pi)), 0, 2*math.Pi,
		)
		if !animating {
			t = float64(newT)
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = uint32(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 55

		if needsRegen {
			geom = regenerate(params)
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func regenerate(params PreviewParams) *particles.Geometry {
	rng := rand.New(rand.NewSource(int64(params.Seed)))
	return particles.NewWithSpread(params.Count, float64(params.Spread), rng)
}

func yamlLines(params PreviewParams) []string {
	return []string{
		"particles:",
		fmt.Sprintf("  count: %d", params.Count),
		fmt.Sprintf("  spread: %.1f", params.Spread),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func yRange(positions []float32) (float32, float32) {
	if len(positions) < 3 {
		return 0, 0
	}
	minY, maxY := positions[1], positions[1]
	for i := 4; i < len(positions); i += 3 {
		y := positions[i]
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return minY, maxY
}

// drawSideView plots every particle's (x, y) using its vertex color.
func drawSideView(geom *particles.Geometry, spread float32) {
	pos := geom.Positions()
	col := geom.Colors()
	half := spread / 2
	scale := float32(previewSize) / spread

	for i := 0; i+2 < len(pos); i += 3 {
		px := 10 + (pos[i]+half)*scale
		// y spans [-1, 1]; keep it centered regardless of spread
		py := 10 + previewSize/2 - pos[i+1]*previewSize/4
		c := rl.Color{R: uint8(col[i] * 255), G: uint8(col[i+1] * 255), B: uint8(col[i+2] * 255), A: 200}
		rl.DrawPixelV(rl.Vector2{X: px, Y: py}, c)
	}
}
