package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Count        int
	Tick         int64
	Elapsed      float64
	DeltaMs      float64
	FPS          int32
	Blending     string
	AutoRotate   bool
	Distance     float32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Blending: %s | Distance: %.2f", data.Count, data.Blending, data.Distance),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | t: %.2fs | dt: %.1fms | FPS: %d", data.Tick, data.Elapsed, data.DeltaMs, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.AutoRotate {
		rl.DrawText("Auto-rotate", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    260,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	lines := int32(len(telemetry.Phases) + 5)
	r.DrawPanel(p.x, p.y, p.width, lines*r.Theme.LineHeight+pad*2)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Frame Performance")

	y = r.DrawLabelValue(x, y, "Tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Frame p95", fmt.Sprintf("%.2f ms", stats.Frames.P95Ms))
	y = r.DrawLabelValue(x, y, "Frame p99", fmt.Sprintf("%.2f ms", stats.Frames.P99Ms))
	y = r.DrawSpacer(y, 4)

	for _, phase := range telemetry.Phases {
		y = r.DrawBar(x, y, phase.String(), float32(stats.PhasePct[phase]/100), 0.5, p.width-pad*2)
	}
}
