package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefield/camera"
	"github.com/pthm-cable/wavefield/material"
)

// DebugResult reports what the user changed in the debug panel this frame.
type DebugResult struct {
	Changed     bool
	ResetCamera bool
}

// DebugPanel edits the point material and orbit controls at runtime.
type DebugPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewDebugPanel creates a hidden debug panel.
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   340,
	}
}

// SetPosition updates the panel position.
func (d *DebugPanel) SetPosition(x, y int32) {
	d.x = x
	d.y = y
}

// Toggle switches panel visibility.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// Contains reports whether a screen point is over the visible panel, so
// mouse input there is not also sent to the camera.
func (d *DebugPanel) Contains(px, py float32) bool {
	if !d.visible {
		return false
	}
	return px >= float32(d.x) && px < float32(d.x+d.width) &&
		py >= float32(d.y) && py < float32(d.y+d.height)
}

// Draw renders the panel and applies edits to mat and ctl.
func (d *DebugPanel) Draw(mat *material.PointsMaterial, ctl *camera.OrbitControls) DebugResult {
	var res DebugResult
	if !d.visible {
		return res
	}

	r := d.renderer
	pad := r.Theme.Padding
	r.DrawPanel(d.x, d.y, d.width, d.height)

	x := float32(d.x + pad)
	y := r.DrawSectionHeader(d.x+pad, d.y+pad, "Material")
	w := float32(d.width - pad*2)

	// Size
	r.DrawLabel(int32(x), y, fmt.Sprintf("Size %.3f", mat.Size))
	y += r.Theme.LineHeight
	size := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w - 60, Height: 16}, "", "", mat.Size, 0.01, 2)
	if size != mat.Size {
		mat.Size = size
		res.Changed = true
	}
	y += 24

	check := func(label string, v *bool) {
		nv := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 14, Height: 14}, label, *v)
		if nv != *v {
			*v = nv
			res.Changed = true
		}
		y += 20
	}

	check("Size attenuation", &mat.SizeAttenuation)
	check("Transparent", &mat.Transparent)
	check("Depth write", &mat.DepthWrite)
	check("Vertex colors", &mat.VertexColors)

	additive := mat.Blending == material.BlendAdditive
	check("Additive blending", &additive)
	if additive {
		mat.Blending = material.BlendAdditive
	} else {
		mat.Blending = material.BlendNormal
	}

	y = r.DrawSpacer(y, 6)
	y = r.DrawSectionHeader(d.x+pad, y, "Controls")

	check("Damping", &ctl.EnableDamping)
	r.DrawLabel(int32(x), y, fmt.Sprintf("Damping factor %.3f", ctl.DampingFactor))
	y += r.Theme.LineHeight
	ctl.DampingFactor = gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w - 60, Height: 16}, "", "", ctl.DampingFactor, 0.01, 0.5)
	y += 24

	check("Auto-rotate", &ctl.AutoRotate)
	r.DrawLabel(int32(x), y, fmt.Sprintf("Auto-rotate speed %.2f", ctl.AutoRotateSpeed))
	y += r.Theme.LineHeight
	ctl.AutoRotateSpeed = gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w - 60, Height: 16}, "", "", ctl.AutoRotateSpeed, -10, 10)
	y += 26

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: 120, Height: 24}, "Reset camera") {
		res.ResetCamera = true
	}
	y += 32

	d.height = y - d.y
	return res
}
