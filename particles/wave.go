package particles

import "math"

// Animate rewrites the y component of every particle to sin(t + x), where x
// is the particle's own x component. x, z and all other data are left alone,
// so repeated calls with the same t are idempotent. len(positions) must be a
// multiple of ItemSize; a trailing partial item is ignored.
func Animate(t float64, positions []float32) {
	n := len(positions) / ItemSize
	for i := 0; i < n; i++ {
		i3 := i * ItemSize
		x := positions[i3]
		positions[i3+1] = float32(math.Sin(t + float64(x)))
	}
}

// Animate runs the wave sweep over the geometry's positions and flags the
// position attribute for upload.
func (g *Geometry) Animate(t float64) {
	pos := g.attributes[AttrPosition]
	Animate(t, pos.Array)
	pos.MarkNeedsUpdate()
}
