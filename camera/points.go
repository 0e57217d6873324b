package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PointWorldSize returns the world-space edge length of a point sprite at the
// given view depth. With attenuation the size is in world units and the
// sprite shrinks with distance; without it the size is in pixels and stays
// constant on screen. Points at or behind the eye get 0.
func PointWorldSize(size float32, attenuate bool, depth, fovy, viewportH float32) float32 {
	if depth <= 0 || viewportH <= 0 {
		return 0
	}
	halfTan := float32(math.Tan(float64(mgl32.DegToRad(fovy) / 2)))
	if attenuate {
		return size * halfTan
	}
	return size * 2 * depth * halfTan / viewportH
}
