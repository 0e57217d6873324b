// Package camera provides a perspective camera and damped orbit controls.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective is a look-at perspective camera.
type Perspective struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Vertical field of view in degrees
	Fovy float32

	// Clip planes
	Near, Far float32
}

// NewPerspective creates a camera at position looking at target with +Y up.
func NewPerspective(fovy, near, far float32, position, target mgl32.Vec3) *Perspective {
	return &Perspective{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     fovy,
		Near:     near,
		Far:      far,
	}
}

// Default returns the camera used by the particle field: 75 degree fov,
// 3 units back on +Z, looking at the origin.
func Default() *Perspective {
	return NewPerspective(75, 0.1, 100, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{})
}

// Offset returns Position - Target.
func (c *Perspective) Offset() mgl32.Vec3 {
	return c.Position.Sub(c.Target)
}

// Distance returns the distance from the camera to its target.
func (c *Perspective) Distance() float32 {
	return c.Offset().Len()
}

// Forward returns the unit view direction.
func (c *Perspective) Forward() mgl32.Vec3 {
	f := c.Target.Sub(c.Position)
	if f.Len() < 1e-9 {
		return mgl32.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// Right returns the unit screen-right direction.
func (c *Perspective) Right() mgl32.Vec3 {
	r := c.Forward().Cross(c.Up)
	if r.Len() < 1e-9 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// ScreenUp returns the unit screen-up direction.
func (c *Perspective) ScreenUp() mgl32.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the projection matrix for the given aspect ratio.
func (c *Perspective) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// DepthOf returns the view-space depth (distance along the view direction)
// of a world point. Negative values are behind the camera.
func (c *Perspective) DepthOf(p mgl32.Vec3) float32 {
	return p.Sub(c.Position).Dot(c.Forward())
}
