package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Minimum change that counts as camera movement.
const moveEpsilon = 1e-6

// Polar angle is kept this far from the poles so the up vector stays valid.
const polarEpsilon = 1e-6

// OrbitControls rotates, zooms and pans a camera around its target.
// Input methods only queue deltas; Advance applies them.
type OrbitControls struct {
	cam *Perspective

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	MinDistance, MaxDistance float32
	MinPolar, MaxPolar       float32

	AutoRotate      bool
	AutoRotateSpeed float32 // 2.0 = one orbit per 30s at 60 fps

	// Pending input
	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  mgl32.Vec3

	// Initial state for Reset
	position0, target0 mgl32.Vec3
}

// NewOrbitControls attaches controls to cam.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		cam:             cam,
		EnableDamping:   false,
		DampingFactor:   0.05,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		PanSpeed:        1,
		MinDistance:     0,
		MaxDistance:     float32(math.Inf(1)),
		MinPolar:        0,
		MaxPolar:        math.Pi,
		AutoRotateSpeed: 2,
		scale:           1,
		position0:       cam.Position,
		target0:         cam.Target,
	}
}

// Camera returns the controlled camera.
func (o *OrbitControls) Camera() *Perspective {
	return o.cam
}

// Rotate queues a rotation from a pointer drag of (dx, dy) pixels on a
// viewport of the given height.
func (o *OrbitControls) Rotate(dx, dy, viewportH float32) {
	if viewportH <= 0 {
		return
	}
	o.deltaTheta -= 2 * math.Pi * dx / viewportH * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / viewportH * o.RotateSpeed
}

// Zoom queues a dolly step. Positive wheel moves closer.
func (o *OrbitControls) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	step := float32(math.Pow(0.95, float64(o.ZoomSpeed*absf(wheel))))
	if wheel > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// Pan queues a target translation from a drag of (dx, dy) pixels, scaled so
// the point under the cursor follows it at the target's depth.
func (o *OrbitControls) Pan(dx, dy, viewportH float32) {
	if viewportH <= 0 {
		return
	}
	halfFov := mgl32.DegToRad(o.cam.Fovy) / 2
	targetDist := o.cam.Distance() * float32(math.Tan(float64(halfFov)))

	left := 2 * dx * targetDist / viewportH * o.PanSpeed
	up := 2 * dy * targetDist / viewportH * o.PanSpeed

	o.panOffset = o.panOffset.
		Sub(o.cam.Right().Mul(left)).
		Add(o.cam.ScreenUp().Mul(up))
}

// Advance applies one step of the queued input and returns whether the
// camera moved. With damping enabled the queued deltas decay by
// (1 - DampingFactor) per step instead of being consumed at once, so call
// it every frame.
func (o *OrbitControls) Advance() bool {
	cam := o.cam
	offset := cam.Offset()

	radius, theta, phi := toSpherical(offset)

	if o.AutoRotate {
		o.deltaTheta -= 2 * math.Pi / 60 / 60 * o.AutoRotateSpeed
	}

	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}

	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor

	minPolar := maxf(o.MinPolar, polarEpsilon)
	maxPolar := minf(o.MaxPolar, math.Pi-polarEpsilon)
	phi = mgl32.Clamp(phi, minPolar, maxPolar)

	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	prevPos := cam.Position
	prevTarget := cam.Target

	cam.Target = cam.Target.Add(o.panOffset.Mul(factor))
	cam.Position = cam.Target.Add(fromSpherical(radius, theta, phi))

	if o.EnableDamping {
		keep := 1 - o.DampingFactor
		o.deltaTheta *= keep
		o.deltaPhi *= keep
		o.panOffset = o.panOffset.Mul(keep)
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
		o.panOffset = mgl32.Vec3{}
	}
	o.scale = 1

	return cam.Position.Sub(prevPos).Len() > moveEpsilon ||
		cam.Target.Sub(prevTarget).Len() > moveEpsilon
}

// Reset returns the camera to its initial position and drops queued input.
func (o *OrbitControls) Reset() {
	o.cam.Position = o.position0
	o.cam.Target = o.target0
	o.deltaTheta = 0
	o.deltaPhi = 0
	o.scale = 1
	o.panOffset = mgl32.Vec3{}
}

// SaveState records the current camera as the Reset target.
func (o *OrbitControls) SaveState() {
	o.position0 = o.cam.Position
	o.target0 = o.cam.Target
}

// toSpherical converts a +Y-up offset to (radius, azimuth around Y from +Z,
// polar angle from +Y).
func toSpherical(v mgl32.Vec3) (radius, theta, phi float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = float32(math.Atan2(float64(v.X()), float64(v.Z())))
	phi = float32(math.Acos(float64(mgl32.Clamp(v.Y()/radius, -1, 1))))
	return radius, theta, phi
}

// fromSpherical is the inverse of toSpherical.
func fromSpherical(radius, theta, phi float32) mgl32.Vec3 {
	sinPhi := float32(math.Sin(float64(phi)))
	return mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
