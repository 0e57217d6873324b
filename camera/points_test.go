package camera

import (
	"math"
	"testing"
)

func TestPointWorldSize_Attenuated(t *testing.T) {
	// fov 90: tan(45) = 1, so a size-0.3 point is 0.3 units at any depth
	for _, depth := range []float32{0.5, 3, 50} {
		if got := PointWorldSize(0.3, true, depth, 90, 800); !near(got, 0.3, 1e-6) {
			t.Errorf("depth %f: expected 0.3, got %f", depth, got)
		}
	}
}

func TestPointWorldSize_ConstantPixels(t *testing.T) {
	// Without attenuation the sprite covers `size` pixels: world size grows
	// linearly with depth
	a := PointWorldSize(4, false, 1, 90, 800)
	b := PointWorldSize(4, false, 2, 90, 800)
	if !near(b, 2*a, 1e-6) {
		t.Errorf("expected linear growth with depth, got %f then %f", a, b)
	}

	// 4 px of an 800 px viewport spanning 2 units at depth 1
	if !near(a, 0.01, 1e-6) {
		t.Errorf("expected 0.01 world units, got %f", a)
	}
}

func TestPointWorldSize_BehindCamera(t *testing.T) {
	if got := PointWorldSize(1, true, -1, 75, 800); got != 0 {
		t.Errorf("expected 0 behind camera, got %f", got)
	}
	if got := PointWorldSize(1, false, 1, 75, 0); got != 0 {
		t.Errorf("expected 0 for empty viewport, got %f", got)
	}
}

func TestPointWorldSize_DefaultFov(t *testing.T) {
	want := 0.3 * math.Tan(75*math.Pi/360)
	if got := PointWorldSize(0.3, true, 3, 75, 800); !near(got, float32(want), 1e-6) {
		t.Errorf("expected %f, got %f", want, got)
	}
}
