package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefield/material"
	"github.com/pthm-cable/wavefield/particles"
)

func TestAddAndIterate(t *testing.T) {
	s := New()
	geom := particles.New(10, rand.New(rand.NewSource(1)))
	mat := material.Default()

	e := s.AddPoints(geom, mat)
	if s.Len() != 1 {
		t.Fatalf("expected 1 object, got %d", s.Len())
	}

	visited := 0
	s.EachPoints(func(got ecs.Entity, tr *Transform, pts *Points) {
		visited++
		if got != e {
			t.Errorf("unexpected entity %v", got)
		}
		if pts.Geometry != geom || pts.Material != mat {
			t.Error("points component does not hold the added geometry/material")
		}
		if tr.Position != (mgl32.Vec3{}) {
			t.Errorf("expected origin transform, got %v", tr.Position)
		}
	})
	if visited != 1 {
		t.Errorf("expected 1 visit, got %d", visited)
	}
}

func TestLookup(t *testing.T) {
	s := New()
	geom := particles.New(3, rand.New(rand.NewSource(1)))
	e := s.AddPoints(geom, material.Default())

	if p := s.Points(e); p == nil || p.Geometry != geom {
		t.Error("Points lookup failed")
	}
	tr := s.Transform(e)
	if tr == nil {
		t.Fatal("Transform lookup failed")
	}
	tr.Position = mgl32.Vec3{1, 2, 3}
	if s.Transform(e).Position != (mgl32.Vec3{1, 2, 3}) {
		t.Error("transform edits should persist in the scene")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	e := s.AddPoints(particles.New(1, rand.New(rand.NewSource(1))), material.Default())

	s.Remove(e)
	s.Remove(e)

	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d", s.Len())
	}
	if s.Points(e) != nil {
		t.Error("removed entity should have no points")
	}
	s.EachPoints(func(ecs.Entity, *Transform, *Points) {
		t.Error("no objects should be visited after removal")
	})
}

func TestTransformApply(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{1, 0, 0}}
	if p := tr.Apply(1, 2, 3); p != (mgl32.Vec3{2, 2, 3}) {
		t.Errorf("translation: got %v", p)
	}

	tr = Transform{RotationY: math.Pi / 2}
	p := tr.Apply(1, 0, 0)
	if p.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-6 {
		t.Errorf("quarter turn about Y should map +X to -Z, got %v", p)
	}
}
