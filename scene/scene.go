// Package scene stores the drawable objects of the particle field.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefield/material"
	"github.com/pthm-cable/wavefield/particles"
)

// Transform places an object in the world.
type Transform struct {
	Position  mgl32.Vec3
	RotationY float32 // radians
}

// Apply maps a local point to world space.
func (t *Transform) Apply(x, y, z float32) mgl32.Vec3 {
	if t.RotationY != 0 {
		s, c := math.Sincos(float64(t.RotationY))
		sn, cs := float32(s), float32(c)
		x, z = x*cs+z*sn, -x*sn+z*cs
	}
	return mgl32.Vec3{x + t.Position[0], y + t.Position[1], z + t.Position[2]}
}

// Points is a point-set object: a geometry drawn with a material.
type Points struct {
	Geometry *particles.Geometry
	Material *material.PointsMaterial
}

// Scene is the world of drawable objects.
type Scene struct {
	world *ecs.World

	pointsMapper *ecs.Map2[Transform, Points]
	pointsFilter *ecs.Filter2[Transform, Points]
	pointsMap    *ecs.Map[Points]
	transformMap *ecs.Map[Transform]

	count int
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:        world,
		pointsMapper: ecs.NewMap2[Transform, Points](world),
		pointsFilter: ecs.NewFilter2[Transform, Points](world),
		pointsMap:    ecs.NewMap[Points](world),
		transformMap: ecs.NewMap[Transform](world),
	}
}

// AddPoints adds a point set at the origin and returns its entity.
func (s *Scene) AddPoints(geom *particles.Geometry, mat *material.PointsMaterial) ecs.Entity {
	tr := Transform{}
	pts := Points{Geometry: geom, Material: mat}
	e := s.pointsMapper.NewEntity(&tr, &pts)
	s.count++
	return e
}

// Remove deletes an object. Unknown or already removed entities are ignored.
func (s *Scene) Remove(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.world.RemoveEntity(e)
	s.count--
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return s.count
}

// Points returns the point set of e, or nil when e has none.
func (s *Scene) Points(e ecs.Entity) *Points {
	if !s.world.Alive(e) || !s.pointsMap.Has(e) {
		return nil
	}
	return s.pointsMap.Get(e)
}

// Transform returns the transform of e, or nil when e has none.
func (s *Scene) Transform(e ecs.Entity) *Transform {
	if !s.world.Alive(e) || !s.transformMap.Has(e) {
		return nil
	}
	return s.transformMap.Get(e)
}

// EachPoints calls fn for every point set in the scene.
func (s *Scene) EachPoints(fn func(e ecs.Entity, tr *Transform, pts *Points)) {
	query := s.pointsFilter.Query()
	for query.Next() {
		tr, pts := query.Get()
		fn(query.Entity(), tr, pts)
	}
}
