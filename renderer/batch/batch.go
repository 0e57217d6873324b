// Package batch mirrors geometry attributes into draw-ready vertices.
package batch

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/wavefield/particles"
)

// Vertex is one uploaded point.
type Vertex struct {
	Position mgl32.Vec3
	Color    color.RGBA
}

// Batch holds the last uploaded copy of a geometry. It only copies an
// attribute again after the attribute's Version changes, so a geometry
// mutated without MarkNeedsUpdate keeps drawing its previous contents.
type Batch struct {
	Vertices []Vertex

	posVersion uint32
	colVersion uint32
	synced     bool

	// Uploads counts attribute copies, for diagnostics.
	Uploads int
}

// New creates an empty batch.
func New() *Batch {
	return &Batch{}
}

// Sync uploads the position and color attributes that changed since the
// previous call. It returns true when anything was copied.
func (b *Batch) Sync(geom *particles.Geometry) bool {
	pos := geom.Attribute(particles.AttrPosition)
	col := geom.Attribute(particles.AttrColor)
	n := geom.Count()

	resized := len(b.Vertices) != n
	if resized {
		b.Vertices = make([]Vertex, n)
	}

	uploaded := false
	if !b.synced || resized || pos.Version != b.posVersion {
		for i := range b.Vertices {
			i3 := i * particles.ItemSize
			b.Vertices[i].Position = mgl32.Vec3{pos.Array[i3], pos.Array[i3+1], pos.Array[i3+2]}
		}
		b.posVersion = pos.Version
		b.Uploads++
		uploaded = true
	}
	if !b.synced || resized || col.Version != b.colVersion {
		for i := range b.Vertices {
			i3 := i * particles.ItemSize
			b.Vertices[i].Color = color.RGBA{
				R: unit8(col.Array[i3]),
				G: unit8(col.Array[i3+1]),
				B: unit8(col.Array[i3+2]),
				A: 255,
			}
		}
		b.colVersion = col.Version
		b.Uploads++
		uploaded = true
	}

	b.synced = true
	return uploaded
}

// unit8 maps [0, 1] to [0, 255], clamping out-of-range input.
func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
