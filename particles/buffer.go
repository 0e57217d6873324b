// Package particles holds the flat per-particle buffers and the wave animator.
package particles

import "math/rand"

// Attribute names consumed by the renderer.
const (
	AttrPosition = "position"
	AttrColor    = "color"
)

// ItemSize is the number of components per particle in every attribute.
const ItemSize = 3

// DefaultSpread is the edge length of the cube particles are spawned in.
const DefaultSpread = 10.0

// Attribute is a flat component array with ItemSize components per particle.
// Element i*3+k is component k of particle i.
type Attribute struct {
	Array    []float32
	ItemSize int

	// Version is bumped by MarkNeedsUpdate. The renderer re-uploads the
	// attribute whenever it differs from the version it last saw.
	Version uint32
}

// NewAttribute wraps an existing array as an attribute.
func NewAttribute(array []float32, itemSize int) *Attribute {
	return &Attribute{Array: array, ItemSize: itemSize}
}

// Count returns the number of items in the attribute.
func (a *Attribute) Count() int {
	if a.ItemSize == 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

// MarkNeedsUpdate flags the attribute for re-upload before the next draw.
func (a *Attribute) MarkNeedsUpdate() {
	a.Version++
}

// Geometry is a fixed-size point set with position and color attributes.
type Geometry struct {
	attributes map[string]*Attribute
	count      int
}

// New allocates a geometry of count particles. Positions are uniform in
// [-spread/2, spread/2) and colors uniform in [0, 1), drawn from rng in a
// single pass (position component, then color component). A negative count
// is treated as zero.
func New(count int, rng *rand.Rand) *Geometry {
	return NewWithSpread(count, DefaultSpread, rng)
}

// NewWithSpread is like New with a custom cube edge length.
func NewWithSpread(count int, spread float64, rng *rand.Rand) *Geometry {
	if count < 0 {
		count = 0
	}

	positions := make([]float32, count*ItemSize)
	colors := make([]float32, count*ItemSize)

	s := float32(spread)
	for i := range positions {
		positions[i] = (rng.Float32() - 0.5) * s
		colors[i] = rng.Float32()
	}

	return &Geometry{
		attributes: map[string]*Attribute{
			AttrPosition: NewAttribute(positions, ItemSize),
			AttrColor:    NewAttribute(colors, ItemSize),
		},
		count: count,
	}
}

// Count returns the number of particles.
func (g *Geometry) Count() int {
	return g.count
}

// Attribute returns the named attribute, or nil when absent.
func (g *Geometry) Attribute(name string) *Attribute {
	return g.attributes[name]
}

// Positions returns the flat position buffer.
func (g *Geometry) Positions() []float32 {
	return g.attributes[AttrPosition].Array
}

// Colors returns the flat color buffer.
func (g *Geometry) Colors() []float32 {
	return g.attributes[AttrColor].Array
}
