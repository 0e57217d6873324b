// Package material describes how a point set is drawn.
package material

import (
	"fmt"

	"github.com/pthm-cable/wavefield/config"
)

// BlendMode selects how point colors combine with the framebuffer.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

// String returns the config name of the mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(b))
	}
}

// ParseBlendMode parses a config name.
func ParseBlendMode(s string) (BlendMode, error) {
	switch s {
	case "normal":
		return BlendNormal, nil
	case "additive":
		return BlendAdditive, nil
	}
	return BlendNormal, fmt.Errorf("unknown blend mode %q", s)
}

// PointsMaterial holds the render options for a point set.
type PointsMaterial struct {
	// Size is the point edge length in world units when SizeAttenuation is
	// on, in pixels otherwise.
	Size            float32
	SizeAttenuation bool
	Transparent     bool

	// AlphaMap is the path of the mask texture; empty means no mask.
	AlphaMap string

	DepthWrite   bool
	Blending     BlendMode
	VertexColors bool
}

// Default returns the additive star-particle material.
func Default() *PointsMaterial {
	return &PointsMaterial{
		Size:            0.3,
		SizeAttenuation: true,
		Transparent:     true,
		AlphaMap:        "textures/particles/1.png",
		DepthWrite:      false,
		Blending:        BlendAdditive,
		VertexColors:    true,
	}
}

// FromConfig builds a material from the material config section.
func FromConfig(c config.MaterialConfig) (*PointsMaterial, error) {
	blend, err := ParseBlendMode(c.Blending)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	return &PointsMaterial{
		Size:            float32(c.Size),
		SizeAttenuation: c.SizeAttenuation,
		Transparent:     c.Transparent,
		AlphaMap:        c.AlphaMap,
		DepthWrite:      c.DepthWrite,
		Blending:        blend,
		VertexColors:    c.VertexColors,
	}, nil
}

// HasAlphaMap reports whether a mask texture is configured.
func (m *PointsMaterial) HasAlphaMap() bool {
	return m.AlphaMap != ""
}

// Opaque reports whether the material draws without any blending: normal
// blending on a non-transparent material. Opaque materials ignore the
// alpha map.
func (m *PointsMaterial) Opaque() bool {
	return m.Blending == BlendNormal && !m.Transparent
}

// UsesAlphaMap reports whether the alpha map affects the drawn output.
func (m *PointsMaterial) UsesAlphaMap() bool {
	return m.HasAlphaMap() && !m.Opaque()
}
