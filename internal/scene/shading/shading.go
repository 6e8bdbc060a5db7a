// Package shading computes the draw colors of a face from its material,
// the scene lighting and the camera position.
package shading

import (
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/pkg/glow"
	"github.com/Faultbox/trackview/pkg/math"
)

const inv255 = 1.0 / 255.0

// nightDarkening is how much an untextured-at-night material dims at full
// night.
const nightDarkening = 0.7

// Environment is the per-frame lighting state.
type Environment struct {
	// LightingAmount is the ambient day light level, 1 at noon.
	LightingAmount float64
	// Lighting enables per-vertex normal lighting for faces without a
	// nighttime texture.
	Lighting  bool
	Wireframe bool
}

// Color is a linear RGBA color in [0,1].
type Color [4]float32

// Result is how a face is drawn this frame.
type Result struct {
	// Day colors the daytime (or only) pass.
	Day Color
	// Night colors the nighttime texture pass. Valid when HasNight is set.
	Night    Color
	HasNight bool
	// Emission is the emissive color, black when the material has none.
	Emission [3]float32
	Additive bool
	// Lit reports whether vertex normals take part in lighting.
	Lit bool
}

// NightBlend returns how far the material has crossed into its night look,
// in [0,1].
func NightBlend(m *object.Material, env Environment) float64 {
	return min(inv255*float64(m.DaytimeNighttimeBlend)+1-env.LightingAmount, 1)
}

// Shade evaluates a material. glowFactor is the attenuation for the face,
// 1 when the material does not glow.
func Shade(m *object.Material, glowFactor float64, env Environment) Result {
	factor := 1.0
	switch {
	case m.BlendMode == object.BlendAdditive:
	case m.NighttimeTexture == nil:
		factor = 1 - nightDarkening*NightBlend(m, env)
	}

	r := Result{
		Additive: m.BlendMode == object.BlendAdditive,
		HasNight: m.NighttimeTexture != nil,
		Lit:      m.NighttimeTexture == nil && env.Lighting,
	}

	base := Color{
		float32(inv255 * float64(m.Color.R) * factor),
		float32(inv255 * float64(m.Color.G) * factor),
		float32(inv255 * float64(m.Color.B) * factor),
	}
	alpha := inv255 * float64(m.Color.A)

	r.Day = base
	r.Day[3] = float32(alpha)
	if m.Glow.Enabled() {
		r.Day[3] = float32(alpha * glowFactor)
	}

	if r.HasNight {
		nightAlpha := NightBlend(m, env)
		if m.Glow.Enabled() {
			nightAlpha *= glowFactor
		}
		r.Night = base
		r.Night[3] = float32(alpha * nightAlpha)
	}

	if env.Wireframe {
		r.Day[3] = 1
		r.Night[3] = 1
	}

	if m.Emissive() {
		r.Emission = [3]float32{
			float32(inv255 * float64(m.EmissiveColor.R)),
			float32(inv255 * float64(m.EmissiveColor.G)),
			float32(inv255 * float64(m.EmissiveColor.B)),
		}
	}
	return r
}

// GlowFactor returns the attenuation of a face's material for a camera at
// eye, measured from the face's first vertex.
func GlowFactor(obj *object.Object, face int, m *object.Material, eye math.Vec3) float64 {
	if !m.Glow.Enabled() {
		return 1
	}
	f := &obj.Mesh.Faces[face]
	if len(f.Vertices) == 0 {
		return 1
	}
	return glow.PointFactor(m.Glow, obj.Mesh.VertexOf(f, 0).Position, eye)
}

// Face shades one face of an object.
func Face(obj *object.Object, face int, eye math.Vec3, env Environment) Result {
	m := obj.Mesh.MaterialOf(&obj.Mesh.Faces[face])
	return Shade(m, GlowFactor(obj, face, m, eye), env)
}
