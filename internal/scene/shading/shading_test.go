package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/pkg/glow"
	"github.com/Faultbox/trackview/pkg/math"
)

const eps = 1e-6

var noon = Environment{LightingAmount: 1, Lighting: true}

func gray(a uint8) object.Material {
	return object.Material{Color: object.Color32{R: 255, G: 255, B: 255, A: a}}
}

func assertColor(t *testing.T, want, got Color) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestShadeNoonIsFullBright(t *testing.T) {
	m := gray(255)
	r := Shade(&m, 1, noon)

	assertColor(t, Color{1, 1, 1, 1}, r.Day)
	assert.False(t, r.HasNight)
	assert.True(t, r.Lit)
	assert.False(t, r.Additive)
	assert.Equal(t, [3]float32{}, r.Emission)
}

func TestShadeNightDarkensUntexturedNight(t *testing.T) {
	m := gray(255)
	r := Shade(&m, 1, Environment{LightingAmount: 0})
	assertColor(t, Color{0.3, 0.3, 0.3, 1}, r.Day)

	// Half light, no authored night blend.
	r = Shade(&m, 1, Environment{LightingAmount: 0.5})
	assertColor(t, Color{0.65, 0.65, 0.65, 1}, r.Day)

	// A fully night material is dark even at noon.
	m.DaytimeNighttimeBlend = 255
	r = Shade(&m, 1, noon)
	assertColor(t, Color{0.3, 0.3, 0.3, 1}, r.Day)
}

func TestShadeAdditiveIgnoresNight(t *testing.T) {
	m := gray(128)
	m.BlendMode = object.BlendAdditive
	r := Shade(&m, 1, Environment{LightingAmount: 0})

	assert.True(t, r.Additive)
	assertColor(t, Color{1, 1, 1, 128.0 / 255}, r.Day)
}

func TestShadeNighttimeTexture(t *testing.T) {
	m := gray(255)
	m.DaytimeTexture = &object.Texture{Path: "day.png"}
	m.NighttimeTexture = &object.Texture{Path: "night.png"}
	m.DaytimeNighttimeBlend = 51

	r := Shade(&m, 1, Environment{LightingAmount: 1, Lighting: true})
	require.True(t, r.HasNight)
	assert.False(t, r.Lit, "night textured faces are not lit")
	assertColor(t, Color{1, 1, 1, 1}, r.Day)
	assert.InDelta(t, 0.2, r.Night[3], eps)

	r = Shade(&m, 1, Environment{LightingAmount: 0})
	assert.InDelta(t, 1, r.Night[3], eps)
}

func TestShadeGlowScalesAlpha(t *testing.T) {
	m := gray(255)
	m.Glow = glow.Pack(10, glow.DivisionExponent2)
	r := Shade(&m, 0.5, noon)
	assert.InDelta(t, 0.5, r.Day[3], eps)

	m.NighttimeTexture = &object.Texture{}
	m.DaytimeNighttimeBlend = 255
	r = Shade(&m, 0.25, noon)
	assert.InDelta(t, 0.25, r.Day[3], eps)
	assert.InDelta(t, 0.25, r.Night[3], eps)
}

func TestShadeWireframeIsOpaque(t *testing.T) {
	m := gray(40)
	m.NighttimeTexture = &object.Texture{}
	m.Glow = glow.Pack(10, glow.DivisionExponent4)
	r := Shade(&m, 0.1, Environment{LightingAmount: 1, Wireframe: true})

	assert.Equal(t, float32(1), r.Day[3])
	assert.Equal(t, float32(1), r.Night[3])
}

func TestShadeEmission(t *testing.T) {
	m := gray(255)
	m.EmissiveColor = object.Color24{R: 255, G: 0, B: 51}
	r := Shade(&m, 1, noon)
	assert.Equal(t, [3]float32{}, r.Emission, "emission needs the material flag")

	m.Flags |= object.EmissiveColorMask
	r = Shade(&m, 1, noon)
	assert.InDelta(t, 1, r.Emission[0], eps)
	assert.InDelta(t, 0, r.Emission[1], eps)
	assert.InDelta(t, 0.2, r.Emission[2], eps)
}

func TestFaceUsesFirstVertexForGlow(t *testing.T) {
	m := gray(255)
	m.Glow = glow.Pack(10, glow.DivisionExponent2)
	obj := &object.Object{Mesh: object.Mesh{
		Vertices: []object.Vertex{
			{Position: math.Vec3{X: 10}},
			{Position: math.Vec3{X: 500}},
			{Position: math.Vec3{X: 500, Y: 1}},
		},
		Faces:     []object.Face{{Vertices: []object.FaceVertex{{Index: 0}, {Index: 1}, {Index: 2}}}},
		Materials: []object.Material{m},
	}}

	assert.InDelta(t, 0.5, GlowFactor(obj, 0, &m, math.Vec3{}), eps)
	r := Face(obj, 0, math.Vec3{}, noon)
	assert.InDelta(t, 0.5, r.Day[3], eps)
}

func TestGlowFactorWithoutGlow(t *testing.T) {
	m := gray(255)
	obj := &object.Object{Mesh: object.Mesh{Faces: []object.Face{{}}, Materials: []object.Material{m}}}
	assert.Equal(t, 1.0, GlowFactor(obj, 0, &m, math.Vec3{X: 1000}))

	m.Glow = glow.Pack(10, glow.DivisionExponent2)
	assert.Equal(t, 1.0, GlowFactor(obj, 0, &m, math.Vec3{}), "faces without vertices are unattenuated")
}

func TestNightBlendClamps(t *testing.T) {
	m := gray(255)
	m.DaytimeNighttimeBlend = 200
	assert.Equal(t, 1.0, NightBlend(&m, Environment{LightingAmount: 0}))
	assert.InDelta(t, 200.0/255, NightBlend(&m, Environment{LightingAmount: 1}), eps)
}
