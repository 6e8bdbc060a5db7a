package facelist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/trackview/internal/scene/object"
)

func TestClassify(t *testing.T) {
	additive := opaqueMaterial
	additive.BlendMode = object.BlendAdditive

	alphaTex := opaqueMaterial
	alphaTex.DaytimeTexture = &object.Texture{Transparency: object.TransparencyAlpha}

	partialTex := opaqueMaterial
	partialTex.NighttimeTexture = &object.Texture{Transparency: object.TransparencyPartial}

	opaqueTex := opaqueMaterial
	opaqueTex.DaytimeTexture = &object.Texture{Transparency: object.TransparencyOpaque}

	cab3D := Classifier{}
	panel := Classifier{Restriction: RestrictionOn}
	quality := Classifier{Transparency: Quality}

	tests := []struct {
		name string
		c    Classifier
		kind Kind
		m    object.Material
		want Partition
	}{
		{"opaque color", cab3D, Static, opaqueMaterial, Opaque},
		{"translucent color", cab3D, Static, alphaMaterial, Alpha},
		{"additive", cab3D, Dynamic, additive, Alpha},
		{"glow", cab3D, Static, glowMaterial(), Alpha},
		{"3d cab overlay", cab3D, Overlay, opaqueMaterial, Opaque},
		{"panel overlay", panel, Overlay, opaqueMaterial, Alpha},
		{"panel does not affect world", panel, Static, opaqueMaterial, Opaque},
		{"alpha texture", cab3D, Static, alphaTex, Alpha},
		{"partial texture performance", cab3D, Static, partialTex, Opaque},
		{"partial texture quality", quality, Static, partialTex, Alpha},
		{"opaque texture quality", quality, Static, opaqueTex, Opaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Classify(tt.kind, &tt.m))
		})
	}
}

func TestKindLayer(t *testing.T) {
	assert.Equal(t, StaticOpaque, Static.Layer(Opaque))
	assert.Equal(t, DynamicAlpha, Static.Layer(Alpha))
	assert.Equal(t, DynamicOpaque, Dynamic.Layer(Opaque))
	assert.Equal(t, DynamicAlpha, Dynamic.Layer(Alpha))
	assert.Equal(t, OverlayOpaque, Overlay.Layer(Opaque))
	assert.Equal(t, OverlayAlpha, Overlay.Layer(Alpha))
	assert.Panics(t, func() { Kind(9).Layer(Opaque) })
}

func TestParseOptions(t *testing.T) {
	mode, err := ParseTransparencyMode("quality")
	assert.NoError(t, err)
	assert.Equal(t, Quality, mode)

	_, err = ParseTransparencyMode("fancy")
	assert.Error(t, err)

	r, err := ParseCameraRestriction("on")
	assert.NoError(t, err)
	assert.Equal(t, RestrictionOn, r)

	r, err = ParseCameraRestriction("")
	assert.NoError(t, err)
	assert.Equal(t, RestrictionNotAvailable, r)

	_, err = ParseCameraRestriction("sideways")
	assert.Error(t, err)
}
