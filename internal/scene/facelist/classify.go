package facelist

import (
	"fmt"

	"github.com/Faultbox/trackview/internal/scene/object"
)

// TransparencyMode trades blending quality for speed.
type TransparencyMode uint8

const (
	// Performance treats partially transparent textures as opaque with an
	// alpha test and blends the alpha layers in a single pass.
	Performance TransparencyMode = iota
	// Quality routes partially transparent textures through the alpha
	// layers and splits blending into two passes.
	Quality
)

// ParseTransparencyMode converts a config value.
func ParseTransparencyMode(s string) (TransparencyMode, error) {
	switch s {
	case "performance", "":
		return Performance, nil
	case "quality":
		return Quality, nil
	default:
		return Performance, fmt.Errorf("unknown transparency mode %q", s)
	}
}

// CameraRestriction is the state of the cab view. The zero value is a
// 3-D cab.
type CameraRestriction uint8

const (
	// RestrictionNotAvailable means the cab is a full 3-D cab.
	RestrictionNotAvailable CameraRestriction = iota
	// RestrictionOff is a 2-D panel cab with free camera movement.
	RestrictionOff
	// RestrictionOn is a 2-D panel cab with the camera kept on the panel.
	RestrictionOn
)

// ParseCameraRestriction converts a config value.
func ParseCameraRestriction(s string) (CameraRestriction, error) {
	switch s {
	case "cab3d", "":
		return RestrictionNotAvailable, nil
	case "off":
		return RestrictionOff, nil
	case "on":
		return RestrictionOn, nil
	default:
		return RestrictionNotAvailable, fmt.Errorf("unknown camera restriction %q", s)
	}
}

// Classifier decides whether a face is drawn opaque or blended.
type Classifier struct {
	Transparency TransparencyMode
	Restriction  CameraRestriction
}

// Classify returns the partition for a face with material m shown as kind.
// The result is fixed for the lifetime of the registration; continuous
// parameters such as day/night blending only change drawn intensity.
func (c Classifier) Classify(kind Kind, m *object.Material) Partition {
	switch {
	case kind == Overlay && c.Restriction != RestrictionNotAvailable:
		// A 2-D panel blends over the scene behind it.
		return Alpha
	case m.Color.A != 255:
		return Alpha
	case m.BlendMode == object.BlendAdditive:
		return Alpha
	case m.Glow.Enabled():
		// Glow needs an attenuated alpha computed per frame.
		return Alpha
	case c.textureNeedsBlending(m.DaytimeTexture), c.textureNeedsBlending(m.NighttimeTexture):
		return Alpha
	}
	return Opaque
}

func (c Classifier) textureNeedsBlending(t *object.Texture) bool {
	if t == nil {
		return false
	}
	switch t.Transparency {
	case object.TransparencyAlpha:
		return true
	case object.TransparencyPartial:
		return c.Transparency == Quality
	default:
		return false
	}
}
