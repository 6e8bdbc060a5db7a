// Package glow packs and evaluates distance-based glow attenuation.
//
// A material's glow attenuation is stored as a single 16-bit value: the
// low 12 bits hold the half distance in metres, the high bits hold the
// attenuation mode. A zero value means the material does not glow.
package glow

import (
	"math"

	tvmath "github.com/Faultbox/trackview/pkg/math"
)

// Mode selects the attenuation curve.
type Mode uint8

const (
	// None disables attenuation; the factor is always 1.
	None Mode = iota
	// DivisionExponent2 evaluates d²/(d²+h²).
	DivisionExponent2
	// DivisionExponent4 evaluates d⁴/(d⁴+h⁴).
	DivisionExponent4
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case None:
		return "None"
	case DivisionExponent2:
		return "DivisionExponent2"
	case DivisionExponent4:
		return "DivisionExponent4"
	default:
		return "Unknown"
	}
}

const (
	halfDistanceBits = 12
	halfDistanceMask = 1<<halfDistanceBits - 1

	// MinHalfDistance and MaxHalfDistance bound the packed half distance.
	MinHalfDistance = 1
	MaxHalfDistance = halfDistanceMask
)

// Data is a packed half distance and mode.
type Data uint16

// Pack combines a half distance and mode. Non-positive distances and
// mode None yield 0. The distance is clamped to [1,4095] and rounded.
func Pack(halfDistance float64, mode Mode) Data {
	if halfDistance <= 0 || mode == None {
		return 0
	}
	if halfDistance < MinHalfDistance {
		halfDistance = MinHalfDistance
	} else if halfDistance > MaxHalfDistance {
		halfDistance = MaxHalfDistance
	}
	return Data(int(math.Round(halfDistance)) | int(mode)<<halfDistanceBits)
}

// Unpack splits the value into its mode and half distance.
func (d Data) Unpack() (Mode, float64) {
	return Mode(d >> halfDistanceBits), float64(d & halfDistanceMask)
}

// Enabled reports whether the value requests any attenuation.
func (d Data) Enabled() bool {
	return d != 0
}

// Factor returns the intensity in [0,1] for a camera at the given squared
// distance. The result is 0.5 when the distance equals halfDistance.
func Factor(mode Mode, halfDistance, distanceSquared float64) float64 {
	if halfDistance <= 0 {
		// No fade distance: full intensity, also at the camera itself.
		return 1
	}
	switch mode {
	case DivisionExponent2:
		return distanceSquared / (distanceSquared + halfDistance*halfDistance)
	case DivisionExponent4:
		t := distanceSquared * distanceSquared
		h := halfDistance * halfDistance
		return t / (t + h*h)
	default:
		return 1
	}
}

// PointFactor evaluates packed data for a camera at eye looking at p.
func PointFactor(d Data, p, eye tvmath.Vec3) float64 {
	mode, h := d.Unpack()
	return Factor(mode, h, p.Sub(eye).LengthSquared())
}
