package demo

import "math"

// Daylight returns the ambient light level in [0,1] at a time of day in
// seconds, using a smooth curve that is 0 from 20:00 to 04:00 and 1 at
// noon.
func Daylight(seconds float64) float64 {
	const day = 24 * 3600
	t := math.Mod(seconds, day)
	if t < 0 {
		t += day
	}
	h := t / 3600
	if h <= 4 || h >= 20 {
		return 0
	}
	return math.Sin((h - 4) / 16 * math.Pi)
}
