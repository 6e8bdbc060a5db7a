package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	if n != (Vec3{0, 0.6, 0.8}) {
		t.Errorf("Vec3.Normalize() = %v, want (0, 0.6, 0.8)", n)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec3Float32(t *testing.T) {
	v := Vec3{1e6 + 0.25, -2, 0.5}
	if got := v.Float32(); got != [3]float32{1000000.25, -2, 0.5} {
		t.Errorf("Vec3.Float32() = %v", got)
	}
}
