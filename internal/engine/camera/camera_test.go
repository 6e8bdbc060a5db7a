package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/trackview/pkg/math"
)

const eps = 1e-9

func near(a, b float64) bool {
	return gomath.Abs(a-b) < eps
}

func TestDirectionDefaultsToPlusZ(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 10, 60, 1000)
	d := c.Direction()
	if !near(d.X, 0) || !near(d.Y, 0) || !near(d.Z, 1) {
		t.Errorf("expected (0,0,1), got %+v", d)
	}
	r := c.Right()
	if !near(r.X, -1) || !near(r.Z, 0) {
		t.Errorf("expected right (-1,0,0), got %+v", r)
	}
}

func TestHandleMovement(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 5}, 10, 60, 1000)
	c.HandleMovement(1, 0, 0, 0.5)
	if !near(c.Position.X, 5) || !near(c.Position.Z, 5) {
		t.Errorf("expected (5,0,5), got %+v", c.Position)
	}

	c.HandleMovement(0, 0, 1, 1)
	if !near(c.Position.Y, 10) {
		t.Errorf("expected y 10, got %v", c.Position.Y)
	}
}

func TestHandleLookClampsPitch(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 10, 60, 1000)
	c.HandleLook(0, -10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", c.MaxPitch, c.Pitch)
	}
	c.HandleLook(0, 20000)
	if c.Pitch != -c.MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", -c.MaxPitch, c.Pitch)
	}
}

func TestViewMatrixLooksAlongDirection(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 10, 60, 1000)
	c.Yaw = gomath.Pi / 2
	v := c.ViewMatrix()

	// A point straight ahead lands on the -Z view axis.
	p := v.TransformPoint([3]float32{10, 0, 0})
	if gomath.Abs(float64(p[0])) > 1e-5 || gomath.Abs(float64(p[2]+10)) > 1e-5 {
		t.Errorf("expected (0,0,-10), got %v", p)
	}
}
