// Package camera provides the free-flying viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/trackview/pkg/math"
)

// FlyCamera moves freely through world space. Yaw 0 looks along +Z.
type FlyCamera struct {
	Position math.Vec3

	Yaw   float64 // Horizontal angle (radians)
	Pitch float64 // Vertical angle (radians)

	MaxPitch float64

	// Speed is in metres per second.
	Speed           float64
	LookSensitivity float64
	// FOV is the vertical field of view in degrees.
	FOV       float32
	Near, Far float32
}

// NewFlyCamera creates a camera at pos with the given speed, field of view
// and far plane.
func NewFlyCamera(pos math.Vec3, speed float64, fov, far float32) *FlyCamera {
	return &FlyCamera{
		Position:        pos,
		MaxPitch:        1.5,
		Speed:           speed,
		LookSensitivity: 0.004,
		FOV:             fov,
		Near:            0.5,
		Far:             far,
	}
}

// Direction returns the unit view direction.
func (c *FlyCamera) Direction() math.Vec3 {
	cp := gomath.Cos(c.Pitch)
	return math.Vec3{
		X: cp * gomath.Sin(c.Yaw),
		Y: gomath.Sin(c.Pitch),
		Z: cp * gomath.Cos(c.Yaw),
	}
}

// Right returns the unit right vector on the XZ plane.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{X: -gomath.Cos(c.Yaw), Z: gomath.Sin(c.Yaw)}
}

// ViewMatrix returns the rotation-only view matrix. Geometry is drawn
// relative to Position.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookDir(c.Direction(), math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for an aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV*gomath.Pi/180, aspect, c.Near, c.Far)
}

// HandleLook turns the camera by a mouse delta.
func (c *FlyCamera) HandleLook(deltaX, deltaY float64) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	// Clamp pitch
	c.Pitch = gomath.Max(-c.MaxPitch, gomath.Min(c.MaxPitch, c.Pitch))
}

// HandleMovement moves the camera for dt seconds. forward and right
// follow the view direction, up is world up.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float64) {
	step := c.Speed * dt
	move := c.Direction().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Vec3{Y: up})
	c.Position = c.Position.Add(move.Scale(step))
}
