// Package math provides the vector and matrix types shared by the scene
// and the GL backend.
package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}
