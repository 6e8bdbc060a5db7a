package renderer

import (
	"github.com/Faultbox/trackview/internal/frame"
	"github.com/Faultbox/trackview/internal/scene/shading"
	"github.com/Faultbox/trackview/pkg/math"
)

// Vertex layout: position(3) normal(3) color(4) emission(3) lit(1).
const (
	floatsPerVertex = 14
	vertexStride    = floatsPerVertex * 4

	offsetNormal   = 3 * 4
	offsetColor    = 6 * 4
	offsetEmission = 10 * 4
	offsetLit      = 13 * 4
)

// appendFace appends the triangles of f to dst with positions relative to
// origin, colored c.
func appendFace(dst []float32, f *frame.Face, origin math.Vec3, c shading.Color) []float32 {
	mesh := &f.Object.Mesh
	face := f.Mesh()
	tris := face.Triangles()
	if len(tris) == 0 {
		return dst
	}

	// Fallback normal for vertices that carry none.
	v0 := mesh.VertexOf(face, 0).Position
	n0 := mesh.VertexOf(face, 1).Position.Sub(v0).Cross(mesh.VertexOf(face, 2).Position.Sub(v0)).Normalize()

	lit := float32(0)
	if f.Shade.Lit {
		lit = 1
	}
	em := f.Shade.Emission

	for _, tri := range tris {
		for _, k := range tri {
			fv := face.Vertices[k]
			p := mesh.Vertices[fv.Index].Position.Sub(origin).Float32()
			n := fv.Normal
			if n.LengthSquared() == 0 {
				n = n0
			}
			nf := n.Float32()
			dst = append(dst,
				p[0], p[1], p[2],
				nf[0], nf[1], nf[2],
				c[0], c[1], c[2], c[3],
				em[0], em[1], em[2],
				lit,
			)
		}
	}
	return dst
}

// vertexCount returns the number of vertices in a float buffer.
func vertexCount(data []float32) int32 {
	return int32(len(data) / floatsPerVertex)
}
