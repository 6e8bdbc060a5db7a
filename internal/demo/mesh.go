package demo

import (
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/pkg/math"
)

// meshBuilder accumulates quads and boxes into a mesh.
type meshBuilder struct {
	mesh object.Mesh
}

func (b *meshBuilder) material(m object.Material) int {
	b.mesh.Materials = append(b.mesh.Materials, m)
	return len(b.mesh.Materials) - 1
}

// quad adds a four-vertex polygon wound counter-clockwise when seen from
// the front. uv scales the texture coordinates so that values above 1
// repeat.
func (b *meshBuilder) quad(mat int, p [4]math.Vec3, uv math.Vec2, flags uint8) {
	base := len(b.mesh.Vertices)
	tc := [4]math.Vec2{{X: 0, Y: 0}, {X: uv.X, Y: 0}, {X: uv.X, Y: uv.Y}, {X: 0, Y: uv.Y}}
	n := p[1].Sub(p[0]).Cross(p[3].Sub(p[0])).Normalize()

	face := object.Face{Material: mat, Flags: flags | uint8(object.FaceTypePolygon)}
	for i := range p {
		b.mesh.Vertices = append(b.mesh.Vertices, object.Vertex{Position: p[i], TexCoord: tc[i]})
		face.Vertices = append(face.Vertices, object.FaceVertex{Index: base + i, Normal: n})
	}
	b.mesh.Faces = append(b.mesh.Faces, face)
}

// box adds the four sides and the top of an axis-aligned box.
func (b *meshBuilder) box(mat int, lo, hi math.Vec3) {
	v := func(x, y, z float64) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
	one := math.Vec2{X: 1, Y: 1}

	b.quad(mat, [4]math.Vec3{v(hi.X, lo.Y, lo.Z), v(lo.X, lo.Y, lo.Z), v(lo.X, hi.Y, lo.Z), v(hi.X, hi.Y, lo.Z)}, one, 0)
	b.quad(mat, [4]math.Vec3{v(lo.X, lo.Y, hi.Z), v(hi.X, lo.Y, hi.Z), v(hi.X, hi.Y, hi.Z), v(lo.X, hi.Y, hi.Z)}, one, 0)
	b.quad(mat, [4]math.Vec3{v(lo.X, lo.Y, lo.Z), v(lo.X, lo.Y, hi.Z), v(lo.X, hi.Y, hi.Z), v(lo.X, hi.Y, lo.Z)}, one, 0)
	b.quad(mat, [4]math.Vec3{v(hi.X, lo.Y, hi.Z), v(hi.X, lo.Y, lo.Z), v(hi.X, hi.Y, lo.Z), v(hi.X, hi.Y, hi.Z)}, one, 0)
	b.quad(mat, [4]math.Vec3{v(lo.X, hi.Y, hi.Z), v(hi.X, hi.Y, hi.Z), v(hi.X, hi.Y, lo.Z), v(lo.X, hi.Y, lo.Z)}, one, 0)
}

func (b *meshBuilder) build(name string, group int, dynamic bool) *object.Object {
	return &object.Object{Name: name, Mesh: b.mesh, Group: group, Dynamic: dynamic}
}

func rgba(r, g, b, a uint8) object.Color32 {
	return object.Color32{R: r, G: g, B: b, A: a}
}
