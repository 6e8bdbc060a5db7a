package object

// TexCoordWrap returns the cheapest wrap mode that covers every texture
// coordinate of the mesh.
func (m *Mesh) TexCoordWrap() WrapMode {
	wrap := ClampClamp
	for i := range m.Vertices {
		tc := m.Vertices[i].TexCoord
		if tc.X < 0 || tc.X > 1 {
			wrap |= RepeatClamp
		}
		if tc.Y < 0 || tc.Y > 1 {
			wrap |= ClampRepeat
		}
		if wrap == RepeatRepeat {
			break
		}
	}
	return wrap
}

// VertexOf returns the mesh vertex behind the n-th vertex of a face.
func (m *Mesh) VertexOf(f *Face, n int) Vertex {
	return m.Vertices[f.Vertices[n].Index]
}

// FallbackMaterial shades faces whose material index is out of range.
var FallbackMaterial = Material{Color: Color32{R: 255, G: 255, B: 255, A: 255}}

// MaterialOf returns the material of a face, or FallbackMaterial.
func (m *Mesh) MaterialOf(f *Face) *Material {
	if f.Material < 0 || f.Material >= len(m.Materials) {
		return &FallbackMaterial
	}
	return &m.Materials[f.Material]
}

// Triangles decomposes the face into triangles. Each triangle holds
// positions into f.Vertices, not mesh vertex indices.
func (f *Face) Triangles() [][3]int {
	n := len(f.Vertices)
	if n < 3 {
		return nil
	}
	var tris [][3]int
	switch f.Type() {
	case FaceTypeTriangles:
		for i := 0; i+2 < n; i += 3 {
			tris = append(tris, [3]int{i, i + 1, i + 2})
		}
	case FaceTypeTriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				tris = append(tris, [3]int{i, i + 1, i + 2})
			} else {
				tris = append(tris, [3]int{i + 1, i, i + 2})
			}
		}
	case FaceTypeQuads:
		for i := 0; i+3 < n; i += 4 {
			tris = append(tris, [3]int{i, i + 1, i + 2}, [3]int{i, i + 2, i + 3})
		}
	case FaceTypeQuadStrip:
		for i := 0; i+3 < n; i += 2 {
			tris = append(tris, [3]int{i, i + 1, i + 3}, [3]int{i, i + 3, i + 2})
		}
	default:
		// Convex polygon: fan around the first vertex.
		for i := 1; i+1 < n; i++ {
			tris = append(tris, [3]int{0, i, i + 1})
		}
	}
	return tris
}
