package object

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/trackview/pkg/math"
)

func faceOf(t FaceType, n int) *Face {
	f := &Face{Flags: uint8(t)}
	for i := 0; i < n; i++ {
		f.Vertices = append(f.Vertices, FaceVertex{Index: i})
	}
	return f
}

func TestTriangles(t *testing.T) {
	tests := []struct {
		name string
		face *Face
		want [][3]int
	}{
		{"degenerate", faceOf(FaceTypePolygon, 2), nil},
		{"polygon fan", faceOf(FaceTypePolygon, 5), [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}},
		{"triangles", faceOf(FaceTypeTriangles, 7), [][3]int{{0, 1, 2}, {3, 4, 5}}},
		{"triangle strip", faceOf(FaceTypeTriangleStrip, 5), [][3]int{{0, 1, 2}, {2, 1, 3}, {2, 3, 4}}},
		{"quads", faceOf(FaceTypeQuads, 4), [][3]int{{0, 1, 2}, {0, 2, 3}}},
		{"quad strip", faceOf(FaceTypeQuadStrip, 6), [][3]int{{0, 1, 3}, {0, 3, 2}, {2, 3, 5}, {2, 5, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.face.Triangles())
		})
	}
}

func TestFaceFlags(t *testing.T) {
	f := Face{Flags: uint8(FaceTypeQuads) | Face2Mask}
	assert.Equal(t, FaceTypeQuads, f.Type())
	assert.True(t, f.DoubleSided())

	f.Flags = uint8(FaceTypeTriangles)
	assert.False(t, f.DoubleSided())
}

func TestTexCoordWrap(t *testing.T) {
	mesh := func(tcs ...math.Vec2) *Mesh {
		m := &Mesh{}
		for _, tc := range tcs {
			m.Vertices = append(m.Vertices, Vertex{TexCoord: tc})
		}
		return m
	}

	assert.Equal(t, ClampClamp, mesh(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 1, Y: 1}).TexCoordWrap())
	assert.Equal(t, RepeatClamp, mesh(math.Vec2{X: 2, Y: 0.5}).TexCoordWrap())
	assert.Equal(t, ClampRepeat, mesh(math.Vec2{X: 0.5, Y: -1}).TexCoordWrap())
	assert.Equal(t, RepeatRepeat, mesh(math.Vec2{X: -1, Y: 0}, math.Vec2{X: 0, Y: 3}).TexCoordWrap())
}

func TestStoreAddRemove(t *testing.T) {
	s := NewStore()
	a := s.Add(&Object{Name: "a"})
	b := s.Add(&Object{Name: "b"})
	require.Equal(t, 2, s.Len())

	obj, ok := s.Object(a)
	require.True(t, ok)
	assert.Equal(t, "a", obj.Name)

	s.Remove(a)
	_, ok = s.Object(a)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	// Removing twice and unknown IDs are ignored.
	s.Remove(a)
	s.Remove(ID(99))
	s.Remove(ID(-1))
	assert.Equal(t, 1, s.Len())

	obj, _ = s.Object(b)
	assert.Equal(t, "b", obj.Name)
}

func TestStoreNeverReusesIDs(t *testing.T) {
	s := NewStore()
	a := s.Add(&Object{Name: "a"})
	s.Remove(a)

	c := s.Add(&Object{Name: "c"})
	assert.NotEqual(t, a, c)
	_, ok := s.Object(a)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStoreConcurrentAdd(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := s.Add(&Object{})
				if _, ok := s.Object(id); !ok {
					t.Errorf("object %d missing right after Add", id)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, s.Len())
}

func TestMaterialOf(t *testing.T) {
	m := Mesh{Materials: []Material{{Color: Color32{A: 10}}}}

	assert.Equal(t, uint8(10), m.MaterialOf(&Face{Material: 0}).Color.A)
	assert.Same(t, &FallbackMaterial, m.MaterialOf(&Face{Material: 1}))
	assert.Same(t, &FallbackMaterial, m.MaterialOf(&Face{Material: -1}))
}
