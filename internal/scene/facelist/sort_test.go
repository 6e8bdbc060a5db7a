package facelist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/pkg/math"
)

func TestSortAlphaFartherPlanesFirst(t *testing.T) {
	s, store := newTestState(Options{})
	o2 := add(store, shape{dynamic: true, material: alphaMaterial, planes: []float64{0, 10}})
	o3 := add(store, shape{dynamic: true, material: alphaMaterial, planes: []float64{-300}})
	s.Show(o2, Dynamic)
	s.Show(o3, Dynamic)
	require.Equal(t, []faceRef{{o2, 0}, {o2, 1}, {o3, 0}}, refs(s, DynamicAlpha))

	// Camera sits between the planes: 100 in front of o2's first face,
	// 200 behind o3's face.
	eye := math.Vec3{Z: -100}
	s.SortAlpha(DynamicAlpha, eye)

	want := []faceRef{{o3, 0}, {o2, 1}, {o2, 0}}
	if diff := cmp.Diff(want, refs(s, DynamicAlpha)); diff != "" {
		t.Fatalf("sorted order mismatch (-want +got):\n%s", diff)
	}

	var keys []float64
	for slot := range s.Faces(DynamicAlpha) {
		keys = append(keys, slot.SortKey())
	}
	assert.Equal(t, []float64{-40000, -12100, -10000}, keys)

	for face, wantIndex := range []int{2, 1} {
		_, h, ok := s.SlotOf(o2, face)
		require.True(t, ok)
		assert.Equal(t, FaceHandle{Layer: DynamicAlpha, Index: wantIndex}, h)
	}
	_, h, _ := s.SlotOf(o3, 0)
	assert.Equal(t, FaceHandle{Layer: DynamicAlpha, Index: 0}, h)
}

func TestSortAlphaStableWithoutMotion(t *testing.T) {
	s, store := newTestState(Options{})
	for _, z := range []float64{5, -20, 40, 3, 12} {
		s.Show(add(store, shape{dynamic: true, material: alphaMaterial, planes: []float64{z}}), Dynamic)
	}
	eye := math.Vec3{X: 1, Y: 2, Z: 0}

	s.SortAlpha(DynamicAlpha, eye)
	first := refs(s, DynamicAlpha)
	s.SortAlpha(DynamicAlpha, eye)

	assert.Empty(t, cmp.Diff(first, refs(s, DynamicAlpha)))
}

func TestSortAlphaEqualKeysKeepOrder(t *testing.T) {
	s, store := newTestState(Options{})
	a := add(store, shape{dynamic: true, material: alphaMaterial, planes: []float64{7, 7, 7}})
	s.Show(a, Dynamic)

	s.SortAlpha(DynamicAlpha, math.Vec3{})
	assert.Equal(t, []faceRef{{a, 0}, {a, 1}, {a, 2}}, refs(s, DynamicAlpha))
}

func TestSortAlphaDegenerateFaces(t *testing.T) {
	s, store := newTestState(Options{})
	good := add(store, shape{dynamic: true, material: alphaMaterial, planes: []float64{0}})

	flat := build(shape{dynamic: true, material: alphaMaterial, planes: []float64{0}})
	// Collinear vertices give a zero normal.
	flat.Mesh.Vertices[2].Position = math.Vec3{X: 2, Y: 0, Z: 0}
	line := build(shape{dynamic: true, material: alphaMaterial, planes: []float64{0}})
	line.Mesh.Faces[0].Vertices = line.Mesh.Faces[0].Vertices[:2]

	flatID := store.Add(flat)
	lineID := store.Add(line)
	s.Show(flatID, Dynamic)
	s.Show(lineID, Dynamic)
	s.Show(good, Dynamic)

	_, ok := SortKey(flat, 0, math.Vec3{})
	assert.False(t, ok)
	_, ok = SortKey(line, 0, math.Vec3{})
	assert.False(t, ok)

	s.SortAlpha(DynamicAlpha, math.Vec3{Z: -5})
	assert.Equal(t, []faceRef{{good, 0}, {flatID, 0}, {lineID, 0}}, refs(s, DynamicAlpha))

	for _, id := range []object.ID{flatID, lineID} {
		slot, _, _ := s.SlotOf(id, 0)
		assert.Zero(t, slot.SortKey(), "degenerate faces keep their previous key")
	}
	slot, _, _ := s.SlotOf(good, 0)
	assert.Equal(t, -25.0, slot.SortKey())
}

func TestSortAlphaTrivialLists(t *testing.T) {
	s, store := newTestState(Options{})
	s.SortAlpha(OverlayAlpha, math.Vec3{})
	assert.Equal(t, 0, s.Len(OverlayAlpha))

	id := add(store, shape{material: alphaMaterial, planes: []float64{3}})
	s.Show(id, Overlay)
	s.SortAlpha(OverlayAlpha, math.Vec3{})

	slot, h, _ := s.SlotOf(id, 0)
	assert.Equal(t, 0, h.Index)
	assert.Zero(t, slot.SortKey(), "a single face is not keyed")
}

func TestSortAlphaIgnoresOpaqueLayers(t *testing.T) {
	s, store := newTestState(Options{})
	a := add(store, shape{dynamic: true, material: opaqueMaterial, planes: []float64{0}})
	b := add(store, shape{dynamic: true, material: opaqueMaterial, planes: []float64{100}})
	s.Show(a, Dynamic)
	s.Show(b, Dynamic)

	s.SortAlpha(DynamicOpaque, math.Vec3{Z: 50})
	assert.Equal(t, []faceRef{{a, 0}, {b, 0}}, refs(s, DynamicOpaque))
}

func TestSortKeyIgnoresSideOfPlane(t *testing.T) {
	obj := build(shape{planes: []float64{0}})

	front, ok := SortKey(obj, 0, math.Vec3{X: 3, Y: -2, Z: 4})
	require.True(t, ok)
	back, ok := SortKey(obj, 0, math.Vec3{X: -8, Y: 9, Z: -4})
	require.True(t, ok)

	assert.Equal(t, -16.0, front)
	assert.Equal(t, front, back)
}
