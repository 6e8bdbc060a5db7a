package facelist

import (
	"cmp"
	"math"
	"slices"

	"github.com/Faultbox/trackview/internal/scene/object"
	tvmath "github.com/Faultbox/trackview/pkg/math"
)

// SortAlpha orders an alpha layer back to front for a camera at eye and
// repairs every owner reference. Faces whose key cannot be computed keep
// the key from the previous sort.
//
// The key is the negated squared distance from the camera to the plane of
// the face. It is a cheap painter's heuristic: intersecting or coplanar
// translucent faces can still be ordered wrongly.
func (s *State) SortAlpha(layer Layer, eye tvmath.Vec3) {
	if !layer.Alpha() {
		return
	}
	l := s.lists[layer]
	if l.count < 2 {
		return
	}

	live := l.slots[:l.count]
	for i := range live {
		obj, ok := s.src.Object(live[i].Object)
		if !ok {
			continue
		}
		if key, ok := SortKey(obj, live[i].Face, eye); ok {
			live[i].key = key
		}
	}

	slices.SortStableFunc(live, func(a, b Slot) int {
		return cmp.Compare(a.key, b.key)
	})
	for i := range live {
		s.repair(layer, l, i)
	}
	s.verifyAfter("sort")
}

// SortKey computes -t² for a face, where t is the offset of the face's
// plane from eye along the plane's unit normal. It returns false for faces
// with fewer than three vertices or a zero-length normal.
func SortKey(obj *object.Object, face int, eye tvmath.Vec3) (float64, bool) {
	if face < 0 || face >= len(obj.Mesh.Faces) {
		return 0, false
	}
	f := &obj.Mesh.Faces[face]
	if len(f.Vertices) < 3 {
		return 0, false
	}
	v0 := obj.Mesh.VertexOf(f, 0).Position
	v1 := obj.Mesh.VertexOf(f, 1).Position
	v2 := obj.Mesh.VertexOf(f, 2).Position

	n := v1.Sub(v0).Cross(v2.Sub(v0))
	lsq := n.LengthSquared()
	if lsq == 0 {
		return 0, false
	}
	n = n.Scale(1 / math.Sqrt(lsq))
	t := n.Dot(v0.Sub(eye))
	return -t * t, true
}
