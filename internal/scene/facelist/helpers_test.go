package facelist

import (
	"slices"

	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/pkg/glow"
	"github.com/Faultbox/trackview/pkg/math"
)

var (
	opaqueMaterial = object.Material{Color: object.Color32{R: 200, G: 200, B: 200, A: 255}}
	alphaMaterial  = object.Material{Color: object.Color32{R: 200, G: 200, B: 200, A: 128}}
)

// shape describes a test object whose faces are triangles lying in planes
// of constant Z, each with normal +Z.
type shape struct {
	group    int
	dynamic  bool
	material object.Material
	planes   []float64
}

func build(sh shape) *object.Object {
	obj := &object.Object{Group: sh.group, Dynamic: sh.dynamic}
	obj.Mesh.Materials = []object.Material{sh.material}
	for _, z := range sh.planes {
		base := len(obj.Mesh.Vertices)
		obj.Mesh.Vertices = append(obj.Mesh.Vertices,
			object.Vertex{Position: math.Vec3{X: 0, Y: 0, Z: z}},
			object.Vertex{Position: math.Vec3{X: 1, Y: 0, Z: z}},
			object.Vertex{Position: math.Vec3{X: 0, Y: 1, Z: z}},
		)
		obj.Mesh.Faces = append(obj.Mesh.Faces, object.Face{
			Vertices: []object.FaceVertex{{Index: base}, {Index: base + 1}, {Index: base + 2}},
			Flags:    uint8(object.FaceTypeTriangles),
		})
	}
	return obj
}

func newTestState(opts Options) (*State, *object.Store) {
	store := object.NewStore()
	opts.CheckInvariants = true
	return New(store, opts), store
}

func add(store *object.Store, sh shape) object.ID {
	return store.Add(build(sh))
}

type faceRef struct {
	Object object.ID
	Face   int
}

func refs(s *State, layer Layer) []faceRef {
	var out []faceRef
	for slot := range s.Faces(layer) {
		out = append(out, faceRef{slot.Object, slot.Face})
	}
	return out
}

func indices(s *State, id object.ID) []int {
	hs, _ := s.Handles(id)
	out := make([]int, len(hs))
	for i, h := range hs {
		out[i] = h.Index
	}
	return out
}

func sorted(xs []int) []int {
	out := slices.Clone(xs)
	slices.Sort(out)
	return out
}

func glowMaterial() object.Material {
	m := opaqueMaterial
	m.Glow = glow.Pack(50, glow.DivisionExponent2)
	return m
}
