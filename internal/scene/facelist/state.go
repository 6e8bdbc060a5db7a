// Package facelist maintains the per-layer lists of drawable faces for the
// objects currently visible in the scene.
//
// A State owns every list and every registration. Each shown object has a
// registration holding one FaceHandle per mesh face; each slot in a list
// records the registration that owns it. Both directions are kept in sync
// across Show, Hide and SortAlpha.
//
// State is not safe for concurrent use. Callers serialize all mutation and
// all drawing onto one timeline.
package facelist

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/scene/object"
)

// Source resolves object IDs to their immutable data.
type Source interface {
	Object(id object.ID) (*object.Object, bool)
}

// Options configures a State.
type Options struct {
	Classifier Classifier
	// InitialCapacity is the starting size of each list's backing array.
	InitialCapacity int
	// CheckInvariants verifies every back-reference after each mutation
	// and panics on mismatch.
	CheckInvariants bool
	Logger          *zap.Logger
}

const (
	defaultCapacity    = 256
	initialGroupTables = 16
)

type registration struct {
	id    object.ID
	obj   *object.Object
	kind  Kind
	group int
	faces []FaceHandle
}

// State is the scene rendering state: registrations plus layer lists.
type State struct {
	src        Source
	classifier Classifier
	capacity   int
	check      bool
	log        *zap.Logger

	regs     []registration
	byObject map[object.ID]int

	groups []*List           // static opaque lists indexed by group
	lists  [LayerCount]*List // non-static layers; StaticOpaque is nil

	staticCount int
}

// New creates an empty State reading objects from src.
func New(src Source, opts Options) *State {
	if opts.InitialCapacity <= 0 {
		opts.InitialCapacity = defaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &State{
		src:        src,
		classifier: opts.Classifier,
		capacity:   opts.InitialCapacity,
		check:      opts.CheckInvariants,
		log:        opts.Logger,
		byObject:   make(map[object.ID]int),
	}
	for l := DynamicOpaque; l < LayerCount; l++ {
		s.lists[l] = newList(swapRemove, s.capacity)
	}
	return s
}

// Classifier returns the classifier applied by Show.
func (s *State) Classifier() Classifier {
	return s.classifier
}

// SetClassifier replaces the classifier. Already shown objects keep their
// classification until ReAddAll is called.
func (s *State) SetClassifier(c Classifier) {
	s.classifier = c
}

// Show registers every face of the object into the layer lists. Showing an
// object twice, an object the source does not know, or an invalid kind
// does nothing. If the source now resolves a registered ID to a different
// object, the stale registration is replaced.
func (s *State) Show(id object.ID, kind Kind) {
	if !kind.Valid() {
		s.log.Debug("show ignored, invalid kind", zap.Int("object", int(id)), zap.Stringer("kind", kind))
		return
	}
	obj, ok := s.src.Object(id)
	if r, shown := s.byObject[id]; shown {
		if !ok || obj == nil || s.regs[r].obj == obj {
			return
		}
		s.log.Debug("show replaces stale registration", zap.Int("object", int(id)))
		s.Hide(id)
	}
	if !ok || obj == nil {
		s.log.Debug("show ignored, unknown object", zap.Int("object", int(id)))
		return
	}

	r := len(s.regs)
	s.regs = append(s.regs, registration{
		id:    id,
		obj:   obj,
		kind:  kind,
		group: max(obj.Group, 0),
		faces: make([]FaceHandle, len(obj.Mesh.Faces)),
	})
	reg := &s.regs[r]

	meshWrap, meshWrapDone := object.ClampClamp, false
	for i := range obj.Mesh.Faces {
		m := obj.Mesh.MaterialOf(&obj.Mesh.Faces[i])

		wrap := object.ClampClamp
		switch {
		case !m.Textured():
		case obj.Dynamic:
			wrap = object.RepeatRepeat
		case m.WrapMode != nil:
			wrap = *m.WrapMode
		default:
			if !meshWrapDone {
				meshWrap, meshWrapDone = obj.Mesh.TexCoordWrap(), true
			}
			wrap = meshWrap
		}

		layer := kind.Layer(s.classifier.Classify(kind, m))
		slot := Slot{Object: id, Face: i, Wrap: wrap, owner: r}

		var idx int
		if layer == StaticOpaque {
			g := s.group(reg.group)
			idx = g.insert(slot)
			g.dirty = true
			s.staticCount++
		} else {
			idx = s.lists[layer].insert(slot)
		}
		reg.faces[i] = FaceHandle{Layer: layer, Index: idx}
	}
	s.byObject[id] = r
	s.verifyAfter("show")
}

// Hide removes every face of the object from the layer lists. Hiding an
// object that is not shown does nothing. The object does not need to be
// present in the source any more.
func (s *State) Hide(id object.ID) {
	r, ok := s.byObject[id]
	if !ok {
		return
	}
	reg := &s.regs[r]

	// Removing a face can move a later face of this same object; ranging
	// over the slice reads each handle after earlier repairs.
	for i := range reg.faces {
		h := reg.faces[i]
		l := s.list(h.Layer, reg.group)
		if h.Layer == StaticOpaque {
			l.dirty = true
			s.staticCount--
		}
		if moved := l.remove(h.Index); moved >= 0 {
			s.repair(h.Layer, l, moved)
		}
	}
	delete(s.byObject, id)

	last := len(s.regs) - 1
	if r != last {
		s.regs[r] = s.regs[last]
		s.byObject[s.regs[r].id] = r
		s.reown(r)
	}
	s.regs[last] = registration{}
	s.regs = s.regs[:last]
	s.verifyAfter("hide")
}

// ReAddAll hides and re-shows every registered object in registration
// order so that a changed classifier takes effect.
func (s *State) ReAddAll() {
	type entry struct {
		id   object.ID
		kind Kind
	}
	shown := make([]entry, len(s.regs))
	for i, reg := range s.regs {
		shown[i] = entry{reg.id, reg.kind}
	}
	for _, e := range shown {
		s.Hide(e.id)
	}
	for _, e := range shown {
		s.Show(e.id, e.kind)
	}
	s.log.Debug("re-added objects", zap.Int("objects", len(shown)))
}

// repair points the owner of the slot at index i back at that index.
func (s *State) repair(layer Layer, l *List, i int) {
	slot := &l.slots[i]
	s.regs[slot.owner].faces[slot.Face] = FaceHandle{Layer: layer, Index: i}
}

// reown points every slot of registration r back at r after it moved
// within the registration arena.
func (s *State) reown(r int) {
	reg := &s.regs[r]
	for _, h := range reg.faces {
		s.list(h.Layer, reg.group).slots[h.Index].owner = r
	}
}

func (s *State) list(layer Layer, group int) *List {
	if layer == StaticOpaque {
		return s.groups[group]
	}
	return s.lists[layer]
}

// group returns the static opaque list for g, allocating it on first use.
func (s *State) group(g int) *List {
	if g >= len(s.groups) {
		n := len(s.groups)
		if n == 0 {
			n = initialGroupTables
		}
		for g >= n {
			n <<= 1
		}
		next := make([]*List, n)
		copy(next, s.groups)
		s.groups = next
	}
	if s.groups[g] == nil {
		s.groups[g] = newList(tombstone, s.capacity)
	}
	return s.groups[g]
}

func (s *State) verifyAfter(op string) {
	if !s.check {
		return
	}
	if err := s.Verify(); err != nil {
		s.log.Error("face list invariant violated", zap.String("op", op), zap.Error(err))
		panic(fmt.Sprintf("facelist: after %s: %v", op, err))
	}
}

// Shown reports whether the object is registered.
func (s *State) Shown(id object.ID) bool {
	_, ok := s.byObject[id]
	return ok
}

// Objects returns the number of registered objects.
func (s *State) Objects() int {
	return len(s.regs)
}

// Handles returns a copy of the face handles recorded for the object.
func (s *State) Handles(id object.ID) ([]FaceHandle, bool) {
	r, ok := s.byObject[id]
	if !ok {
		return nil, false
	}
	return append([]FaceHandle(nil), s.regs[r].faces...), true
}

// SlotOf returns the slot currently holding the given face of the object.
func (s *State) SlotOf(id object.ID, face int) (Slot, FaceHandle, bool) {
	r, ok := s.byObject[id]
	if !ok || face < 0 || face >= len(s.regs[r].faces) {
		return Slot{}, FaceHandle{}, false
	}
	h := s.regs[r].faces[face]
	return s.list(h.Layer, s.regs[r].group).slots[h.Index], h, true
}

// Len returns the number of live faces in a layer. For StaticOpaque this
// is the total over all groups.
func (s *State) Len(layer Layer) int {
	if layer == StaticOpaque {
		return s.staticCount
	}
	return s.lists[layer].Len()
}

// Cap returns the backing capacity of a non-static layer.
func (s *State) Cap(layer Layer) int {
	if layer == StaticOpaque {
		return 0
	}
	return s.lists[layer].Cap()
}

// StaticOpaqueCount is the diagnostic count of live static opaque faces.
func (s *State) StaticOpaqueCount() int {
	return s.staticCount
}

// Faces yields the live slots of a layer in draw order. StaticOpaque
// yields group by group, skipping tombstones.
func (s *State) Faces(layer Layer) iter.Seq[Slot] {
	if layer == StaticOpaque {
		return func(yield func(Slot) bool) {
			for _, l := range s.groups {
				if l != nil && !yieldLive(l, yield) {
					return
				}
			}
		}
	}
	l := s.lists[layer]
	return func(yield func(Slot) bool) {
		yieldLive(l, yield)
	}
}

func yieldLive(l *List, yield func(Slot) bool) bool {
	for i := 0; i < l.count; i++ {
		if l.slots[i].owner == vacant {
			continue
		}
		if !yield(l.slots[i]) {
			return false
		}
	}
	return true
}

// Groups yields the indices of allocated static opaque groups.
func (s *State) Groups() iter.Seq[int] {
	return func(yield func(int) bool) {
		for g, l := range s.groups {
			if l != nil && !yield(g) {
				return
			}
		}
	}
}

// GroupFaces yields the live slots of one static opaque group.
func (s *State) GroupFaces(g int) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if l := s.groupList(g); l != nil {
			yieldLive(l, yield)
		}
	}
}

// GroupLen returns the number of live faces in a group.
func (s *State) GroupLen(g int) int {
	if l := s.groupList(g); l != nil {
		return l.Len()
	}
	return 0
}

// GroupBound returns a group's iteration bound, including tombstones that
// are not at the end of the list.
func (s *State) GroupBound(g int) int {
	if l := s.groupList(g); l != nil {
		return l.Bound()
	}
	return 0
}

// GroupDirty reports whether a group changed since its batch was built.
func (s *State) GroupDirty(g int) bool {
	if l := s.groupList(g); l != nil {
		return l.dirty
	}
	return false
}

// ClearGroupDirty marks a group's batch as up to date.
func (s *State) ClearGroupDirty(g int) {
	if l := s.groupList(g); l != nil {
		l.dirty = false
	}
}

// InvalidateGroups marks every group dirty, for example after the
// graphics context lost its compiled batches.
func (s *State) InvalidateGroups() {
	for _, l := range s.groups {
		if l != nil {
			l.dirty = true
		}
	}
}

func (s *State) groupList(g int) *List {
	if g < 0 || g >= len(s.groups) {
		return nil
	}
	return s.groups[g]
}
