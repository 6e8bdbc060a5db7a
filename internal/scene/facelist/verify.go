package facelist

import "fmt"

// Verify checks that every registration and every slot reference each
// other consistently. A non-nil error means the lists are corrupt.
func (s *State) Verify() error {
	for r := range s.regs {
		reg := &s.regs[r]
		if got, ok := s.byObject[reg.id]; !ok || got != r {
			return fmt.Errorf("object %d: index maps to %d, registration is %d", reg.id, got, r)
		}
		for i, h := range reg.faces {
			if h.Layer >= LayerCount {
				return fmt.Errorf("object %d face %d: invalid layer %d", reg.id, i, h.Layer)
			}
			if h.Layer == StaticOpaque && s.groupList(reg.group) == nil {
				return fmt.Errorf("object %d face %d: group %d not allocated", reg.id, i, reg.group)
			}
			l := s.list(h.Layer, reg.group)
			if h.Index < 0 || h.Index >= l.count {
				return fmt.Errorf("object %d face %d: %v index %d out of bounds %d", reg.id, i, h.Layer, h.Index, l.count)
			}
			slot := l.slots[h.Index]
			if slot.owner != r || slot.Object != reg.id || slot.Face != i {
				return fmt.Errorf("object %d face %d: %v slot %d holds object %d face %d owner %d",
					reg.id, i, h.Layer, h.Index, slot.Object, slot.Face, slot.owner)
			}
		}
	}
	if len(s.byObject) != len(s.regs) {
		return fmt.Errorf("%d indexed objects, %d registrations", len(s.byObject), len(s.regs))
	}

	for layer := DynamicOpaque; layer < LayerCount; layer++ {
		if err := s.verifyList(layer, s.lists[layer]); err != nil {
			return err
		}
	}
	static := 0
	for g, l := range s.groups {
		if l == nil {
			continue
		}
		if err := s.verifyList(StaticOpaque, l); err != nil {
			return fmt.Errorf("group %d: %w", g, err)
		}
		if l.count > 0 && l.slots[l.count-1].owner == vacant {
			return fmt.Errorf("group %d: trailing tombstone at %d", g, l.count-1)
		}
		static += l.live
	}
	if static != s.staticCount {
		return fmt.Errorf("static opaque counter %d, lists hold %d", s.staticCount, static)
	}
	return nil
}

func (s *State) verifyList(layer Layer, l *List) error {
	live := 0
	for i := 0; i < l.count; i++ {
		slot := l.slots[i]
		if slot.owner == vacant {
			if l.policy == swapRemove {
				return fmt.Errorf("%v: hole at %d", layer, i)
			}
			continue
		}
		live++
		if slot.owner < 0 || slot.owner >= len(s.regs) {
			return fmt.Errorf("%v slot %d: owner %d out of range", layer, i, slot.owner)
		}
		faces := s.regs[slot.owner].faces
		if slot.Face < 0 || slot.Face >= len(faces) || faces[slot.Face] != (FaceHandle{Layer: layer, Index: i}) {
			return fmt.Errorf("%v slot %d: owner %d does not point back", layer, i, slot.owner)
		}
	}
	if live != l.live {
		return fmt.Errorf("%v: live counter %d, found %d", layer, l.live, live)
	}
	return nil
}
