package facelist

import "github.com/Faultbox/trackview/internal/scene/object"

// vacant marks a slot whose face was removed from a tombstoned list.
const vacant = -1

// Slot is one drawable face in a layer list.
type Slot struct {
	Object object.ID
	Face   int
	Wrap   object.WrapMode

	key   float64
	owner int // index of the owning registration, or vacant
}

// Vacant reports whether the slot is a tombstone.
func (s Slot) Vacant() bool {
	return s.owner == vacant
}

// SortKey returns the key computed by the last depth sort.
func (s Slot) SortKey() float64 {
	return s.key
}

type removalPolicy uint8

const (
	// swapRemove moves the last slot into the hole, keeping the list dense.
	swapRemove removalPolicy = iota
	// tombstone leaves a vacant slot so precompiled batches stay valid
	// until the group is rebuilt.
	tombstone
)

// List is a dense, order-significant array of face slots.
type List struct {
	policy removalPolicy
	slots  []Slot // len(slots) is the capacity
	count  int    // iteration bound
	live   int    // non-vacant slots below count
	dirty  bool
}

func newList(policy removalPolicy, capacity int) *List {
	if capacity < 1 {
		capacity = 1
	}
	return &List{policy: policy, slots: make([]Slot, capacity)}
}

// Len returns the number of live faces.
func (l *List) Len() int {
	return l.live
}

// Bound returns the iteration bound, including non-trailing tombstones.
func (l *List) Bound() int {
	return l.count
}

// Cap returns the size of the backing array.
func (l *List) Cap() int {
	return len(l.slots)
}

func (l *List) grow() {
	next := make([]Slot, len(l.slots)*2)
	copy(next, l.slots[:l.count])
	l.slots = next
}

// insert stores s and returns its index. Tombstoned lists reuse the first
// vacant slot before appending.
func (l *List) insert(s Slot) int {
	if l.policy == tombstone && l.live < l.count {
		for i := 0; i < l.count; i++ {
			if l.slots[i].owner == vacant {
				l.slots[i] = s
				l.live++
				return i
			}
		}
	}
	if l.count == len(l.slots) {
		l.grow()
	}
	i := l.count
	l.slots[i] = s
	l.count++
	l.live++
	return i
}

// remove drops the slot at i. It returns the index of a slot that now
// holds a different face and needs its owner repaired, or -1.
func (l *List) remove(i int) int {
	last := l.count - 1
	l.live--
	if l.policy == tombstone {
		l.slots[i] = Slot{owner: vacant}
		if i == last {
			for l.count > 0 && l.slots[l.count-1].owner == vacant {
				l.count--
			}
		}
		return -1
	}

	l.slots[i] = l.slots[last]
	l.slots[last] = Slot{owner: vacant}
	l.count--
	if i == last {
		return -1
	}
	return i
}
