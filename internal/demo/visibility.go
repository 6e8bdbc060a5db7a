package demo

import (
	"github.com/Faultbox/trackview/internal/frame"
	"github.com/Faultbox/trackview/pkg/math"
)

// Visibility shows route blocks near the camera and hides the rest by
// queueing commands for the render thread.
type Visibility struct {
	route        *Route
	queue        *frame.Queue
	viewDistance float64

	shown     map[int]bool
	permanent bool
}

// NewVisibility creates an updater showing blocks within viewDistance
// metres of the camera along the route.
func NewVisibility(route *Route, queue *frame.Queue, viewDistance float64) *Visibility {
	return &Visibility{
		route:        route,
		queue:        queue,
		viewDistance: viewDistance,
		shown:        make(map[int]bool),
	}
}

// Visible reports whether block i should be shown for a camera at eye.
func (v *Visibility) Visible(i int, eye math.Vec3) bool {
	l := v.route.BlockLength()
	z0 := float64(i) * l
	z1 := z0 + l
	switch {
	case eye.Z < z0:
		return z0-eye.Z <= v.viewDistance
	case eye.Z > z1:
		return eye.Z-z1 <= v.viewDistance
	default:
		return true
	}
}

// Update queues Show and Hide commands for blocks whose visibility
// changed and returns how many blocks were shown and hidden.
func (v *Visibility) Update(eye math.Vec3) (shown, hidden int) {
	if !v.permanent {
		if p := v.route.Permanent(); len(p) > 0 {
			for _, o := range p {
				v.queue.Show(o.ID, o.Kind)
			}
			v.permanent = true
		}
	}

	for _, i := range v.route.Loaded() {
		want := v.Visible(i, eye)
		if want == v.shown[i] {
			continue
		}
		placed, _ := v.route.Block(i)
		for _, o := range placed {
			if want {
				v.queue.Show(o.ID, o.Kind)
			} else {
				v.queue.Hide(o.ID)
			}
		}
		if want {
			v.shown[i] = true
			shown++
		} else {
			delete(v.shown, i)
			hidden++
		}
	}
	return shown, hidden
}

// Shown returns the number of blocks currently shown.
func (v *Visibility) Shown() int {
	return len(v.shown)
}
