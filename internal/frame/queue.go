package frame

import (
	"sync"

	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
)

type op uint8

const (
	opShow op = iota
	opHide
	opReclassify
	opInvalidate
)

type command struct {
	op         op
	id         object.ID
	kind       facelist.Kind
	classifier facelist.Classifier
}

// Queue collects visibility changes from any goroutine until the render
// thread applies them at the start of a frame.
type Queue struct {
	mu      sync.Mutex
	pending []command
	spare   []command
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) push(c command) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// Show queues an object to be shown as kind.
func (q *Queue) Show(id object.ID, kind facelist.Kind) {
	q.push(command{op: opShow, id: id, kind: kind})
}

// Hide queues an object to be hidden.
func (q *Queue) Hide(id object.ID) {
	q.push(command{op: opHide, id: id})
}

// Reclassify queues a classifier change followed by re-adding every shown
// object.
func (q *Queue) Reclassify(c facelist.Classifier) {
	q.push(command{op: opReclassify, classifier: c})
}

// InvalidateGroups queues a rebuild of every static group batch.
func (q *Queue) InvalidateGroups() {
	q.push(command{op: opInvalidate})
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain applies queued commands to s in submission order and returns how
// many were applied.
func (q *Queue) Drain(s *facelist.State) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.mu.Unlock()

	for _, c := range batch {
		switch c.op {
		case opShow:
			s.Show(c.id, c.kind)
		case opHide:
			s.Hide(c.id)
		case opReclassify:
			s.SetClassifier(c.classifier)
			s.ReAddAll()
		case opInvalidate:
			s.InvalidateGroups()
		}
	}

	clear(batch)
	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}
