package frame

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
)

func TestQueueAppliesInOrder(t *testing.T) {
	store := object.NewStore()
	state := facelist.New(store, facelist.Options{CheckInvariants: true})
	id := store.Add(plane("a", 0, true, color(255), 0))

	q := NewQueue()
	q.Show(id, facelist.Dynamic)
	q.Hide(id)
	q.Show(id, facelist.Dynamic)
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, 3, q.Drain(state))
	assert.Zero(t, q.Len())
	assert.True(t, state.Shown(id))

	assert.Zero(t, q.Drain(state))
}

func TestQueueConcurrentProducers(t *testing.T) {
	store := object.NewStore()
	state := facelist.New(store, facelist.Options{CheckInvariants: true})
	q := NewQueue()

	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				q.Show(store.Add(plane("p", 0, true, color(255), 0)), facelist.Dynamic)
			}
		}()
	}

	applied := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for waiting := true; waiting; {
		select {
		case <-done:
			waiting = false
		default:
		}
		applied += q.Drain(state)
	}

	assert.Equal(t, producers*perProducer, applied)
	assert.Equal(t, producers*perProducer, state.Objects())
	assert.Equal(t, producers*perProducer, state.Len(facelist.DynamicOpaque))
}
