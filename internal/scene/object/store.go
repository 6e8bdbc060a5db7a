package object

import "sync"

// Store owns scene objects and hands out stable IDs. It is safe for
// concurrent use so a loader goroutine can add objects while the render
// thread reads others; stored objects themselves are never mutated.
//
// IDs are never reused: a removed object may still be registered for
// drawing, and its ID must not start naming another object.
type Store struct {
	mu      sync.RWMutex
	objects []*Object
	live    int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add stores obj and returns a new ID.
func (s *Store) Add(obj *Object) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects = append(s.objects, obj)
	s.live++
	return ID(len(s.objects) - 1)
}

// Remove discards the object. Removing an unknown ID does nothing.
func (s *Store) Remove(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || int(id) >= len(s.objects) || s.objects[id] == nil {
		return
	}
	s.objects[id] = nil
	s.live--
}

// Object returns the object for id.
func (s *Store) Object(id ID) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || int(id) >= len(s.objects) {
		return nil, false
	}
	obj := s.objects[id]
	return obj, obj != nil
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}
