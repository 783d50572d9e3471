// Package state holds the board's drawable objects and the tool settings
// shared with the toolbar.
package state

import (
	"errors"
	"fmt"
	"sync"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/logx"
)

// ErrNoKind is reported when an object's body is missing or is not one of
// the body values.
var ErrNoKind = errors.New("object has no kind")

// Store is the ordered paint list of the board. The order of insertion is
// the paint order; Delete keeps the relative order of the remaining objects.
//
// Store is safe for concurrent use. Outlines and images held by listed
// objects are shared and must be treated as read-only.
type Store struct {
	seq       sequence
	objects   []Object
	index     map[ID]int // ID -> position in objects
	listeners map[int]func()
	nextLis   int
	mu        sync.RWMutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		index:     make(map[ID]int),
		listeners: make(map[int]func()),
	}
}

// Add appends obj to the end of the paint list and returns its newly
// assigned ID; obj.ID is ignored. An object without a valid body is rejected
// and -1 is returned.
func (s *Store) Add(obj Object) ID {
	if !ValidBody(obj.Body) {
		logx.Logger().Warn("[STORE] rejected object", "err", ErrNoKind, "body", fmt.Sprintf("%T", obj.Body))
		return -1
	}

	s.mu.Lock()
	obj.ID = s.seq.next()
	obj.Body = cloneBody(obj.Body)
	s.index[obj.ID] = len(s.objects)
	s.objects = append(s.objects, obj)
	n := len(s.objects)
	s.mu.Unlock()

	logx.Logger().Debug("[STORE] object added", "id", obj.ID, "kind", obj.Kind().String(), "objects", n)
	s.notify()
	return obj.ID
}

// Update merges patch onto the object with the given ID. Unknown IDs are
// ignored, as are patches carrying an invalid body.
func (s *Store) Update(id ID, patch Patch) {
	if patch.Body != nil && !ValidBody(patch.Body) {
		logx.Logger().Warn("[STORE] rejected update", "id", id, "err", ErrNoKind, "body", fmt.Sprintf("%T", patch.Body))
		return
	}

	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if patch.Body != nil {
		patch.Body = cloneBody(patch.Body)
	}
	patch.apply(&s.objects[i])
	s.mu.Unlock()

	s.notify()
}

// Delete removes the object with the given ID. Unknown IDs are ignored.
func (s *Store) Delete(id ID) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].ID] = j
	}
	s.mu.Unlock()

	logx.Logger().Debug("[STORE] object deleted", "id", id)
	s.notify()
}

// Clear removes every object. IDs handed out before remain unused.
func (s *Store) Clear() {
	s.mu.Lock()
	n := len(s.objects)
	s.objects = nil
	s.index = make(map[ID]int)
	s.mu.Unlock()

	logx.Logger().Info("[STORE] cleared", "objects", n)
	s.notify()
}

// List returns a snapshot of the objects in paint order.
func (s *Store) List() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects := make([]Object, len(s.objects))
	copy(objects, s.objects)
	return objects
}

// Get returns the object with the given ID.
func (s *Store) Get(id ID) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Object{}, false
	}
	return s.objects[i], true
}

// Len returns the number of objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Bounds returns the union of all object bounds. The second result is false
// for an empty store.
func (s *Store) Bounds() (geom.Area, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.objects) == 0 {
		return geom.Area{}, false
	}
	bounds := s.objects[0].Body.Bounds()
	for _, obj := range s.objects[1:] {
		bounds = bounds.Union(obj.Body.Bounds())
	}
	return bounds, true
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.nextLis
	s.nextLis++
	s.listeners[key] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, key)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

func cloneBody(b Body) Body {
	switch v := b.(type) {
	case Stroke:
		v.Outline = append([]geom.Point(nil), v.Outline...)
		return v
	case EraserStroke:
		v.Outline = append([]geom.Point(nil), v.Outline...)
		return v
	}
	return b
}
