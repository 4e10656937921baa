package handle

import (
	"sync"

	"github.com/dogmatiq/dodeca/logging"
)

// Handle is the identifier of an object registered in a store.
//
// Handles are allocated monotonically starting at 1 and are never reused for
// the lifetime of the process.
type Handle uint64

// Store maps handles to registered objects and tracks how many owners
// currently hold a reference to each of them.
type Store struct {
	// Tags is used to attach a recoverable identity to registered objects so
	// that repeated registration of the same instance is idempotent.
	//
	// If it is nil, an in-memory tag store private to this store is used.
	Tags TagStore

	// Logger is the target for log messages about additions to and removals
	// from the store.
	Logger logging.Logger

	m       sync.Mutex
	next    Handle
	entries map[Handle]*entry
}

// entry is the store's record of a single registered object.
type entry struct {
	object interface{}
	refs   int
}

// Intern returns the handle for the given object, allocating the next handle
// if the object is not already registered.
//
// New entries begin with a reference count of zero. The caller is expected to
// call Reference() once the handle is actually held by an owner.
func (s *Store) Intern(obj interface{}) Handle {
	s.m.Lock()
	defer s.m.Unlock()

	tags := s.tags()

	if h, ok := tags.Get(obj); ok {
		// A tag with no backing entry is stale; fall through and allocate a
		// fresh handle for the object.
		if _, ok := s.entries[h]; ok {
			return h
		}
	}

	s.next++
	h := s.next

	if s.entries == nil {
		s.entries = map[Handle]*entry{}
	}

	s.entries[h] = &entry{object: obj}
	tags.Set(obj, h)

	if logging.IsDebug(s.Logger) {
		logging.Debug(
			s.Logger,
			"handle %d added (%T)",
			h,
			obj,
		)
	}

	return h
}

// Get returns the object registered under the given handle.
//
// Absence is not an error; ok is false if the handle is unknown.
func (s *Store) Get(h Handle) (obj interface{}, ok bool) {
	s.m.Lock()
	defer s.m.Unlock()

	if e, ok := s.entries[h]; ok {
		return e.object, true
	}

	return nil, false
}

// Reference records an additional owner of the given handle.
//
// It is a no-op if the handle is unknown.
func (s *Store) Reference(h Handle) {
	s.m.Lock()
	defer s.m.Unlock()

	if e, ok := s.entries[h]; ok {
		e.refs++
	}
}

// Dereference releases one owner's reference to the given handle.
//
// It is a no-op if the handle is unknown, making a double release harmless.
// The entry is deleted, and the object's identity tag cleared, in the same
// critical section the moment the count reaches zero, so that a later
// registration of the same object allocates a fresh handle.
func (s *Store) Dereference(h Handle) {
	s.m.Lock()
	defer s.m.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return
	}

	e.refs--
	if e.refs > 0 {
		return
	}

	s.tags().Clear(e.object)
	delete(s.entries, h)

	if logging.IsDebug(s.Logger) {
		logging.Debug(
			s.Logger,
			"handle %d removed (%T)",
			h,
			e.object,
		)
	}
}

// tags returns the store's tag store, falling back to an in-memory store
// private to s.
func (s *Store) tags() TagStore {
	if s.Tags == nil {
		s.Tags = &MemoryTagStore{}
	}

	return s.Tags
}
