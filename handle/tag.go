package handle

import "sync"

// TagStore attaches a recoverable identity to an object instance, allowing a
// store to find the existing handle for an object that is registered again.
type TagStore interface {
	// Get returns the handle previously associated with obj.
	Get(obj interface{}) (h Handle, ok bool)

	// Set associates h with obj.
	Set(obj interface{}, h Handle)

	// Clear removes any handle association for obj.
	Clear(obj interface{})
}

// MemoryTagStore is an in-memory TagStore.
//
// It is a side table keyed by object identity; no state is ever attached to
// the objects themselves. Objects must be comparable, so registering pointer
// types is the expected usage.
type MemoryTagStore struct {
	m    sync.Mutex
	tags map[interface{}]Handle
}

// Get returns the handle previously associated with obj.
func (t *MemoryTagStore) Get(obj interface{}) (Handle, bool) {
	t.m.Lock()
	defer t.m.Unlock()

	h, ok := t.tags[obj]
	return h, ok
}

// Set associates h with obj.
func (t *MemoryTagStore) Set(obj interface{}, h Handle) {
	t.m.Lock()
	defer t.m.Unlock()

	if t.tags == nil {
		t.tags = map[interface{}]Handle{}
	}

	t.tags[obj] = h
}

// Clear removes any handle association for obj.
func (t *MemoryTagStore) Clear(obj interface{}) {
	t.m.Lock()
	defer t.m.Unlock()

	delete(t.tags, obj)
}
