package fixtures

import "github.com/dogmatiq/tether/handle"

// TagStoreStub is a test implementation of the handle.TagStore interface.
type TagStoreStub struct {
	handle.TagStore

	GetFunc   func(interface{}) (handle.Handle, bool)
	SetFunc   func(interface{}, handle.Handle)
	ClearFunc func(interface{})
}

// Get returns the handle previously associated with obj.
func (t *TagStoreStub) Get(obj interface{}) (handle.Handle, bool) {
	if t.GetFunc != nil {
		return t.GetFunc(obj)
	}

	if t.TagStore != nil {
		return t.TagStore.Get(obj)
	}

	return 0, false
}

// Set associates h with obj.
func (t *TagStoreStub) Set(obj interface{}, h handle.Handle) {
	if t.SetFunc != nil {
		t.SetFunc(obj, h)
		return
	}

	if t.TagStore != nil {
		t.TagStore.Set(obj, h)
	}
}

// Clear removes any handle association for obj.
func (t *TagStoreStub) Clear(obj interface{}) {
	if t.ClearFunc != nil {
		t.ClearFunc(obj)
		return
	}

	if t.TagStore != nil {
		t.TagStore.Clear(obj)
	}
}
