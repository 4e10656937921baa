package tether

import (
	"sync"

	"github.com/dogmatiq/tether/endpoint"
	"github.com/dogmatiq/tether/handle"
)

// Registry exposes objects in the coordinating process to external endpoints.
//
// Each registered object is retained until every endpoint that referenced it
// has released it, either explicitly or by way of a lifecycle notification
// reporting that the endpoint's backing process has gone away.
type Registry struct {
	opts  *registryOptions
	store *handle.Store

	m          sync.Mutex
	owners     map[endpoint.Key]*owner
	migrations map[string]*migration
}

// New returns a new, empty registry.
//
// It is intended to be constructed once by the host's composition root and
// shared by every call site.
func New(options ...Option) *Registry {
	opts := resolveRegistryOptions(options...)

	return &Registry{
		opts: opts,
		store: &handle.Store{
			Tags:   opts.TagStore,
			Logger: opts.Logger,
		},
		owners:     map[endpoint.Key]*owner{},
		migrations: map[string]*migration{},
	}
}

// Get returns the object registered under the given handle.
//
// Absence is not an error; ok is false if the handle is unknown or every
// reference to it has been released.
func (r *Registry) Get(h handle.Handle) (obj interface{}, ok bool) {
	return r.store.Get(h)
}
