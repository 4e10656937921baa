package tether

import (
	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/tether/endpoint"
	"github.com/dogmatiq/tether/handle"
)

// Remove releases ep's reference to the given handle.
//
// It is a no-op if the owner is unknown, its recorded context does not equal
// contextID exactly, or the owner does not hold the handle. This defends
// against stale messages from an already-torn-down context and against double
// release.
func (r *Registry) Remove(
	ep endpoint.Endpoint,
	contextID string,
	h handle.Handle,
) {
	key := endpoint.KeyOf(ep)

	r.m.Lock()
	defer r.m.Unlock()

	o, ok := r.owners[key]
	if !ok || o.contextID != contextID {
		return
	}

	if _, ok := o.handles[h]; !ok {
		return
	}

	delete(o.handles, h)
	r.store.Dereference(h)
}

// Clear releases every handle held by the owner under the given key and
// deletes the owner record, along with any pending migration entry for the
// context.
//
// It is a no-op if the owner is unknown or its recorded context does not
// equal contextID exactly.
func (r *Registry) Clear(key endpoint.Key, contextID string) {
	r.m.Lock()
	defer r.m.Unlock()

	o, ok := r.owners[key]
	if !ok || o.contextID != contextID {
		return
	}

	for h := range o.handles {
		r.store.Dereference(h)
	}

	o.unsubscribe()
	delete(r.owners, key)
	delete(r.migrations, contextID)

	if logging.IsDebug(r.opts.Logger) {
		logging.Debug(
			r.opts.Logger,
			"owner %s removed for context %s",
			key,
			contextID,
		)
	}
}
