package tether

import (
	"github.com/dogmatiq/tether/endpoint"
	"github.com/dogmatiq/tether/handle"
)

// Add registers obj as referenced by ep under the given context and returns
// the object's handle.
//
// Registration is idempotent: repeated calls with the same endpoint, context
// and object return the same handle and increment the object's reference
// count at most once per distinct owner.
func (r *Registry) Add(
	ep endpoint.Endpoint,
	contextID string,
	obj interface{},
) handle.Handle {
	return r.AddToProcess(ep, ep.ProcessID(), contextID, obj)
}

// AddToProcess is like Add(), but addresses the owner under a specific
// backing process rather than the endpoint's current one.
//
// It is intended for dispatch layers that must address an owner mid-migration,
// when a registration referring to the old backing process arrives after the
// swap has already been observed.
func (r *Registry) AddToProcess(
	ep endpoint.Endpoint,
	processID string,
	contextID string,
	obj interface{},
) handle.Handle {
	r.m.Lock()
	defer r.m.Unlock()

	h := r.store.Intern(obj)

	o := r.resolveOwner(
		ep,
		endpoint.Key{
			EndpointID: ep.ID(),
			ProcessID:  processID,
		},
		contextID,
	)

	if _, ok := o.handles[h]; !ok {
		o.handles[h] = struct{}{}
		r.store.Reference(h)
	}

	return h
}

// resolveOwner returns the owner record that a registration under the given
// key and context addresses, creating, moving or updating records as required
// by the reconciliation rules.
func (r *Registry) resolveOwner(
	ep endpoint.Endpoint,
	key endpoint.Key,
	contextID string,
) *owner {
	// A pending migration for this context is consumed by the first
	// registration that addresses either side of it, whether the dispatch
	// layer refers to the old backing process or the new one.
	if mig, ok := r.migrations[contextID]; ok {
		if mig.oldKey == key || mig.newKey == key {
			return r.completeMigration(ep, mig, contextID)
		}
	}

	if o, ok := r.owners[key]; ok {
		if o.contextID == contextID {
			return o
		}

		// The same process reloaded without a swap. The owner's context is
		// updated in place; handles acquired under the prior context are
		// retained until the owner is cleared.
		o.contextID = contextID
		r.resubscribe(ep, o)

		return o
	}

	return r.createOwner(ep, key, contextID)
}
