package tether

import (
	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/tether/endpoint"
	"github.com/dogmatiq/tether/handle"
)

// owner tracks the set of handles referenced by a single endpoint under a
// specific backing process.
//
// At most one owner record exists per key at any instant.
type owner struct {
	key       endpoint.Key
	contextID string
	handles   map[handle.Handle]struct{}

	destroyed endpoint.Subscription
	swapped   endpoint.Subscription
}

// unsubscribe disposes of the owner's lifecycle listener tokens.
//
// Cancellation is idempotent, so it is safe to call while one of the
// listeners is firing.
func (o *owner) unsubscribe() {
	if o.destroyed != nil {
		o.destroyed.Cancel()
	}

	if o.swapped != nil {
		o.swapped.Cancel()
	}
}

// subscribe registers the owner's lifecycle listeners against ep, scoped to
// the backing process recorded in the owner's key.
//
// The listeners capture the key and context as they are at subscription time;
// any reconciliation that changes either re-subscribes with fresh captures.
func (r *Registry) subscribe(ep endpoint.Endpoint, o *owner) {
	key := o.key
	contextID := o.contextID

	o.destroyed = ep.SubscribeDestroyed(
		func(processID string) {
			if processID != key.ProcessID {
				return
			}

			r.Clear(key, contextID)
		},
	)

	o.swapped = ep.SubscribeProcessChanged(
		func(oldID, newID string) {
			if oldID != key.ProcessID {
				return
			}

			r.beginMigration(ep, key, contextID, newID)
		},
	)
}

// resubscribe disposes of the owner's existing listener tokens and registers
// new ones scoped to the owner's current key and context.
func (r *Registry) resubscribe(ep endpoint.Endpoint, o *owner) {
	o.unsubscribe()
	r.subscribe(ep, o)
}

// createOwner adds a new owner record for the given key and subscribes its
// lifecycle listeners.
func (r *Registry) createOwner(
	ep endpoint.Endpoint,
	key endpoint.Key,
	contextID string,
) *owner {
	o := &owner{
		key:       key,
		contextID: contextID,
		handles:   map[handle.Handle]struct{}{},
	}

	r.owners[key] = o
	r.subscribe(ep, o)

	if logging.IsDebug(r.opts.Logger) {
		logging.Debug(
			r.opts.Logger,
			"owner %s added for context %s",
			key,
			contextID,
		)
	}

	return o
}
