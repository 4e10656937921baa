package tether

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/linger"
	"github.com/dogmatiq/tether/endpoint"
)

// migration records the pending movement of a context's owner record from one
// owner key to another.
//
// An entry exists only transiently, from the moment a process swap is
// observed until the context's next registration confirms it, or until it is
// evicted by Run().
type migration struct {
	oldKey endpoint.Key
	newKey endpoint.Key
	at     time.Time
}

// beginMigration writes a migration entry for the owner's context, bridging
// the gap between a process-swap notification and the migrated context's
// first registration.
func (r *Registry) beginMigration(
	ep endpoint.Endpoint,
	key endpoint.Key,
	contextID string,
	newProcessID string,
) {
	r.m.Lock()
	defer r.m.Unlock()

	o, ok := r.owners[key]
	if !ok || o.contextID != contextID {
		return
	}

	newKey := endpoint.Key{
		EndpointID: ep.ID(),
		ProcessID:  newProcessID,
	}

	r.migrations[contextID] = &migration{
		oldKey: key,
		newKey: newKey,
		at:     time.Now(),
	}

	// The swap listener is one-shot, but the destruction listener stays armed
	// so that the old process's death still clears this owner record.
	o.swapped.Cancel()

	logging.Log(
		r.opts.Logger,
		"owner %s migrating to %s",
		key,
		newKey,
	)
}

// completeMigration consumes a pending migration entry, moving the owner
// record stored under the old key to the new key without disturbing the
// reference counts it holds.
func (r *Registry) completeMigration(
	ep endpoint.Endpoint,
	mig *migration,
	contextID string,
) *owner {
	delete(r.migrations, contextID)

	o, ok := r.owners[mig.oldKey]
	if !ok {
		// The old owner was already cleared; the migrated context starts
		// afresh under the new key.
		return r.createOwner(ep, mig.newKey, contextID)
	}

	delete(r.owners, mig.oldKey)
	o.unsubscribe()

	if dst, ok := r.owners[mig.newKey]; ok {
		// A record already occupies the new key; fold the migrated handles
		// into it, releasing duplicated references exactly once.
		for h := range o.handles {
			if _, ok := dst.handles[h]; ok {
				r.store.Dereference(h)
			} else {
				dst.handles[h] = struct{}{}
			}
		}

		dst.contextID = contextID
		r.resubscribe(ep, dst)

		return dst
	}

	o.key = mig.newKey
	o.contextID = contextID
	r.owners[mig.newKey] = o
	r.subscribe(ep, o)

	logging.Log(
		r.opts.Logger,
		"owner %s migrated to %s",
		mig.oldKey,
		mig.newKey,
	)

	return o
}

// Run evicts migration entries that have gone unconfirmed for longer than the
// registry's migration TTL, until ctx is canceled.
//
// The registry is fully functional without a running janitor; unconfirmed
// entries are then retained until their context is cleared.
func (r *Registry) Run(ctx context.Context) error {
	for {
		if err := linger.Sleep(ctx, r.opts.MigrationTTL); err != nil {
			return err
		}

		r.evictMigrations()
	}
}

// evictMigrations deletes migration entries older than the registry's
// migration TTL.
func (r *Registry) evictMigrations() {
	cutoff := time.Now().Add(-r.opts.MigrationTTL)

	r.m.Lock()
	defer r.m.Unlock()

	for contextID, mig := range r.migrations {
		if mig.at.Before(cutoff) {
			delete(r.migrations, contextID)

			logging.Log(
				r.opts.Logger,
				"migration of context %s to %s abandoned, never confirmed",
				contextID,
				mig.newKey,
			)
		}
	}
}
