package endpoint

// An Endpoint is a peer execution context that can hold references to
// registered objects.
//
// An endpoint's identity is stable, but the process backing it is not: the
// backing process can terminate, or be transparently swapped for another,
// at any time. Both transitions are reported on the endpoint's notification
// streams.
type Endpoint interface {
	// ID returns the endpoint's stable identifier.
	ID() string

	// ProcessID returns the identifier of the process currently backing the
	// endpoint.
	ProcessID() string

	// SubscribeDestroyed registers fn to be notified when one of the
	// endpoint's backing processes terminates.
	SubscribeDestroyed(fn func(processID string)) Subscription

	// SubscribeProcessChanged registers fn to be notified when the endpoint's
	// backing process is transparently swapped for another.
	SubscribeProcessChanged(fn func(oldID, newID string)) Subscription
}

// A Subscription is a token representing a single registration against one of
// an endpoint's notification streams.
//
// It is disposed of exactly once by the subscriber; Cancel() is idempotent.
type Subscription interface {
	// Cancel removes the subscription from the endpoint's stream.
	Cancel()
}

// Key identifies an owner: one endpoint as observed under one specific
// backing process.
type Key struct {
	EndpointID string
	ProcessID  string
}

// KeyOf returns the owner key for ep's current backing process.
func KeyOf(ep Endpoint) Key {
	return Key{
		EndpointID: ep.ID(),
		ProcessID:  ep.ProcessID(),
	}
}

func (k Key) String() string {
	return k.EndpointID + "@" + k.ProcessID
}
