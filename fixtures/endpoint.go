package fixtures

import "github.com/dogmatiq/tether/endpoint"

// EndpointStub is a test implementation of the endpoint.Endpoint interface.
type EndpointStub struct {
	endpoint.Endpoint

	IDFunc                      func() string
	ProcessIDFunc               func() string
	SubscribeDestroyedFunc      func(func(string)) endpoint.Subscription
	SubscribeProcessChangedFunc func(func(string, string)) endpoint.Subscription
}

// ID returns the endpoint's stable identifier.
func (e *EndpointStub) ID() string {
	if e.IDFunc != nil {
		return e.IDFunc()
	}

	if e.Endpoint != nil {
		return e.Endpoint.ID()
	}

	return ""
}

// ProcessID returns the identifier of the process currently backing the
// endpoint.
func (e *EndpointStub) ProcessID() string {
	if e.ProcessIDFunc != nil {
		return e.ProcessIDFunc()
	}

	if e.Endpoint != nil {
		return e.Endpoint.ProcessID()
	}

	return ""
}

// SubscribeDestroyed registers fn to be notified when one of the endpoint's
// backing processes terminates.
func (e *EndpointStub) SubscribeDestroyed(fn func(processID string)) endpoint.Subscription {
	if e.SubscribeDestroyedFunc != nil {
		return e.SubscribeDestroyedFunc(fn)
	}

	if e.Endpoint != nil {
		return e.Endpoint.SubscribeDestroyed(fn)
	}

	return &SubscriptionStub{}
}

// SubscribeProcessChanged registers fn to be notified when the endpoint's
// backing process is transparently swapped for another.
func (e *EndpointStub) SubscribeProcessChanged(fn func(oldID, newID string)) endpoint.Subscription {
	if e.SubscribeProcessChangedFunc != nil {
		return e.SubscribeProcessChangedFunc(fn)
	}

	if e.Endpoint != nil {
		return e.Endpoint.SubscribeProcessChanged(fn)
	}

	return &SubscriptionStub{}
}

// SubscriptionStub is a test implementation of the endpoint.Subscription
// interface.
type SubscriptionStub struct {
	endpoint.Subscription

	CancelFunc func()
}

// Cancel removes the subscription from the endpoint's stream.
func (s *SubscriptionStub) Cancel() {
	if s.CancelFunc != nil {
		s.CancelFunc()
		return
	}

	if s.Subscription != nil {
		s.Subscription.Cancel()
	}
}
