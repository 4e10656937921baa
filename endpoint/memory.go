package endpoint

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// MemoryEndpoint is an in-memory implementation of the Endpoint interface.
type MemoryEndpoint struct {
	// EndpointID is the endpoint's stable identifier.
	EndpointID string

	m         sync.Mutex
	processID string
	next      uint64
	destroyed map[uint64]func(string)
	swapped   map[uint64]func(string, string)
}

// ID returns the endpoint's stable identifier.
func (e *MemoryEndpoint) ID() string {
	return e.EndpointID
}

// ProcessID returns the identifier of the process currently backing the
// endpoint.
func (e *MemoryEndpoint) ProcessID() string {
	e.m.Lock()
	defer e.m.Unlock()

	return e.processID
}

// SetProcessID sets the identifier of the process backing the endpoint
// without notifying any subscriber.
func (e *MemoryEndpoint) SetProcessID(id string) {
	e.m.Lock()
	defer e.m.Unlock()

	e.processID = id
}

// SubscribeDestroyed registers fn to be notified when one of the endpoint's
// backing processes terminates.
func (e *MemoryEndpoint) SubscribeDestroyed(fn func(processID string)) Subscription {
	e.m.Lock()
	defer e.m.Unlock()

	if e.destroyed == nil {
		e.destroyed = map[uint64]func(string){}
	}

	e.next++
	n := e.next
	e.destroyed[n] = fn

	return &subscription{
		id: subscriptionID(),
		cancel: func() {
			e.m.Lock()
			defer e.m.Unlock()
			delete(e.destroyed, n)
		},
	}
}

// SubscribeProcessChanged registers fn to be notified when the endpoint's
// backing process is transparently swapped for another.
func (e *MemoryEndpoint) SubscribeProcessChanged(fn func(oldID, newID string)) Subscription {
	e.m.Lock()
	defer e.m.Unlock()

	if e.swapped == nil {
		e.swapped = map[uint64]func(string, string){}
	}

	e.next++
	n := e.next
	e.swapped[n] = fn

	return &subscription{
		id: subscriptionID(),
		cancel: func() {
			e.m.Lock()
			defer e.m.Unlock()
			delete(e.swapped, n)
		},
	}
}

// Destroy reports the termination of the given backing process to the
// endpoint's destruction subscribers.
//
// The terminated process is named explicitly because after a swap the dead
// process is no longer the endpoint's current one.
func (e *MemoryEndpoint) Destroy(processID string) {
	e.m.Lock()
	fns := make([]func(string), 0, len(e.destroyed))
	for _, fn := range e.destroyed {
		fns = append(fns, fn)
	}
	e.m.Unlock()

	// Subscribers are invoked without holding the mutex; they typically
	// re-enter the registry and cancel their own tokens.
	for _, fn := range fns {
		fn(processID)
	}
}

// SwapProcess reports that the endpoint's backing process has been swapped
// for the process with the given identifier, then makes that process the
// current one.
func (e *MemoryEndpoint) SwapProcess(newID string) {
	e.m.Lock()
	oldID := e.processID
	e.processID = newID
	fns := make([]func(string, string), 0, len(e.swapped))
	for _, fn := range e.swapped {
		fns = append(fns, fn)
	}
	e.m.Unlock()

	for _, fn := range fns {
		fn(oldID, newID)
	}
}

// subscription is the token returned by a MemoryEndpoint for a single
// registration against one of its streams.
type subscription struct {
	id     string
	once   sync.Once
	cancel func()
}

// Cancel removes the subscription from the endpoint's stream.
func (s *subscription) Cancel() {
	s.once.Do(s.cancel)
}

func (s *subscription) String() string {
	return s.id
}

var subscriptionCounter atomic.Uint64

// subscriptionID returns a unique identifier for a subscription token.
//
// It includes a counter component for easy visual identification by humans,
// and a UUID component for global correlation in observability tools.
func subscriptionID() string {
	return fmt.Sprintf(
		"#%d %s",
		subscriptionCounter.Add(1),
		uuid.NewString(),
	)
}
