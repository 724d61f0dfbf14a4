package optimistic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"guestlist/src-server/model"
)

// ErrInFlight means another action on the same registration has not settled
// yet. Actions on different registrations never block each other.
var ErrInFlight = errors.New("another action on this registration is in flight")

// TransitionFunc performs the authoritative call and returns the status the
// store actually accepted.
type TransitionFunc func(ctx context.Context, registrationID string) (model.RegistrationStatus, error)

// Coordinator keeps a list view's statuses consistent with in-flight calls:
// the tentative value shows immediately, the recorded previous value comes
// back on failure, and the view never ends up showing a status the store did
// not accept.
type Coordinator struct {
	mu       sync.Mutex
	view     map[string]model.RegistrationStatus
	inflight map[string]struct{}

	// fired after each settled success, for aggregate-count refreshes
	refresh func()
}

func New(refresh func()) *Coordinator {
	return &Coordinator{
		view:     make(map[string]model.RegistrationStatus),
		inflight: make(map[string]struct{}),
		refresh:  refresh,
	}
}

// Load replaces the view with authoritative rows. In-flight entries keep
// their tentative value.
func (c *Coordinator) Load(registrations []*model.Registration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, registration := range registrations {
		if _, busy := c.inflight[registration.ID]; busy {
			continue
		}
		c.view[registration.ID] = registration.Status
	}
}

// Status returns the currently displayed status for a registration.
func (c *Coordinator) Status(registrationID string) (model.RegistrationStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status, ok := c.view[registrationID]
	return status, ok
}

// InFlight reports whether an action on the registration is unsettled; the
// call site disables the control while this is true.
func (c *Coordinator) InFlight(registrationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[registrationID]
	return busy
}

// Apply shows tentative immediately, dispatches call, and reconciles: on
// success the store's status stands, on failure the previous value comes
// back. A second Apply on the same id while one is unsettled fails with
// ErrInFlight.
func (c *Coordinator) Apply(ctx context.Context, registrationID string, tentative model.RegistrationStatus, call TransitionFunc) error {
	c.mu.Lock()
	if _, busy := c.inflight[registrationID]; busy {
		c.mu.Unlock()
		return ErrInFlight
	}
	previous, hadPrevious := c.view[registrationID]
	c.inflight[registrationID] = struct{}{}
	c.view[registrationID] = tentative
	c.mu.Unlock()

	accepted, err := call(ctx, registrationID)

	c.mu.Lock()
	delete(c.inflight, registrationID)
	if err != nil {
		if hadPrevious {
			c.view[registrationID] = previous
		} else {
			delete(c.view, registrationID)
		}
		c.mu.Unlock()
		return fmt.Errorf("optimistic (*Coordinator).Apply: %w", err)
	}
	c.view[registrationID] = accepted
	c.mu.Unlock()

	if c.refresh != nil {
		go c.refresh()
	}
	return nil
}
