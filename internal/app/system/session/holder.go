package session

import (
	"sync"

	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Holder is the single state container for one running instance. Readers
// get immutable snapshots; writes go through Dispatch and are visible to
// every Snapshot call that starts after Dispatch returns.
type Holder struct {
	mu    sync.RWMutex
	state State
}

// NewHolder returns a Holder in the LoggedOut state.
func NewHolder() *Holder {
	return &Holder{state: LoggedOut()}
}

// Snapshot returns the current state.
func (h *Holder) Snapshot() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Dispatch reduces a against the current state, stores and returns the result.
func (h *Holder) Dispatch(a Action) State {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = Reduce(h.state, a)
	return h.state
}

// Login signs in as role.
func (h *Holder) Login(role models.Role) State {
	return h.Dispatch(Login(role))
}

// Logout resets to LoggedOut. Calling it while logged out is a no-op.
func (h *Holder) Logout() State {
	return h.Dispatch(Logout())
}
