package checkout

import (
	"sync"
	"time"
)

// PageState holds one visitor's payment-page state, carrying the coupon
// widget, the checkout initiator and the status poller across the
// POST/redirect/GET cycle.
type PageState struct {
	ID        string
	UserID    string
	Coupon    *CouponFlow
	Checkout  *Initiator
	Status    *StatusPoller
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StateStore manages per-visitor page state, keyed by the visitor's flow ID.
type StateStore struct {
	mu     sync.RWMutex
	states map[string]*PageState
	api    PremiumAPI
}

// NewStateStore creates an empty store whose page states talk to the given
// API.
func NewStateStore(api PremiumAPI) *StateStore {
	return &StateStore{
		states: make(map[string]*PageState),
		api:    api,
	}
}

// Get retrieves the page state for a flow ID.
func (s *StateStore) Get(id string) (*PageState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, exists := s.states[id]
	return state, exists
}

// GetOrCreate retrieves the page state for a flow ID, creating a fresh one on
// first sight of the visitor.
func (s *StateStore) GetOrCreate(id string) *PageState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, exists := s.states[id]; exists {
		state.UpdatedAt = time.Now()
		return state
	}

	now := time.Now()
	state := &PageState{
		ID:        id,
		Coupon:    NewCouponFlow(s.api),
		Checkout:  NewInitiator(s.api),
		Status:    NewStatusPoller(s.api),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.states[id] = state
	return state
}

// Delete removes the page state for a flow ID.
func (s *StateStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}

// Len returns the number of tracked page states.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Prune drops page states idle for longer than maxAge and returns how many
// were removed. The portal runs this periodically so abandoned visitors do
// not accumulate.
func (s *StateStore) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, state := range s.states {
		if state.UpdatedAt.Before(cutoff) {
			delete(s.states, id)
			removed++
		}
	}
	return removed
}
