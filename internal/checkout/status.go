package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Awais417/passwordreset/internal/models"
	"github.com/Awais417/passwordreset/internal/premiumapi"
)

// RefreshDelay is how long the poller waits after a successful checkout
// initiation before its single best-effort status refresh. The backend
// confirms payments asynchronously via a webhook, so the status right after
// the redirect is usually stale.
const RefreshDelay = 2 * time.Second

// StatusState is the poller's position in the mount-fetch state machine.
type StatusState string

const (
	StatusUninitialized StatusState = "uninitialized"
	StatusLoading       StatusState = "loading"
	StatusReady         StatusState = "ready"
	StatusError         StatusState = "error"
)

// StatusPoller fetches a user's entitlement status. The mount fetch runs once
// per page lifetime and surfaces failures inline; the post-checkout refresh
// runs once, after a fixed delay, and only logs failures. At most two fetches
// ever happen per poller.
type StatusPoller struct {
	mu        sync.Mutex
	state     StatusState
	user      *models.User
	errMsg    string
	refreshed bool
	api       PremiumAPI
	delay     time.Duration
}

// NewStatusPoller creates an uninitialized poller with the standard refresh
// delay.
func NewStatusPoller(api PremiumAPI) *StatusPoller {
	return &StatusPoller{
		state: StatusUninitialized,
		api:   api,
		delay: RefreshDelay,
	}
}

// EnsureLoaded performs the mount fetch exactly once. Re-rendering with
// unchanged state is a no-op; an empty userID leaves the poller
// uninitialized without a network call.
func (p *StatusPoller) EnsureLoaded(ctx context.Context, userID string) {
	p.mu.Lock()
	if p.state != StatusUninitialized || userID == "" {
		p.mu.Unlock()
		return
	}
	p.state = StatusLoading
	p.mu.Unlock()

	status, err := p.api.GetPaymentStatus(ctx, userID)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		var apiErr *premiumapi.APIError
		if errors.As(err, &apiErr) {
			p.errMsg = apiErr.Message
		} else {
			p.errMsg = "Failed to load payment status"
		}
		p.state = StatusError
		log.Printf("[STATUS] Initial fetch failed for user %s: %v", userID, err)
		return
	}

	p.state = StatusReady
	p.user = status.User
}

// ScheduleRefresh arms the single delayed post-checkout refresh. Failure is a
// documented best-effort contract: it is logged, never surfaced. Subsequent
// calls are no-ops.
func (p *StatusPoller) ScheduleRefresh(userID string) {
	p.mu.Lock()
	if p.refreshed || userID == "" {
		p.mu.Unlock()
		return
	}
	p.refreshed = true
	delay := p.delay
	p.mu.Unlock()

	time.AfterFunc(delay, func() {
		status, err := p.api.GetPaymentStatus(context.Background(), userID)
		if err != nil {
			log.Printf("[STATUS] Best-effort refresh failed for user %s: %v", userID, err)
			return
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		p.state = StatusReady
		p.user = status.User
		p.errMsg = ""
	})
}

// State returns the current machine state.
func (p *StatusPoller) State() StatusState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// User returns the last fetched user record, or nil before the first
// successful fetch.
func (p *StatusPoller) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user
}

// ErrorMessage returns the surfaced message from a failed mount fetch, or "".
func (p *StatusPoller) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}
