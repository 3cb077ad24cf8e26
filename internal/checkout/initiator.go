package checkout

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Awais417/passwordreset/internal/premiumapi"
)

// Initiator creates checkout sessions against the premium API and hands the
// redirect URL back to the web layer, which performs the actual navigation.
// One attempt at a time; failure never auto-retries.
type Initiator struct {
	mu       sync.Mutex
	inFlight bool
	errMsg   string
	api      PremiumAPI
}

// NewInitiator creates an idle checkout initiator.
func NewInitiator(api PremiumAPI) *Initiator {
	return &Initiator{api: api}
}

// Start creates a checkout session for the already-discounted amount and
// returns the redirect URL. ok is false when the attempt was a no-op (missing
// user, already in flight) or failed; the failure message is then available
// via ErrorMessage and the initiator is interactive again.
func (i *Initiator) Start(ctx context.Context, userID string, amount float64, currency, couponCode string) (redirectURL string, ok bool) {
	i.mu.Lock()
	if userID == "" || i.inFlight {
		i.mu.Unlock()
		return "", false
	}
	i.inFlight = true
	i.errMsg = ""
	i.mu.Unlock()

	session, err := i.api.CreateCheckoutSession(ctx, premiumapi.CreateCheckoutSessionRequest{
		UserID:     userID,
		Amount:     amount,
		Currency:   currency,
		CouponCode: couponCode,
	})

	i.mu.Lock()
	defer i.mu.Unlock()
	i.inFlight = false

	if err != nil {
		var apiErr *premiumapi.APIError
		if errors.As(err, &apiErr) {
			i.errMsg = apiErr.Message
		} else {
			i.errMsg = "Failed to start checkout. Please try again."
		}
		log.Printf("[CHECKOUT] Session creation failed for user %s: %v", userID, err)
		return "", false
	}

	if session.URL == "" {
		i.errMsg = "No checkout URL received"
		log.Printf("[CHECKOUT] Session %s has no redirect URL", session.SessionID)
		return "", false
	}

	return session.URL, true
}

// InFlight reports whether a session creation is currently outstanding.
func (i *Initiator) InFlight() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inFlight
}

// ErrorMessage returns the message from the last failed attempt, or "".
func (i *Initiator) ErrorMessage() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.errMsg
}
