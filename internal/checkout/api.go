// Package checkout holds the page-level state machines behind the premium
// upgrade flow: the price quote, the coupon widget, the checkout initiator,
// the status poller and the post-redirect session verifier. The web layer
// drives these machines and renders their state; all business decisions live
// in the external premium API.
package checkout

import (
	"context"

	"github.com/Awais417/passwordreset/internal/premiumapi"
)

// PremiumAPI is the slice of the premium API the checkout flows depend on.
// *premiumapi.Client satisfies it; tests substitute a mock.
type PremiumAPI interface {
	CreateCheckoutSession(ctx context.Context, req premiumapi.CreateCheckoutSessionRequest) (*premiumapi.CreateCheckoutSessionResponse, error)
	ValidateCoupon(ctx context.Context, code string) (*premiumapi.ValidateCouponResponse, error)
	GetPaymentStatus(ctx context.Context, userID string) (*premiumapi.PaymentStatusResponse, error)
	VerifySession(ctx context.Context, sessionID string) (*premiumapi.VerifySessionResponse, error)
}
