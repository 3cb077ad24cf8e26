package premiumapi

import (
	"github.com/Awais417/passwordreset/internal/models"
)

// CreateCheckoutSessionRequest is the payload for creating a hosted checkout
// session. Amount carries the already-discounted total; the coupon code rides
// along for the API's own record keeping and re-validation.
type CreateCheckoutSessionRequest struct {
	UserID     string  `json:"userId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CouponCode string  `json:"couponCode,omitempty"`
}

// CreateCheckoutSessionResponse carries the opaque session and its redirect URL.
type CreateCheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Coupon is the discount record returned by a successful validation.
type Coupon struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	Description string  `json:"description"`
}

// ValidateCouponResponse is the outcome of a coupon validation call. Success
// false with a message is a normal business outcome, not a transport error.
type ValidateCouponResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Coupon  *Coupon `json:"coupon,omitempty"`
}

// PaymentStatusResponse reports whether a user holds an active entitlement.
type PaymentStatusResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// VerifySessionResponse is the outcome of verifying a checkout session after
// the redirect back from the hosted payment page.
type VerifySessionResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// ResetPasswordResponse is the best-effort shape of the reset endpoint's reply.
type ResetPasswordResponse struct {
	Message string `json:"message"`
}
