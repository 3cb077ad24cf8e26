package models

import (
	"time"
)

// User is the read-only cached copy of the user record owned by the premium
// API. The portal never mutates it; it only renders what the API reports.
type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PaymentStatus    bool       `json:"paymentStatus"`
	StripeCustomerID *string    `json:"stripeCustomerId,omitempty"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// HasPremium returns true if the user holds an active entitlement.
func (u *User) HasPremium() bool {
	return u != nil && u.PaymentStatus
}

// PaidOn returns the payment date formatted for display, or "" when the
// user has no recorded payment.
func (u *User) PaidOn() string {
	if u == nil || u.PaymentDate == nil {
		return ""
	}
	return u.PaymentDate.Format("Jan 2, 2006")
}
