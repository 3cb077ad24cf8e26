package checkout

import (
	"context"
	"log"
	"strings"
	"sync"
)

// CouponState is the coupon widget's position in its state machine.
type CouponState string

const (
	CouponIdle       CouponState = "idle"
	CouponValidating CouponState = "validating"
	CouponApplied    CouponState = "applied"
	CouponRejected   CouponState = "rejected"
)

// AppliedCoupon is the ephemeral coupon held in page state once applied.
// At most one is applied at a time.
type AppliedCoupon struct {
	Code     string
	Discount float64
}

// CouponFlow runs the idle -> validating -> {applied | rejected} machine for
// the coupon widget. Apply never propagates an error past this boundary: every
// outcome, including transport faults, resolves to a terminal UI state.
type CouponFlow struct {
	mu      sync.Mutex
	state   CouponState
	applied *AppliedCoupon
	message string
	api     PremiumAPI
}

// NewCouponFlow creates an idle coupon flow backed by the given API.
func NewCouponFlow(api PremiumAPI) *CouponFlow {
	return &CouponFlow{
		state: CouponIdle,
		api:   api,
	}
}

// Apply validates the entered code and transitions to applied or rejected.
// An empty code (after trimming) rejects locally without a network call. A
// second validation is refused while one is in flight, and a new code cannot
// be applied over an existing one without removing it first.
func (f *CouponFlow) Apply(ctx context.Context, code string) {
	f.mu.Lock()
	if f.state == CouponValidating {
		f.mu.Unlock()
		return
	}
	if f.applied != nil {
		f.mu.Unlock()
		return
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		f.state = CouponRejected
		f.message = "Please enter a coupon code"
		f.mu.Unlock()
		return
	}

	f.state = CouponValidating
	f.message = ""
	f.mu.Unlock()

	result, err := f.api.ValidateCoupon(ctx, code)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		log.Printf("[COUPON] Validation of %s failed: %v", code, err)
		f.state = CouponRejected
		f.message = "Invalid coupon code"
		return
	}

	if !result.Success || result.Coupon == nil {
		f.state = CouponRejected
		f.message = result.Message
		if f.message == "" {
			f.message = "Invalid coupon code"
		}
		return
	}

	f.state = CouponApplied
	f.applied = &AppliedCoupon{
		Code:     strings.ToUpper(result.Coupon.Code),
		Discount: result.Coupon.Discount,
	}
	f.message = result.Message
	log.Printf("[COUPON] Applied %s (%.0f%% off)", f.applied.Code, f.applied.Discount)
}

// Remove clears the applied coupon and any rejection message and returns the
// flow to idle. It is a no-op while a validation is in flight.
func (f *CouponFlow) Remove() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == CouponValidating {
		return
	}
	f.state = CouponIdle
	f.applied = nil
	f.message = ""
}

// State returns the current machine state.
func (f *CouponFlow) State() CouponState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Applied returns the applied coupon, or nil when none is.
func (f *CouponFlow) Applied() *AppliedCoupon {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied
}

// Message returns the message to display for the current state.
func (f *CouponFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Discount returns the applied discount percentage, or 0 when no coupon is
// applied.
func (f *CouponFlow) Discount() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applied == nil {
		return 0
	}
	return f.applied.Discount
}
