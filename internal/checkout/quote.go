package checkout

import (
	"math"
)

// FinalAmount computes the discounted total and the savings for display,
// both rounded to currency precision. discountPercent is 0 when no coupon is
// applied. Total over all non-negative inputs; no error conditions.
func FinalAmount(base, discountPercent float64) (final, discountAmount float64) {
	discountAmount = base * discountPercent / 100
	final = base - discountAmount
	return roundCents(final), roundCents(discountAmount)
}

// ChargeAmount is the un-rounded discounted total actually sent to checkout
// creation. The API is the authority on the true chargeable amount; no
// client-side re-validation happens here.
func ChargeAmount(base, discountPercent float64) float64 {
	return base - base*discountPercent/100
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote is the derived price breakdown for the current coupon state. It is
// recomputed on every render and never persisted.
type Quote struct {
	Base           float64
	DiscountAmount float64
	Final          float64
}

// NewQuote builds a quote from the base amount and the applied discount.
func NewQuote(base, discountPercent float64) Quote {
	final, discount := FinalAmount(base, discountPercent)
	return Quote{
		Base:           roundCents(base),
		DiscountAmount: discount,
		Final:          final,
	}
}
