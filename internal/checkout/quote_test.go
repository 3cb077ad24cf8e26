package checkout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name         string
		base         float64
		discount     float64
		wantFinal    float64
		wantDiscount float64
	}{
		{name: "no discount", base: 20, discount: 0, wantFinal: 20, wantDiscount: 0},
		{name: "twenty percent off twenty", base: 20, discount: 20, wantFinal: 16, wantDiscount: 4},
		{name: "full discount", base: 20, discount: 100, wantFinal: 0, wantDiscount: 20},
		{name: "odd cents round", base: 29.99, discount: 15, wantFinal: 25.49, wantDiscount: 4.5},
		{name: "zero base", base: 0, discount: 50, wantFinal: 0, wantDiscount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, discount := FinalAmount(tt.base, tt.discount)
			assert.InDelta(t, tt.wantFinal, final, 0.001)
			assert.InDelta(t, tt.wantDiscount, discount, 0.001)
		})
	}
}

func TestFinalAmountConservation(t *testing.T) {
	// For all base >= 0 and discount in [0,100]: final + discountAmount == base
	// within rounding epsilon, and final <= base.
	bases := []float64{0, 0.01, 1, 9.99, 20, 29.99, 100, 12345.67}
	discounts := []float64{0, 1, 12.5, 20, 33.3, 50, 99, 100}

	for _, base := range bases {
		for _, discount := range discounts {
			final, discountAmount := FinalAmount(base, discount)
			assert.InDelta(t, base, final+discountAmount, 0.01,
				"base=%v discount=%v", base, discount)
			assert.LessOrEqual(t, final, base+1e-9, "base=%v discount=%v", base, discount)
		}
	}
}

func TestChargeAmount(t *testing.T) {
	// The charge amount is un-rounded; only the display values are.
	charge := ChargeAmount(29.99, 33.3)
	assert.InDelta(t, 29.99-29.99*0.333, charge, 1e-9)
	assert.NotEqual(t, math.Round(charge*100)/100, charge)

	assert.Equal(t, 20.0, ChargeAmount(20, 0))
	assert.Equal(t, 16.0, ChargeAmount(20, 20))
}

func TestNewQuote(t *testing.T) {
	quote := NewQuote(20, 20)
	assert.Equal(t, 20.0, quote.Base)
	assert.Equal(t, 4.0, quote.DiscountAmount)
	assert.Equal(t, 16.0, quote.Final)

	// Removing a coupon restores the base amount exactly.
	restored := NewQuote(20, 0)
	assert.Equal(t, 20.0, restored.Final)
	assert.Equal(t, 0.0, restored.DiscountAmount)
}
