package cart

import (
	"time"

	"github.com/authentimart/cart-api/core/voucher"
)

// Breakdown is the pricing result for a cart. All amounts are integer
// minor units. Total = max(0, Subtotal-DiscountAmount) + ShippingCost.
type Breakdown struct {
	Subtotal       int    `json:"subtotal"`
	DiscountAmount int    `json:"discountAmount"`
	ShippingCost   int    `json:"shippingCost"`
	Total          int    `json:"total"`
	VoucherCode    string `json:"voucherCode,omitempty"`
	VoucherInvalid bool   `json:"voucherInvalid,omitempty"`
}

// Price computes the pricing breakdown for the cart against the resolved
// voucher, if any, and an externally supplied shipping cost. It never
// mutates the cart.
//
// A voucher is re-checked here even though it was validated when applied:
// removing items can push the subtotal back under the voucher minimum, and
// time can push the voucher past its window. Such a voucher contributes no
// discount and the breakdown is flagged VoucherInvalid so callers can tell
// the shopper instead of silently charging full price at checkout.
func (c *Cart) Price(v *voucher.Voucher, now time.Time, shippingCost int) Breakdown {
	b := Breakdown{
		Subtotal:     c.Subtotal(),
		ShippingCost: shippingCost,
		VoucherCode:  c.VoucherCode,
	}

	if v != nil {
		if err := v.EligibleAt(now, b.Subtotal); err != nil {
			b.VoucherInvalid = true
		} else {
			b.DiscountAmount = v.Discount(b.Subtotal)
		}
	} else if c.VoucherCode != "" {
		// Code on the cart but the voucher itself is gone.
		b.VoucherInvalid = true
	}

	payable := b.Subtotal - b.DiscountAmount
	if payable < 0 {
		payable = 0
	}
	b.Total = payable + b.ShippingCost

	return b
}

// ShippingCost is the flat-rate-with-free-threshold rule the storefront
// uses. Shipping is an input to pricing, not part of the engine proper, so
// it lives here only as a convenience for the handlers.
func ShippingCost(subtotal, flatRate, freeOver int) int {
	if subtotal == 0 || (freeOver > 0 && subtotal >= freeOver) {
		return 0
	}
	return flatRate
}
