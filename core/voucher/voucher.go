package voucher

import (
	"errors"
	"strings"
	"time"
)

type Type string

const (
	Percentage Type = "percentage"
	Fixed      Type = "fixed"
)

// Validation failures a shopper can run into when submitting a code.
// Handlers map these onto HTTP responses; nothing here panics.
var (
	ErrNotFound          = errors.New("voucher not found")
	ErrNotYetActive      = errors.New("voucher is not active yet")
	ErrExpired           = errors.New("voucher has expired")
	ErrBelowMinimumOrder = errors.New("order subtotal is below the voucher minimum")
	ErrUsageLimit        = errors.New("voucher usage limit exceeded")
	ErrAlreadyApplied    = errors.New("voucher is already applied to the cart")
)

type Voucher struct {
	ID                string     `json:"id" db:"voucher_id"`
	Code              string     `json:"code" db:"code"`
	DiscountType      Type       `json:"discountType" db:"discount_type"`
	DiscountValue     int        `json:"discountValue" db:"discount_value"`
	MinOrderAmount    int        `json:"minOrderAmount" db:"min_order_amount"`
	MaxDiscountAmount *int       `json:"maxDiscountAmount,omitempty" db:"max_discount_amount"`
	StartsAt          *time.Time `json:"startsAt,omitempty" db:"starts_at"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	UsageLimit        *int       `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount         int        `json:"usedCount" db:"used_count"`
	Active            bool       `json:"active" db:"active"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

type VoucherNew struct {
	Code              string     `json:"code" validate:"required,min=3,max=32"`
	DiscountType      Type       `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue     int        `json:"discountValue" validate:"required,gt=0"`
	MinOrderAmount    int        `json:"minOrderAmount" validate:"gte=0"`
	MaxDiscountAmount *int       `json:"maxDiscountAmount" validate:"omitempty,gt=0"`
	StartsAt          *time.Time `json:"startsAt"`
	ExpiresAt         *time.Time `json:"expiresAt"`
	UsageLimit        *int       `json:"usageLimit" validate:"omitempty,gt=0"`
}

// Canonicalize turns a user-submitted code into its match key: codes are
// stored upper-cased and compared case-insensitively.
func Canonicalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EligibleAt reports whether the voucher can be redeemed at the given
// instant against the given subtotal.
func (v Voucher) EligibleAt(now time.Time, subtotal int) error {
	if !v.Active {
		return ErrNotFound
	}
	if v.StartsAt != nil && now.Before(*v.StartsAt) {
		return ErrNotYetActive
	}
	if v.ExpiresAt != nil && now.After(*v.ExpiresAt) {
		return ErrExpired
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return ErrUsageLimit
	}
	if subtotal < v.MinOrderAmount {
		return ErrBelowMinimumOrder
	}
	return nil
}

// Discount computes the discount in minor units for the given subtotal.
// Percentage discounts round down and honor the optional cap; fixed
// discounts never exceed the subtotal.
func (v Voucher) Discount(subtotal int) int {
	switch v.DiscountType {
	case Percentage:
		d := subtotal * v.DiscountValue / 100
		if v.MaxDiscountAmount != nil && d > *v.MaxDiscountAmount {
			d = *v.MaxDiscountAmount
		}
		return d
	case Fixed:
		if v.DiscountValue > subtotal {
			return subtotal
		}
		return v.DiscountValue
	}
	return 0
}
