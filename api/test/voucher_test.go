package test

import (
	"net/http"
	"testing"
	"time"

	"github.com/authentimart/cart-api/core/product"
	"github.com/authentimart/cart-api/core/voucher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherCreateRules(t *testing.T) {
	env, err := NewTestEnv(t, "voucher_create_test")
	require.NoError(t, err)

	vn := voucher.VoucherNew{
		Code: "welcome5", DiscountType: voucher.Percentage, DiscountValue: 5,
	}

	// Creation is staff-only.
	code := env.doJSON(t, http.MethodPost, "/vouchers", vn, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	v := env.createVoucher(t, vn)
	assert.Equal(t, "WELCOME5", v.Code, "codes are stored canonicalized")
	assert.True(t, v.Active)

	// Same code again, any casing.
	code = env.doJSON(t, http.MethodPost, "/vouchers", vn, nil, asAdmin)
	assert.Equal(t, http.StatusConflict, code)

	code = env.doJSON(t, http.MethodPost, "/vouchers", voucher.VoucherNew{
		Code: "TOOMUCH", DiscountType: voucher.Percentage, DiscountValue: 150,
	}, nil, asAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code = env.doJSON(t, http.MethodPost, "/vouchers", voucher.VoucherNew{
		Code: "CAPPED", DiscountType: voucher.Fixed, DiscountValue: 500, MaxDiscountAmount: intp(300),
	}, nil, asAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	var got voucher.Voucher
	code = env.doJSON(t, http.MethodGet, "/vouchers/welcome5", nil, &got, asAdmin)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, v.ID, got.ID)
}

func TestVoucherApplyErrors(t *testing.T) {
	env, err := NewTestEnv(t, "voucher_apply_test")
	require.NoError(t, err)

	p := env.createProduct(t, product.ProductNew{
		Slug: "poster", Name: "Poster", Price: 900, Stock: 10,
	})

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	env.createVoucher(t, voucher.VoucherNew{
		Code: "EXPIRED", DiscountType: voucher.Fixed, DiscountValue: 100, ExpiresAt: &yesterday,
	})
	env.createVoucher(t, voucher.VoucherNew{
		Code: "NOTYET", DiscountType: voucher.Fixed, DiscountValue: 100, StartsAt: &tomorrow,
	})
	env.createVoucher(t, voucher.VoucherNew{
		Code: "MIN5000", DiscountType: voucher.Fixed, DiscountValue: 100, MinOrderAmount: 5000,
	})
	env.createVoucher(t, voucher.VoucherNew{
		Code: "GOOD", DiscountType: voucher.Fixed, DiscountValue: 100,
	})

	env.addItem(t, p.ID, 2)

	apply := func(code string) int {
		return env.doJSON(t, http.MethodPost, "/cart/voucher", map[string]any{"code": code}, nil)
	}

	assert.Equal(t, http.StatusNotFound, apply("NOSUCHCODE"))
	assert.Equal(t, http.StatusUnprocessableEntity, apply("EXPIRED"))
	assert.Equal(t, http.StatusUnprocessableEntity, apply("NOTYET"))
	assert.Equal(t, http.StatusUnprocessableEntity, apply("MIN5000"))

	assert.Equal(t, http.StatusOK, apply("GOOD"))
	assert.Equal(t, http.StatusUnprocessableEntity, apply("GOOD"), "same code twice is rejected")

	// A failed attempt leaves the previously applied code in place.
	assert.Equal(t, http.StatusUnprocessableEntity, apply("EXPIRED"))

	var b struct {
		VoucherCode string `json:"voucherCode"`
	}
	code := env.doJSON(t, http.MethodGet, "/cart/pricing", nil, &b)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "GOOD", b.VoucherCode)
}

func TestVoucherApplyOnEmptyCart(t *testing.T) {
	env, err := NewTestEnv(t, "voucher_empty_test")
	require.NoError(t, err)

	env.createVoucher(t, voucher.VoucherNew{
		Code: "MIN1", DiscountType: voucher.Fixed, DiscountValue: 100, MinOrderAmount: 1,
	})

	// An empty cart's subtotal is 0, which is under any positive minimum.
	code := env.doJSON(t, http.MethodPost, "/cart/voucher", map[string]any{"code": "MIN1"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}
