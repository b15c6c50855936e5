package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/authentimart/cart-api/core/voucher"
)

type stubValidator struct {
	voucher voucher.Voucher
	err     error

	// sideEffect runs before the stub answers, standing in for a cart
	// mutation racing the in-flight validation.
	sideEffect func()

	gotCode     string
	gotSubtotal int
}

func (s *stubValidator) Validate(ctx context.Context, code string, subtotal int) (voucher.Voucher, error) {
	s.gotCode = code
	s.gotSubtotal = subtotal
	if s.sideEffect != nil {
		s.sideEffect()
	}
	if s.err != nil {
		return voucher.Voucher{}, s.err
	}
	return s.voucher, nil
}

func TestApplyCanonicalizesCode(t *testing.T) {
	var c Cart
	c.Add(snapA(), 1)

	vs := &stubValidator{voucher: voucher.Voucher{Code: "SAVE10"}}

	v, err := Apply(context.Background(), &c, "  save10 ", vs)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if vs.gotCode != "SAVE10" {
		t.Fatalf("validator saw code %q, want SAVE10", vs.gotCode)
	}
	if vs.gotSubtotal != c.Subtotal() {
		t.Fatalf("validator saw subtotal %d, want %d", vs.gotSubtotal, c.Subtotal())
	}
	if c.VoucherCode != v.Code {
		t.Fatalf("cart carries %q, want %q", c.VoucherCode, v.Code)
	}
}

func TestApplyRejectsEmptyCode(t *testing.T) {
	var c Cart

	_, err := Apply(context.Background(), &c, "   ", &stubValidator{})
	if !errors.Is(err, voucher.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyRejectsDuplicate(t *testing.T) {
	var c Cart
	c.VoucherCode = "SAVE10"

	_, err := Apply(context.Background(), &c, "save10", &stubValidator{})
	if !errors.Is(err, voucher.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplyReplacesPriorVoucher(t *testing.T) {
	var c Cart
	c.Add(snapA(), 1)
	c.VoucherCode = "OLD5"

	vs := &stubValidator{voucher: voucher.Voucher{Code: "NEW10"}}

	if _, err := Apply(context.Background(), &c, "new10", vs); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if c.VoucherCode != "NEW10" {
		t.Fatalf("cart carries %q, want NEW10", c.VoucherCode)
	}
}

func TestApplyPropagatesValidationError(t *testing.T) {
	var c Cart
	c.Add(snapA(), 1)

	vs := &stubValidator{err: voucher.ErrBelowMinimumOrder}

	_, err := Apply(context.Background(), &c, "SAVE10", vs)
	if !errors.Is(err, voucher.ErrBelowMinimumOrder) {
		t.Fatalf("expected ErrBelowMinimumOrder, got %v", err)
	}
	if c.VoucherCode != "" {
		t.Fatal("failed application must not touch the cart")
	}
}

func TestApplyDiscardsStaleResponse(t *testing.T) {
	var c Cart
	c.Add(snapA(), 2)

	vs := &stubValidator{voucher: voucher.Voucher{Code: "SAVE10"}}
	vs.sideEffect = func() { c.Clear() }

	_, err := Apply(context.Background(), &c, "SAVE10", vs)
	if !errors.Is(err, ErrCartChanged) {
		t.Fatalf("expected ErrCartChanged, got %v", err)
	}
	if c.VoucherCode != "" {
		t.Fatal("stale response must not set a voucher on the cart")
	}
}
