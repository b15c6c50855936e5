package cart

import (
	"context"
	"errors"

	"github.com/authentimart/cart-api/core/voucher"
)

// ErrCartChanged means the cart was mutated while a voucher validation
// was in flight; the stale validation result was discarded.
var ErrCartChanged = errors.New("cart changed during voucher validation")

// Validator is the voucher collaborator. *voucher.Service satisfies it.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal int) (voucher.Voucher, error)
}

// Apply canonicalizes a submitted code, validates it against the current
// subtotal and, on success, makes it the cart's single active voucher,
// replacing any previous one.
//
// The engine does not serialize concurrent applications; instead the cart
// revision is captured before the validator call and a response that
// arrives after the cart has been cleared or otherwise mutated is
// discarded with ErrCartChanged.
func Apply(ctx context.Context, c *Cart, code string, vs Validator) (voucher.Voucher, error) {
	code = voucher.Canonicalize(code)
	if code == "" {
		return voucher.Voucher{}, voucher.ErrNotFound
	}
	if c.VoucherCode == code {
		return voucher.Voucher{}, voucher.ErrAlreadyApplied
	}

	rev := c.Revision

	v, err := vs.Validate(ctx, code, c.Subtotal())
	if err != nil {
		return voucher.Voucher{}, err
	}

	if c.Revision != rev {
		return voucher.Voucher{}, ErrCartChanged
	}

	c.VoucherCode = v.Code
	c.Revision++
	return v, nil
}
