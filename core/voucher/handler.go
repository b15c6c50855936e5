package voucher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/api/weberr"
	"github.com/authentimart/cart-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var vn VoucherNew
		if err := web.Decode(w, r, &vn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding voucher: %w", err))
		}
		if err := validate.Check(vn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if vn.DiscountType == Percentage && vn.DiscountValue > 100 {
			err := errors.New("percentage discount cannot exceed 100")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}
		if vn.DiscountType == Fixed && vn.MaxDiscountAmount != nil {
			err := errors.New("fixed discounts cannot carry a discount cap")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		v := Voucher{
			ID:                validate.GenerateID(),
			Code:              Canonicalize(vn.Code),
			DiscountType:      vn.DiscountType,
			DiscountValue:     vn.DiscountValue,
			MinOrderAmount:    vn.MinOrderAmount,
			MaxDiscountAmount: vn.MaxDiscountAmount,
			StartsAt:          vn.StartsAt,
			ExpiresAt:         vn.ExpiresAt,
			UsageLimit:        vn.UsageLimit,
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := Create(ctx, db, v); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				dup := fmt.Errorf("voucher code[%s] already exists", v.Code)
				return weberr.NewError(dup, dup.Error(), http.StatusConflict)
			}
			return err
		}

		return web.Respond(ctx, w, v, http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		code := Canonicalize(web.Param(r, "code"))

		v, err := FetchByCode(ctx, db, code)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}
