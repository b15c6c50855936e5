package voucher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, v Voucher) error {
	const q = `
	INSERT INTO vouchers
		(voucher_id, code, discount_type, discount_value, min_order_amount,
		max_discount_amount, starts_at, expires_at, usage_limit, used_count,
		active, created_at, updated_at)
	VALUES
		(:voucher_id, :code, :discount_type, :discount_value, :min_order_amount,
		:max_discount_amount, :starts_at, :expires_at, :usage_limit, :used_count,
		:active, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, v); err != nil {
		return fmt.Errorf("inserting voucher[%s]: %w", v.Code, err)
	}
	return nil
}

func FetchByCode(ctx context.Context, db sqlx.ExtContext, code string) (Voucher, error) {
	const q = `SELECT * FROM vouchers WHERE code = $1`

	var v Voucher
	if err := sqlx.GetContext(ctx, db, &v, q, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Voucher{}, ErrNotFound
		}
		return Voucher{}, fmt.Errorf("fetching voucher[%s]: %w", code, err)
	}

	return v, nil
}

// Redeem bumps the usage counter, refusing to go past the usage limit.
// Meant to run inside the checkout transaction so a concurrent redemption
// of the last slot fails the whole order.
func Redeem(ctx context.Context, db sqlx.ExtContext, code string) error {
	const q = `
	UPDATE vouchers SET
		used_count = used_count + 1,
		updated_at = $2
	WHERE code = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`

	res, err := db.ExecContext(ctx, q, code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("redeeming voucher[%s]: %w", code, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("redeeming voucher[%s]: %w", code, err)
	}
	if n == 0 {
		return ErrUsageLimit
	}
	return nil
}
