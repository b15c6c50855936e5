package voucher

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Service is the validation collaborator the cart engine delegates to
// when a shopper submits a code.
type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Validate fetches the voucher behind a canonicalized code and checks its
// eligibility against the given subtotal. It returns one of the typed
// voucher errors on rejection.
func (s *Service) Validate(ctx context.Context, code string, subtotal int) (Voucher, error) {
	v, err := FetchByCode(ctx, s.db, code)
	if err != nil {
		return Voucher{}, err
	}

	if err := v.EligibleAt(time.Now().UTC(), subtotal); err != nil {
		return Voucher{}, err
	}

	return v, nil
}
