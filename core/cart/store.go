package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/authentimart/cart-api/cartstore"
)

// ErrCorrupt marks a stored record that cannot be decoded or carries an
// unknown schema version. Callers start over with an empty cart.
var ErrCorrupt = errors.New("cart record corrupt")

// recordVersion tags serialized carts so the layout can migrate later.
const recordVersion = 1

type record struct {
	Version     int    `json:"version"`
	Items       []Item `json:"items"`
	VoucherCode string `json:"appliedVoucherCode,omitempty"`
}

func encode(c *Cart) ([]byte, error) {
	rec := record{
		Version:     recordVersion,
		Items:       c.Items,
		VoucherCode: c.VoucherCode,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling cart record: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Cart, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Version != recordVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrCorrupt, rec.Version)
	}

	return &Cart{Items: rec.Items, VoucherCode: rec.VoucherCode}, nil
}

// Load reads and decodes the cart stored under key. It returns
// cartstore.ErrNotFound when no record exists and ErrCorrupt when one
// exists but cannot be trusted.
func Load(ctx context.Context, store cartstore.Store, key string) (*Cart, error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Save serializes the cart under key.
func Save(ctx context.Context, store cartstore.Store, key string, c *Cart) error {
	data, err := encode(c)
	if err != nil {
		return err
	}
	return store.Save(ctx, key, data)
}
