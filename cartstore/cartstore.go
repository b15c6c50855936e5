// Package cartstore persists serialized carts in a durable key-value
// store. Stores are dumb blob stores: the cart package owns the record
// layout and its versioning, a Store only moves bytes.
package cartstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("cart not found")

type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
