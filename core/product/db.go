package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

func Create(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	INSERT INTO products
		(product_id, slug, name, description, price, original_price, stock,
		image_url, created_at, updated_at, version)
	VALUES
		(:product_id, :slug, :name, :description, :price, :original_price, :stock,
		:image_url, :created_at, :updated_at, :version)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("inserting product[%s]: %w", p.Slug, err)
	}
	return nil
}

func Update(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	UPDATE products SET
		name = :name,
		description = :description,
		price = :price,
		original_price = :original_price,
		stock = :stock,
		image_url = :image_url,
		updated_at = :updated_at,
		version = :version + 1
	WHERE product_id = :product_id AND version = :version`

	res, err := sqlx.NamedExecContext(ctx, db, q, p)
	if err != nil {
		return fmt.Errorf("updating product[%s]: %w", p.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`
	return fetchOne(ctx, db, q, id)
}

func FetchBySlug(ctx context.Context, db sqlx.ExtContext, slug string) (Product, error) {
	const q = `SELECT * FROM products WHERE slug = $1`
	return fetchOne(ctx, db, q, slug)
}

func fetchOne(ctx context.Context, db sqlx.ExtContext, q string, arg string) (Product, error) {
	var p Product
	if err := sqlx.GetContext(ctx, db, &p, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("fetching product[%s]: %w", arg, err)
	}
	return p, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext, limit, offset int) ([]Product, error) {
	const q = `SELECT * FROM products ORDER BY created_at DESC, product_id LIMIT $1 OFFSET $2`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, limit, offset); err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return ps, nil
}

// ReserveStock decrements stock for a placed order. Runs inside the
// checkout transaction; a concurrent checkout draining the shelf makes
// this fail and rolls the whole order back.
func ReserveStock(ctx context.Context, db sqlx.ExtContext, productID string, qty int) error {
	const q = `
	UPDATE products SET stock = stock - $2, version = version + 1
	WHERE product_id = $1 AND stock >= $2`

	res, err := db.ExecContext(ctx, q, productID, qty)
	if err != nil {
		return fmt.Errorf("reserving %d of product[%s]: %w", qty, productID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInsufficientStock
	}
	return nil
}
