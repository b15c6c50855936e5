package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("order not found")

func Create(ctx context.Context, db sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders
		(order_id, order_number, session_id, status, subtotal, discount,
		shipping, total, voucher_code, shipping_name, shipping_phone,
		shipping_address, shipping_city, shipping_postal, created_at, updated_at)
	VALUES
		(:order_id, :order_number, :session_id, :status, :subtotal, :discount,
		:shipping, :total, :voucher_code, :shipping_name, :shipping_phone,
		:shipping_address, :shipping_city, :shipping_postal, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ord); err != nil {
		return fmt.Errorf("inserting order[%s]: %w", ord.ID, err)
	}
	return nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items
		(order_id, product_id, name, unit_price, quantity, created_at)
	VALUES
		(:order_id, :product_id, :name, :unit_price, :quantity, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting order item[%s/%s]: %w", it.OrderID, it.ProductID, err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Order, error) {
	const q = `SELECT * FROM orders WHERE order_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("fetching order[%s]: %w", id, err)
	}

	items, err := FetchItems(ctx, db, ord.ID)
	if err != nil {
		return Order{}, err
	}
	ord.Items = items

	return ord, nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, orderID string) ([]Item, error) {
	const q = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at, product_id`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, orderID); err != nil {
		return nil, fmt.Errorf("fetching items of order[%s]: %w", orderID, err)
	}
	return items, nil
}

func FetchBySession(ctx context.Context, db sqlx.ExtContext, sessionID string) ([]Order, error) {
	const q = `SELECT * FROM orders WHERE session_id = $1 ORDER BY created_at DESC`

	ords := []Order{}
	if err := sqlx.SelectContext(ctx, db, &ords, q, sessionID); err != nil {
		return nil, fmt.Errorf("fetching orders of session[%s]: %w", sessionID, err)
	}
	return ords, nil
}
