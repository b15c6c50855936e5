package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/api/weberr"
	"github.com/authentimart/cart-api/cartstore"
	"github.com/authentimart/cart-api/config"
	"github.com/authentimart/cart-api/core/cart"
	"github.com/authentimart/cart-api/core/product"
	"github.com/authentimart/cart-api/core/session"
	"github.com/authentimart/cart-api/core/voucher"
	"github.com/authentimart/cart-api/database"
	"github.com/authentimart/cart-api/random"
	"github.com/authentimart/cart-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// HandleCheckout turns the session's cart into an order: it re-prices the
// cart, writes the order with its items, reserves stock and redeems the
// voucher in one transaction, then clears the cart. Payment is collected
// by a separate service against the pending order.
func HandleCheckout(db *sqlx.DB, store cartstore.Store, log logrus.FieldLogger, cfg config.Cart) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s, err := session.Get(ctx)
		if err != nil {
			return fmt.Errorf("checking out: %w", err)
		}

		var info ShippingInfo
		if err := web.Decode(w, r, &info); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding shipping info: %w", err))
		}
		if err := validate.Check(info); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := cart.Load(ctx, store, s.CartID)
		if err != nil && !errors.Is(err, cartstore.ErrNotFound) && !errors.Is(err, cart.ErrCorrupt) {
			return fmt.Errorf("loading cart[%s]: %w", s.CartID, err)
		}
		if c == nil || c.Empty() {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		b, err := cart.Pricing(ctx, db, c, cfg)
		if err != nil {
			return err
		}
		if b.VoucherInvalid {
			err := fmt.Errorf("voucher[%s] is no longer valid for this cart", c.VoucherCode)
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		ord, err := place(ctx, db, s.CartID, c, b, info)
		if err != nil {
			if errors.Is(err, product.ErrInsufficientStock) {
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			if errors.Is(err, voucher.ErrUsageLimit) {
				return weberr.Unprocessable(err)
			}
			return err
		}

		// The order exists; a cart that fails to delete only means the
		// shopper sees stale items until the record expires.
		if err := store.Delete(ctx, s.CartID); err != nil {
			log.WithFields(logrus.Fields{"cart": s.CartID, "message": err}).
				Error("clearing cart after checkout failed")
		}

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func place(ctx context.Context, db *sqlx.DB, sessionID string, c *cart.Cart, b cart.Breakdown, info ShippingInfo) (Order, error) {
	now := time.Now().UTC()

	ord := Order{
		ID:         validate.GenerateID(),
		Number:     "AM-" + random.String(10),
		SessionID:  sessionID,
		Status:     Pending,
		Subtotal:   b.Subtotal,
		Discount:   b.DiscountAmount,
		Shipping:   b.ShippingCost,
		Total:      b.Total,
		Name:       info.Name,
		Phone:      info.Phone,
		Address:    info.Address,
		City:       info.City,
		PostalCode: info.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if c.VoucherCode != "" {
		code := c.VoucherCode
		ord.VoucherCode = &code
	}

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		if err := Create(ctx, tx, ord); err != nil {
			return err
		}

		for _, li := range c.Items {
			it := Item{
				OrderID:   ord.ID,
				ProductID: li.ProductID,
				Name:      li.Name,
				UnitPrice: li.UnitPrice,
				Quantity:  li.Quantity,
				CreatedAt: now,
			}
			if err := CreateItem(ctx, tx, it); err != nil {
				return err
			}

			if err := product.ReserveStock(ctx, tx, li.ProductID, li.Quantity); err != nil {
				return err
			}
		}

		if ord.VoucherCode != nil {
			if err := voucher.Redeem(ctx, tx, *ord.VoucherCode); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Order{}, fmt.Errorf("placing order for session[%s]: %w", sessionID, err)
	}

	ord.Items = make([]Item, 0, len(c.Items))
	for _, li := range c.Items {
		ord.Items = append(ord.Items, Item{
			OrderID:   ord.ID,
			ProductID: li.ProductID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			CreatedAt: now,
		})
	}

	return ord, nil
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		s, err := session.Get(ctx)
		if err != nil {
			return fmt.Errorf("fetching order: %w", err)
		}

		ord, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		// Orders are visible to the session that placed them or to admins.
		if ord.SessionID != s.CartID && !session.IsAdmin(ctx) {
			return weberr.NotFound(errors.New("order belongs to another session"))
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s, err := session.Get(ctx)
		if err != nil {
			return fmt.Errorf("listing orders: %w", err)
		}

		ords, err := FetchBySession(ctx, db, s.CartID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, ords, http.StatusOK)
	}
}
