package cart

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
	"github.com/authentimart/cart-api/core/product"
	"github.com/authentimart/cart-api/core/session"
	"github.com/authentimart/cart-api/core/voucher"
	"github.com/authentimart/cart-api/rate"
	"github.com/authentimart/cart-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// current loads the session's cart. Missing, corrupt and unreadable
// records all come back as a fresh cart: a shopper must always be able to
// keep shopping, so storage trouble is logged and absorbed here.
func current(ctx context.Context, store cartstore.Store, log logrus.FieldLogger) (string, *Cart, error) {
	s, err := session.Get(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("loading cart: %w", err)
	}

	c, err := Load(ctx, store, s.CartID)
	switch {
	case err == nil:
	case errors.Is(err, cartstore.ErrNotFound):
		c = &Cart{}
	case errors.Is(err, ErrCorrupt):
		log.WithFields(logrus.Fields{"cart": s.CartID, "message": err}).
			Warn("discarding corrupt cart record")
		c = &Cart{}
	default:
		log.WithFields(logrus.Fields{"cart": s.CartID, "message": err}).
			Error("cart load failed")
		c = &Cart{}
	}

	return s.CartID, c, nil
}

// persist writes the cart back. A write failure is not fatal: the
// in-memory cart already answered this request and the next successful
// mutation writes the whole record again.
func persist(ctx context.Context, store cartstore.Store, log logrus.FieldLogger, key string, c *Cart) {
	if err := Save(ctx, store, key, c); err != nil {
		log.WithFields(logrus.Fields{"cart": key, "message": err}).
			Error("cart save failed")
	}
}

func HandleShow(store cartstore.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		_, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleClear(store cartstore.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		key, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		c.Clear()
		persist(ctx, store, log, key, c)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleAddItem(db *sqlx.DB, store cartstore.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in struct {
			ProductID string `json:"productId" validate:"required"`
			Quantity  int    `json:"quantity" validate:"required,gte=1"`
		}
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding add item: %w", err))
		}
		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}
		if err := validate.CheckID(in.ProductID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, err := product.Fetch(ctx, db, in.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%s]: %w", in.ProductID, err)
		}

		snap := snapshot(p)
		if err := validate.Check(snap); err != nil {
			return fmt.Errorf("malformed catalog record[%s]: %w", p.ID, err)
		}

		key, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		if c.Add(snap, in.Quantity) {
			persist(ctx, store, log, key, c)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleSetQuantity(store cartstore.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		productID := web.Param(r, "product_id")

		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding quantity update: %w", err))
		}

		key, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		if c.SetQuantity(productID, in.Quantity) {
			persist(ctx, store, log, key, c)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleRemoveItem(store cartstore.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		productID := web.Param(r, "product_id")

		key, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		if c.Remove(productID) {
			persist(ctx, store, log, key, c)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleApplyVoucher(db *sqlx.DB, store cartstore.Store, log logrus.FieldLogger, limiter *rate.Limiter, cfg config.Cart) web.Handler {
	vs := voucher.NewService(db)

	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s, err := session.Get(ctx)
		if err != nil {
			return fmt.Errorf("applying voucher: %w", err)
		}

		if !limiter.Check(s.CartID) {
			return weberr.TooManyRequests(errors.New("voucher attempts throttled"))
		}

		var in struct {
			Code string `json:"code" validate:"required"`
		}
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding voucher code: %w", err))
		}
		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		key, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		v, err := Apply(ctx, c, in.Code, vs)
		if err != nil {
			return voucherError(err)
		}

		persist(ctx, store, log, key, c)

		shipping := ShippingCost(c.Subtotal(), cfg.ShippingFlatRate, cfg.FreeShippingOver)
		b := c.Price(&v, time.Now().UTC(), shipping)

		return web.Respond(ctx, w, b, http.StatusOK)
	}
}

func HandleRemoveVoucher(store cartstore.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		key, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		if c.RemoveVoucher() {
			persist(ctx, store, log, key, c)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandlePricing(db *sqlx.DB, store cartstore.Store, log logrus.FieldLogger, cfg config.Cart) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		_, c, err := current(ctx, store, log)
		if err != nil {
			return err
		}

		b, err := Pricing(ctx, db, c, cfg)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, b, http.StatusOK)
	}
}

// Pricing resolves the cart's applied voucher, if any, and computes the
// full breakdown. A voucher that has vanished from the catalog is treated
// like an ineligible one: no discount, flagged on the breakdown.
func Pricing(ctx context.Context, db *sqlx.DB, c *Cart, cfg config.Cart) (Breakdown, error) {
	var v *voucher.Voucher
	if c.VoucherCode != "" {
		found, err := voucher.FetchByCode(ctx, db, c.VoucherCode)
		switch {
		case err == nil:
			v = &found
		case errors.Is(err, voucher.ErrNotFound):
			// leave v nil; Price flags the dangling code
		default:
			return Breakdown{}, fmt.Errorf("resolving applied voucher[%s]: %w", c.VoucherCode, err)
		}
	}

	shipping := ShippingCost(c.Subtotal(), cfg.ShippingFlatRate, cfg.FreeShippingOver)
	return c.Price(v, time.Now().UTC(), shipping), nil
}

func snapshot(p product.Product) Snapshot {
	s := Snapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
		Stock:     p.Stock,
	}
	if p.OriginalPrice != nil {
		s.OriginalUnitPrice = *p.OriginalPrice
	}
	return s
}

// voucherError maps engine and voucher errors onto the responses the
// storefront shows inline at the voucher input.
func voucherError(err error) error {
	switch {
	case errors.Is(err, voucher.ErrNotFound):
		return weberr.NotFound(err)
	case errors.Is(err, voucher.ErrNotYetActive),
		errors.Is(err, voucher.ErrExpired),
		errors.Is(err, voucher.ErrBelowMinimumOrder),
		errors.Is(err, voucher.ErrUsageLimit),
		errors.Is(err, voucher.ErrAlreadyApplied),
		errors.Is(err, ErrCartChanged):
		return weberr.Unprocessable(err)
	}
	return err
}
