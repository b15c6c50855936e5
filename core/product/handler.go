package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/api/weberr"
	"github.com/authentimart/cart-api/validate"
	"github.com/jmoiron/sqlx"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		limit, offset := pagination(r)

		ps, err := FetchAll(ctx, db, limit, offset)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}

// HandleShow resolves a product by id, falling back to slug lookup so the
// storefront can link both /products/{uuid} and /products/{slug}.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		key := web.Param(r, "id")

		var p Product
		var err error
		if validate.CheckID(key) == nil {
			p, err = Fetch(ctx, db, key)
		} else {
			p, err = FetchBySlug(ctx, db, key)
		}
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product: %w", err))
		}
		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		p := Product{
			ID:            validate.GenerateID(),
			Slug:          pn.Slug,
			Name:          pn.Name,
			Description:   pn.Description,
			Price:         pn.Price,
			OriginalPrice: pn.OriginalPrice,
			Stock:         pn.Stock,
			ImageURL:      pn.ImageURL,
			CreatedAt:     now,
			UpdatedAt:     now,
			Version:       1,
		}

		if err := Create(ctx, db, p); err != nil {
			return err
		}

		return web.Respond(ctx, w, p, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product update: %w", err))
		}
		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if up.Name != nil {
			p.Name = *up.Name
		}
		if up.Description != nil {
			p.Description = *up.Description
		}
		if up.Price != nil {
			p.Price = *up.Price
		}
		if up.OriginalPrice != nil {
			p.OriginalPrice = up.OriginalPrice
		}
		if up.Stock != nil {
			p.Stock = *up.Stock
		}
		if up.ImageURL != nil {
			p.ImageURL = *up.ImageURL
		}
		p.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, p); err != nil {
			return err
		}

		p.Version++
		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize

	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}
