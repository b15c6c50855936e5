package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/api/weberr"
	"github.com/authentimart/cart-api/validate"
)

const cartIDKey = "cart_id"

// RoleHeader is set by the auth proxy in front of this service for
// authenticated requests.
const RoleHeader = "X-Auth-Role"

// LoadAndSave adapts the scs middleware to the web.Handler chain so
// handlers below it can read and write session data through the manager.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			wrapped := sm.LoadAndSave(http.HandlerFunc(func(ww http.ResponseWriter, rr *http.Request) {
				err = handler(rr.Context(), ww, rr)
			}))
			wrapped.ServeHTTP(w, r)

			return err
		}
		return h
	}
	return m
}

// WithCart guarantees every request downstream has a cart key: a new
// session gets a fresh one on first contact.
func WithCart(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := sm.GetString(ctx, cartIDKey)
			if id == "" {
				id = validate.GenerateID()
				sm.Put(ctx, cartIDKey, id)
			}

			ctx = Set(ctx, Session{
				CartID: id,
				Role:   r.Header.Get(RoleHeader),
			})

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin rejects requests that do not carry the admin role.
func Admin() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !IsAdmin(ctx) {
				return weberr.NotAuthorized(errors.New("admin role required"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
