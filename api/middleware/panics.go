package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/api/weberr"
)

// Panics converts a panicking handler into an error carrying the stack,
// so a single bad request cannot take the process down.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = weberr.Wrap(
						fmt.Errorf("PANIC: %v", rec),
						weberr.WithFields(map[string]any{"stack": string(debug.Stack())}),
					)
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
