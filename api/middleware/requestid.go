package middleware

import (
	"context"
	"net/http"

	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/validate"
)

const (
	RequestIDHeader = "X-Request-Id"

	// Incoming ids longer than this are truncated before use.
	requestIDLengthLimit = 128
)

type reqIDCtxKey int

const reqIDKey reqIDCtxKey = 1

// RequestID propagates the caller's request id or mints a fresh one, and
// makes it available to the rest of the chain through the context.
func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(RequestIDHeader)
			switch {
			case id == "":
				id = validate.GenerateID()
			case len(id) > requestIDLengthLimit:
				id = id[:requestIDLengthLimit]
			}

			w.Header().Set(RequestIDHeader, id)
			ctx = context.WithValue(ctx, reqIDKey, id)

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func ContextRequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey).(string)
	return id
}
