package middleware

import (
	"context"
	"net/http"

	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/api/weberr"
	"github.com/sirupsen/logrus"
)

// Errors turns handler errors into HTTP responses. Errors carrying a
// weberr response render that; everything else becomes an opaque 500.
// Either way the full error is logged with the request id.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := map[string]any{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if extra, ok := weberr.Fields(err); ok {
				for k, v := range extra {
					fields[k] = v
				}
			}
			log.WithFields(logrus.Fields(fields)).Error("ERROR")

			if body, status, ok := weberr.Response(err); ok {
				return web.Respond(ctx, w, body, status)
			}

			body := weberr.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}
			return web.Respond(ctx, w, body, http.StatusInternalServerError)
		}
		return h
	}
	return m
}
