// Package web holds the small amount of framework this service puts on
// top of gorilla/mux: handlers that return errors and a middleware chain
// around them.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler is an HTTP handler that reports failures instead of writing
// them; the error middleware decides how they reach the client.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

type Middleware func(Handler) Handler

// WrapMiddleware composes mw around handler so the first middleware in
// the slice is the outermost wrapper.
func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}
	return handler
}

// Respond writes data as a JSON response with the given status code.
func Respond(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {
	if statusCode == http.StatusNoContent || data == nil {
		w.WriteHeader(statusCode)
		return nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}
	return nil
}

// Decode unmarshals a JSON request body into val, rejecting unknown
// fields and bodies over 1MB.
func Decode(w http.ResponseWriter, r *http.Request, val any) error {
	const maxBytes = 1 << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(val)
}

// Param returns a mux path variable by name.
func Param(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
