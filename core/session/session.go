// Package session carries the per-request shopper identity: the cart key
// bound to the scs session and the role forwarded by the auth proxy.
// Authentication itself is owned by an external service; this service
// only needs a stable key per browser to find the right cart.
package session

import (
	"context"
	"errors"
)

const RoleAdmin = "admin"

type Session struct {
	CartID string
	Role   string
}

type ctxKey int

const sessionKey ctxKey = 1

func Set(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func Get(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok {
		return Session{}, errors.New("session value missing from context")
	}
	return s, nil
}

func IsAdmin(ctx context.Context) bool {
	s, err := Get(ctx)
	if err != nil {
		return false
	}
	return s.Role == RoleAdmin
}
