// Package rate keeps a token-bucket limiter per client id. The API uses
// it to slow down voucher code guessing per session.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limit  rate.Limit
	burst  int
	expiry time.Duration

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter builds a limiter allowing rps requests per second with the
// given burst per id. Idle ids are forgotten after expiry.
func NewLimiter(rps float64, burst int, expiry time.Duration) *Limiter {
	l := &Limiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		expiry:  expiry,
		clients: make(map[string]*client),
	}
	go l.sweep()
	return l
}

// Check reports whether the client identified by id may proceed.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[id]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[id] = cl
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

// Every converts a minimum interval between requests into the rps value
// NewLimiter takes.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}

func (l *Limiter) sweep() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for id, cl := range l.clients {
			if time.Since(cl.lastSeen) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}
