// Package ratelimit is an injected per-owner rate limiting capability.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter tracks a token bucket per owner.
type Limiter struct {
	mu     sync.Mutex
	owners map[string]*rate.Limiter
	rate   rate.Limit
	burst  int
}

// New creates a Limiter allowing r events per second with burst b per owner.
func New(r rate.Limit, b int) *Limiter {
	return &Limiter{
		owners: make(map[string]*rate.Limiter),
		rate:   r,
		burst:  b,
	}
}

// Check reports whether ownerID may proceed right now, consuming one
// token when it may.
func (l *Limiter) Check(ownerID string) bool {
	l.mu.Lock()
	limiter, ok := l.owners[ownerID]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.owners[ownerID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
