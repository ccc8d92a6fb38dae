package clashroyale

import (
	"context"
	"sync"
	"time"
)

// RateLimiter caps outbound requests to a fixed count per sliding minute.
// The API key tiers are tight enough that bursting past the limit gets the
// key throttled, so every request goes through Wait first.
type RateLimiter struct {
	mu        sync.Mutex
	perMinute int
	stamps    []time.Time
	now       func() time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		now:       time.Now,
	}
}

// Wait blocks until a request slot is available or the context is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := r.reserve()
		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve takes a slot if one is free, otherwise returns how long until the
// oldest stamp leaves the window.
func (r *RateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-time.Minute)

	kept := r.stamps[:0]
	for _, s := range r.stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}
	r.stamps = kept

	if len(r.stamps) < r.perMinute {
		r.stamps = append(r.stamps, now)
		return 0
	}
	return r.stamps[0].Sub(cutoff)
}
