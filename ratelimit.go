package webreg

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

const (
	decreaseFactor = 0.8 // Reduce aggressively on pushback
	increaseFactor = 0.2 // Increase conservatively on success
	minLimit       = 1   // Minimum requests per second
)

// AdaptiveRateLimiter wraps a token bucket whose rate shrinks whenever
// the portal pushes back and creeps back up while requests succeed. The
// portal throttles per session, so one limiter per client is the right
// granularity.
type AdaptiveRateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	limiter     *rate.Limiter
	maxLimit    rate.Limit
	maxIncrease rate.Limit
}

func NewAdaptiveRateLimiter(startingLimit rate.Limit, burst int, maxIncrease rate.Limit) *AdaptiveRateLimiter {
	return &AdaptiveRateLimiter{
		limit:       startingLimit,
		limiter:     rate.NewLimiter(startingLimit, burst),
		maxLimit:    startingLimit,
		maxIncrease: maxIncrease,
	}
}

func (a *AdaptiveRateLimiter) Fail() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setLimit(max(rate.Limit(float64(a.limit)*(1-decreaseFactor)), minLimit))
}

func (a *AdaptiveRateLimiter) Succeed() {
	a.mu.Lock()
	defer a.mu.Unlock()
	newLimit := min(rate.Limit(float64(a.limit)*(1+increaseFactor)), a.limit+a.maxIncrease)
	// Never exceed the rate the caller asked for.
	a.setLimit(min(newLimit, a.maxLimit))
}

func (a *AdaptiveRateLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

func (a *AdaptiveRateLimiter) setLimit(newLimit rate.Limit) {
	a.limit = newLimit
	a.limiter.SetLimit(a.limit)
}

// RateLimitedTransport paces requests through an AdaptiveRateLimiter
// before handing them to the underlying transport.
type RateLimitedTransport struct {
	base    http.RoundTripper
	limiter *AdaptiveRateLimiter
}

func NewRateLimitedTransport(base http.RoundTripper, rps float64) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Limit(rps)
	return &RateLimitedTransport{
		base:    base,
		limiter: NewAdaptiveRateLimiter(limit, 1, limit/4),
	}
}

func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		t.limiter.Fail()
	} else {
		t.limiter.Succeed()
	}
	return resp, nil
}
