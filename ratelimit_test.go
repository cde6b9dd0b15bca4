package webreg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestAdaptiveRateLimiterBacksOff(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(10, 1, 2.5)

	limiter.Fail()
	assert.InDelta(t, 2.0, float64(limiter.limit), 0.001)

	// Repeated pushback bottoms out at the floor.
	limiter.Fail()
	limiter.Fail()
	assert.Equal(t, rate.Limit(minLimit), limiter.limit)
}

func TestAdaptiveRateLimiterRecovers(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(10, 1, 2.5)
	limiter.Fail()
	require.InDelta(t, 2.0, float64(limiter.limit), 0.001)

	limiter.Succeed()
	assert.InDelta(t, 2.4, float64(limiter.limit), 0.001)

	// Recovery is capped per step and never exceeds the starting limit.
	for i := 0; i < 100; i++ {
		limiter.Succeed()
	}
	assert.Equal(t, rate.Limit(10), limiter.limit)
}

func TestRateLimitedTransport(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	transport := NewRateLimitedTransport(nil, 100)
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	okLimit := transport.limiter.limit

	status = http.StatusTooManyRequests
	resp, err = client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Less(t, float64(transport.limiter.limit), float64(okLimit))
}
