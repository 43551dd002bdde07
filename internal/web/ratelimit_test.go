package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(t *testing.T, perMinute, burst int) (*rateLimiter, *time.Time) {
	t.Helper()
	rl := newRateLimiter(perMinute, burst)
	t.Cleanup(rl.stop)

	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	rl, now := newTestRateLimiter(t, 60, 2)

	ok, _ := rl.reserve("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.reserve("10.0.0.1")
	assert.True(t, ok)

	ok, wait := rl.reserve("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	ok, _ = rl.reserve("10.0.0.2")
	assert.True(t, ok, "clients are limited independently")

	*now = now.Add(time.Second)
	ok, _ = rl.reserve("10.0.0.1")
	assert.True(t, ok, "one token refills per second at 60/min")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := newTestRateLimiter(t, 60, 1)

	rl.reserve("10.0.0.1")
	*now = now.Add(visitorTTL / 2)
	rl.reserve("10.0.0.2")

	*now = now.Add(visitorTTL/2 + time.Second)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := newRateLimiter(60, 1)
	rl.stop()
	assert.NotPanics(t, rl.stop)
}

func TestRateLimiter_Middleware(t *testing.T) {
	cfg := testConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 60
	cfg.Rate.Burst = 2
	ts := newTestServer(t, cfg)

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.10:5555"
		return ts.do(t, req)
	}

	assert.Equal(t, http.StatusOK, send("/api/settings").Code)
	assert.Equal(t, http.StatusOK, send("/api/settings").Code)

	rec := send("/api/settings")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE002", decodeError(t, rec).Code)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send("/healthz").Code, "health checks are not rate limited")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.RemoteAddr = "192.0.2.1"
	assert.Equal(t, "192.0.2.1", clientIP(req))
}
