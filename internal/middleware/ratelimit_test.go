// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyByIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	r.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "ratelimit:ip:192.0.2.1", KeyByIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.9")
	assert.Equal(t, "ratelimit:ip:203.0.113.9", KeyByIP(r))
}

func TestKeyByIPAndEndpointCollapsesIDs(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet,
		"/v1/users/6f1c2a9e-4c6b-4d1e-9a51-3c2b7f0e8d11", nil)
	b := httptest.NewRequest(http.MethodGet,
		"/v1/users/0b9d7c44-51e2-4f3a-8a0c-5d6e7f8a9b0c", nil)
	a.RemoteAddr = "192.0.2.1:1"
	b.RemoteAddr = "192.0.2.1:2"

	assert.Equal(t, KeyByIPAndEndpoint(a), KeyByIPAndEndpoint(b))
	assert.Equal(t,
		"ratelimit:ip:192.0.2.1:endpoint:GET:/v1/users/{id}",
		KeyByIPAndEndpoint(a),
	)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/v1/messages/sender/{id}",
		normalizeEndpoint("/v1/messages/sender/6f1c2a9e-4c6b-4d1e-9a51-3c2b7f0e8d11"))
	assert.Equal(t, "/v1/users/{id}", normalizeEndpoint("/v1/users/42/"))
	assert.Equal(t, "/v1/users/email/a@b.c", normalizeEndpoint("/v1/users/email/a@b.c"))
}

func TestRateLimiterFallsBackToLocalLimiter(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := NewRateLimiter(rdb, RateLimitConfig{
		Limit: PerWindow(1, 1, time.Hour),
	})
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
		r.RemoteAddr = "192.0.2.50:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := send()
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func TestPerWindowDefaultsToMinute(t *testing.T) {
	l := PerWindow(10, 5, 0)
	assert.Equal(t, time.Minute, l.Period)
	assert.Equal(t, 10, l.Rate)
	assert.Equal(t, 5, l.Burst)
}
