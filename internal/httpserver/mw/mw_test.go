package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"words.example.com", "words.example.com", true},
		{"words.example.com:8080", "words.example.com", true},
		{"words.example.com:8080", "words.example.com:8080", true},
		{"a.example.com", "*.example.com", true},
		{"a.example.com:443", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil-example.com", "*.example.com", false},
		{"other.test", "words.example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchHost(tt.host, tt.pattern), "matchHost(%q, %q)", tt.host, tt.pattern)
	}
}

func TestEnforceHostCaseInsensitive(t *testing.T) {
	h := EnforceHost([]string{"Words.Example.com"}, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "http://WORDS.example.com/api/words", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimiterRefill(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60, Now: func() time.Time { return now }})

	ok, _, _ := l.allow("1.2.3.4", now)
	require.True(t, ok, "first request should pass")
	ok, _, _ = l.allow("1.2.3.4", now)
	require.True(t, ok, "second request should pass")

	ok, _, retry := l.allow("1.2.3.4", now)
	require.False(t, ok, "third request should be limited")
	assert.Equal(t, 1, retry)

	// other IPs have their own bucket
	ok, _, _ = l.allow("5.6.7.8", now)
	assert.True(t, ok)

	ok, _, _ = l.allow("1.2.3.4", now.Add(time.Second))
	assert.True(t, ok, "request after refill should pass")
}

func TestLimiterSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 1, IdleTTL: time.Minute, SweepInterval: time.Minute, Now: func() time.Time { return now }})

	l.allow("1.2.3.4", now)
	l.sweepMaybe(now.Add(2 * time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.buckets)
}

func TestRateLimitHeaders(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 1})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/words", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/words", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
