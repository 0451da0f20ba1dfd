package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTokenBucket_TakeUntilEmpty(t *testing.T) {
	bucket := newTokenBucket(3, 1.0)

	for i := range 3 {
		allowed, remaining, _ := bucket.take()
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, full := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, full.After(time.Now()))
	assert.Positive(t, bucket.nextToken())
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 1.0)
	start := bucket.lastRefill

	bucket.tokens = 0
	bucket.refill(start.Add(1500 * time.Millisecond))
	assert.InDelta(t, 1.5, bucket.tokens, 1e-9)

	bucket.refill(start.Add(time.Hour))
	assert.InDelta(t, 2.0, bucket.tokens, 1e-9, "refill caps at capacity")
}

func TestLimiter_NilConfigUsesDefaults(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("10.0.0.1", "/analyze", http.MethodPost)
	assert.True(t, allowed)
	assert.Equal(t, 120, info.Limit)
	assert.Equal(t, 19, info.Remaining)
}

func TestLimiter_EndpointBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := range 5 {
		allowed, _ := limiter.Allow("10.0.0.1", "/analyze/batch", http.MethodPost)
		require.True(t, allowed, "batch request %d", i+1)
	}

	allowed, info := limiter.Allow("10.0.0.1", "/analyze/batch", http.MethodPost)
	assert.False(t, allowed)
	assert.Equal(t, 20, info.Limit)
	assert.Positive(t, info.RetryAfter)

	// Other clients and endpoints keep their own buckets.
	allowed, _ = limiter.Allow("10.0.0.2", "/analyze/batch", http.MethodPost)
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/analyze", http.MethodPost)
	assert.True(t, allowed)
}

func TestLimiter_DefaultLimitForUnknownEndpoint(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for range 2 {
		allowed, _ := limiter.Allow("c", "/categories", http.MethodGet)
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("c", "/categories", http.MethodGet)
	assert.False(t, allowed)
}

func TestLimiter_ExemptRequests(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for range 10 {
		allowed, _ := limiter.Allow("c", "/health", http.MethodGet)
		require.True(t, allowed)
		allowed, _ = limiter.Allow("c", "/analyze", http.MethodOptions)
		require.True(t, allowed)
	}
	assert.Zero(t, limiter.Len())
}

func TestLimiter_Lists(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"trusted": true},
		Blacklist:     map[string]bool{"blocked": true},
	})
	defer limiter.Stop()

	for range 5 {
		allowed, _ := limiter.Allow("trusted", "/analyze", http.MethodPost)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("blocked", "/analyze", http.MethodPost)
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for range 5 {
		allowed, _ := limiter.Allow("c", "/analyze", http.MethodPost)
		assert.True(t, allowed)
	}
}

func TestLimiter_Prune(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	limiter.Allow("a", "/analyze", http.MethodPost)
	limiter.Allow("b", "/analyze", http.MethodPost)
	require.Equal(t, 2, limiter.Len())

	assert.Zero(t, limiter.Prune(time.Now().Add(-time.Minute)))
	assert.Equal(t, 2, limiter.Prune(time.Now().Add(time.Second)))
	assert.Zero(t, limiter.Len())
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 10 * time.Millisecond,
	})
	limiter.Stop()
	limiter.Stop()
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := limiter.Allow("shared", "/keywords", http.MethodPost)
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: http.MethodPost, Limit: 1},
		{Path: "/analyze/", Method: http.MethodPost, Limit: 2},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact", path: "/analyze", method: http.MethodPost, wantLimit: 1},
		{name: "prefix", path: "/analyze/other", method: http.MethodPost, wantLimit: 2},
		{name: "method mismatch", path: "/analyze", method: http.MethodGet, wantNil: true},
		{name: "health exempt", path: "/health", method: http.MethodGet, wantLimit: 0},
		{name: "preflight exempt", path: "/keywords", method: http.MethodOptions, wantLimit: 0},
		{name: "unknown", path: "/nope", method: http.MethodPost, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 7, cfg.DefaultLimit)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	assert.Empty(t, cfg.Blacklist)
	assert.Len(t, cfg.EndpointConfigs, 4)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
