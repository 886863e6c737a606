package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(burst int) *Config {
	return &Config{
		Enabled: true,
		Limit:   30,
		Window:  time.Minute,
		Burst:   burst,
	}
}

func TestAllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(testConfig(3))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("client-a", "/scan", "POST")
		assert.True(t, allowed, "request %d should be within burst", i+1)
		assert.Equal(t, 30, info.Limit)
	}
}

func TestDenyBeyondBurst(t *testing.T) {
	limiter := NewLimiter(testConfig(2))
	defer limiter.Stop()

	limiter.Allow("client-a", "/scan", "POST")
	limiter.Allow("client-a", "/scan", "POST")

	allowed, info := limiter.Allow("client-a", "/scan", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("client-a", "/scan", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-a", "/scan", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("client-b", "/scan", "POST")
	assert.True(t, allowed, "a second client has its own budget")
}

func TestAnalysisEndpointsShareBudget(t *testing.T) {
	limiter := NewLimiter(testConfig(2))
	defer limiter.Stop()

	limiter.Allow("client-a", "/scan", "POST")
	limiter.Allow("client-a", "/optimize", "POST")

	allowed, _ := limiter.Allow("client-a", "/analyze-job", "POST")
	assert.False(t, allowed)
}

func TestUnmeteredRequests(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	limiter.Allow("client-a", "/scan", "POST")
	allowed, _ := limiter.Allow("client-a", "/scan", "POST")
	require.False(t, allowed, "budget exhausted")

	tests := []struct {
		name   string
		path   string
		method string
	}{
		{"health check", "/health", "GET"},
		{"cors preflight", "/scan", "OPTIONS"},
		{"unknown path", "/metrics", "POST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, info := limiter.Allow("client-a", tt.path, tt.method)
			assert.True(t, allowed)
			assert.Zero(t, info.Limit, "unmetered requests carry no limit info")
		})
	}
}

func TestDisabledLimiter(t *testing.T) {
	cfg := testConfig(1)
	cfg.Enabled = false
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("client-a", "/scan", "POST")
		assert.True(t, allowed)
	}
}

func TestBucketRefills(t *testing.T) {
	b := newBucket(1, 100) // 100 tokens per second for a fast test

	allowed, _, _ := b.take()
	require.True(t, allowed)
	allowed, _, _ = b.take()
	require.False(t, allowed)

	time.Sleep(20 * time.Millisecond)

	allowed, _, _ = b.take()
	assert.True(t, allowed, "bucket refills over time")
}

func TestEvictIdle(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	limiter.Allow("client-a", "/scan", "POST")
	require.Len(t, limiter.buckets, 1)

	limiter.evictIdle(time.Now().Add(time.Second))

	assert.Empty(t, limiter.buckets)
	assert.Empty(t, limiter.lastAccess)

	// A fresh bucket means a fresh budget
	allowed, _ := limiter.Allow("client-a", "/scan", "POST")
	assert.True(t, allowed)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_SCANS_PER_MINUTE", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, 5, cfg.Burst)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_SCANS_PER_MINUTE", "10")
	t.Setenv("RATE_LIMIT_BURST", "2")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, 2, cfg.Burst)
}
