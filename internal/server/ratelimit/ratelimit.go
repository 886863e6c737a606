// Package ratelimit throttles expensive analysis endpoints with token buckets.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// bucket is a token bucket refilled at a steady rate.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take refills the bucket for elapsed time and consumes one token if available.
// It also reports the remaining tokens and when the bucket will be full again.
func (b *bucket) take() (allowed bool, remaining int, resetTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	resetTime = now
	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Info describes the rate limit state returned with each decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter settings. Analysis endpoints (scan, optimize,
// analyze-job) share one limit per client; everything else is unmetered.
type Config struct {
	Enabled         bool
	Limit           int           // requests per window for analysis endpoints
	Window          time.Duration // refill window
	Burst           int           // burst capacity, defaults to Limit
	CleanupInterval time.Duration
}

// LoadConfig reads limiter settings from the environment.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:         true,
		Limit:           30,
		Window:          time.Minute,
		Burst:           5,
		CleanupInterval: 5 * time.Minute,
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("RATE_LIMIT_SCANS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Limit = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Burst = n
		}
	}
	return cfg
}

// Limiter tracks one token bucket per client for the metered endpoints.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time
	config     *Config
	stop       chan struct{}
	ticker     *time.Ticker
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		config:     config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// metered reports whether an endpoint counts against the client's budget.
func metered(path, method string) bool {
	if method != "POST" {
		return false
	}
	switch path {
	case "/scan", "/optimize", "/analyze-job":
		return true
	}
	return false
}

// Allow decides whether the request may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || !metered(path, method) {
		return true, Info{Allowed: true}
	}

	b := l.getBucket(clientID)

	l.mu.Lock()
	l.lastAccess[clientID] = time.Now()
	l.mu.Unlock()

	allowed, remaining, resetTime := b.take()
	info := Info{
		Allowed:   allowed,
		Limit:     l.config.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(resetTime), 0)
	}
	return allowed, info
}

func (l *Limiter) getBucket(clientID string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[clientID]; ok {
		return b
	}
	burst := l.config.Burst
	if burst <= 0 {
		burst = l.config.Limit
	}
	refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
	b := newBucket(burst, refillRate)
	l.buckets[clientID] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets not touched since the cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, id)
			delete(l.lastAccess, id)
		}
	}
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
