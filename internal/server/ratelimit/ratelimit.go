// Package ratelimit provides per-client token bucket rate limiting for the HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows up to capacity requests at once and refills at a
// steady rate. It is not safe for concurrent use; Limiter serializes access.
type tokenBucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
	}
	tb.lastRefill = now
}

// take consumes one token if available.
func (tb *tokenBucket) take(now time.Time) bool {
	tb.refill(now)
	tb.lastAccess = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// resetTime is when the bucket will be full again
func (tb *tokenBucket) resetTime(now time.Time) time.Time {
	if tb.tokens >= tb.capacity || tb.refillRate <= 0 {
		return now
	}
	seconds := (tb.capacity - tb.tokens) / tb.refillRate
	return now.Add(time.Duration(seconds * float64(time.Second)))
}

// retryAfter is how long until one token is available
func (tb *tokenBucket) retryAfter() time.Duration {
	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}
	seconds := (1 - tb.tokens) / tb.refillRate
	return time.Duration(seconds * float64(time.Second))
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept. Zero means one hour.
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter manages rate limiting for multiple clients using token buckets.
// Each client gets one bucket per matched endpoint rule.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*tokenBucket

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewLimiter creates a new rate limiter with the given configuration.
// When cleanup is enabled a background goroutine runs until Stop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*tokenBucket),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		go l.cleanupLoop(config.CleanupInterval)
	}

	return l
}

// Allow checks whether a request from clientID to method+path may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	rule := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if rule == nil {
		rule = &EndpointConfig{
			Path:   "*",
			Method: "*",
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	// Buckets are keyed by rule, so every session's export shares one budget.
	key := clientID + " " + rule.Method + " " + rule.Path

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		window := rule.Window
		if window <= 0 {
			window = time.Minute
		}
		bucket = newTokenBucket(capacity, float64(rule.Limit)/window.Seconds(), now)
		l.buckets[key] = bucket
	}

	allowed := bucket.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(bucket.tokens),
		ResetTime: bucket.resetTime(now),
	}
	if !allowed {
		info.RetryAfter = bucket.retryAfter()
	}
	return allowed, info
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	defer close(l.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.stop:
			return
		}
	}
}

// cleanupBuckets drops buckets that have been idle longer than IdleTTL.
func (l *Limiter) cleanupBuckets() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-ttl)
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine and waits for it to exit. It is safe to
// call more than once.
func (l *Limiter) Stop() {
	if l.stop == nil {
		return
	}
	l.stopOnce.Do(func() {
		close(l.stop)
		<-l.done
	})
}
