package ratelimit

import (
	"fmt"
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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestTokenBucket_TakeAndRefill(t *testing.T) {
	start := time.Unix(0, 0)
	tb := newTokenBucket(2, 1, start)

	assert.True(t, tb.take(start))
	assert.True(t, tb.take(start))
	assert.False(t, tb.take(start))
	assert.Equal(t, time.Second, tb.retryAfter())

	assert.True(t, tb.take(start.Add(time.Second)))
	assert.False(t, tb.take(start.Add(time.Second)))

	// refill never exceeds capacity
	tb.refill(start.Add(time.Hour))
	assert.Equal(t, 2.0, tb.tokens)
	assert.Equal(t, start.Add(time.Hour), tb.resetTime(start.Add(time.Hour)))
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Minute})

	for i := 0; i < 3; i++ {
		ok, info := l.Allow("1.2.3.4", "/templates", "GET")
		require.True(t, ok, "request %d", i)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	ok, info := l.Allow("1.2.3.4", "/templates", "GET")
	assert.False(t, ok)
	assert.Positive(t, info.RetryAfter)

	// other clients have their own bucket
	ok, _ = l.Allow("5.6.7.8", "/templates", "GET")
	assert.True(t, ok)
}

func TestLimiter_RefillOverTime(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	l.config.EndpointConfigs = []EndpointConfig{{Path: "/templates", Method: "GET", Limit: 60, Window: time.Minute, Burst: 1}}

	ok, _ := l.Allow("c", "/templates", "GET")
	require.True(t, ok)
	ok, _ = l.Allow("c", "/templates", "GET")
	require.False(t, ok)

	clock.Advance(time.Second)
	ok, _ = l.Allow("c", "/templates", "GET")
	assert.True(t, ok)
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"good": true},
		Blacklist:     map[string]bool{"bad": true},
	})

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("good", "/templates", "GET")
		assert.True(t, ok)
	}
	ok, _ := l.Allow("bad", "/templates", "GET")
	assert.False(t, ok)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1})
	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("c", "/sessions/x/export", "POST")
		assert.True(t, ok)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_ExportTier(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(10),
	})

	// burst is a tenth of the hourly budget
	ok, info := l.Allow("c", "/sessions/a/export", "POST")
	require.True(t, ok)
	assert.Equal(t, 10, info.Limit)

	// a second session shares the client's export budget
	ok, _ = l.Allow("c", "/sessions/b/export", "POST")
	assert.False(t, ok)

	// edits are unaffected
	ok, _ = l.Allow("c", "/sessions/a/template", "PUT")
	assert.True(t, ok)

	clock.Advance(7 * time.Minute)
	ok, _ = l.Allow("c", "/sessions/b/export", "POST")
	assert.True(t, ok)
}

func TestLimiter_UnlimitedRules(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(30),
	})

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("c", "/health", "GET")
		assert.True(t, ok)
		ok, _ = l.Allow("c", "/sessions/a/events", "GET")
		assert.True(t, ok)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/templates", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute, IdleTTL: time.Minute})

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/templates", "GET")
	}
	require.Equal(t, 3, l.Len())

	clock.Advance(30 * time.Second)
	l.Allow("client-0", "/templates", "GET")
	clock.Advance(45 * time.Second)

	l.cleanupBuckets()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	require.NotNil(t, l.config)
	assert.True(t, l.config.Enabled)
	ok, _ := l.Allow("c", "/templates", "GET")
	assert.True(t, ok)
}

func TestMatchEndpoint(t *testing.T) {
	rules := DefaultEndpointConfigs(30)

	tests := []struct {
		name   string
		path   string
		method string
		want   string
		limit  int
	}{
		{"health", "/health", "GET", "/health", 0},
		{"export", "/sessions/abc/export", "POST", "/sessions/{id}/export", 30},
		{"create", "/sessions", "POST", "/sessions", 60},
		{"edit prefix", "/sessions/abc/template", "PUT", "/sessions/", 600},
		{"item add", "/sessions/abc/sections/skills/items", "POST", "/sessions/", 600},
		{"events", "/sessions/abc/events", "GET", "/sessions/{id}/events", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := MatchEndpoint(tt.path, tt.method, rules)
			require.NotNil(t, rule)
			assert.Equal(t, tt.want, rule.Path)
			assert.Equal(t, tt.limit, rule.Limit)
		})
	}

	assert.Nil(t, MatchEndpoint("/templates", "GET", rules))
	assert.Nil(t, MatchEndpoint("/sessions//export", "POST", rules[:1]))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig(12)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	assert.Equal(t, 12, cfg.EndpointConfigs[0].Limit)

	t.Setenv("RATE_LIMIT_EXPORT_PER_HOUR", "5")
	assert.Equal(t, 5, LoadConfig(12).EndpointConfigs[0].Limit)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig(12).Enabled)
}
