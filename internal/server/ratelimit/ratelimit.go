// Package ratelimit throttles API callers with per-route token buckets.
//
// Buckets are keyed by caller, route, and method, so a burst of login
// attempts cannot drain the same caller's budget for gig reads. The
// server keys authenticated callers by user ID and anonymous ones by
// connection IP.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. Tokens refill continuously at rate per
// second up to capacity; each admitted request consumes one.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		lastSeen: now,
	}
}

// take refills the bucket for the elapsed time, then tries to consume one
// token. It reports whether the request is admitted, how many whole tokens
// remain, and when the bucket will be full again.
func (b *bucket) take() (ok bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.updated).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.updated = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	remaining = int(b.tokens)
	reset = now
	if b.tokens < b.capacity {
		untilFull := (b.capacity - b.tokens) / b.rate
		reset = now.Add(time.Duration(untilFull * float64(time.Second)))
	}
	return ok, remaining, reset
}

// idleSince reports whether the bucket has seen no traffic since cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info describes the outcome of a rate limit check. The server copies it
// into the X-RateLimit response headers; a zero Limit means the check did
// not meter the request (disabled, whitelisted, or an unlimited route).
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config controls the limiter. Routes without a matching EndpointConfig
// fall back to DefaultLimit per DefaultWindow.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter admits or rejects requests against per-caller token buckets.
// Buckets idle for over an hour are reaped by a background goroutine;
// Stop shuts it down.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	done    chan struct{}
}

// NewLimiter builds a limiter from cfg. A nil cfg gets a permissive
// default of 1000 requests per caller per minute.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  cfg,
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.ticker = time.NewTicker(cfg.CleanupInterval)
		l.done = make(chan struct{})
		go l.reapLoop()
	}
	return l
}

// Allow reports whether callerID may hit route with the given method now.
func (l *Limiter) Allow(callerID, route, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[callerID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[callerID] {
		return false, Info{}
	}

	rule := MatchEndpoint(route, method, l.config.EndpointConfigs)
	if rule == nil {
		rule = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if rule.Limit <= 0 {
		// Unlimited route, the health check for instance.
		return true, Info{Allowed: true}
	}

	ok, remaining, reset := l.bucketFor(callerID+"|"+method+" "+route, rule).take()

	info := Info{
		Allowed:   ok,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !ok {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return ok, info
}

// bucketFor returns the bucket for key, creating it from rule on first use.
func (l *Limiter) bucketFor(key string, rule *EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	fresh := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		// Another request created it between the two locks.
		return b
	}
	l.buckets[key] = fresh
	return fresh
}

func (l *Limiter) reapLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.reap(time.Now().Add(-time.Hour))
		case <-l.done:
			return
		}
	}
}

// reap drops buckets that have seen no traffic since cutoff, so one-off
// callers do not accumulate forever.
func (l *Limiter) reap(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the reaper goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
