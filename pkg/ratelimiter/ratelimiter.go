package ratelimiter

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RatePolicy allows MaxAttempts per Window, refilled evenly across the window
type RatePolicy struct {
	MaxAttempts int
	Window      time.Duration
}

func (p RatePolicy) limit() rate.Limit {
	if p.MaxAttempts <= 0 || p.Window <= 0 {
		return 0
	}
	return rate.Limit(float64(p.MaxAttempts) / p.Window.Seconds())
}

// RateLimiter is an in-memory token-bucket limiter keyed by namespace and key.
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("upload", 10, time.Minute)
//	if !rl.Allow("upload", sessionID) { ... }
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	policies map[string]RatePolicy
	now      func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts the idle-bucket cleanup
func NewRateLimiter() *RateLimiter {
	rl := newRateLimiter(time.Now)
	go rl.cleanup(time.Minute)
	return rl
}

func newRateLimiter(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		buckets:     make(map[string]*bucket),
		policies:    make(map[string]RatePolicy),
		now:         now,
		stopCleanup: make(chan struct{}),
	}
}

// SetPolicy configures a namespace. Existing buckets of the namespace are reset.
func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.policies[namespace] = RatePolicy{MaxAttempts: maxAttempts, Window: window}
	prefix := namespace + ":"
	for key := range rl.buckets {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(rl.buckets, key)
		}
	}
}

// Allow consumes one attempt. Namespaces without a policy are denied.
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.bucket(namespace, key)
	if !ok {
		return false
	}
	return b.limiter.AllowN(b.lastSeen, 1)
}

// RetryAfter returns the whole seconds until the next attempt would be
// allowed, for the Retry-After header. Zero means an attempt is allowed now.
func (rl *RateLimiter) RetryAfter(namespace, key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.bucket(namespace, key)
	if !ok {
		return 0
	}
	r := b.limiter.ReserveN(b.lastSeen, 1)
	if !r.OK() {
		return 0
	}
	delay := r.DelayFrom(b.lastSeen)
	r.CancelAt(b.lastSeen)
	return int(math.Ceil(delay.Round(time.Millisecond).Seconds()))
}

// Reset forgets the attempts of a key
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, namespace+":"+key)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// bucket must be called with rl.mu held
func (rl *RateLimiter) bucket(namespace, key string) (*bucket, bool) {
	policy, exists := rl.policies[namespace]
	if !exists {
		return nil, false
	}

	now := rl.now()
	compositeKey := namespace + ":" + key
	b, ok := rl.buckets[compositeKey]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(policy.limit(), policy.MaxAttempts)}
		rl.buckets[compositeKey] = b
	}
	b.lastSeen = now
	return b, true
}

// sweep drops buckets idle for longer than their window. Such a bucket is
// already full again.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for compositeKey, b := range rl.buckets {
		namespace := compositeKey
		for i, c := range compositeKey {
			if c == ':' {
				namespace = compositeKey[:i]
				break
			}
		}
		policy, exists := rl.policies[namespace]
		if !exists || now.Sub(b.lastSeen) > policy.Window {
			delete(rl.buckets, compositeKey)
		}
	}
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCleanup:
			return
		}
	}
}
