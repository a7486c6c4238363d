// Per-client token-bucket rate limiting, process-local. Buckets are keyed
// by session identity when present, otherwise by client IP, and idle
// buckets are evicted opportunistically to bound memory. For horizontally
// scaled deployments a shared limiter would be needed; a single dashboard
// instance does not warrant one.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-identity token bucket. Safe for concurrent
// use.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups int

	ttl time.Duration
}

// NewRateLimiter constructs a limiter replenishing rps tokens per second
// with the given burst size (coerced to at least 1).
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*bucket),
		ttl:     10 * time.Minute,
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Evict idle buckets every few thousand lookups, before touching the
	// requested one so a stale entry for this key is also swept.
	rl.lookups++
	if rl.lookups >= 5000 {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.buckets[key] = &bucket{limiter: lim, lastSeen: now}
	return lim
}

// Handler returns the enforcing middleware. Exhausted buckets yield a 429
// with the standard error envelope and a minimal Retry-After.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if email := SessionEmail(c); email != "" {
			key = "user:" + email
		}

		if rl.get(key).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.GetString(ctxKeyRequestID),
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}
