// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a process-local token-bucket rate limiter with one
// bucket per signed-in user (or client IP when signed out). Idle buckets are
// evicted opportunistically. Rejections carry a Retry-After computed from the
// bucket's refill time.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc maps a request to its bucket.
type KeyFunc func(*gin.Context) string

// KeyByUserOrIP keys by "user:<id>" when signed in, else "ip:<addr>".
func KeyByUserOrIP() KeyFunc {
	return func(c *gin.Context) string {
		if uid := UserIDFrom(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds the buckets. It is safe for concurrent use.
type RateLimiter struct {
	limit rate.Limit
	burst int
	keyFn KeyFunc
	skip  []string

	mu      sync.Mutex
	buckets map[string]*bucket
	idleTTL time.Duration
	sweepN  int
	sweepAt int
}

// NewRateLimiter allows rps requests per second with the given burst
// (coerced to at least 1). Requests whose path starts with one of skip are
// never limited.
func NewRateLimiter(rps float64, burst int, keyFn KeyFunc, skip ...string) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if keyFn == nil {
		keyFn = KeyByUserOrIP()
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		skip:    skip,
		buckets: make(map[string]*bucket),
		idleTTL: 10 * time.Minute,
		sweepAt: 4096,
	}
}

// limiterFor returns key's limiter, creating it on first use. Every sweepAt
// lookups idle buckets are dropped first, so a stale bucket is evicted even
// when it is the one being fetched.
func (rl *RateLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweepN++
	if rl.sweepN >= rl.sweepAt {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.sweepN = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Handler enforces the limits, answering 429 with the standard envelope.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range rl.skip {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}

		now := time.Now()
		res := rl.limiterFor(rl.keyFn(c), now).ReserveN(now, 1)
		if res.OK() && res.DelayFrom(now) == 0 {
			c.Next()
			return
		}

		retry := 1
		if res.OK() {
			retry = max(1, int(math.Ceil(res.DelayFrom(now).Seconds())))
			res.CancelAt(now)
		}
		rateLimited.WithLabelValues(routeLabel(c)).Inc()
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": RequestIDFrom(c),
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}
