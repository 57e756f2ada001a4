package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/pkg/metrics"
	"golang.org/x/time/rate"
)

const msgRateLimited = "Rate limit exceeded"

// RateLimit returns a Gin middleware enforcing an in-memory token bucket per key.
// rps = allowed events per second, burst = maximum tokens in bucket.
// ver may be nil; see rateKey for key selection.
func RateLimit(rps float64, burst int, ver Verifier) gin.HandlerFunc {
	var store sync.Map // map[string]*rate.Limiter
	get := func(key string) *rate.Limiter {
		if v, ok := store.Load(key); ok {
			return v.(*rate.Limiter)
		}
		v, _ := store.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		return v.(*rate.Limiter)
	}

	return func(c *gin.Context) {
		if !get(rateKey(c, ver)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msgRateLimited})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}

// rateKey prefers the authenticated user id: from a prior Auth, or from a
// bearer token that verifies. Otherwise the client IP is used.
func rateKey(c *gin.Context, ver Verifier) string {
	if id, ok := Identity(c); ok && id.ID != "" {
		return "user:" + id.ID
	}
	if ver != nil {
		if raw, ok := BearerToken(c); ok {
			if claims, err := ver.Verify(raw); err == nil && claims.ID != "" {
				return "user:" + claims.ID
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
