package rate_limiter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding window limiter keyed by client.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Run drops idle clients every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := rl.now().Add(-rl.window)
	for key := range rl.requests {
		rl.requests[key] = rl.validTimes(key, windowStart)
		if len(rl.requests[key]) == 0 {
			delete(rl.requests, key)
		}
	}
}

func (rl *RateLimiter) IsAllowed(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.requests[key] = rl.validTimes(key, now.Add(-rl.window))

	if len(rl.requests[key]) >= rl.limit {
		return false
	}

	rl.requests[key] = append(rl.requests[key], now)
	return true
}

func (rl *RateLimiter) GetRemainingRequests(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.limit - len(rl.validTimes(key, rl.now().Add(-rl.window)))
}

// validTimes must be called with the lock held.
func (rl *RateLimiter) validTimes(key string, windowStart time.Time) []time.Time {
	var valid []time.Time
	for _, t := range rl.requests[key] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)
		if rl.IsAllowed(key) {
			c.Next()
			return
		}

		resetAt := rl.now().Add(rl.window).Format(time.RFC3339)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", resetAt)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":    "Too many attempts, try again later",
			"reset_at": resetAt,
		})
	}
}

// ClientKey identifies the caller by the first forwarded address. Private
// addresses are shared by many users behind a proxy, so the user agent is
// added to tell them apart.
func ClientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])

	if isPrivateIP(clientIP) {
		return clientIP + ":" + c.GetHeader("User-Agent")
	}
	return clientIP
}

var privatePrefixes = []string{
	"10.", "192.168.", "127.", "169.254.", "::1", "fc00:", "fe80:",
	"172.16.", "172.17.", "172.18.", "172.19.", "172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.", "172.28.", "172.29.", "172.30.", "172.31.",
}

func isPrivateIP(ip string) bool {
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
