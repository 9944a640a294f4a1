package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type visitor struct {
	count       int
	windowStart time.Time
}

// pruneThreshold bounds the visitor map in long-lived processes; once it
// grows past this, expired buckets are dropped on the next request.
const pruneThreshold = 4096

// RateLimiter caps requests per client IP at limit per window.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	prune := func(now time.Time) {
		for ip, v := range visitors {
			if now.Sub(v.windowStart) > window {
				delete(visitors, ip)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			ip := c.RealIP()

			mu.Lock()
			if len(visitors) > pruneThreshold {
				prune(now)
			}

			v, ok := visitors[ip]
			if !ok || now.Sub(v.windowStart) > window {
				v = &visitor{windowStart: now}
				visitors[ip] = v
			}

			if v.count >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			v.count++
			mu.Unlock()

			return next(c)
		}
	}
}
