// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/neofit/paycalc_backend/models"
)

// RateLimiter implements per-IP rate limiting with tighter budgets on the
// login and approval endpoints.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.RWMutex

	rate  rate.Limit
	burst int

	endpointLimits map[string]endpointLimit
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type endpointLimit struct {
	rate  rate.Limit
	burst int
}

// NewRateLimiter creates a rate limiter with a default budget plus strict
// per-endpoint overrides.
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(10),
		burst:    20,
		endpointLimits: map[string]endpointLimit{
			"/api/auth/login":          {rate: rate.Limit(0.2), burst: 5},
			"/api/sales/:date/approve": {rate: rate.Limit(0.5), burst: 5},
			"/api/sales/:date/unlock":  {rate: rate.Limit(0.5), burst: 5},
		},
	}

	go rl.cleanupVisitors()
	return rl
}

// Middleware returns the echo middleware function
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			path := c.Path()

			limiter := rl.getVisitor(ip, path)
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Status:  http.StatusTooManyRequests,
					Message: "Too many requests, please try again later",
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) getVisitor(ip, path string) *rate.Limiter {
	key := ip + path

	rl.mu.RLock()
	v, exists := rl.visitors[key]
	rl.mu.RUnlock()

	if exists {
		rl.mu.Lock()
		v.lastSeen = time.Now()
		rl.mu.Unlock()
		return v.limiter
	}

	limit := rl.rate
	burst := rl.burst
	if el, ok := rl.endpointLimits[path]; ok {
		limit = el.rate
		burst = el.burst
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, exists = rl.visitors[key]; exists {
		return v.limiter
	}

	v = &visitor{
		limiter:  rate.NewLimiter(limit, burst),
		lastSeen: time.Now(),
	}
	rl.visitors[key] = v
	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}
