package middlewares

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeremiapane/restaurant-manager/utils"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int
	ips   map[string]*rate.Limiter
	mu    sync.Mutex
}

// NewRateLimiter allows perSecond requests per second per IP, bursting to the
// same amount. A non-positive rate disables limiting.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		return &RateLimiter{limit: rate.Inf, burst: 1, ips: make(map[string]*rate.Limiter)}
	}
	return &RateLimiter{
		limit: rate.Limit(perSecond),
		burst: perSecond,
		ips:   make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, ok := rl.ips[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.ips[ip] = limiter
	}
	return limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New("too many requests, slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}
