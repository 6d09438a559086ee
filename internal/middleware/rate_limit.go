// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/mvshop-backend/internal/config"
	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

const codeRateLimited = "RATE_LIMITED"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}
}

// Cleanup drops visitors idle for longer than idle until done is closed.
func (rl *RateLimiter) Cleanup(done <-chan struct{}, idle time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.mtx.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > idle {
					delete(rl.visitors, ip)
				}
			}
			rl.mtx.Unlock()
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getVisitor(c.ClientIP()).Allow() {
			utils.ErrorResponse(c, http.StatusTooManyRequests, codeRateLimited,
				i18n.T(utils.GetLangFromContext(c), i18n.KeyRateLimited), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimiters are the limiters configured for the API.
type RateLimiters struct {
	General *RateLimiter
	Auth    *RateLimiter
}

func NewRateLimiters(cfg config.RateLimitConfig) *RateLimiters {
	return &RateLimiters{
		General: NewRateLimiter(rate.Limit(cfg.GeneralPerSecond), cfg.GeneralBurst),
		Auth:    NewRateLimiter(rate.Limit(cfg.AuthPerSecond), cfg.AuthBurst),
	}
}

// Start runs visitor cleanup for every limiter until done is closed.
func (r *RateLimiters) Start(done <-chan struct{}) {
	go r.General.Cleanup(done, 3*time.Minute)
	go r.Auth.Cleanup(done, 3*time.Minute)
}
