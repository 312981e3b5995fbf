package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/thelaith/satire-empire/internal/constants"
)

var (
	limiterMu  sync.Mutex
	ipLimiters = make(map[string]*rate.Limiter)
)

func getLimiter(ip string) *rate.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	limiter, exists := ipLimiters[ip]
	if !exists {
		limiter = rate.NewLimiter(10, 20)
		ipLimiters[ip] = limiter
	}
	return limiter
}

// RateLimit throttles requests per client IP. Lobby browsers poll the
// public listing aggressively; this keeps a single client from starving
// the rest.
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{constants.JSONKeyError: constants.ErrTooManyRequests})
			return
		}
		c.Next()
	}
}
