package ratelimit

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware rejects a client IP that exceeded its quota with 429.
// Requests pass through when Redis is unreachable.
func Middleware(l *FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		allowed, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("[RateLimit] %v", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "Too many requests"})
			return
		}
		c.Next()
	}
}
