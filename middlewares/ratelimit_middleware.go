package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atfplatform/backend/cache"
)

// RateLimit caps requests per client IP for the wrapped route using a fixed
// one-minute redis window. Redis errors fail open.
func RateLimit(name string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := name + ":" + c.ClientIP()
		exceeded, err := cache.CheckRateLimit(c.Request.Context(), key, perMinute, time.Minute)
		if err != nil {
			log.Printf("rate limit check error: %v", err)
			c.Next()
			return
		}
		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
