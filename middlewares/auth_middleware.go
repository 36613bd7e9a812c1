package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atfplatform/backend/cache"
	"atfplatform/backend/utils"
)

// TokenFromRequest accepts the bearer header or falls back to the auth_token
// cookie set at login, so both API clients and the browser session work.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if t, err := c.Cookie("auth_token"); err == nil {
		return t
	}
	return ""
}

func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := TokenFromRequest(c)
		if t == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		claims, err := utils.ParseJWT(secret, t)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		if cache.TokenRevoked(c.Request.Context(), t) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("token", t)
		c.Next()
	}
}

// AdminOnly must run after Auth; it checks the caller's admin flag loaded by
// the lookup function so route wiring stays free of database imports.
func AdminOnly(isAdmin func(c *gin.Context, userID int64) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		if uid == 0 || !isAdmin(c, uid) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
