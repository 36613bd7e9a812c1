package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"atfplatform/backend/models"
)

// Locale resolves the response language from ?lang= or Accept-Language and
// stores the normalized code ("az", "en" or "ru") in the request context.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			accept := c.GetHeader("Accept-Language")
			if i := strings.IndexAny(accept, ",;"); i > 0 {
				accept = accept[:i]
			}
			lang = strings.TrimSpace(accept)
		}
		c.Set("lang", models.NormalizeLang(lang))
		c.Next()
	}
}
