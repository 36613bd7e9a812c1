package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"atfplatform/backend/database"
)

// EntrepreneurDetails serves GET /api/entrepreneur-details/:slug — the owner
// profile behind an advert slug, with every active advert of that owner
// nested in.
func EntrepreneurDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var ownerID int64
		err := database.Pool.QueryRow(ctx, `SELECT user_id FROM adverts WHERE slug=$1`, slug).Scan(&ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				emptyData(c)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		u, err := loadUser(ctx, ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		// Public profile: strip contact-sensitive fields the portal never shows.
		u.Email = ""
		u.IsAdmin = false
		u.Adverts, err = loadUserAdverts(ctx, ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
