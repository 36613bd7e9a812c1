package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/storage"
)

// ProfileEdit accepts multipart form data so the avatar can ride along with
// the text fields. Empty fields keep their stored value.
func ProfileEdit(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		u, err := loadUser(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		if v := strings.TrimSpace(c.PostForm("name")); v != "" {
			u.Name = v
		}
		if v := strings.TrimSpace(c.PostForm("surname")); v != "" {
			u.Surname = v
		}
		if v := strings.TrimSpace(c.PostForm("phone")); v != "" {
			u.Phone = v
		}
		if v := strings.TrimSpace(c.PostForm("voen")); v != "" {
			u.Voen = v
		}
		if fh, err := c.FormFile("avatar"); err == nil {
			url, err := storage.SaveUpload(ctx, store, "avatars", fh)
			if err != nil {
				log.Printf("avatar upload error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			u.Avatar = url
		}
		_, err = database.Pool.Exec(ctx, `UPDATE users SET name=$1, surname=$2, phone=$3, voen=$4, avatar=$5 WHERE id=$6`,
			u.Name, u.Surname, u.Phone, u.Voen, u.Avatar, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func PasswordEdit() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		var req models.PasswordEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		if req.New == "" || req.New != req.Confirm {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "password_mismatch")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var hash string
		if err := database.Pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id=$1`, uid).Scan(&hash); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Current)) != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "wrong_password")})
			return
		}
		newHash, err := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		if _, err := database.Pool.Exec(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, string(newHash), uid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// IsAdmin backs the admin route guard.
func IsAdmin(c *gin.Context, uid int64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var isAdmin bool
	if err := database.Pool.QueryRow(ctx, `SELECT is_admin FROM users WHERE id=$1`, uid).Scan(&isAdmin); err != nil {
		return false
	}
	return isAdmin
}
