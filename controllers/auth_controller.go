package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"atfplatform/backend/cache"
	"atfplatform/backend/config"
	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/utils"
)

const tokenTTL = 7 * 24 * time.Hour

func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("auth_token", token, int(tokenTTL.Seconds()), "/", "", true, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
}

func Register(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "name_required")})
			return
		}
		if req.Password == "" || req.Password != req.Confirm {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "password_mismatch")})
			return
		}
		if !models.ValidRole(req.Role) {
			req.Role = models.RoleIndividual
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		verifyToken := uuid.NewString()
		var id int64
		err = database.Pool.QueryRow(ctx, `INSERT INTO users(name,surname,email,phone,password_hash,role,voen,verify_token)
VALUES($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			req.Name, req.Surname, req.Email, req.Phone, string(hash), req.Role, req.Voen, verifyToken).Scan(&id)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "email_taken")})
			return
		}
		// Mail delivery is handled out of process; the token is logged so
		// support can resend it manually.
		log.Printf("email verification token for user %d: %s", id, verifyToken)

		token, err := utils.GenerateJWT(cfg.JWTSecret, id, tokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		setAuthCookie(c, token)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func Login(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var id int64
		var hash string
		var verifiedAt *time.Time
		err := database.Pool.QueryRow(ctx, `SELECT id, password_hash, email_verified_at FROM users WHERE email=$1`,
			strings.ToLower(strings.TrimSpace(req.Email))).Scan(&id, &hash, &verifiedAt)
		if err != nil || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg(c, "invalid_credentials")})
			return
		}
		token, err := utils.GenerateJWT(cfg.JWTSecret, id, tokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		setAuthCookie(c, token)
		resp := gin.H{"token": token}
		if verifiedAt == nil {
			resp["warning"] = msg(c, "email_not_verified")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Logout revokes the presented token and always clears the cookie; failures
// on the server side never block the client from logging out.
func Logout(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t := c.GetString("token"); t != "" {
			if claims, err := utils.ParseJWT(cfg.JWTSecret, t); err == nil {
				ttl := time.Until(claims.ExpiresAt.Time)
				if err := cache.RevokeToken(c.Request.Context(), t, ttl); err != nil {
					log.Printf("token revoke error: %v", err)
				}
			}
		}
		clearAuthCookie(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Me serves GET /api/user: the current profile with its adverts.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		u, err := loadUser(ctx, uid)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				clearAuthCookie(c)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		u.Adverts, err = loadUserAdverts(ctx, uid)
		if err != nil {
			log.Printf("load user adverts error: %v", err)
		}
		c.JSON(http.StatusOK, u)
	}
}

func VerifyEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		res, err := database.Pool.Exec(ctx, `UPDATE users SET email_verified_at=now(), verify_token=''
WHERE verify_token=$1 AND verify_token <> '' AND email_verified_at IS NULL`, token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		if res.RowsAffected() == 0 {
			emptyData(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verified"})
	}
}

func loadUser(ctx context.Context, uid int64) (models.User, error) {
	var u models.User
	err := database.Pool.QueryRow(ctx, `SELECT id, name, surname, email, phone, role, voen, avatar, is_admin, email_verified_at, created_at
FROM users WHERE id=$1`, uid).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Phone, &u.Role, &u.Voen, &u.Avatar, &u.IsAdmin, &u.EmailVerifiedAt, &u.CreatedAt)
	return u, err
}
