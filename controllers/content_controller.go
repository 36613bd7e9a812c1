package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"atfplatform/backend/database"
	"atfplatform/backend/models"
)

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, section, title_az, title_en, title_ru, body_az, body_en, body_ru
FROM home_sections ORDER BY position, id`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		list, err := scanHomeSections(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

func Services() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, title_az, title_en, title_ru, description_az, description_en, description_ru, icon
FROM services ORDER BY position, id`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		list, err := scanServices(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

func FAQs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, question_az, question_en, question_ru, answer_az, answer_en, answer_ru
FROM faqs ORDER BY position, id`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		list, err := scanFAQs(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

func scanHomeSections(rows pgx.Rows) ([]models.HomeSection, error) {
	defer rows.Close()
	list := []models.HomeSection{}
	for rows.Next() {
		var s models.HomeSection
		var tAz, tEn, tRu, bAz, bEn, bRu string
		if err := rows.Scan(&s.ID, &s.Section, &tAz, &tEn, &tRu, &bAz, &bEn, &bRu); err != nil {
			return nil, err
		}
		s.Title = models.L(tAz, tEn, tRu)
		s.Body = models.L(bAz, bEn, bRu)
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanServices(rows pgx.Rows) ([]models.Service, error) {
	defer rows.Close()
	list := []models.Service{}
	for rows.Next() {
		var s models.Service
		var tAz, tEn, tRu, dAz, dEn, dRu string
		if err := rows.Scan(&s.ID, &tAz, &tEn, &tRu, &dAz, &dEn, &dRu, &s.Icon); err != nil {
			return nil, err
		}
		s.Title = models.L(tAz, tEn, tRu)
		s.Description = models.L(dAz, dEn, dRu)
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanFAQs(rows pgx.Rows) ([]models.FAQ, error) {
	defer rows.Close()
	list := []models.FAQ{}
	for rows.Next() {
		var f models.FAQ
		var qAz, qEn, qRu, aAz, aEn, aRu string
		if err := rows.Scan(&f.ID, &qAz, &qEn, &qRu, &aAz, &aEn, &aRu); err != nil {
			return nil, err
		}
		f.Question = models.L(qAz, qEn, qRu)
		f.Answer = models.L(aAz, aEn, aRu)
		list = append(list, f)
	}
	return list, rows.Err()
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Send serves the contact form. The route is rate limited per IP.
func Send() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Message = strings.TrimSpace(req.Message)
		if req.Name == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "name_required")})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "message_required")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := database.Pool.Exec(ctx, `INSERT INTO contact_messages(name, email, body) VALUES($1,$2,$3)`,
			req.Name, req.Email, req.Message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
