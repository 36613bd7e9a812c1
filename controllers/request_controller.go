package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atfplatform/backend/cache"
	"atfplatform/backend/config"
	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/wizard"
)

type documentsRequest struct {
	Code string `json:"code"`
}

type downloadsRequest struct {
	Code         string  `json:"code"`
	ApprovalIDs  []int64 `json:"approval_ids"`
	Organization string  `json:"organization"`
}

// Documents is step one of the application wizard: validate the HS code and
// answer with the approvals issuable against it. On success the caller's
// wizard state moves to the approval-selection step.
func Documents() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		var req documentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		u, err := loadUser(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		if err := wizard.ValidateCode(req.Code, u.EmailVerified()); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": wizardMsg(c, err)})
			return
		}

		approvals, err := approvalsForCode(ctx, req.Code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		if len(approvals) == 0 {
			emptyData(c)
			return
		}
		next, err := wizard.Advance(wizard.StepCode)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": wizardMsg(c, err)})
			return
		}
		if err := cache.SetWizardStep(ctx, uid, string(next)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": approvals, "step": next})
	}
}

// Downloads is step two: the caller submits the selected approvals and gets
// back the generated document links. The wizard state is only advanced after
// the request row is committed, so a failed submit keeps the user on step two.
func Downloads(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		var req downloadsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		raw, err := cache.GetWizardStep(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		step := wizard.Parse(raw)
		if err := wizard.CanSubmit(step, req.ApprovalIDs); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": wizardMsg(c, err)})
			return
		}
		done, err := wizard.Advance(step)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": wizardMsg(c, err)})
			return
		}

		tx, err := database.Pool.Begin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		defer tx.Rollback(ctx)

		var requestID int64
		err = tx.QueryRow(ctx, `INSERT INTO requests(user_id, code, organization) VALUES($1,$2,$3) RETURNING id`,
			uid, req.Code, req.Organization).Scan(&requestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		docs := []models.RequestDocument{}
		for _, approvalID := range req.ApprovalIDs {
			var titleAz, titleEn, titleRu string
			err = tx.QueryRow(ctx, `SELECT title_az, title_en, title_ru FROM approvals WHERE id=$1`, approvalID).
				Scan(&titleAz, &titleEn, &titleRu)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "approvals_required")})
				return
			}
			if _, err = tx.Exec(ctx, `INSERT INTO request_approvals(request_id, approval_id) VALUES($1,$2)`, requestID, approvalID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			title := models.L(titleAz, titleEn, titleRu).Resolve(lang(c))
			url := fmt.Sprintf("%s/documents/%s.pdf", cfg.PublicBase, uuid.NewString())
			var docID int64
			if err = tx.QueryRow(ctx, `INSERT INTO request_documents(request_id, title, url) VALUES($1,$2,$3) RETURNING id`,
				requestID, title, url).Scan(&docID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			docs = append(docs, models.RequestDocument{ID: docID, Title: title, URL: url})
		}
		if err := tx.Commit(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		// The finished wizard resets; an absent key parses back to the first
		// step for the next application.
		if err := cache.ClearWizardStep(ctx, uid); err != nil {
			log.Printf("wizard step clear error: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"request_id": requestID, "documents": docs, "step": done})
	}
}

// Requests serves GET /api/requests: the caller's applications, newest first.
func Requests() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `SELECT id, user_id, code, organization, created_at
FROM requests WHERE user_id=$1 ORDER BY created_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		list := []models.Request{}
		for rows.Next() {
			var r models.Request
			if err := rows.Scan(&r.ID, &r.UserID, &r.Code, &r.Organization, &r.CreatedAt); err != nil {
				rows.Close()
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			list = append(list, r)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		for i := range list {
			list[i].Approvals, _ = requestApprovals(ctx, list[i].ID)
			list[i].Documents, _ = requestDocuments(ctx, list[i].ID)
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

func approvalsForCode(ctx context.Context, code string) ([]models.Approval, error) {
	rows, err := database.Pool.Query(ctx, `SELECT id, title_az, title_en, title_ru FROM approvals
WHERE code_prefix <> '' AND $1 LIKE code_prefix || '%' ORDER BY id`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.Approval{}
	for rows.Next() {
		var a models.Approval
		var az, en, ru string
		if err := rows.Scan(&a.ID, &az, &en, &ru); err != nil {
			return nil, err
		}
		a.Title = models.L(az, en, ru)
		list = append(list, a)
	}
	return list, rows.Err()
}

func requestApprovals(ctx context.Context, requestID int64) ([]models.Approval, error) {
	rows, err := database.Pool.Query(ctx, `SELECT a.id, a.title_az, a.title_en, a.title_ru
FROM approvals a JOIN request_approvals ra ON ra.approval_id = a.id WHERE ra.request_id=$1 ORDER BY a.id`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.Approval{}
	for rows.Next() {
		var a models.Approval
		var az, en, ru string
		if err := rows.Scan(&a.ID, &az, &en, &ru); err != nil {
			return nil, err
		}
		a.Title = models.L(az, en, ru)
		list = append(list, a)
	}
	return list, rows.Err()
}

func requestDocuments(ctx context.Context, requestID int64) ([]models.RequestDocument, error) {
	rows, err := database.Pool.Query(ctx, `SELECT id, title, url FROM request_documents WHERE request_id=$1 ORDER BY id`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.RequestDocument{}
	for rows.Next() {
		var d models.RequestDocument
		if err := rows.Scan(&d.ID, &d.Title, &d.URL); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func wizardMsg(c *gin.Context, err error) string {
	switch {
	case errors.Is(err, wizard.ErrEmptyCode):
		return msg(c, "code_required")
	case errors.Is(err, wizard.ErrCodeNotNumeric):
		return msg(c, "code_not_numeric")
	case errors.Is(err, wizard.ErrEmailNotVerified):
		return msg(c, "email_not_verified")
	case errors.Is(err, wizard.ErrNoApprovals):
		return msg(c, "approvals_required")
	case errors.Is(err, wizard.ErrInvalidTransition):
		return msg(c, "wizard_expired")
	}
	return msg(c, "something_went_wrong")
}
