package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/realtime"
)

type chatThread struct {
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_at"`
	Unread      int       `json:"unread"`
}

// AdminChats serves GET /api/admin/chats: every open support thread, the
// freshest first, with the count of customer messages not yet answered.
func AdminChats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT m.user_id, u.name, u.surname, m.body, m.created_at,
(SELECT count(*) FROM chat_messages x WHERE x.user_id = m.user_id AND NOT x.is_support
   AND x.created_at > COALESCE((SELECT max(created_at) FROM chat_messages s WHERE s.user_id = m.user_id AND s.is_support), 'epoch'))
FROM chat_messages m
JOIN users u ON u.id = m.user_id
WHERE m.created_at = (SELECT max(created_at) FROM chat_messages l WHERE l.user_id = m.user_id)
ORDER BY m.created_at DESC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		defer rows.Close()
		list := []chatThread{}
		for rows.Next() {
			var t chatThread
			if rows.Scan(&t.UserID, &t.Name, &t.Surname, &t.LastMessage, &t.LastAt, &t.Unread) == nil {
				list = append(list, t)
			}
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

// AdminChatMessages serves GET /api/admin/chats/:id/messages.
func AdminChatMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		threadOwner, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			emptyData(c)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		list, err := threadMessages(ctx, threadOwner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

// AdminChatSend serves POST /api/admin/chats/:id/send. The reply lands on the
// customer's chat.{id} channel as a support message.
func AdminChatSend(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		threadOwner, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			emptyData(c)
			return
		}
		var req chatSendRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "message_required")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		m := models.ChatMessage{
			ID:            uuid.NewString(),
			UserID:        threadOwner,
			SenderID:      uid,
			IsSupport:     true,
			Body:          strings.TrimSpace(req.Message),
			CorrelationID: req.CorrelationID,
			CreatedAt:     time.Now().UTC(),
		}
		if err := insertMessage(ctx, m); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		hub.Publish("chat."+strconv.FormatInt(threadOwner, 10), ".MessageSent", m)
		c.JSON(http.StatusOK, m)
	}
}

// RequestsExport serves GET /api/admin/requests/export: every application as
// an XLSX workbook, one row per request with its approvals joined in.
func RequestsExport() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT r.id, u.name, u.surname, u.email, r.code, r.organization, r.created_at,
COALESCE(string_agg(a.title_az, '; ' ORDER BY a.id), '')
FROM requests r
JOIN users u ON u.id = r.user_id
LEFT JOIN request_approvals ra ON ra.request_id = r.id
LEFT JOIN approvals a ON a.id = ra.approval_id
GROUP BY r.id, u.name, u.surname, u.email
ORDER BY r.created_at DESC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		defer rows.Close()

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)
		headers := []string{"ID", "Name", "Surname", "Email", "HS Code", "Organization", "Submitted", "Approvals"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		row := 2
		for rows.Next() {
			var (
				id                                        int64
				name, surname, email, code, org, approval string
				created                                   time.Time
			)
			if err := rows.Scan(&id, &name, &surname, &email, &code, &org, &created, &approval); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
				return
			}
			values := []any{id, name, surname, email, code, org, created.Format("2006-01-02 15:04"), approval}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
		if err := rows.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}

		filename := fmt.Sprintf("requests-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}
