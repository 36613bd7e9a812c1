package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"

	"atfplatform/backend/config"
	"atfplatform/backend/database"
	"atfplatform/backend/models"
	"atfplatform/backend/realtime"
	"atfplatform/backend/utils"
)

// supportChannel is where support agents listen for incoming customer
// messages; customers receive replies on their own chat.{id} channel.
const supportChannel = "support"

type chatSendRequest struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
}

// ChatMessages serves GET /api/chat/messages: the caller's support thread.
func ChatMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		list, err := threadMessages(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

// ChatSend stores the customer message and pushes a .MessageSent event to
// the sender's channel with the client correlation id echoed back, so the
// optimistic entry can be reconciled by id instead of content matching.
func ChatSend(cfg config.Config, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		var req chatSendRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg(c, "message_required")})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		m := models.ChatMessage{
			ID:            uuid.NewString(),
			UserID:        uid,
			SenderID:      uid,
			Body:          strings.TrimSpace(req.Message),
			CorrelationID: req.CorrelationID,
			CreatedAt:     time.Now().UTC(),
		}
		if err := insertMessage(ctx, m); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg(c, "something_went_wrong")})
			return
		}
		channel := "chat." + strconv.FormatInt(uid, 10)
		hub.Publish(channel, ".MessageSent", m)
		hub.Publish(supportChannel, ".MessageSent", m)

		// No agent online: let the assistant answer so the customer is not
		// left hanging.
		if cfg.GeminiAPIKey != "" && !hub.HasSubscriber(supportChannel) {
			go autoReply(cfg, hub, m)
		}
		c.JSON(http.StatusOK, m)
	}
}

func autoReply(cfg config.Config, hub *realtime.Hub, incoming models.ChatMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	client, err := utils.NewAIClient(ctx, utils.AIConfig{APIKey: cfg.GeminiAPIKey, GenModel: cfg.GeminiModel})
	if err != nil {
		log.Printf("chat ai client error: %v", err)
		return
	}
	defer client.Close()

	prompt := "You are the support assistant of an Azerbaijani logistics and trade portal. " +
		"Answer briefly and politely in the customer's language. Customer message: " + incoming.Body
	reply, err := utils.GenerateText(ctx, client, cfg.GeminiModel, genai.Text(prompt))
	if err != nil || reply == "" {
		log.Printf("chat auto reply error: %v", err)
		return
	}
	m := models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    incoming.UserID,
		SenderID:  incoming.UserID,
		IsSupport: true,
		Body:      reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := insertMessage(ctx, m); err != nil {
		log.Printf("chat auto reply store error: %v", err)
		return
	}
	hub.Publish("chat."+strconv.FormatInt(incoming.UserID, 10), ".MessageSent", m)
}

// BroadcastingAuth signs private channel subscriptions. A user may only sign
// their own chat.{id} channel; admins may sign any chat channel plus the
// shared support channel.
func BroadcastingAuth(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		var req struct {
			SocketID    string `json:"socket_id"`
			ChannelName string `json:"channel_name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.SocketID == "" || req.ChannelName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg(c, "invalid_body")})
			return
		}
		allowed := false
		if owner, ok := realtime.ChatChannelOwner(req.ChannelName); ok {
			allowed = owner == strconv.FormatInt(uid, 10) || IsAdmin(c, uid)
		} else if req.ChannelName == supportChannel {
			allowed = IsAdmin(c, uid)
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"auth": realtime.Sign(cfg.JWTSecret, req.SocketID, req.ChannelName)})
	}
}

func threadMessages(ctx context.Context, threadOwner int64) ([]models.ChatMessage, error) {
	rows, err := database.Pool.Query(ctx, `SELECT id, user_id, sender_id, is_support, body, correlation_id, created_at
FROM chat_messages WHERE user_id=$1 ORDER BY created_at`, threadOwner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.SenderID, &m.IsSupport, &m.Body, &m.CorrelationID, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func insertMessage(ctx context.Context, m models.ChatMessage) error {
	// The correlation id is an opaque client-generated string, stored as-is.
	_, err := database.Pool.Exec(ctx, `INSERT INTO chat_messages(id, user_id, sender_id, is_support, body, correlation_id, created_at)
VALUES($1,$2,$3,$4,$5,$6,$7)`, m.ID, m.UserID, m.SenderID, m.IsSupport, m.Body, m.CorrelationID, m.CreatedAt)
	return err
}
