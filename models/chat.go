package models

import "time"

// ChatMessage belongs to the support thread of the user identified by UserID.
// CorrelationID is the client-generated id echoed back so the sender can
// reconcile its optimistic entry without content matching.
type ChatMessage struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"user_id"`
	SenderID      int64     `json:"sender_id"`
	IsSupport     bool      `json:"is_support"`
	Body          string    `json:"body"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
