package models

import "time"

// Approval is a regulatory document category issuable against HS codes
// whose code starts with the approval's prefix.
type Approval struct {
	ID    int64         `json:"id"`
	Title LocalizedText `json:"title"`
}

// Request is a submitted application for regulatory documents.
type Request struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	Code         string            `json:"code"`
	Organization string            `json:"organization"`
	Approvals    []Approval        `json:"approvals"`
	Documents    []RequestDocument `json:"documents"`
	CreatedAt    time.Time         `json:"created_at"`
}

type RequestDocument struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
