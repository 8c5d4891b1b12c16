// internal/models/usage.go
package models

import "time"

// GenerationRecord is one generate-image outcome, kept for history.
type GenerationRecord struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Prompt      string    `bson:"prompt" json:"prompt"`
	Source      string    `bson:"source,omitempty" json:"source,omitempty"`
	Success     bool      `bson:"success" json:"success"`
	Message     string    `bson:"message" json:"message"`
	CreditsUsed int       `bson:"credits_used" json:"credits_used"`
	RequestID   string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	ProcessTime int64     `bson:"process_time_ms" json:"process_time_ms"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type GenerationHistoryResponse struct {
	Success bool               `json:"success"`
	History []GenerationRecord `json:"history"`
}
