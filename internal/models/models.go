package models

import (
	"time"
)

// Bot source lifecycle statuses. Values mirror the status_id column.
const (
	SourceStatusCreated    = 1
	SourceStatusInProgress = 2
	SourceStatusCompleted  = 3
	SourceStatusFailed     = 4
	SourceStatusCrawling   = 5
	SourceStatusEmbedding  = 6
)

// VectorDim is the fixed dimensionality of every persisted embedding.
const VectorDim = 1024

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// BotSource represents one ingestable document attached to a bot.
type BotSource struct {
	ID                   string    `db:"id" json:"id"`
	UserID               string    `db:"user_id" json:"user_id"`
	Name                 string    `db:"name" json:"name"`
	URL                  string    `db:"url" json:"url"` // S3 URL or original link
	StatusID             int       `db:"status_id" json:"status_id"`
	ExtractedTokenLength int       `db:"extracted_token_length" json:"extracted_token_length"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// BotSourceExtractedData is the placeholder record ingestion results attach to.
// Exactly one exists per bot source; it is created at provisioning time and the
// pipeline only checks that it exists.
type BotSourceExtractedData struct {
	ID          string    `db:"id" json:"id"`
	BotSourceID string    `db:"bot_source_id" json:"bot_source_id"`
	Data        []byte    `db:"data" json:"data"` // opaque JSONB payload
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ExtractedDataVector is one (content, embedding) row produced by ingestion.
// Content is always the derived payload itself (text chunk, table markdown or
// base64 image), never a summary; summaries are only the embedding input.
type ExtractedDataVector struct {
	ID              string    `db:"id" json:"id"`
	ExtractedDataID string    `db:"bot_source_extracted_data_id" json:"bot_source_extracted_data_id"`
	Content         string    `db:"content" json:"content"`
	Vector          []float32 `db:"vector" json:"vector"` // pgvector column, VectorDim wide
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
