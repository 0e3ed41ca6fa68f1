package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/Preprocessa/internal/config"
	"github.com/markdave123-py/Preprocessa/internal/core"
	"github.com/markdave123-py/Preprocessa/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	// Ensure bootstrap once
	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Implementing the db interface for users

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, first_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()), COALESCE($6, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.FirstName, user.Email, user.PasswordHash, nullableTime(user.CreatedAt), nullableTime(user.UpdatedAt))
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Implementing the db interface for bot sources

func (c *DatabaseClient) CreateBotSource(ctx context.Context, src *models.BotSource) error {
	if src == nil {
		return errors.New("nil bot source")
	}
	const q = `
		INSERT INTO bot_source
			(id, user_id, name, url, status_id, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, COALESCE($6, now()), COALESCE($7, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		src.ID, src.UserID, src.Name, src.URL, src.StatusID, nullableTime(src.CreatedAt), nullableTime(src.UpdatedAt))
	return err
}

func (c *DatabaseClient) GetBotSourceByID(ctx context.Context, id string) (*models.BotSource, error) {
	const q = `
		SELECT id, user_id, name, url, status_id, COALESCE(extracted_token_length, 0), created_at, updated_at
		FROM bot_source
		WHERE id = $1
	`
	var s models.BotSource
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.UserID, &s.Name, &s.URL, &s.StatusID, &s.ExtractedTokenLength, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *DatabaseClient) ListBotSourcesByUser(ctx context.Context, userID string) ([]models.BotSource, error) {
	const q = `
		SELECT id, user_id, name, url, status_id, COALESCE(extracted_token_length, 0), created_at, updated_at
		FROM bot_source
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BotSource
	for rows.Next() {
		var s models.BotSource
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.URL, &s.StatusID, &s.ExtractedTokenLength, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateBotSourceStatus(ctx context.Context, id string, statusID int) error {
	const q = `
		UPDATE bot_source
		SET status_id = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, statusID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("bot source not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) UpdateExtractedTokenLength(ctx context.Context, id string, length int) error {
	const q = `
		UPDATE bot_source
		SET extracted_token_length = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, length)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("bot source not found: %s", id)
	}
	return nil
}

// Implementing the db interface for extracted data

func (c *DatabaseClient) CreateExtractedData(ctx context.Context, rec *models.BotSourceExtractedData) error {
	if rec == nil {
		return errors.New("nil extracted data")
	}
	const q = `
		INSERT INTO bot_source_extracted_data (id, bot_source_id, data, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`
	_, err := c.db.ExecContext(ctx, q, rec.ID, rec.BotSourceID, rec.Data, nullableTime(rec.CreatedAt))
	return err
}

func (c *DatabaseClient) GetExtractedDataBySourceID(ctx context.Context, botSourceID string) (*models.BotSourceExtractedData, error) {
	const q = `
		SELECT id, bot_source_id, data, created_at
		FROM bot_source_extracted_data
		WHERE bot_source_id = $1
	`
	var rec models.BotSourceExtractedData
	err := c.db.QueryRowContext(ctx, q, botSourceID).Scan(
		&rec.ID, &rec.BotSourceID, &rec.Data, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ReplaceExtractedDataVectors swaps a record's vectors in one transaction:
// stale rows from earlier runs are deleted, then the new rows inserted.
// On any failure the transaction rolls back and nothing becomes visible.
func (c *DatabaseClient) ReplaceExtractedDataVectors(ctx context.Context, extractedDataID string, vectors []models.ExtractedDataVector) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	const del = `DELETE FROM bot_source_extracted_data_vector WHERE bot_source_extracted_data_id = $1`
	if _, err := tx.ExecContext(ctx, del, extractedDataID); err != nil {
		_ = tx.Rollback()
		return err
	}

	const ins = `
		INSERT INTO bot_source_extracted_data_vector
			(id, bot_source_extracted_data_id, content, vector, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`
	stmt, err := tx.PrepareContext(ctx, ins)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range vectors {
		v := &vectors[i]
		id := v.ID
		if id == "" {
			id = uuid.NewString()
		}
		vec := pgvector.NewVector(v.Vector)

		if _, err := stmt.ExecContext(ctx,
			id, extractedDataID, v.Content, vec, nullableTime(v.CreatedAt),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// nullableTime lets COALESCE fall back to now() for unset timestamps.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
