package core

import (
	"context"

	"github.com/markdave123-py/Preprocessa/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByEmail(ctx context.Context, email string) (user *models.User, err error)

	CreateBotSource(ctx context.Context, src *models.BotSource) error
	GetBotSourceByID(ctx context.Context, id string) (*models.BotSource, error)
	ListBotSourcesByUser(ctx context.Context, userID string) ([]models.BotSource, error)
	UpdateBotSourceStatus(ctx context.Context, id string, statusID int) error
	UpdateExtractedTokenLength(ctx context.Context, id string, length int) error

	CreateExtractedData(ctx context.Context, rec *models.BotSourceExtractedData) error
	GetExtractedDataBySourceID(ctx context.Context, botSourceID string) (*models.BotSourceExtractedData, error)

	// ReplaceExtractedDataVectors deletes any previous vectors for the
	// extracted-data record and inserts the given rows in one transaction.
	// Either every row becomes visible or none does.
	ReplaceExtractedDataVectors(ctx context.Context, extractedDataID string, rows []models.ExtractedDataVector) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}
