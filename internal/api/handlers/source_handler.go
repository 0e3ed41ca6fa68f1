package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/Preprocessa/internal/config"
	"github.com/markdave123-py/Preprocessa/internal/core"
	"github.com/markdave123-py/Preprocessa/internal/models"
)

type SourceHandler struct {
	dbclient     core.DbClient
	objectclient core.ObjectClient
	cfg          *config.Config
}

func NewSourceHandler(dbclient core.DbClient, objectclient core.ObjectClient, cfg *config.Config) *SourceHandler {
	return &SourceHandler{dbclient: dbclient, objectclient: objectclient, cfg: cfg}
}

// UploadSource stores the uploaded document in S3 and provisions the bot
// source row together with its extracted-data placeholder, which the sync
// pipeline requires to exist before it will run.
func (h *SourceHandler) UploadSource(w http.ResponseWriter, r *http.Request) {

	r.ParseMultipartForm(52 << 20)

	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read file", http.StatusBadRequest)
		return
	}

	// Sanitize filename to prevent path traversal or invalid characters
	cleanFilename := filepath.Base(header.Filename)
	sourceID := uuid.NewString()

	s3Key := fmt.Sprintf("%s/%s/%s", userID, sourceID, cleanFilename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	url, err := h.objectclient.UploadFile(uploadctx, h.cfg.BucketName, s3Key, data, contentType)
	if err != nil {
		http.Error(w, fmt.Sprintf("upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	src := &models.BotSource{
		ID:        sourceID,
		UserID:    userID,
		Name:      cleanFilename,
		URL:       url,
		StatusID:  models.SourceStatusCreated,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.dbclient.CreateBotSource(uploadctx, src); err != nil {
		log.Printf("DB insert failed for source %s: %v", sourceID, err)
		http.Error(w, "failed to store source metadata", http.StatusInternalServerError)
		return
	}

	rec := &models.BotSourceExtractedData{
		ID:          uuid.NewString(),
		BotSourceID: sourceID,
		CreatedAt:   time.Now(),
	}
	if err := h.dbclient.CreateExtractedData(uploadctx, rec); err != nil {
		log.Printf("DB insert failed for extracted data of %s: %v", sourceID, err)
		http.Error(w, "failed to provision extracted data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(src)
}

func (h *SourceHandler) GetSources(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	sources, err := h.dbclient.ListBotSourcesByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sources)
}
