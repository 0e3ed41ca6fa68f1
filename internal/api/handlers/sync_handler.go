package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/markdave123-py/Preprocessa/internal/config"
	ingestion "github.com/markdave123-py/Preprocessa/internal/core/ingestion_engine"
)

// Syncer runs one ingestion pass for a bot source.
type Syncer interface {
	SyncBotSource(ctx context.Context, botSourceID string) error
}

type SyncHandler struct {
	pipeline Syncer
	cfg      *config.Config
}

func NewSyncHandler(pipeline Syncer, cfg *config.Config) *SyncHandler {
	return &SyncHandler{pipeline: pipeline, cfg: cfg}
}

type syncRequest struct {
	BotSourceID string `json:"botSourceId"`
}

// SyncBotSource runs the full ingestion pipeline for one bot source. The
// endpoint is meant to be hit by the scheduler, so it authenticates with a
// shared secret header instead of a user token.
func (h *SyncHandler) SyncBotSource(w http.ResponseWriter, r *http.Request) {
	if h.cfg.SyncSecret == "" || r.Header.Get("x-cron-secret") != h.cfg.SyncSecret {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BotSourceID == "" {
		http.Error(w, "botSourceId is required", http.StatusBadRequest)
		return
	}

	if err := h.pipeline.SyncBotSource(r.Context(), req.BotSourceID); err != nil {
		switch {
		case errors.Is(err, ingestion.ErrSourceNotFound):
			http.Error(w, "bot source not found", http.StatusBadRequest)
		case errors.Is(err, ingestion.ErrExtractedDataNotFound):
			http.Error(w, "extracted data not found for bot source", http.StatusBadRequest)
		default:
			log.Printf("sync failed for bot source %s: %v", req.BotSourceID, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}
