package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Preprocessa/internal/config"
	ingestion "github.com/markdave123-py/Preprocessa/internal/core/ingestion_engine"
)

type stubSyncer struct {
	err    error
	calls  int
	lastID string
}

func (s *stubSyncer) SyncBotSource(ctx context.Context, botSourceID string) error {
	s.calls++
	s.lastID = botSourceID
	return s.err
}

func newSyncRequest(secret, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sync-bot-source", strings.NewReader(body))
	if secret != "" {
		req.Header.Set("x-cron-secret", secret)
	}
	return req
}

func TestSyncBotSourceOK(t *testing.T) {
	syncer := &stubSyncer{}
	h := NewSyncHandler(syncer, &config.Config{SyncSecret: "s3cret"})

	rec := httptest.NewRecorder()
	h.SyncBotSource(rec, newSyncRequest("s3cret", `{"botSourceId":"src-1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
	assert.Equal(t, 1, syncer.calls)
	assert.Equal(t, "src-1", syncer.lastID)
}

func TestSyncBotSourceRejectsBadSecret(t *testing.T) {
	syncer := &stubSyncer{}
	h := NewSyncHandler(syncer, &config.Config{SyncSecret: "s3cret"})

	rec := httptest.NewRecorder()
	h.SyncBotSource(rec, newSyncRequest("wrong", `{"botSourceId":"src-1"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, syncer.calls)
}

func TestSyncBotSourceRejectsUnsetSecret(t *testing.T) {
	// an empty configured secret must not accept an empty header
	h := NewSyncHandler(&stubSyncer{}, &config.Config{})

	rec := httptest.NewRecorder()
	h.SyncBotSource(rec, newSyncRequest("", `{"botSourceId":"src-1"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncBotSourceRequiresBody(t *testing.T) {
	h := NewSyncHandler(&stubSyncer{}, &config.Config{SyncSecret: "s3cret"})

	rec := httptest.NewRecorder()
	h.SyncBotSource(rec, newSyncRequest("s3cret", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncBotSourceNotFoundIsBadRequest(t *testing.T) {
	h := NewSyncHandler(&stubSyncer{err: ingestion.ErrSourceNotFound}, &config.Config{SyncSecret: "s3cret"})

	rec := httptest.NewRecorder()
	h.SyncBotSource(rec, newSyncRequest("s3cret", `{"botSourceId":"missing"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestSyncBotSourceInternalFailureIsOpaque(t *testing.T) {
	wrapped := errors.Join(ingestion.ErrEmbedding, errors.New("quota exceeded"))
	h := NewSyncHandler(&stubSyncer{err: wrapped}, &config.Config{SyncSecret: "s3cret"})

	rec := httptest.NewRecorder()
	h.SyncBotSource(rec, newSyncRequest("s3cret", `{"botSourceId":"src-1"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "quota")
}
