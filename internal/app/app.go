// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/markdave123-py/Preprocessa/internal/config"
	"github.com/markdave123-py/Preprocessa/internal/core"
	db "github.com/markdave123-py/Preprocessa/internal/core/database"
	ingestion "github.com/markdave123-py/Preprocessa/internal/core/ingestion_engine"
	"github.com/markdave123-py/Preprocessa/internal/core/llm"
	objectclient "github.com/markdave123-py/Preprocessa/internal/core/object-client"
	"github.com/markdave123-py/Preprocessa/internal/core/partition"
)

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	Pipeline     *ingestion.Pipeline
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	geminiEmbedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel, cfg.EmbedDim)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider, %w", err)
	}

	var partitioner core.Partitioner
	if cfg.UnstructuredURL != "" {
		partitioner = partition.NewUnstructuredPartitioner(cfg.UnstructuredURL, cfg.UnstructuredKey)
	} else {
		// Local text-only fallback; tables and images need the hosted API.
		log.Println("UNSTRUCTURED_API_URL not set, using local docconv partitioner")
		partitioner = partition.NewDocconvPartitioner()
	}

	pipeline := ingestion.NewPipeline(dbClient, partitioner, llmProvider, geminiEmbedder, cfg.WorkDir)

	server := NewServer(cfg, dbClient, objClient, pipeline)

	return &App{DBClient: dbClient, ObjectClient: objClient, Pipeline: pipeline, Server: server}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
