package ingestion_engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/markdave123-py/Preprocessa/internal/core"
	"github.com/markdave123-py/Preprocessa/internal/models"
)

// Pipeline drives one full ingestion run per call: fetch the source document,
// partition it, chunk/summarize/embed the pieces and commit the resulting
// (content, vector) rows as a single unit.
//
// db:          the two lookups plus the transactional vector replace.
// partitioner: element extraction (external parsing capability).
// llm:         table/image summaries.
// embedder:    string batches to fixed-width vectors.
// workRoot:    parent directory for per-run scoped working dirs.
type Pipeline struct {
	db          core.DbClient
	partitioner core.Partitioner
	llm         core.LLMProvider
	embedder    core.EmbeddingProvider
	chunker     *Chunker
	httpClient  *http.Client
	workRoot    string
	vectorDim   int

	// one mutex per bot source ID; two concurrent runs against the same
	// source would otherwise race on the shared working-directory path
	locks sync.Map
}

func NewPipeline(db core.DbClient, partitioner core.Partitioner, llm core.LLMProvider, embedder core.EmbeddingProvider, workRoot string) *Pipeline {
	return &Pipeline{
		db:          db,
		partitioner: partitioner,
		llm:         llm,
		embedder:    embedder,
		chunker:     NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		httpClient:  &http.Client{Timeout: 2 * time.Minute},
		workRoot:    workRoot,
		vectorDim:   models.VectorDim,
	}
}

// SyncBotSource ingests the bot source with the given ID. The run either
// persists every produced vector row or none; re-running replaces the
// previous rows instead of duplicating them.
func (p *Pipeline) SyncBotSource(ctx context.Context, botSourceID string) error {
	mu := p.lockFor(botSourceID)
	mu.Lock()
	defer mu.Unlock()

	src, err := p.db.GetBotSourceByID(ctx, botSourceID)
	if err != nil {
		return fmt.Errorf("look up bot source: %w", err)
	}
	if src == nil {
		return ErrSourceNotFound
	}

	rec, err := p.db.GetExtractedDataBySourceID(ctx, botSourceID)
	if err != nil {
		return fmt.Errorf("look up extracted data: %w", err)
	}
	if rec == nil {
		return ErrExtractedDataNotFound
	}

	_ = p.db.UpdateBotSourceStatus(ctx, botSourceID, models.SourceStatusInProgress)
	if err := p.run(ctx, src, rec); err != nil {
		_ = p.db.UpdateBotSourceStatus(ctx, botSourceID, models.SourceStatusFailed)
		return err
	}
	_ = p.db.UpdateBotSourceStatus(ctx, botSourceID, models.SourceStatusCompleted)
	return nil
}

// run executes the fetch→extract→embed→commit sequence for a validated source.
func (p *Pipeline) run(ctx context.Context, src *models.BotSource, rec *models.BotSourceExtractedData) error {
	data, err := p.fetch(ctx, src.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	wd, err := newWorkDir(p.workRoot, src.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer func() {
		if rmErr := wd.Remove(); rmErr != nil {
			log.Printf("cleanup of %s failed: %v", wd.Path(), rmErr)
		}
	}()

	filePath, err := wd.WriteDocument(src.Name, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	elements, err := p.partitioner.Partition(ctx, filePath, wd.Path())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	texts, tables, err := Classify(elements)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	joined := JoinTexts(texts)
	summarizer := NewSummarizer(p.llm)

	var rows []models.ExtractedDataVector

	// narrative text: chunks are embedded verbatim and persisted as-is
	chunks := p.chunker.Chunk(joined)
	if len(chunks) > 0 {
		vecs, err := p.embed(ctx, chunks)
		if err != nil {
			return err
		}
		rows = p.stage(rows, rec.ID, chunks, vecs)
	}

	// tables: summaries are the embedding input, the markdown is the content
	if len(tables) > 0 {
		summaries, err := summarizer.SummarizeTables(ctx, tables)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGeneration, err)
		}
		vecs, err := p.embed(ctx, summaries)
		if err != nil {
			return err
		}
		rows = p.stage(rows, rec.ID, tables, vecs)
	}

	// images: descriptions are the embedding input, the base64 payload is
	// the content; skipped entirely when the document rendered no images
	images, err := DiscoverImages(wd.Path())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if len(images) > 0 {
		summaries, err := summarizer.SummarizeImages(ctx, images)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGeneration, err)
		}
		vecs, err := p.embed(ctx, summaries)
		if err != nil {
			return err
		}
		payloads := make([]string, len(images))
		for i := range images {
			payloads[i] = images[i].Base64
		}
		rows = p.stage(rows, rec.ID, payloads, vecs)
	}

	if err := p.db.ReplaceExtractedDataVectors(ctx, rec.ID, rows); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := p.db.UpdateExtractedTokenLength(ctx, src.ID, len([]rune(joined))); err != nil {
		log.Printf("update extracted token length for %s failed: %v", src.ID, err)
	}

	log.Printf("synced bot source %s: %d text chunks, %d tables, %d images",
		src.ID, len(chunks), len(tables), len(images))
	return nil
}

// fetch downloads the source document, expecting a 2xx response.
func (p *Pipeline) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// embed maps texts to vectors, enforcing the 1:1 order-preserving contract
// and the fixed dimensionality of every vector.
func (p *Pipeline) embed(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", ErrEmbedding, len(vecs), len(texts))
	}
	for i, v := range vecs {
		if len(v) != p.vectorDim {
			return nil, fmt.Errorf("%w: vector %d has %d dims, want %d", ErrEmbedding, i, len(v), p.vectorDim)
		}
	}
	return vecs, nil
}

// stage pairs contents with their vectors as rows to be committed later.
func (p *Pipeline) stage(rows []models.ExtractedDataVector, extractedDataID string, contents []string, vecs [][]float32) []models.ExtractedDataVector {
	for i := range contents {
		rows = append(rows, models.ExtractedDataVector{
			ExtractedDataID: extractedDataID,
			Content:         contents[i],
			Vector:          vecs[i],
		})
	}
	return rows
}

func (p *Pipeline) lockFor(botSourceID string) *sync.Mutex {
	mu, _ := p.locks.LoadOrStore(botSourceID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
