package ingestion_engine

import "errors"

// Failure classes for a sync run. Every stage failure wraps exactly one of
// these so callers can map it to a response without parsing messages.
var (
	// ErrSourceNotFound: the bot source row does not exist.
	ErrSourceNotFound = errors.New("bot source not found")
	// ErrExtractedDataNotFound: the provisioning placeholder is missing.
	ErrExtractedDataNotFound = errors.New("bot source extracted data not found")
	// ErrFetch: the source URL was unreachable or returned a non-2xx status.
	ErrFetch = errors.New("fetch source document")
	// ErrExtraction: the document could not be partitioned.
	ErrExtraction = errors.New("extract document elements")
	// ErrGeneration: the summarization backend failed.
	ErrGeneration = errors.New("generate summaries")
	// ErrEmbedding: the embedding backend failed.
	ErrEmbedding = errors.New("embed contents")
	// ErrPersistence: the final commit failed; the store was rolled back.
	ErrPersistence = errors.New("persist vectors")
)
