package ingestion_engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/Preprocessa/internal/core"
)

// summaryConcurrency caps concurrent calls against the generative backend.
const summaryConcurrency = 5

const tableSummaryPrompt = "You are an assistant tasked with summarizing tables for retrieval. " +
	"These summaries will be embedded and used to retrieve the raw table elements. " +
	"Give a concise summary of the table."

const imageSummaryPrompt = "You are an assistant tasked with describing images for retrieval. " +
	"These descriptions will be embedded and used to retrieve the raw image. " +
	"Give a concise description of the image."

// Summarizer produces short retrieval-oriented abstracts for tables and
// images. Summaries are only ever used as embedding input; the persisted
// content stays the original table markdown or image payload.
type Summarizer struct {
	llm core.LLMProvider
}

func NewSummarizer(llm core.LLMProvider) *Summarizer {
	return &Summarizer{llm: llm}
}

// SummarizeTables returns one summary per table markdown string, in input
// order. The batch is atomic: a single generation failure fails the whole
// call and nothing partial is returned.
func (s *Summarizer) SummarizeTables(ctx context.Context, tables []string) ([]string, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	out := make([]string, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for i, table := range tables {
		g.Go(func() error {
			summary, err := s.llm.Generate(gctx, tableSummaryPrompt, "Table: "+table)
			if err != nil {
				return fmt.Errorf("summarize table %d: %w", i, err)
			}
			out[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SummarizeImages returns one description per image, in input order, using
// the model's vision capability on the raw jpeg bytes. Atomic like
// SummarizeTables.
func (s *Summarizer) SummarizeImages(ctx context.Context, images []ImageBlock) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	out := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for i, img := range images {
		g.Go(func() error {
			summary, err := s.llm.GenerateVision(gctx, imageSummaryPrompt, "jpeg", img.Data)
			if err != nil {
				return fmt.Errorf("summarize image %s: %w", img.Name, err)
			}
			out[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
