package summarize

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"glean/pkg/fanout"
)

// ErrNoSummaries means no document in the batch produced a summary.
var ErrNoSummaries = errors.New("no summaries created")

// CreateAll summarizes every document concurrently, at most concurrency
// model calls in flight. Documents that fail to summarize or produce no
// summary are skipped; the batch fails only when nothing survived.
// Returned summaries keep the input order of their documents.
func (s *Summarizer) CreateAll(ctx context.Context, docs []schema.Document, concurrency int) ([]DocumentSummary, error) {
	s.logger.Info("summarizing documents",
		zap.Int("documents", len(docs)),
		zap.Int("concurrency", concurrency))

	results := fanout.Map(ctx, concurrency, docs, s.Summarize)

	summaries := make([]DocumentSummary, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			s.logger.Warn("document skipped",
				zap.Int("index", r.Index),
				zap.Error(r.Err))
			continue
		}
		if r.Value == nil {
			s.logger.Debug("document yielded no chunks", zap.Int("index", r.Index))
			continue
		}
		summaries = append(summaries, *r.Value)
	}

	if len(summaries) == 0 {
		return nil, ErrNoSummaries
	}

	s.logger.Info("summaries created",
		zap.Int("requested", len(docs)),
		zap.Int("created", len(summaries)))
	return summaries, nil
}
