package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"glean/pkg/fanout"
)

// ErrNoDocuments means every page in the batch failed to load.
var ErrNoDocuments = errors.New("no documents fetched")

// FetchError reports a single failed page. Failed pages are skipped; the
// batch as a whole fails only when all of them failed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Loader retrieves raw page content for a batch of URLs. Implementations
// return one document per successfully fetched URL, preserving input
// order among the successes.
type Loader interface {
	Load(ctx context.Context, urls []string) ([]schema.Document, error)
}

// collect filters per-URL results into documents, logging and dropping
// failures. When nothing survived, the returned error matches both
// ErrNoDocuments and every per-page FetchError.
func collect(logger *zap.Logger, urls []string, results []fanout.Result[string]) ([]schema.Document, error) {
	docs := make([]schema.Document, 0, len(results))
	var failures []error

	for _, r := range results {
		if r.Err != nil {
			ferr := &FetchError{URL: urls[r.Index], Err: r.Err}
			logger.Warn("page fetch failed",
				zap.String("url", ferr.URL),
				zap.Error(r.Err))
			failures = append(failures, ferr)
			continue
		}
		docs = append(docs, schema.Document{PageContent: r.Value})
	}

	if len(docs) == 0 {
		if len(failures) == 0 {
			return nil, ErrNoDocuments
		}
		return nil, errors.Join(ErrNoDocuments, errors.Join(failures...))
	}

	logger.Info("pages fetched",
		zap.Int("requested", len(urls)),
		zap.Int("fetched", len(docs)))
	return docs, nil
}
