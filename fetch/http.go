package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"glean/pkg/fanout"
)

const indexKey = "doc_index"

// HTTPLoader fetches pages over plain HTTP without running scripts.
// Faster and lighter than the Chromium loader, but it only sees the
// markup the server returns.
type HTTPLoader struct {
	logger      *zap.Logger
	userAgent   string
	timeout     time.Duration
	parallelism int
}

func NewHTTPLoader(logger *zap.Logger, userAgent string, timeout time.Duration, parallelism int) *HTTPLoader {
	return &HTTPLoader{
		logger:      logger,
		userAgent:   userAgent,
		timeout:     timeout,
		parallelism: parallelism,
	}
}

func (l *HTTPLoader) Load(ctx context.Context, urls []string) ([]schema.Document, error) {
	c := colly.NewCollector(
		colly.UserAgent(l.userAgent),
		colly.MaxDepth(1),
		colly.Async(true),
		colly.IgnoreRobotsTxt(),
	)
	if l.timeout > 0 {
		c.SetRequestTimeout(l.timeout)
	}
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: l.parallelism}); err != nil {
		return nil, fmt.Errorf("failed to set limit rule: %w", err)
	}

	// Each slot is written by at most one callback; Wait orders the
	// writes before the reads below.
	bodies := make([]string, len(urls))
	failures := make([]error, len(urls))

	c.OnResponse(func(r *colly.Response) {
		idx, ok := r.Ctx.GetAny(indexKey).(int)
		if !ok {
			return
		}
		bodies[idx] = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		idx, ok := r.Ctx.GetAny(indexKey).(int)
		if !ok {
			return
		}
		failures[idx] = err
	})

	for i, pageURL := range urls {
		reqCtx := colly.NewContext()
		reqCtx.Put(indexKey, i)
		if err := c.Request(http.MethodGet, pageURL, nil, reqCtx, nil); err != nil {
			failures[i] = err
		}
	}
	c.Wait()

	results := make([]fanout.Result[string], len(urls))
	for i := range urls {
		results[i] = fanout.Result[string]{Index: i, Value: bodies[i], Err: failures[i]}
	}
	return collect(l.logger, urls, results)
}
