package extract

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Readability extracts article text with the go-shiori readability port.
// More forgiving than trafilatura on loosely structured pages.
type Readability struct {
	logger *zap.Logger
}

func NewReadability(logger *zap.Logger) *Readability {
	return &Readability{logger: logger}
}

func (r *Readability) Transform(docs []schema.Document) []schema.Document {
	out := make([]schema.Document, len(docs))
	for i, doc := range docs {
		out[i] = r.transform(doc)
	}
	return out
}

func (r *Readability) transform(doc schema.Document) schema.Document {
	parser := readability.NewParser()

	// No source URL survives the fetch boundary; relative links stay
	// relative.
	article, err := parser.Parse(strings.NewReader(doc.PageContent), &url.URL{})
	if err != nil {
		r.logger.Warn("readability extraction failed", zap.Error(err))
		return schema.Document{Metadata: make(map[string]any)}
	}

	metadata := make(map[string]any)
	if article.Title != "" {
		metadata["title"] = article.Title
	}
	if article.Byline != "" {
		metadata["byline"] = article.Byline
	}
	if article.Excerpt != "" {
		metadata["excerpt"] = article.Excerpt
	}
	if article.SiteName != "" {
		metadata["sitename"] = article.SiteName
	}

	return schema.Document{
		PageContent: strings.TrimSpace(article.TextContent),
		Metadata:    metadata,
	}
}
