package extract

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/markusmobius/go-trafilatura"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Article keeps only the main article body of a page, discarding
// navigation, ads and boilerplate. Stricter than the markdown strategy:
// pages without a recognizable article degrade to empty documents.
type Article struct {
	logger *zap.Logger
}

func NewArticle(logger *zap.Logger) *Article {
	return &Article{logger: logger}
}

func (a *Article) Transform(docs []schema.Document) []schema.Document {
	out := make([]schema.Document, len(docs))
	for i, doc := range docs {
		out[i] = a.transform(doc)
	}
	return out
}

func (a *Article) transform(doc schema.Document) schema.Document {
	result, err := trafilatura.Extract(strings.NewReader(doc.PageContent), trafilatura.Options{})
	if err != nil {
		a.logger.Warn("article extraction failed", zap.Error(err))
		return schema.Document{Metadata: make(map[string]any)}
	}

	// Prefer a markdown rendering of the article node; the bare text is
	// the fallback when rendering fails.
	text := result.ContentText
	if result.ContentNode != nil {
		if rendered, err := renderNode(result.ContentNode); err == nil {
			if md, err := htmltomarkdown.ConvertString(rendered); err == nil {
				text = md
			}
		}
	}

	metadata := make(map[string]any)
	if result.Metadata.Title != "" {
		metadata["title"] = result.Metadata.Title
	}
	if result.Metadata.Author != "" {
		metadata["author"] = result.Metadata.Author
	}
	if result.Metadata.Description != "" {
		metadata["description"] = result.Metadata.Description
	}
	if result.Metadata.Sitename != "" {
		metadata["sitename"] = result.Metadata.Sitename
	}
	if result.Metadata.Language != "" {
		metadata["language"] = result.Metadata.Language
	}

	return schema.Document{
		PageContent: strings.TrimSpace(text),
		Metadata:    metadata,
	}
}
