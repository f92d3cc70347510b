package extract

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Markdown converts whole pages to markdown-flavoured plain text, keeping
// headings and lists readable for the model. The page title and meta
// description are carried over as document metadata.
type Markdown struct {
	logger *zap.Logger
}

func NewMarkdown(logger *zap.Logger) *Markdown {
	return &Markdown{logger: logger}
}

func (m *Markdown) Transform(docs []schema.Document) []schema.Document {
	out := make([]schema.Document, len(docs))
	for i, doc := range docs {
		out[i] = m.transform(doc)
	}
	return out
}

func (m *Markdown) transform(doc schema.Document) schema.Document {
	metadata := make(map[string]any)
	htmlContent := doc.PageContent

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err == nil {
		if title := strings.TrimSpace(gq.Find("title").First().Text()); title != "" {
			metadata["title"] = title
		}
		if desc, ok := gq.Find(`meta[name="description"]`).Attr("content"); ok {
			if desc = strings.TrimSpace(desc); desc != "" {
				metadata["description"] = desc
			}
		}

		gq.Find("script, style, noscript").Remove()
		if cleaned, err := gq.Html(); err == nil {
			htmlContent = cleaned
		}
	}

	text, err := htmltomarkdown.ConvertString(htmlContent)
	if err != nil {
		m.logger.Warn("markdown conversion failed", zap.Error(err))
		text = ""
	}

	return schema.Document{
		PageContent: strings.TrimSpace(text),
		Metadata:    metadata,
	}
}
