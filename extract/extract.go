package extract

import (
	"bytes"

	"github.com/tmc/langchaingo/schema"
	"golang.org/x/net/html"
)

// Transformer converts fetched HTML documents into plain-text documents
// ready for summarization. Implementations preserve count and order; a
// page that cannot be parsed degrades to an empty document rather than
// failing the batch.
type Transformer interface {
	Transform(docs []schema.Document) []schema.Document
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
