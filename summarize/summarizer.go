package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"
)

// promptTemplate is sent for every document, filled with the chunk text
// and the format instructions. Output language is pinned to Traditional
// Chinese regardless of the input language.
const promptTemplate = `所有內容必須以繁體中文輸出。
作為內容 SEO 研究員，你需要總結並提取以下文本的關鍵點。
獲得的見解將用於內容研究，我們將比較多篇文章的關鍵點、見解和摘要。
---
- 你必須分析文本並從以下文本中提取關鍵點和觀點
- 你必須從以下文本中提取關鍵點和觀點：
%s
%s`

// Summarizer produces one structured summary per text document.
type Summarizer struct {
	llm         llms.Model
	splitter    textsplitter.TextSplitter
	parser      Parser
	logger      *zap.Logger
	model       string
	temperature float64
}

func NewSummarizer(llm llms.Model, splitter textsplitter.TextSplitter, logger *zap.Logger, model string, temperature float64) *Summarizer {
	return &Summarizer{
		llm:         llm,
		splitter:    splitter,
		logger:      logger,
		model:       model,
		temperature: temperature,
	}
}

// Summarize splits the document, sends the first chunk to the model and
// parses the reply into a DocumentSummary. A document that yields no
// chunks returns (nil, nil). The summary's metadata is overwritten with
// the document's metadata after parsing.
func (s *Summarizer) Summarize(ctx context.Context, doc schema.Document) (*DocumentSummary, error) {
	chunks, err := s.splitter.SplitText(doc.PageContent)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}
	if len(chunks) == 0 || strings.TrimSpace(chunks[0]) == "" {
		return nil, nil
	}

	// Only the first chunk goes to the model; one call per document.
	prompt := fmt.Sprintf(promptTemplate, chunks[0], s.parser.GetFormatInstructions())

	start := time.Now()
	reply, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt,
		llms.WithModel(s.model),
		llms.WithTemperature(s.temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	s.logger.Info("summary generated",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chunks", len(chunks)),
		zap.Int("reply_length", len(reply)))

	summary, err := s.parser.Parse(reply)
	if err != nil {
		return nil, err
	}

	summary.Metadata = stringifyMetadata(doc.Metadata)
	return summary, nil
}

func stringifyMetadata(metadata map[string]any) map[string]string {
	out := make(map[string]string, len(metadata))
	for key, value := range metadata {
		if s, ok := value.(string); ok {
			out[key] = s
			continue
		}
		out[key] = fmt.Sprint(value)
	}
	return out
}
