package summarize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DocumentSummary is the structured record produced for one document.
// Metadata always mirrors the source document's metadata; whatever the
// model returned for that field is discarded.
type DocumentSummary struct {
	ConciseSummary string            `json:"concise_summary"`
	WritingStyle   string            `json:"writing_style"`
	KeyPoints      []string          `json:"key_points"`
	ExpertOpinions []string          `json:"expert_opinions,omitempty"`
	Metadata       map[string]string `json:"metadata"`
}

// ParseError reports a model reply that does not satisfy the summary
// schema. The affected document is skipped by CreateAll.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse summary reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const formatInstructions = "The output must be a single JSON object matching the schema below.\n" +
	"Return only the JSON object, optionally wrapped in a ```json code fence, with no other text.\n\n" +
	"{\n" +
	"  \"concise_summary\": string,         // concise summary of the text\n" +
	"  \"writing_style\": string,           // description of the writing style\n" +
	"  \"key_points\": [string, ...],       // key points made by the text\n" +
	"  \"expert_opinions\": [string, ...],  // expert opinions cited; omit when there are none\n" +
	"  \"metadata\": {string: string, ...}  // leave empty; filled in afterwards\n" +
	"}"

// Parser renders the format instructions embedded into every prompt and
// turns raw model replies back into DocumentSummary values.
type Parser struct{}

// GetFormatInstructions returns the schema description appended to every
// summarization prompt.
func (Parser) GetFormatInstructions() string {
	return formatInstructions
}

// Parse decodes a model reply. A surrounding markdown code fence is
// tolerated. Replies missing any required field are rejected.
func (Parser) Parse(text string) (*DocumentSummary, error) {
	payload := stripFence(strings.TrimSpace(text))

	var summary DocumentSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return nil, &ParseError{Err: err}
	}

	if summary.ConciseSummary == "" {
		return nil, &ParseError{Err: errors.New("missing concise_summary")}
	}
	if summary.WritingStyle == "" {
		return nil, &ParseError{Err: errors.New("missing writing_style")}
	}
	if len(summary.KeyPoints) == 0 {
		return nil, &ParseError{Err: errors.New("missing key_points")}
	}
	if summary.Metadata == nil {
		summary.Metadata = make(map[string]string)
	}
	return &summary, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
