package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrMissingAPIKey means no SerpAPI key was configured. It is
	// returned before any network call is made.
	ErrMissingAPIKey = errors.New("serpapi api key is not set")

	// ErrNoResults means the provider answered but the response carried
	// no organic results.
	ErrNoResults = errors.New("no organic results in search response")
)

// ProviderError is an error reported by the search provider itself,
// either as an error field in the body or as a non-200 status.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search provider error: %s", e.Message)
}

const serpAPIEndpoint = "https://serpapi.com/search"

// SerpAPI implements Engine against serpapi.com. BaseURL and Client are
// set by NewSerpAPI and may be replaced before the first call.
type SerpAPI struct {
	Client  *http.Client
	BaseURL string

	apiKey   string
	location string
	logger   *zap.Logger
}

func NewSerpAPI(apiKey, location string, logger *zap.Logger) *SerpAPI {
	return &SerpAPI{
		Client:   &http.Client{Timeout: 30 * time.Second},
		BaseURL:  serpAPIEndpoint,
		apiKey:   apiKey,
		location: location,
		logger:   logger,
	}
}

type serpAPIResponse struct {
	Error          string           `json:"error"`
	OrganicResults []map[string]any `json:"organic_results"`
}

func (s *SerpAPI) Search(ctx context.Context, query string) ([]Result, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("location", s.location)
	params.Set("api_key", s.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	var searchResp serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &ProviderError{Message: fmt.Sprintf("status %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// SerpAPI reports failures inside the body; prefer that message over
	// the bare status code.
	if searchResp.Error != "" {
		return nil, &ProviderError{Message: searchResp.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	if len(searchResp.OrganicResults) == 0 {
		return nil, ErrNoResults
	}

	results := make([]Result, 0, len(searchResp.OrganicResults))
	for i, row := range searchResp.OrganicResults {
		result := Result{
			Position: i + 1,
			Title:    stringField(row, "title"),
			URL:      stringField(row, "link"),
			Snippet:  stringField(row, "snippet"),
			Fields:   row,
		}
		if pos, ok := row["position"].(float64); ok {
			result.Position = int(pos)
		}
		results = append(results, result)
	}

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.String("location", s.location),
		zap.Int("results", len(results)))

	return results, nil
}

func stringField(row map[string]any, key string) string {
	value, _ := row[key].(string)
	return value
}
