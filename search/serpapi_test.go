package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, handler http.HandlerFunc) *SerpAPI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	engine := NewSerpAPI("test-key", "Austin,Texas", zap.NewNop())
	engine.BaseURL = server.URL
	return engine
}

func TestSerpAPIMissingKey(t *testing.T) {
	calls := 0
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	engine.apiKey = ""

	_, err := engine.Search(context.Background(), "golang")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no request, server saw %d", calls)
	}
}

func TestSerpAPISendsQueryParams(t *testing.T) {
	var got map[string]string
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"engine":   q.Get("engine"),
			"q":        q.Get("q"),
			"location": q.Get("location"),
			"api_key":  q.Get("api_key"),
		}
		w.Write([]byte(`{"organic_results": [{"position": 1, "title": "t", "link": "https://a.example", "snippet": "s"}]}`))
	})

	results, err := engine.Search(context.Background(), "best ramen")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got["engine"] != "google" || got["q"] != "best ramen" || got["location"] != "Austin,Texas" || got["api_key"] != "test-key" {
		t.Errorf("unexpected query params: %v", got)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestSerpAPIParsesResults(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"organic_results": [
				{"position": 1, "title": "First", "link": "https://first.example", "snippet": "one"},
				{"position": 2, "title": "Second", "link": "https://second.example", "snippet": "two", "date": "2024-01-05"}
			]
		}`))
	})

	results, err := engine.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Position != 1 || first.Title != "First" || first.URL != "https://first.example" || first.Snippet != "one" {
		t.Errorf("unexpected first result: %+v", first)
	}
	if link, _ := results[1].Fields["link"].(string); link != "https://second.example" {
		t.Errorf("raw field link = %q", link)
	}
	if date, _ := results[1].Fields["date"].(string); date != "2024-01-05" {
		t.Errorf("raw field date = %q", date)
	}
}

func TestSerpAPIProviderError(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid API key."}`))
	})

	_, err := engine.Search(context.Background(), "anything")

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Message != "Invalid API key." {
		t.Errorf("Message = %q", perr.Message)
	}
}

func TestSerpAPIStatusError(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	})

	_, err := engine.Search(context.Background(), "anything")

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestSerpAPINoOrganicResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing key", `{"search_metadata": {"status": "Success"}}`},
		{"empty list", `{"organic_results": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := engine.Search(context.Background(), "anything")
			if !errors.Is(err, ErrNoResults) {
				t.Fatalf("expected ErrNoResults, got %v", err)
			}
		})
	}
}
