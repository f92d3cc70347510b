package search

import "context"

// Result is one organic search hit. Fields holds the raw provider row so
// callers can read columns the typed view does not cover; the URL column
// name is configurable downstream.
type Result struct {
	Position int            `json:"position"`
	Title    string         `json:"title"`
	URL      string         `json:"url"`
	Snippet  string         `json:"snippet,omitempty"`
	Fields   map[string]any `json:"-"`
}

// Engine runs a keyword query against a search provider and returns
// ranked organic results.
type Engine interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
