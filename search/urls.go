package search

import "errors"

// ErrNoValidURLs means URL selection filtered every candidate away.
var ErrNoValidURLs = errors.New("no valid urls in search results")

// DefaultURLField is the organic-result column holding the target URL.
const DefaultURLField = "link"

// TopURLs reads the URL column of the first n results, drops empty
// values, and deduplicates. Returned URLs keep first-seen order. An
// empty field falls back to DefaultURLField; n <= 0 falls back to 3.
func TopURLs(results []Result, n int, field string) ([]string, error) {
	if field == "" {
		field = DefaultURLField
	}
	if n <= 0 {
		n = 3
	}
	if n > len(results) {
		n = len(results)
	}

	var candidates []string
	for _, row := range results[:n] {
		candidates = append(candidates, urlColumn(row, field)...)
	}

	seen := make(map[string]struct{}, len(candidates))
	urls := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	if len(urls) == 0 {
		return nil, ErrNoValidURLs
	}
	return urls, nil
}

// urlColumn reads one row's URL column. A lone string is treated as a
// singleton list; rows may also carry a list of link strings.
func urlColumn(row Result, field string) []string {
	value, ok := row.Fields[field]
	if !ok {
		// Engines that fill only the typed fields still work for the
		// default column.
		if field == DefaultURLField {
			return []string{row.URL}
		}
		return nil
	}

	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		links := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				links = append(links, s)
			}
		}
		return links
	default:
		return nil
	}
}
