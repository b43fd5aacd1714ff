package types

import "strings"

// MaxQueryLength is the upper bound accepted for a scrape query.
const MaxQueryLength = 500

// ScrapeRequest represents an inbound scrape request. A nil or empty
// Sources list means "all registered sources".
type ScrapeRequest struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources,omitempty"`
}

// NormalizedQuery returns the query trimmed and lowercased, the form used
// for cache keying.
func (r *ScrapeRequest) NormalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(r.Query))
}

// Validate checks the request before any cache lookup or dispatch happens.
func (r *ScrapeRequest) Validate() error {
	q := strings.TrimSpace(r.Query)
	if q == "" {
		return ErrEmptyQuery
	}
	if len(q) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}
