package types

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidSourceID   = errors.New("invalid source ID")
	ErrInvalidSourceName = errors.New("invalid source name")
	ErrInvalidBaseURL    = errors.New("invalid base URL")
	ErrInvalidRateLimit  = errors.New("rate limit delay must not be negative")

	// Request errors
	ErrEmptyQuery   = errors.New("empty query")
	ErrQueryTooLong = errors.New("query too long")

	// Registry errors
	ErrSourceNotFound      = errors.New("source not found")
	ErrNoSourcesConfigured = errors.New("no sources configured")

	// Response errors
	ErrInvalidResponse = errors.New("invalid response from source")
)

// SourceError wraps a failure from one source scraper.
type SourceError struct {
	Source  SourceID
	Code    string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Source, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Source, e.Code, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
