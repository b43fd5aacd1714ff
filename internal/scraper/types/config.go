package types

import "time"

type SourceID string

const (
	SourceWikipedia       SourceID = "wikipedia"
	SourcePubMed          SourceID = "pubmed"
	SourceOpenAlex        SourceID = "openalex"
	SourceSemanticScholar SourceID = "semantic_scholar"
	SourceArxiv           SourceID = "arxiv"
)

// SourceConfig represents the configuration of a single source scraper.
type SourceConfig struct {
	ID   SourceID `json:"id" mapstructure:"id"`
	Name string   `json:"name" mapstructure:"name"`

	BaseURL string `json:"base_url" mapstructure:"base_url"`
	APIKey  string `json:"api_key,omitempty" mapstructure:"api_key"`

	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// RateLimitDelay is the fixed pause in seconds between consecutive
	// outbound requests to this source.
	RateLimitDelay float64 `json:"rate_limit_delay" mapstructure:"rate_limit_delay"`

	// Timeout bounds each outbound HTTP call, in seconds. Zero means the
	// source default (30s).
	Timeout int `json:"timeout,omitempty" mapstructure:"timeout"`

	UserAgent string `json:"user_agent,omitempty" mapstructure:"user_agent"`
}

// Delay returns RateLimitDelay as a duration.
func (c *SourceConfig) Delay() time.Duration {
	return time.Duration(c.RateLimitDelay * float64(time.Second))
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidSourceID
	}
	if c.Name == "" {
		return ErrInvalidSourceName
	}
	if c.BaseURL == "" {
		return ErrInvalidBaseURL
	}
	if c.RateLimitDelay < 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

// Info projects the config into its externally visible form.
func (c *SourceConfig) Info() SourceConfigInfo {
	return SourceConfigInfo{
		Name:           c.Name,
		Enabled:        c.Enabled,
		RateLimitDelay: c.RateLimitDelay,
		BaseURL:        c.BaseURL,
	}
}

// DefaultSourceConfigs returns the built-in source registry entries.
func DefaultSourceConfigs() []SourceConfig {
	return []SourceConfig{
		{
			ID:             SourceWikipedia,
			Name:           "Wikipedia",
			BaseURL:        "https://en.wikipedia.org",
			Enabled:        true,
			RateLimitDelay: 0.5,
		},
		{
			ID:             SourcePubMed,
			Name:           "PubMed",
			BaseURL:        "https://eutils.ncbi.nlm.nih.gov",
			Enabled:        true,
			RateLimitDelay: 0.3,
		},
		{
			ID:             SourceOpenAlex,
			Name:           "OpenAlex",
			BaseURL:        "https://api.openalex.org",
			Enabled:        true,
			RateLimitDelay: 0.1,
			UserAgent:      "Research-Scraper (mailto:research@example.com)",
		},
		{
			ID:             SourceSemanticScholar,
			Name:           "Semantic Scholar",
			BaseURL:        "https://api.semanticscholar.org",
			Enabled:        true,
			RateLimitDelay: 1.0,
		},
		{
			ID:             SourceArxiv,
			Name:           "arXiv",
			BaseURL:        "http://export.arxiv.org",
			Enabled:        true,
			RateLimitDelay: 0.5,
		},
	}
}
