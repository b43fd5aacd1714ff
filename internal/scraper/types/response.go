package types

// Paper is a single scraped record from an academic source.
type Paper struct {
	Title       string   `json:"title"`
	Abstract    string   `json:"abstract,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	URL         string   `json:"url,omitempty"`
	PDFURL      string   `json:"pdf_url,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`
	Venue       string   `json:"venue,omitempty"`
	Citations   int      `json:"citations,omitempty"`
}

// SourceData is the payload a single source returns on success.
type SourceData struct {
	Source string  `json:"source"`
	Papers []Paper `json:"papers"`
	Count  int     `json:"count"`
}

// SourceResult captures the outcome of one source invocation. It is
// immutable once returned by the orchestrator; Data is set only on
// success, Error only on failure. ResponseTime is the elapsed seconds of
// the attempted call.
type SourceResult struct {
	Source       string      `json:"source"`
	Success      bool        `json:"success"`
	Data         *SourceData `json:"data,omitempty"`
	Error        string      `json:"error,omitempty"`
	ResponseTime float64     `json:"response_time"`
	Cached       bool        `json:"cached"`
}

// ScrapeResponse aggregates all SourceResults for one request. Results
// preserve dispatch order. ExecutionTime is wall clock for the whole
// request, not the sum of per-source times.
type ScrapeResponse struct {
	Success           bool           `json:"success"`
	Query             string         `json:"query"`
	Results           []SourceResult `json:"results"`
	TotalSources      int            `json:"total_sources"`
	SuccessfulSources int            `json:"successful_sources"`
	ExecutionTime     float64        `json:"execution_time"`
}

// HealthResponse describes service liveness and the available sources.
type HealthResponse struct {
	Status           string            `json:"status"`
	Uptime           float64           `json:"uptime"`
	Version          string            `json:"version"`
	AvailableSources []string          `json:"scrapers_available"`
	CacheStats       map[string]uint64 `json:"cache_stats,omitempty"`
}

// SourcesResponse lists the registry contents with per-source config.
type SourcesResponse struct {
	AvailableSources []string                    `json:"available_sources"`
	SourceConfigs    map[string]SourceConfigInfo `json:"source_configs"`
}

// SourceConfigInfo is the externally visible slice of a source config.
type SourceConfigInfo struct {
	Name           string  `json:"name"`
	Enabled        bool    `json:"enabled"`
	RateLimitDelay float64 `json:"rate_limit_delay"`
	BaseURL        string  `json:"base_url"`
}
