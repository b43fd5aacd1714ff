package source

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// defaultMaxResults bounds how many papers one source returns per query.
const defaultMaxResults = 10

// Source defines the interface every source scraper implements.
type Source interface {
	// Scrape executes the query against the source and returns its payload.
	Scrape(ctx context.Context, query string) (*types.SourceData, error)

	// ID returns the source identifier used as the registry key.
	ID() types.SourceID

	// Name returns the human-readable source name.
	Name() string

	// Config returns the source configuration.
	Config() *types.SourceConfig
}

// BaseSource provides the shared plumbing for all sources: an HTTP client
// with a per-source timeout, default headers, and the fixed inter-request
// rate-limit delay from the source config.
type BaseSource struct {
	config     *types.SourceConfig
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewBaseSource creates a new base source from its configuration.
func NewBaseSource(config *types.SourceConfig) *BaseSource {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &BaseSource{
		config:     config,
		httpClient: httpClient,
	}
}

// ID returns the source identifier.
func (b *BaseSource) ID() types.SourceID {
	return b.config.ID
}

// Name returns the source name.
func (b *BaseSource) Name() string {
	return b.config.Name
}

// Config returns the source configuration.
func (b *BaseSource) Config() *types.SourceConfig {
	return b.config
}

// BuildDefaultHeaders builds the default HTTP headers for a source call.
func (b *BaseSource) BuildDefaultHeaders() map[string]string {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": "Research-Scraper/1.0",
	}
	if b.config.UserAgent != "" {
		headers["User-Agent"] = b.config.UserAgent
	}
	return headers
}

// DoRequest throttles by the source's rate-limit delay and executes the
// request. One attempt per call; retry policy is each source's own concern.
func (b *BaseSource) DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := b.throttle(ctx); err != nil {
		return nil, err
	}
	return b.httpClient.Do(req.WithContext(ctx))
}

// throttle blocks until the configured delay since the previous request to
// this source has elapsed.
func (b *BaseSource) throttle(ctx context.Context) error {
	delay := b.config.Delay()
	if delay <= 0 {
		return nil
	}

	b.mu.Lock()
	wait := delay - time.Since(b.lastCall)
	if wait < 0 {
		wait = 0
	}
	// Reserve the next slot at max(now, lastCall+delay) so idle periods
	// never accumulate credit for a burst.
	b.lastCall = time.Now().Add(wait)
	b.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
