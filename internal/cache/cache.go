package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// Cache stores scrape responses keyed by query and source selection.
// Implementations treat backend failures as misses on read and log-only
// failures on write, so a broken cache degrades to scraping rather than
// erroring.
type Cache interface {
	Get(ctx context.Context, key string) (*types.ScrapeResponse, bool)
	Set(ctx context.Context, key string, resp *types.ScrapeResponse, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
	Stats() Stats
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Backend string  `json:"backend"`
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Key derives the cache key for a query and source selection. The query
// is lowercased and trimmed and the sources sorted, so requests that
// differ only in casing, surrounding whitespace, or source order share an
// entry.
func Key(query string, sources []string) string {
	sorted := make([]string, len(sources))
	copy(sorted, sources)
	sort.Strings(sorted)

	return strings.ToLower(strings.TrimSpace(query)) + "|" + strings.Join(sorted, ",")
}
