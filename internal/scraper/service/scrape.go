package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/acadex/research-scraper/internal/cache"
	"github.com/acadex/research-scraper/internal/metrics"
	"github.com/acadex/research-scraper/internal/pkg/logger"
	"github.com/acadex/research-scraper/internal/scraper/orchestrator"
	"github.com/acadex/research-scraper/internal/scraper/types"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// ErrRegistryUnavailable means the source registry was never constructed.
// Endpoints that report on the registry directly fail hard on it; the
// scrape path degrades instead.
var ErrRegistryUnavailable = errors.New("source registry unavailable")

// ScrapeService ties the orchestrator, cache, and metrics together into
// the request flow: validate, consult the cache, dispatch on a miss,
// aggregate, record metrics, store.
type ScrapeService struct {
	orchestrator *orchestrator.Orchestrator
	cache        cache.Cache
	collector    *metrics.Collector
	logger       *logger.Logger
	cacheTTL     time.Duration
	startedAt    time.Time
}

// NewScrapeService creates the service. A nil cache disables caching.
func NewScrapeService(
	orch *orchestrator.Orchestrator,
	c cache.Cache,
	collector *metrics.Collector,
	log *logger.Logger,
	cacheTTL time.Duration,
) *ScrapeService {
	return &ScrapeService{
		orchestrator: orch,
		cache:        c,
		collector:    collector,
		logger:       log,
		cacheTTL:     cacheTTL,
		startedAt:    time.Now(),
	}
}

// Scrape handles one scrape request end to end. Validation errors are the
// only error return; downstream source failures surface as Success=false
// entries inside the response.
func (s *ScrapeService) Scrape(ctx context.Context, req *types.ScrapeRequest) (*types.ScrapeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	// Cache lookup happens before anything else, so a cached response
	// still serves while the registry is down.
	key := cache.Key(req.Query, req.Sources)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.collector.RecordCacheHit()
			return markCached(cached), nil
		}
		s.collector.RecordCacheMiss()
	}

	if s.orchestrator == nil {
		s.logger.Error("scrape request with no registry", zap.String("query", req.NormalizedQuery()))
		return &types.ScrapeResponse{
			Success:       false,
			Query:         req.Query,
			Results:       []types.SourceResult{},
			ExecutionTime: time.Since(start).Seconds(),
		}, nil
	}

	results := s.orchestrator.ScrapeAllSources(ctx, strings.TrimSpace(req.Query), req.Sources)
	elapsed := time.Since(start).Seconds()

	successful := 0
	for _, r := range results {
		s.collector.RecordScrape(r.Source, r.ResponseTime)
		if r.Success {
			successful++
		}
	}

	resp := &types.ScrapeResponse{
		Success:           successful > 0,
		Query:             req.Query,
		Results:           results,
		TotalSources:      len(results),
		SuccessfulSources: successful,
		ExecutionTime:     elapsed,
	}

	s.logger.Info("scrape completed",
		zap.String("query", req.NormalizedQuery()),
		zap.Int("total_sources", resp.TotalSources),
		zap.Int("successful_sources", resp.SuccessfulSources),
		zap.Float64("execution_time", resp.ExecutionTime),
	)

	if s.cache != nil {
		s.cache.Set(ctx, key, resp, s.cacheTTL)
	}

	return resp, nil
}

// markCached returns a copy of resp with every result flagged as served
// from cache. The stored value is left untouched so a later hit does not
// observe mutated results.
func markCached(resp *types.ScrapeResponse) *types.ScrapeResponse {
	out := *resp
	out.Results = make([]types.SourceResult, len(resp.Results))
	for i, r := range resp.Results {
		r.Cached = true
		out.Results[i] = r
	}
	return &out
}

// Health reports liveness, uptime, and the registered sources.
func (s *ScrapeService) Health() (*types.HealthResponse, error) {
	if s.orchestrator == nil {
		return nil, ErrRegistryUnavailable
	}

	resp := &types.HealthResponse{
		Status:           "healthy",
		Uptime:           time.Since(s.startedAt).Seconds(),
		Version:          Version,
		AvailableSources: s.orchestrator.AvailableSources(),
	}

	if s.cache != nil {
		stats := s.cache.Stats()
		resp.CacheStats = map[string]uint64{
			"hits":   stats.Hits,
			"misses": stats.Misses,
		}
	}

	return resp, nil
}

// Sources lists the registered sources and their visible configuration.
func (s *ScrapeService) Sources() (*types.SourcesResponse, error) {
	if s.orchestrator == nil {
		return nil, ErrRegistryUnavailable
	}

	configs := s.orchestrator.SourceConfigs()
	infos := make(map[string]types.SourceConfigInfo, len(configs))
	for id, cfg := range configs {
		infos[id] = cfg.Info()
	}

	return &types.SourcesResponse{
		AvailableSources: s.orchestrator.AvailableSources(),
		SourceConfigs:    infos,
	}, nil
}

// IsValidationError reports whether err is a request validation failure
// rather than an internal one.
func IsValidationError(err error) bool {
	return errors.Is(err, types.ErrEmptyQuery) || errors.Is(err, types.ErrQueryTooLong)
}
