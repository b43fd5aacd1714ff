package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/acadex/research-scraper/internal/scraper/source"
	"github.com/acadex/research-scraper/internal/scraper/types"
	"go.uber.org/zap"
)

// Orchestrator owns the registry of source scrapers and fans a query out
// to a selected subset in parallel. The registry is populated once at
// construction and read-only afterward.
type Orchestrator struct {
	sources map[types.SourceID]source.Source
	order   []types.SourceID
	configs map[string]types.SourceConfig
	logger  *zap.Logger
}

// New builds the registry from the enabled source configs. Disabled
// sources are skipped; at least one enabled source is required.
func New(configs []types.SourceConfig, factory *source.Factory, logger *zap.Logger) (*Orchestrator, error) {
	o := &Orchestrator{
		sources: make(map[types.SourceID]source.Source),
		configs: make(map[string]types.SourceConfig),
		logger:  logger,
	}

	for _, cfg := range configs {
		if !cfg.Enabled {
			logger.Debug("skipping disabled source", zap.String("source", string(cfg.ID)))
			continue
		}
		cfg := cfg
		src, err := factory.Create(&cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create source %q: %w", cfg.ID, err)
		}
		o.sources[cfg.ID] = src
		o.order = append(o.order, cfg.ID)
		o.configs[string(cfg.ID)] = cfg
	}

	if len(o.sources) == 0 {
		return nil, types.ErrNoSourcesConfigured
	}

	return o, nil
}

// ScrapeAllSources dispatches the query to every resolved source
// concurrently and waits for all of them. The returned slice preserves
// dispatch order regardless of completion order; failures are captured as
// Success=false entries and never abort the other sources. There is no
// orchestrator-level timeout and no way to cancel a slow source mid-flight;
// each source bounds its own HTTP calls.
func (o *Orchestrator) ScrapeAllSources(ctx context.Context, query string, requested []string) []types.SourceResult {
	resolved := o.resolve(requested)
	results := make([]types.SourceResult, len(resolved))

	var wg sync.WaitGroup
	for i, id := range resolved {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			results[i] = o.scrapeOne(ctx, src, query)
		}(i, o.sources[id])
	}
	wg.Wait()

	return results
}

// scrapeOne invokes one source, timing the call and converting errors and
// panics into a failed result.
func (o *Orchestrator) scrapeOne(ctx context.Context, src source.Source, query string) (result types.SourceResult) {
	id := string(src.ID())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("source panicked",
				zap.String("source", id),
				zap.Any("panic", r),
			)
			result = types.SourceResult{
				Source:       id,
				Success:      false,
				Error:        fmt.Sprintf("panic: %v", r),
				ResponseTime: time.Since(start).Seconds(),
			}
		}
	}()

	data, err := src.Scrape(ctx, query)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		o.logger.Warn("source scrape failed",
			zap.String("source", id),
			zap.Float64("response_time", elapsed),
			zap.Error(err),
		)
		return types.SourceResult{
			Source:       id,
			Success:      false,
			Error:        err.Error(),
			ResponseTime: elapsed,
		}
	}

	return types.SourceResult{
		Source:       id,
		Success:      true,
		Data:         data,
		ResponseTime: elapsed,
	}
}

// resolve maps the requested identifiers to registered ones. A nil or
// empty request means every registered source in registration order.
// Unknown identifiers are silently excluded rather than treated as an
// error, so partial source specifications stay usable.
func (o *Orchestrator) resolve(requested []string) []types.SourceID {
	if len(requested) == 0 {
		resolved := make([]types.SourceID, len(o.order))
		copy(resolved, o.order)
		return resolved
	}

	resolved := make([]types.SourceID, 0, len(requested))
	seen := make(map[types.SourceID]bool, len(requested))
	for _, name := range requested {
		id := types.SourceID(name)
		if _, ok := o.sources[id]; !ok {
			o.logger.Debug("ignoring unknown source", zap.String("source", name))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		resolved = append(resolved, id)
	}
	return resolved
}

// AvailableSources returns the registered source IDs in registration order.
func (o *Orchestrator) AvailableSources() []string {
	ids := make([]string, len(o.order))
	for i, id := range o.order {
		ids[i] = string(id)
	}
	return ids
}

// SourceConfigs returns the per-source configuration of every registered
// source.
func (o *Orchestrator) SourceConfigs() map[string]types.SourceConfig {
	configs := make(map[string]types.SourceConfig, len(o.configs))
	for k, v := range o.configs {
		configs[k] = v
	}
	return configs
}
