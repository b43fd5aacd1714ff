package source

import (
	"fmt"
	"sync"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// Factory creates source scraper instances.
type Factory struct {
	mu           sync.RWMutex
	constructors map[types.SourceID]func(*types.SourceConfig) (Source, error)
}

// NewFactory creates a factory with the built-in sources registered.
func NewFactory() *Factory {
	f := &Factory{
		constructors: make(map[types.SourceID]func(*types.SourceConfig) (Source, error)),
	}

	f.Register(types.SourceWikipedia, NewWikipediaSource)
	f.Register(types.SourcePubMed, NewPubMedSource)
	f.Register(types.SourceOpenAlex, NewOpenAlexSource)
	f.Register(types.SourceSemanticScholar, NewSemanticScholarSource)
	f.Register(types.SourceArxiv, NewArxivSource)

	return f
}

// Register registers a source constructor.
func (f *Factory) Register(id types.SourceID, constructor func(*types.SourceConfig) (Source, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[id] = constructor
}

// Create creates a source instance from configuration.
func (f *Factory) Create(config *types.SourceConfig) (Source, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f.mu.RLock()
	constructor, exists := f.constructors[config.ID]
	f.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrSourceNotFound, config.ID)
	}

	return constructor(config)
}

// List returns all registered source IDs.
func (f *Factory) List() []types.SourceID {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]types.SourceID, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	return ids
}
