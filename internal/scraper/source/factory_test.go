package source

import (
	"context"
	"testing"

	"github.com/acadex/research-scraper/internal/scraper/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateBuiltins(t *testing.T) {
	factory := NewFactory()

	for _, cfg := range types.DefaultSourceConfigs() {
		cfg := cfg
		t.Run(string(cfg.ID), func(t *testing.T) {
			src, err := factory.Create(&cfg)
			require.NoError(t, err)
			assert.Equal(t, cfg.ID, src.ID())
			assert.Equal(t, cfg.Name, src.Name())
		})
	}
}

func TestFactoryCreateUnknownSource(t *testing.T) {
	factory := NewFactory()

	cfg := &types.SourceConfig{
		ID:      "nonexistent",
		Name:    "Nonexistent",
		BaseURL: "https://example.com",
	}

	_, err := factory.Create(cfg)
	assert.ErrorIs(t, err, types.ErrSourceNotFound)
}

func TestFactoryCreateInvalidConfig(t *testing.T) {
	factory := NewFactory()

	cfg := &types.SourceConfig{ID: types.SourceWikipedia}
	_, err := factory.Create(cfg)
	assert.ErrorIs(t, err, types.ErrInvalidSourceName)
}

type stubSource struct {
	*BaseSource
}

func (s *stubSource) Scrape(_ context.Context, _ string) (*types.SourceData, error) {
	return &types.SourceData{Source: string(s.ID())}, nil
}

func TestFactoryRegisterCustom(t *testing.T) {
	factory := NewFactory()

	factory.Register("custom", func(cfg *types.SourceConfig) (Source, error) {
		return &stubSource{BaseSource: NewBaseSource(cfg)}, nil
	})

	cfg := &types.SourceConfig{
		ID:      "custom",
		Name:    "Custom",
		BaseURL: "https://example.com",
	}

	src, err := factory.Create(cfg)
	require.NoError(t, err)
	assert.Equal(t, types.SourceID("custom"), src.ID())
	assert.Contains(t, factory.List(), types.SourceID("custom"))
}
