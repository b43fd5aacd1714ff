package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acadex/research-scraper/internal/scraper/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAlexScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works", r.URL.Path)
		assert.Equal(t, "climate models", r.URL.Query().Get("search"))
		assert.Contains(t, r.Header.Get("User-Agent"), "mailto:")

		w.Write([]byte(`{
			"results": [
				{
					"title": "Reduced-order climate models",
					"publication_date": "2023-11-02",
					"cited_by_count": 42,
					"authorships": [
						{"author": {"display_name": "Jane Smith"}},
						{"author": {"display_name": ""}}
					],
					"primary_location": {
						"landing_page_url": "https://doi.org/10.1000/xyz",
						"source": {"display_name": "Journal of Climate"}
					}
				}
			]
		}`))
	}))
	defer server.Close()

	src, err := NewOpenAlexSource(&types.SourceConfig{
		ID:        types.SourceOpenAlex,
		Name:      "OpenAlex",
		BaseURL:   server.URL,
		UserAgent: "Research-Scraper (mailto:research@example.com)",
	})
	require.NoError(t, err)

	data, err := src.Scrape(context.Background(), "climate models")
	require.NoError(t, err)

	require.Len(t, data.Papers, 1)
	paper := data.Papers[0]
	assert.Equal(t, "Reduced-order climate models", paper.Title)
	assert.Equal(t, []string{"Jane Smith"}, paper.Authors)
	assert.Equal(t, "https://doi.org/10.1000/xyz", paper.URL)
	assert.Equal(t, "2023-11-02", paper.PublishedAt)
	assert.Equal(t, "Journal of Climate", paper.Venue)
	assert.Equal(t, 42, paper.Citations)
}

func TestOpenAlexScrapeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	src, err := NewOpenAlexSource(&types.SourceConfig{
		ID:      types.SourceOpenAlex,
		Name:    "OpenAlex",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = src.Scrape(context.Background(), "anything")
	require.Error(t, err)

	var srcErr *types.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "HTTP_403", srcErr.Code)
}
