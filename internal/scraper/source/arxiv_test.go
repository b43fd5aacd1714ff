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

const arxivSampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Attention Is All You Need</title>
    <summary>
      The dominant sequence transduction models are based on recurrent networks.
    </summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link href="http://arxiv.org/abs/1706.03762v7" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/1706.03762v7" rel="related" type="application/pdf"/>
  </entry>
</feed>`

func TestArxivScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/query", r.URL.Path)
		assert.Equal(t, "all:transformer AND attention", r.URL.Query().Get("search_query"))
		assert.Equal(t, "submittedDate", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "descending", r.URL.Query().Get("sortOrder"))

		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(arxivSampleFeed))
	}))
	defer server.Close()

	src, err := NewArxivSource(&types.SourceConfig{
		ID:      types.SourceArxiv,
		Name:    "arXiv",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	data, err := src.Scrape(context.Background(), "transformer attention")
	require.NoError(t, err)

	require.Len(t, data.Papers, 1)
	paper := data.Papers[0]
	assert.Equal(t, "Attention Is All You Need", paper.Title)
	assert.Equal(t, "The dominant sequence transduction models are based on recurrent networks.", paper.Abstract)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, paper.Authors)
	assert.Equal(t, "http://arxiv.org/pdf/1706.03762v7", paper.PDFURL)
	assert.Equal(t, "2017-06-12T17:57:34Z", paper.PublishedAt)
}

func TestArxivScrapeMalformedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	}))
	defer server.Close()

	src, err := NewArxivSource(&types.SourceConfig{
		ID:      types.SourceArxiv,
		Name:    "arXiv",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = src.Scrape(context.Background(), "anything")
	assert.ErrorIs(t, err, types.ErrInvalidResponse)
}

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "transformers", "all:transformers"},
		{"multiple terms", "graph neural networks", "all:graph AND neural AND networks"},
		{"extra whitespace", "  sparse   attention ", "all:sparse AND attention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArxivQuery(tt.query))
		})
	}
}
