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

const pubmedSampleArticles = `<?xml version="1.0" encoding="UTF-8"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>12345678</PMID>
      <Article>
        <ArticleTitle>CRISPR gene editing in clinical trials</ArticleTitle>
        <Abstract>
          <AbstractText>Background section.</AbstractText>
          <AbstractText>Results section.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Doudna</LastName>
            <ForeName>Jennifer</ForeName>
          </Author>
          <Author>
            <LastName>Charpentier</LastName>
            <ForeName>Emmanuelle</ForeName>
          </Author>
        </AuthorList>
        <Journal>
          <Title>Nature Medicine</Title>
          <JournalIssue>
            <PubDate>
              <Year>2024</Year>
              <Month>03</Month>
            </PubDate>
          </JournalIssue>
        </Journal>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func newPubMedTestSource(t *testing.T, handler http.HandlerFunc) Source {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src, err := NewPubMedSource(&types.SourceConfig{
		ID:      types.SourcePubMed,
		Name:    "PubMed",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	return src
}

func TestPubMedScrape(t *testing.T) {
	src := newPubMedTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/entrez/eutils/esearch.fcgi":
			assert.Equal(t, "pubmed", r.URL.Query().Get("db"))
			assert.Equal(t, "crispr", r.URL.Query().Get("term"))
			w.Write([]byte(`{"esearchresult": {"idlist": ["12345678"]}}`))
		case "/entrez/eutils/efetch.fcgi":
			assert.Equal(t, "12345678", r.URL.Query().Get("id"))
			w.Write([]byte(pubmedSampleArticles))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	data, err := src.Scrape(context.Background(), "crispr")
	require.NoError(t, err)

	require.Len(t, data.Papers, 1)
	paper := data.Papers[0]
	assert.Equal(t, "CRISPR gene editing in clinical trials", paper.Title)
	assert.Equal(t, "Background section. Results section.", paper.Abstract)
	assert.Equal(t, []string{"Jennifer Doudna", "Emmanuelle Charpentier"}, paper.Authors)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/12345678/", paper.URL)
	assert.Equal(t, "2024-03", paper.PublishedAt)
	assert.Equal(t, "Nature Medicine", paper.Venue)
}

func TestPubMedScrapeNoResults(t *testing.T) {
	src := newPubMedTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entrez/eutils/esearch.fcgi", r.URL.Path)
		w.Write([]byte(`{"esearchresult": {"idlist": []}}`))
	})

	data, err := src.Scrape(context.Background(), "zxqwvut")
	require.NoError(t, err)
	assert.Empty(t, data.Papers)
}

func TestPubMedScrapeSearchError(t *testing.T) {
	src := newPubMedTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := src.Scrape(context.Background(), "crispr")
	require.Error(t, err)

	var srcErr *types.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "HTTP_429", srcErr.Code)
}
