package source

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// Search snippets come back with highlight markup embedded.
var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func stripHTMLTags(s string) string {
	return html.UnescapeString(htmlTagPattern.ReplaceAllString(s, ""))
}

// WikipediaSource scrapes article summaries via the MediaWiki search API.
type WikipediaSource struct {
	*BaseSource
}

// NewWikipediaSource creates a new Wikipedia source.
func NewWikipediaSource(config *types.SourceConfig) (Source, error) {
	return &WikipediaSource{BaseSource: NewBaseSource(config)}, nil
}

type wikipediaSearchResponse struct {
	Query struct {
		Search []struct {
			Title     string `json:"title"`
			Snippet   string `json:"snippet"`
			Timestamp string `json:"timestamp"`
			PageID    int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

// Scrape runs a full-text search and maps the hits to papers.
func (s *WikipediaSource) Scrape(ctx context.Context, query string) (*types.SourceData, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(defaultMaxResults))
	params.Set("format", "json")

	apiURL := fmt.Sprintf("%s/w/api.php?%s", s.config.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range s.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}

	resp, err := s.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, &types.SourceError{
			Source:  s.ID(),
			Code:    "REQUEST_FAILED",
			Message: "failed to execute request",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.SourceError{
			Source:  s.ID(),
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: "unexpected status from Wikipedia API",
		}
	}

	var searchResp wikipediaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	papers := make([]types.Paper, 0, len(searchResp.Query.Search))
	for _, hit := range searchResp.Query.Search {
		papers = append(papers, types.Paper{
			Title:       hit.Title,
			Abstract:    stripHTMLTags(hit.Snippet),
			URL:         fmt.Sprintf("%s/wiki/%s", s.config.BaseURL, url.PathEscape(hit.Title)),
			PublishedAt: hit.Timestamp,
		})
	}

	return &types.SourceData{
		Source: string(s.ID()),
		Papers: papers,
		Count:  len(papers),
	}, nil
}
