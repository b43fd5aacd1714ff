package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// SemanticScholarSource scrapes the Semantic Scholar graph API. An API key
// is optional; without one the public rate limits apply.
type SemanticScholarSource struct {
	*BaseSource
}

// NewSemanticScholarSource creates a new Semantic Scholar source.
func NewSemanticScholarSource(config *types.SourceConfig) (Source, error) {
	return &SemanticScholarSource{BaseSource: NewBaseSource(config)}, nil
}

type semanticScholarResponse struct {
	Data []struct {
		Title     string `json:"title"`
		Abstract  string `json:"abstract"`
		Year      int    `json:"year"`
		Venue     string `json:"venue"`
		URL       string `json:"url"`
		Citations int    `json:"citationCount"`
		Authors   []struct {
			Name string `json:"name"`
		} `json:"authors"`
	} `json:"data"`
}

// Scrape searches Semantic Scholar papers.
func (s *SemanticScholarSource) Scrape(ctx context.Context, query string) (*types.SourceData, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(defaultMaxResults))
	params.Set("fields", "title,abstract,authors,year,citationCount,url,venue")

	apiURL := fmt.Sprintf("%s/graph/v1/paper/search?%s", s.config.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range s.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	if s.config.APIKey != "" {
		httpReq.Header.Set("x-api-key", s.config.APIKey)
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
			Message: "unexpected status from Semantic Scholar API",
		}
	}

	var ssResp semanticScholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&ssResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	papers := make([]types.Paper, 0, len(ssResp.Data))
	for _, p := range ssResp.Data {
		authors := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}

		published := ""
		if p.Year > 0 {
			published = strconv.Itoa(p.Year)
		}

		papers = append(papers, types.Paper{
			Title:       p.Title,
			Abstract:    p.Abstract,
			Authors:     authors,
			URL:         p.URL,
			PublishedAt: published,
			Venue:       p.Venue,
			Citations:   p.Citations,
		})
	}

	return &types.SourceData{
		Source: string(s.ID()),
		Papers: papers,
		Count:  len(papers),
	}, nil
}
