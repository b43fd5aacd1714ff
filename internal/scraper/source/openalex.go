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

// OpenAlexSource scrapes the OpenAlex works API. OpenAlex asks polite
// clients to identify themselves via User-Agent, which the source config
// default carries.
type OpenAlexSource struct {
	*BaseSource
}

// NewOpenAlexSource creates a new OpenAlex source.
func NewOpenAlexSource(config *types.SourceConfig) (Source, error) {
	return &OpenAlexSource{BaseSource: NewBaseSource(config)}, nil
}

type openAlexResponse struct {
	Results []struct {
		Title           string `json:"title"`
		PublicationDate string `json:"publication_date"`
		CitedByCount    int    `json:"cited_by_count"`
		Authorships     []struct {
			Author struct {
				DisplayName string `json:"display_name"`
			} `json:"author"`
		} `json:"authorships"`
		PrimaryLocation struct {
			LandingPageURL string `json:"landing_page_url"`
			Source         struct {
				DisplayName string `json:"display_name"`
			} `json:"source"`
		} `json:"primary_location"`
	} `json:"results"`
}

// Scrape searches OpenAlex works.
func (s *OpenAlexSource) Scrape(ctx context.Context, query string) (*types.SourceData, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("per-page", strconv.Itoa(defaultMaxResults))

	apiURL := fmt.Sprintf("%s/works?%s", s.config.BaseURL, params.Encode())
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
			Message: "unexpected status from OpenAlex API",
		}
	}

	var oaResp openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	papers := make([]types.Paper, 0, len(oaResp.Results))
	for _, work := range oaResp.Results {
		authors := make([]string, 0, len(work.Authorships))
		for _, a := range work.Authorships {
			if a.Author.DisplayName != "" {
				authors = append(authors, a.Author.DisplayName)
			}
		}

		papers = append(papers, types.Paper{
			Title:       work.Title,
			Authors:     authors,
			URL:         work.PrimaryLocation.LandingPageURL,
			PublishedAt: work.PublicationDate,
			Venue:       work.PrimaryLocation.Source.DisplayName,
			Citations:   work.CitedByCount,
		})
	}

	return &types.SourceData{
		Source: string(s.ID()),
		Papers: papers,
		Count:  len(papers),
	}, nil
}
