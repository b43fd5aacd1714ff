package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// ArxivSource scrapes the arXiv export API, which answers Atom XML.
type ArxivSource struct {
	*BaseSource
}

// NewArxivSource creates a new arXiv source.
func NewArxivSource(config *types.SourceConfig) (Source, error) {
	return &ArxivSource{BaseSource: NewBaseSource(config)}, nil
}

type arxivFeed struct {
	XMLName xml.Name `xml:"feed"`
	Entries []struct {
		Title     string `xml:"title"`
		Summary   string `xml:"summary"`
		Published string `xml:"published"`
		Authors   []struct {
			Name string `xml:"name"`
		} `xml:"author"`
		Links []struct {
			Href string `xml:"href,attr"`
			Type string `xml:"type,attr"`
		} `xml:"link"`
	} `xml:"entry"`
}

// Scrape queries the arXiv API sorted by submission date, newest first.
func (s *ArxivSource) Scrape(ctx context.Context, query string) (*types.SourceData, error) {
	params := url.Values{}
	params.Set("search_query", buildArxivQuery(query))
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", defaultMaxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	apiURL := fmt.Sprintf("%s/api/query?%s", s.config.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
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
			Message: "unexpected status from arXiv API",
		}
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidResponse, err)
	}

	papers := make([]types.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		authors := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}

		pdfURL := ""
		for _, link := range entry.Links {
			if link.Type == "application/pdf" {
				pdfURL = link.Href
				break
			}
		}

		papers = append(papers, types.Paper{
			Title:       strings.TrimSpace(entry.Title),
			Abstract:    strings.TrimSpace(entry.Summary),
			Authors:     authors,
			PDFURL:      pdfURL,
			PublishedAt: entry.Published,
		})
	}

	return &types.SourceData{
		Source: string(s.ID()),
		Papers: papers,
		Count:  len(papers),
	}, nil
}

// buildArxivQuery joins the query terms into the arXiv all-fields syntax.
func buildArxivQuery(query string) string {
	terms := strings.Fields(query)
	return "all:" + strings.Join(terms, " AND ")
}
