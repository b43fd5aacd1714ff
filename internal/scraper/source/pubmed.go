package source

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// PubMedSource scrapes the NCBI eutils API: an esearch call resolves the
// query to article IDs, an efetch call retrieves the article records.
type PubMedSource struct {
	*BaseSource
}

// NewPubMedSource creates a new PubMed source.
func NewPubMedSource(config *types.SourceConfig) (Source, error) {
	return &PubMedSource{BaseSource: NewBaseSource(config)}, nil
}

type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedArticleSet struct {
	XMLName  xml.Name `xml:"PubmedArticleSet"`
	Articles []struct {
		MedlineCitation struct {
			PMID    string `xml:"PMID"`
			Article struct {
				Title    string `xml:"ArticleTitle"`
				Abstract struct {
					Text []string `xml:"AbstractText"`
				} `xml:"Abstract"`
				AuthorList struct {
					Authors []struct {
						LastName string `xml:"LastName"`
						ForeName string `xml:"ForeName"`
					} `xml:"Author"`
				} `xml:"AuthorList"`
				Journal struct {
					Title string `xml:"Title"`
					Issue struct {
						PubDate struct {
							Year  string `xml:"Year"`
							Month string `xml:"Month"`
							Day   string `xml:"Day"`
						} `xml:"PubDate"`
					} `xml:"JournalIssue"`
				} `xml:"Journal"`
			} `xml:"Article"`
		} `xml:"MedlineCitation"`
	} `xml:"PubmedArticle"`
}

// Scrape searches PubMed and fetches the matching article records.
func (s *PubMedSource) Scrape(ctx context.Context, query string) (*types.SourceData, error) {
	ids, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &types.SourceData{Source: string(s.ID()), Papers: []types.Paper{}}, nil
	}
	return s.fetch(ctx, ids)
}

func (s *PubMedSource) search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(defaultMaxResults))
	params.Set("retmode", "json")
	params.Set("sort", "pub_date")

	searchURL := fmt.Sprintf("%s/entrez/eutils/esearch.fcgi?%s", s.config.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
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
			Message: "esearch call failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.SourceError{
			Source:  s.ID(),
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: "unexpected status from esearch",
		}
	}

	var searchResp pubmedSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode esearch response: %w", err)
	}
	return searchResp.ESearchResult.IDList, nil
}

func (s *PubMedSource) fetch(ctx context.Context, ids []string) (*types.SourceData, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	fetchURL := fmt.Sprintf("%s/entrez/eutils/efetch.fcgi?%s", s.config.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, &types.SourceError{
			Source:  s.ID(),
			Code:    "REQUEST_FAILED",
			Message: "efetch call failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.SourceError{
			Source:  s.ID(),
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: "unexpected status from efetch",
		}
	}

	var articleSet pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&articleSet); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidResponse, err)
	}

	papers := make([]types.Paper, 0, len(articleSet.Articles))
	for _, a := range articleSet.Articles {
		art := a.MedlineCitation.Article

		authors := make([]string, 0, len(art.AuthorList.Authors))
		for _, author := range art.AuthorList.Authors {
			name := author.LastName
			if author.ForeName != "" {
				name = author.ForeName + " " + name
			}
			if name != "" {
				authors = append(authors, name)
			}
		}

		pubDate := art.Journal.Issue.PubDate.Year
		if m := art.Journal.Issue.PubDate.Month; m != "" {
			pubDate += "-" + m
			if d := art.Journal.Issue.PubDate.Day; d != "" {
				pubDate += "-" + d
			}
		}

		pmid := a.MedlineCitation.PMID
		paperURL := ""
		if pmid != "" {
			paperURL = fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid)
		}

		papers = append(papers, types.Paper{
			Title:       art.Title,
			Abstract:    strings.Join(art.Abstract.Text, " "),
			Authors:     authors,
			URL:         paperURL,
			PublishedAt: pubDate,
			Venue:       art.Journal.Title,
		})
	}

	return &types.SourceData{
		Source: string(s.ID()),
		Papers: papers,
		Count:  len(papers),
	}, nil
}
