package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{
			name:  "valid query",
			query: "machine learning",
		},
		{
			name:    "empty query",
			query:   "",
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "whitespace only query",
			query:   "   \t  ",
			wantErr: ErrEmptyQuery,
		},
		{
			name:  "query at max length",
			query: strings.Repeat("a", MaxQueryLength),
		},
		{
			name:    "query over max length",
			query:   strings.Repeat("a", MaxQueryLength+1),
			wantErr: ErrQueryTooLong,
		},
		{
			name:  "padded query under max after trim",
			query: "  " + strings.Repeat("a", MaxQueryLength) + "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ScrapeRequest{Query: tt.query}
			err := req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScrapeRequestNormalizedQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"already normalized", "quantum computing", "quantum computing"},
		{"uppercase", "Quantum Computing", "quantum computing"},
		{"surrounding whitespace", "  quantum computing \n", "quantum computing"},
		{"inner whitespace preserved", "quantum   computing", "quantum   computing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ScrapeRequest{Query: tt.query}
			assert.Equal(t, tt.want, req.NormalizedQuery())
		})
	}
}
