package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordScrape(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordScrape("arxiv", 0.5)
	c.RecordScrape("arxiv", 1.2)
	c.RecordScrape("pubmed", 0.1)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.scrapeRequests.WithLabelValues("arxiv")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.scrapeRequests.WithLabelValues("pubmed")))

	count := testutil.CollectAndCount(c.scrapeDuration, "scrape_duration_seconds")
	assert.Equal(t, 2, count)
}

func TestCollectorCacheCounters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheMiss()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheMisses))
}

func TestCollectorHandlerExposesMetrics(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordScrape("wikipedia", 0.2)
	c.RecordCacheMiss()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `scrape_requests_total{source="wikipedia"} 1`)
	assert.Contains(t, body, "scrape_duration_seconds_bucket")
	assert.Contains(t, body, "cache_misses_total 1")
}

func TestIndependentRegistries(t *testing.T) {
	// Two collectors must not collide on metric registration.
	a := NewCollector(prometheus.NewRegistry())
	b := NewCollector(prometheus.NewRegistry())

	a.RecordCacheHit()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.cacheHits))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.cacheHits))
}
