package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the scrape and cache metrics. All metrics live on an
// injected registry rather than the package-global one, so independent
// instances never collide on registration.
type Collector struct {
	registry *prometheus.Registry

	scrapeRequests *prometheus.CounterVec
	scrapeDuration *prometheus.HistogramVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on the given
// registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		registry: reg,
		scrapeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrape_requests_total",
				Help: "Total scrape requests dispatched, by source.",
			},
			[]string{"source"},
		),
		scrapeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scrape_duration_seconds",
				Help:    "Per-source scrape duration in seconds.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"source"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total scrape responses served from cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total scrape requests that missed the cache.",
		}),
	}

	reg.MustRegister(
		c.scrapeRequests,
		c.scrapeDuration,
		c.cacheHits,
		c.cacheMisses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// RecordScrape records one dispatch to a source and its duration.
func (c *Collector) RecordScrape(source string, seconds float64) {
	c.scrapeRequests.WithLabelValues(source).Inc()
	c.scrapeDuration.WithLabelValues(source).Observe(seconds)
}

// RecordCacheHit counts a response served from cache.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

// RecordCacheMiss counts a request that had to scrape.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

// Handler returns an HTTP handler exposing the registry in the Prometheus
// text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
