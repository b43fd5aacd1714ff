package server

import (
	"context"
	"net/http"

	"github.com/acadex/research-scraper/internal/conf"
	"github.com/acadex/research-scraper/internal/metrics"
	"github.com/acadex/research-scraper/internal/pkg/logger"
	"github.com/acadex/research-scraper/internal/scraper/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const landingPage = `<!DOCTYPE html>
<html>
<head><title>Research Scraper</title></head>
<body>
<h1>Research Scraper</h1>
<p>Parallel academic source scraping API.</p>
<ul>
<li>POST /api/v1/scrape</li>
<li>GET /api/v1/sources</li>
<li>GET /health</li>
<li>GET /metrics</li>
</ul>
</body>
</html>`

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	handler *service.Handler,
	collector *metrics.Collector,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log, "/health", "/metrics"))

	router.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, landingPage)
	})

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return &HTTPServer{
		server: &http.Server{
			Addr:    config.Server.Addr(),
			Handler: router,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
