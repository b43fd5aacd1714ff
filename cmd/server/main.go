package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acadex/research-scraper/internal/cache"
	"github.com/acadex/research-scraper/internal/conf"
	"github.com/acadex/research-scraper/internal/metrics"
	"github.com/acadex/research-scraper/internal/pkg/logger"
	"github.com/acadex/research-scraper/internal/pkg/redis"
	"github.com/acadex/research-scraper/internal/scraper/orchestrator"
	"github.com/acadex/research-scraper/internal/scraper/service"
	"github.com/acadex/research-scraper/internal/scraper/source"
	"github.com/acadex/research-scraper/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	scrapeCache, cleanup, err := newCache(config, log)
	if err != nil {
		log.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer cleanup()

	factory := source.NewFactory()
	orch, err := orchestrator.New(config.Sources, factory, log.Logger)
	if err != nil {
		log.Fatal("failed to initialize orchestrator", zap.Error(err))
	}

	cacheTTL := time.Duration(config.Cache.TTLSeconds) * time.Second
	scrapeService := service.NewScrapeService(orch, scrapeCache, collector, log, cacheTTL)
	handler := service.NewHandler(scrapeService)

	httpServer := server.NewHTTPServer(config, log, handler, collector)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully",
		zap.String("addr", config.Server.Addr()),
		zap.String("cache_backend", config.Cache.Backend),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// newCache builds the configured cache backend. The backend is fixed at
// startup; switching requires a restart.
func newCache(config *conf.Config, log *logger.Logger) (cache.Cache, func(), error) {
	switch config.Cache.Backend {
	case "redis":
		client, err := redis.New(&config.Cache.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisCache(client, log), func() { client.Close() }, nil
	default:
		mem := cache.NewMemoryCache()
		return mem, mem.Close, nil
	}
}
