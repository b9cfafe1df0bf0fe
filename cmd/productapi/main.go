package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"ProductAPI/internal/catalog"
	"ProductAPI/internal/config"
	"ProductAPI/pkg/kit"
)

func main() {
	cfg, err := config.Load(getenv("PRODUCT_API_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := kit.NewLogger(cfg.Service, cfg.Log.Level, cfg.Development())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("config loaded", zap.Stringer("config", cfg))

	s := &catalog.Server{
		Store:        catalog.NewStore(),
		Log:          logger,
		ExposeErrors: cfg.Development(),
	}

	deps := catalog.HTTPDeps{
		Log:            logger,
		Service:        cfg.Service,
		Registry:       kit.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = kit.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           catalog.NewHandler(s, deps),
		ReadTimeout:       cfg.HTTPServer.Timeout.Read,
		WriteTimeout:      cfg.HTTPServer.Timeout.Write,
		IdleTimeout:       cfg.HTTPServer.Timeout.Idle,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
	}

	if err := kit.RunHTTPServer(context.Background(), srv, logger, cfg.HTTPServer.Timeout.Shutdown); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
