package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"clearclause/internal/api"
	"clearclause/internal/config"
	"clearclause/internal/generation"
	"clearclause/internal/logging"
	"clearclause/internal/prompts"
	"clearclause/internal/providers"
	"clearclause/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings {
		logger.Warn("ignoring malformed setting", zap.String("detail", w))
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	templates, err := prompts.LoadTemplates(cfg.PromptsFile)
	if err != nil {
		logger.Fatal("load prompt templates", zap.Error(err))
	}

	pm, err := providers.NewManager(ctx, cfg)
	if err != nil {
		logger.Fatal("build llm providers", zap.Error(err))
	}
	primary, ref := pm.Primary()

	opts := []generation.Option{
		generation.WithLogger(logger),
		generation.WithMaxAttempts(cfg.MaxAttempts()),
		generation.WithBackoff(cfg.RetryBackoff),
		generation.WithFallbacks(pm.Fallbacks()...),
	}
	if cfg.AuditPostgresURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		db, err := storage.NewDB(dbCtx, cfg.AuditPostgresURL)
		if err != nil {
			cancel()
			logger.Fatal("connect audit database", zap.Error(err))
		}
		defer db.Close()
		audit := storage.NewGenerationAuditRepo(db, logger)
		if err := audit.EnsureSchema(dbCtx); err != nil {
			cancel()
			logger.Fatal("prepare audit schema", zap.Error(err))
		}
		cancel()
		opts = append(opts, generation.WithRecorder(audit))
	}

	gen := generation.New(primary, opts...)
	srv := api.NewServer(cfg, logger, gen, prompts.NewBuilder(templates, cfg.DocumentCharLimit), ref.Name)

	httpServer := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("clearclause api listening",
		zap.String("addr", cfg.APIAddr),
		zap.String("llm_provider", ref.Raw),
		zap.Strings("configured_providers", pm.Names()),
		zap.Int("max_attempts", cfg.MaxAttempts()),
		zap.Bool("audit", cfg.AuditPostgresURL != ""),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}
