package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/reviewforge/reviewgen/internal/config"
	"github.com/reviewforge/reviewgen/internal/server"
	"github.com/reviewforge/reviewgen/pkg/generate"
	"github.com/reviewforge/reviewgen/pkg/store"
)

func main() {
	var (
		addrFlag   = flag.String("addr", "", "HTTP listen address (overrides config)")
		configFlag = flag.String("config", "", "path to a YAML config file")
		graceFlag  = flag.Duration("grace", 0, "shutdown grace period (overrides config)")
	)
	flag.Parse()

	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *graceFlag > 0 {
		cfg.ShutdownGrace = config.Duration(*graceFlag)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client := generate.NewOpenAIClient(generate.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})
	generator := generate.New(client,
		generate.WithModel(cfg.OpenAI.Model),
		generate.WithLogger(logger))

	reviews := store.NewMemory()

	handler, err := server.New(reviews, generator, server.WithLogger(logger)).Routes()
	if err != nil {
		logger.Fatal("routes", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	logger.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.String("model", cfg.OpenAI.Model),
		zap.Bool("api_key_set", cfg.OpenAI.APIKey != ""))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		logger.Fatal("listen", zap.Error(err))
	case <-ctx.Done():
	}

	grace := cfg.ShutdownGrace.Std()
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}
