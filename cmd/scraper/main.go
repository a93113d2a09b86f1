package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rkarim/mobiledokan-scraper-go/internal/app"
	"github.com/rkarim/mobiledokan-scraper-go/internal/config"
	"github.com/rkarim/mobiledokan-scraper-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("MobileDokan scraper starting...",
		zap.String("target_url", cfg.Scrape.TargetURL),
		zap.String("log_level", cfg.Logging.Level),
	)

	container, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	// A single run, cancellable by SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := container.Session.Start(ctx); err != nil {
		logger.Error("Failed to start browser session", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	defer func() {
		container.Session.Close()
		logger.Info("Scraping session finished, browser closed")
	}()

	stats, err := container.Runner.Run(ctx)
	if err != nil {
		logger.Error("A critical error occurred",
			zap.Error(err),
			zap.Int("succeeded", stats.Succeeded),
			zap.Int("failed", stats.Failed))
		container.Session.Close()
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("Run complete",
		zap.Int("discovered", stats.Discovered),
		zap.Int("new", stats.New),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed))
}
