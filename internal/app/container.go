package app

import (
	"fmt"

	"github.com/rkarim/mobiledokan-scraper-go/internal/browser"
	"github.com/rkarim/mobiledokan-scraper-go/internal/config"
	"github.com/rkarim/mobiledokan-scraper-go/internal/notify"
	"github.com/rkarim/mobiledokan-scraper-go/internal/service"
	"go.uber.org/zap"
)

// Container bundles the assembled services for a scrape run. The browser
// session it owns must be started before Run and closed afterwards.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Session *browser.Session
	Runner  *Runner
}

// Build assembles the full dependency graph. All construction happens here
// so the Runner stays focused on orchestration logic.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	session := browser.NewSession(browser.Config{
		TargetURL:       cfg.Scrape.TargetURL,
		Headless:        cfg.Browser.Headless,
		UserAgent:       cfg.Browser.UserAgent,
		ListingTimeout:  cfg.Scrape.ListingTimeout,
		DetailTimeout:   cfg.Scrape.DetailTimeout,
		SelectorTimeout: cfg.Scrape.SelectorTimeout,
	}, logger)

	extractor := service.NewExtractor(logger)
	ledger := service.NewLedger(cfg.Output.LedgerPath, logger)
	artifacts := service.NewArtifactWriter(cfg.Output.JSONDir, logger)
	images := service.NewImageService(cfg.Image.TargetWidth, cfg.Image.Timeout, logger)
	notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)

	if !notifier.Enabled() {
		logger.Warn("Telegram credentials not configured, notifications disabled")
	}

	runner := NewRunner(Dependencies{
		Config:    cfg,
		Fetcher:   session,
		Extractor: extractor,
		Ledger:    ledger,
		Artifacts: artifacts,
		Images:    images,
		Notifier:  notifier,
		Logger:    logger,
	})

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Session: session,
		Runner:  runner,
	}, nil
}
