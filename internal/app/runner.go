package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"github.com/rkarim/mobiledokan-scraper-go/internal/config"
	"github.com/rkarim/mobiledokan-scraper-go/internal/domain"
	"github.com/rkarim/mobiledokan-scraper-go/internal/service"
	"github.com/rkarim/mobiledokan-scraper-go/internal/util"
	"go.uber.org/zap"
)

// logTitleMax bounds product titles in log lines; listing pages occasionally
// carry promo text stuffed into the title element.
const logTitleMax = 80

// PageFetcher is what the Runner needs from the browser layer: listing and
// detail pages as parsed documents, with bounded waits behind the calls.
type PageFetcher interface {
	Listing(ctx context.Context) (*goquery.Document, error)
	Detail(ctx context.Context, url string) (*goquery.Document, error)
}

// ImageSaver persists a resized preview for one product.
type ImageSaver interface {
	Save(ctx context.Context, url, path string) error
}

// Notifier announces a newly processed product. Failures are never fatal.
type Notifier interface {
	Notify(ctx context.Context, deviceName, deviceURL, imagePath string) error
}

type Dependencies struct {
	Config    *config.Config
	Fetcher   PageFetcher
	Extractor *service.Extractor
	Ledger    *service.Ledger
	Artifacts *service.ArtifactWriter
	Images    ImageSaver
	Notifier  Notifier
	Logger    *zap.Logger
}

// RunStats summarizes one run for reporting.
type RunStats struct {
	Discovered int
	New        int
	Succeeded  int
	Failed     int
}

// Runner drives one scrape run: discover links, diff against the ledger,
// then process each new link sequentially with per-item failure isolation.
// The browser session and ledger are owned by the Runner for the run's
// duration; nothing here is safe for concurrent use.
type Runner struct {
	cfg       *config.Config
	fetcher   PageFetcher
	extractor *service.Extractor
	ledger    *service.Ledger
	artifacts *service.ArtifactWriter
	images    ImageSaver
	notifier  Notifier
	logger    *zap.Logger
}

func NewRunner(deps Dependencies) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:       deps.Config,
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		ledger:    deps.Ledger,
		artifacts: deps.Artifacts,
		images:    deps.Images,
		notifier:  deps.Notifier,
		logger:    logger,
	}
}

// Run executes the pipeline once. Only a failure to load the listing page or
// the ledger is fatal; any per-item failure is reported, leaves the item
// unmarked so the next run retries it, and the loop continues.
func (r *Runner) Run(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}

	for _, dir := range []string{r.cfg.Output.JSONDir, r.cfg.Output.ImageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return stats, fmt.Errorf("failed to create output dir %s: %w", dir, err)
		}
	}

	r.logger.Info("Navigating to listing page",
		zap.String("url", r.cfg.Scrape.TargetURL))

	listingDoc, err := r.fetcher.Listing(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing discovery failed: %w", err)
	}

	links := service.ListingLinks(listingDoc)
	stats.Discovered = len(links)
	if len(links) == 0 {
		r.logger.Warn("No product links discovered on listing page")
		return stats, nil
	}

	processed, err := r.ledger.Load()
	if err != nil {
		return stats, fmt.Errorf("ledger load failed: %w", err)
	}

	work := service.NewWork(links, processed)
	stats.New = len(work)
	if len(work) == 0 {
		r.logger.Info("No new products to scrape",
			zap.Int("discovered", stats.Discovered),
			zap.Int("already_processed", len(processed)))
		return stats, nil
	}

	r.logger.Info("Found new products to scrape",
		zap.Int("count", len(work)))

	for i, link := range work {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		r.logger.Info(fmt.Sprintf("Scraping %d/%d", i+1, len(work)),
			zap.String("url", link))

		if err := r.processItem(ctx, link); err != nil {
			stats.Failed++
			r.logger.Error("Failed to scrape product",
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		stats.Succeeded++
	}

	r.logger.Info("Scraping run finished",
		zap.Int("discovered", stats.Discovered),
		zap.Int("new", stats.New),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed))

	return stats, nil
}

// processItem handles one product link end to end. The ledger append comes
// strictly after the artifact write: a crash in between reprocesses the item
// next run rather than losing it. Image and notification are best-effort.
func (r *Runner) processItem(ctx context.Context, link string) error {
	doc, err := r.fetcher.Detail(ctx, link)
	if err != nil {
		return err
	}

	raw := r.extractor.Extract(doc)
	record := service.Normalize(raw)
	baseName := r.artifacts.BaseName(record)

	imagePath := ""
	if raw.ImageURL == "" {
		r.logger.Debug("No image URL on detail page, skipping download",
			zap.String("url", link))
	} else {
		candidate := filepath.Join(r.cfg.Output.ImageDir, baseName+".jpg")
		if err := r.images.Save(ctx, raw.ImageURL, candidate); err != nil {
			r.logger.Warn("Failed to download or resize image",
				zap.String("url", link),
				zap.String("image_url", raw.ImageURL),
				zap.Error(err))
		} else {
			imagePath = candidate
		}
	}

	jsonPath, err := r.artifacts.Write(record, baseName)
	if err != nil {
		return err
	}

	if err := r.ledger.Append(domain.LedgerEntry{
		DisplayName: record.Title,
		URL:         link,
	}); err != nil {
		return err
	}

	r.logger.Info("Successfully scraped and saved",
		zap.String("title", util.TruncateString(record.Title, logTitleMax)),
		zap.String("path", jsonPath))

	if err := r.notifier.Notify(ctx, record.Title, link, imagePath); err != nil {
		r.logger.Warn("Notification failed",
			zap.String("title", record.Title),
			zap.Error(err))
	}

	return nil
}
