package browser

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rkarim/mobiledokan-scraper-go/pkg/errors"
	"go.uber.org/zap"
)

// Ready selectors. The listing page is considered loaded once its body is
// ready; a detail page only once its product container appeared, since the
// site renders the spec tables inside it.
const (
	listingReadySelector = "body"
	detailReadySelector  = "div.aps-single-product"
)

type Config struct {
	TargetURL       string
	Headless        bool
	UserAgent       string
	ListingTimeout  time.Duration
	DetailTimeout   time.Duration
	SelectorTimeout time.Duration
}

// Session owns one headless browser for the whole run. All fetches reuse the
// same tab, strictly sequentially; Session is not safe for concurrent use.
type Session struct {
	cfg    Config
	logger *zap.Logger

	allocCtx     context.Context
	browserCtx   context.Context
	cancelAlloc  context.CancelFunc
	cancelBrowse context.CancelFunc
}

func NewSession(cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
	}
}

// Start launches the browser process. Close must be called once Start
// succeeded.
func (s *Session) Start(ctx context.Context) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(s.cfg.UserAgent),
	)

	s.allocCtx, s.cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	s.browserCtx, s.cancelBrowse = chromedp.NewContext(s.allocCtx)

	if err := chromedp.Run(s.browserCtx); err != nil {
		s.Close()
		return errors.NewNavigationError("failed to launch browser", "", err)
	}

	s.logger.Info("Browser session started",
		zap.Bool("headless", s.cfg.Headless))
	return nil
}

func (s *Session) Close() {
	if s.cancelBrowse != nil {
		s.cancelBrowse()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
}

// Listing navigates to the catalog listing page and returns its parsed
// document. A failure here is fatal to the run.
func (s *Session) Listing(ctx context.Context) (*goquery.Document, error) {
	doc, err := s.fetch(ctx, s.cfg.TargetURL, listingReadySelector, s.cfg.ListingTimeout)
	if err != nil {
		return nil, errors.NewNavigationError("listing page failed to load", s.cfg.TargetURL, err)
	}
	return doc, nil
}

// Detail navigates to one product detail page and waits for the product
// container within the selector wait budget.
func (s *Session) Detail(ctx context.Context, url string) (*goquery.Document, error) {
	doc, err := s.fetch(ctx, url, detailReadySelector, s.cfg.DetailTimeout)
	if err != nil {
		return nil, errors.NewNavigationError("detail page failed to load", url, err)
	}
	return doc, nil
}

func (s *Session) fetch(ctx context.Context, url, readySelector string, timeout time.Duration) (*goquery.Document, error) {
	if s.browserCtx == nil {
		return nil, errors.NewNavigationError("session not started", url, nil)
	}

	tabCtx := s.browserCtx
	if ctx.Done() != nil {
		// Propagate caller cancellation into the tab context.
		var cancel context.CancelFunc
		tabCtx, cancel = mergeCancel(s.browserCtx, ctx)
		defer cancel()
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	start := time.Now()
	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		waitVisibleWithin(readySelector, s.cfg.SelectorTimeout),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Page fetched",
		zap.String("url", url),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

// waitVisibleWithin bounds the element-appearance wait separately from the
// navigation timeout.
func waitVisibleWithin(selector string, timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return chromedp.WaitVisible(selector, chromedp.ByQuery).Do(waitCtx)
	})
}

// mergeCancel returns a context derived from primary that is also cancelled
// when secondary is.
func mergeCancel(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(primary)
	go func() {
		select {
		case <-secondary.Done():
			cancel()
		case <-merged.Done():
		}
	}()
	return merged, cancel
}
