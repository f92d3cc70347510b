package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"glean/pkg/fanout"
)

// ChromiumLoader renders pages in headless Chromium and captures the DOM
// after scripts ran, so client-rendered content is included. All pages of
// a batch share one browser process; each page loads in its own tab.
type ChromiumLoader struct {
	logger      *zap.Logger
	timeout     time.Duration
	parallelism int

	// ChromedpOptions configures the browser process. Replace before the
	// first Load to customize flags.
	ChromedpOptions []chromedp.ExecAllocatorOption
}

func NewChromiumLoader(logger *zap.Logger, userAgent string, timeout time.Duration, parallelism int) *ChromiumLoader {
	return &ChromiumLoader{
		logger:      logger,
		timeout:     timeout,
		parallelism: parallelism,
		ChromedpOptions: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,
			chromedp.UserAgent(userAgent),

			// Stealth options
			chromedp.Flag("accept-language", "en-US,en;q=0.9"),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("exclude-switches", "enable-automation"),
			chromedp.Flag("disable-extensions", ""),
		),
	}
}

func (l *ChromiumLoader) Load(ctx context.Context, urls []string) ([]schema.Document, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, l.ChromedpOptions...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// Start the browser before fanning out; the per-URL contexts below
	// become tabs of this one process.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	results := fanout.Map(ctx, l.parallelism, urls, func(_ context.Context, pageURL string) (string, error) {
		return l.renderPage(browserCtx, pageURL)
	})

	return collect(l.logger, urls, results)
}

func (l *ChromiumLoader) renderPage(browserCtx context.Context, pageURL string) (string, error) {
	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	if l.timeout > 0 {
		var timeoutCancel context.CancelFunc
		tabCtx, timeoutCancel = context.WithTimeout(tabCtx, l.timeout)
		defer timeoutCancel()
	}

	l.logger.Debug("rendering page", zap.String("url", pageURL))

	var html string
	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("body"),
		chromedp.Evaluate(`
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined,
			});
		`, nil),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
