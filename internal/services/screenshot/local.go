package screenshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"webmark/internal/logging"
	"webmark/internal/services"
)

// localService renders the page in a headless Chrome instance. A fresh
// browser is launched per capture; reusing one across items would save a
// second or two but leak state between unrelated pages.
type localService struct {
	timeout    time.Duration
	width      int
	height     int
	chromePath string
	logger     *slog.Logger
}

func (s *localService) Capture(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, services.Wrap(services.ErrValidation, "screenshot", "capture", "url required", nil)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.WindowSize(s.width, s.height),
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancelRun := context.WithTimeout(browserCtx, s.timeout)
	defer cancelRun()

	started := time.Now()
	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(rawURL),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, services.Wrap(services.ErrCancelled, "screenshot", "capture", "request aborted", err)
		}
		return nil, services.Wrap(services.ErrTransient, "screenshot", "capture", "headless capture failed", err)
	}
	if len(buf) == 0 {
		return nil, services.Wrap(services.ErrTransient, "screenshot", "capture", "headless capture produced no image", nil)
	}
	s.logger.DebugContext(ctx, "captured page screenshot",
		logging.String(logging.FieldURL, rawURL),
		logging.Int("bytes", len(buf)),
		logging.Duration("elapsed", time.Since(started)))
	return buf, nil
}
