package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/domain/printing"
	"github.com/isletme/backend/internal/infrastructure/config"
)

const defaultChromeTimeout = 30 * time.Second

// ChromedpRenderer prints HTML to PDF with headless Chrome. Every render
// gets its own tab on a shared allocator.
type ChromedpRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer starts an allocator for a local Chrome, or connects
// to cfg.RemoteURL when it is set.
func NewChromedpRenderer(cfg config.PDFConfig, logger *zap.Logger) *ChromedpRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ChromedpRenderer{
		timeout: cfg.Timeout,
		logger:  logger.Named("pdf"),
	}
	if r.timeout <= 0 {
		r.timeout = defaultChromeTimeout
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Render prints req.HTML. A deadline or cancellation of ctx is reported
// as ErrCodeRenderTimeout.
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if !req.PaperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.PaperSize), nil)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tab, closeTab := chromedp.NewContext(r.allocCtx, chromedp.WithLogf(r.logger.Sugar().Debugf))
	defer closeTab()
	// Stop the tab when the caller's deadline fires.
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	start := time.Now()
	doc := ensureDocument(req.HTML, req.Title)
	params := printParams(req)

	var pdf []byte
	err := chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			msg := fmt.Sprintf("PDF rendering timed out after %v", timeout)
			if errors.Is(ctxErr, context.Canceled) {
				msg = "PDF rendering was cancelled"
			}
			return nil, NewRenderError(ErrCodeRenderTimeout, msg, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{
		PDFData:        pdf,
		PageCount:      estimatePageCount(pdf),
		RenderDuration: time.Since(start),
	}
	r.logger.Info("pdf rendered",
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

// Close shuts the allocator down
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// printParams maps the page setup onto Chrome's print options, which are
// in inches.
func printParams(req *RenderRequest) *page.PrintToPDFParams {
	width, height := req.PaperSize.Dimensions()
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(false).
		WithPaperWidth(mmToInches(float64(width))).
		WithPaperHeight(mmToInches(float64(height))).
		WithLandscape(req.Orientation == printing.OrientationLandscape).
		WithMarginTop(mmToInches(float64(req.Margins.Top))).
		WithMarginRight(mmToInches(float64(req.Margins.Right))).
		WithMarginBottom(mmToInches(float64(req.Margins.Bottom))).
		WithMarginLeft(mmToInches(float64(req.Margins.Left))).
		WithScale(1)
}

// ensureDocument wraps an HTML fragment into a UTF-8 page
func ensureDocument(body, title string) string {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return body
	}
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="tr"><head><meta charset="UTF-8">`)
	if title != "" {
		b.WriteString("<title>" + html.EscapeString(title) + "</title>")
	}
	b.WriteString("</head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>")
	return b.String()
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// estimatePageCount counts "/Type /Page" objects minus the "/Type /Pages" parents
func estimatePageCount(pdf []byte) int {
	count := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(count, 1)
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
