package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.opentelemetry.io/otel"
)

// Rasterizer converts a rendered HTML document to PDF bytes.
type Rasterizer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// RasterizerConfig configures the Chromium-backed rasterizer.
type RasterizerConfig struct {
	// Bin is an explicit Chromium binary path. Empty uses the launcher's
	// discovery (and managed download where permitted).
	Bin string
	// DebuggerURL attaches to an already-running browser instead of
	// launching one.
	DebuggerURL string
	// RenderTimeout bounds a single render, content load included.
	RenderTimeout time.Duration
}

// A4 paper and report margins, in inches as the DevTools protocol expects.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginTopIn   = 20.0 / 25.4
	marginSideIn  = 15.0 / 25.4
)

// ChromeRasterizer drives a shared headless Chromium over the DevTools
// protocol. The browser starts lazily on first render and reconnects when the
// existing connection has gone stale.
type ChromeRasterizer struct {
	cfg RasterizerConfig

	mu      sync.Mutex
	browser *rod.Browser
}

// NewChromeRasterizer builds a rasterizer; the browser is not started until
// the first Render call.
func NewChromeRasterizer(cfg RasterizerConfig) *ChromeRasterizer {
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 30 * time.Second
	}
	return &ChromeRasterizer{cfg: cfg}
}

// ensureStarted connects to Chromium, replacing a dead connection if one is
// held. Callers must not hold the mutex.
func (r *ChromeRasterizer) ensureStarted() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		if _, err := r.browser.Version(); err == nil {
			return r.browser, nil
		}
		_ = r.browser.Close()
		r.browser = nil
	}

	controlURL := r.cfg.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		if r.cfg.Bin != "" {
			l = l.Bin(r.cfg.Bin)
		}
		url, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch chromium: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chromium: %w", err)
	}

	r.browser = browser
	return browser, nil
}

// Render rasterizes the document to A4 PDF with print backgrounds enabled.
func (r *ChromeRasterizer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, span := otel.Tracer("report").Start(ctx, "report.rasterize")
	defer span.End()

	browser, err := r.ensureStarted()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.RenderTimeout)
	defer cancel()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open render page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set page content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page did not finish loading: %w", err)
	}

	paperWidth := paperWidthIn
	paperHeight := paperHeightIn
	marginTop := marginTopIn
	marginSide := marginSideIn
	printBackground := true

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: printBackground,
		PaperWidth:      &paperWidth,
		PaperHeight:     &paperHeight,
		MarginTop:       &marginTop,
		MarginBottom:    &marginTop,
		MarginLeft:      &marginSide,
		MarginRight:     &marginSide,
	})
	if err != nil {
		return nil, fmt.Errorf("pdf print failed: %w", err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("pdf print produced an empty document")
	}
	return pdf, nil
}

// Shutdown closes the shared browser if one was started.
func (r *ChromeRasterizer) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
