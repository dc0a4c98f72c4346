package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"golang.org/x/time/rate"
)

// RodRenderer renders pages in a Chrome session driven by go-rod.
// The browser is launched lazily on the first Render and reused until Close.
type RodRenderer struct {
	opts    options
	limiter *rate.Limiter

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewRodRenderer creates a browser-backed renderer.
func NewRodRenderer(opts ...Option) *RodRenderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RodRenderer{
		opts:    o,
		limiter: newLimiter(o.rps),
	}
}

// Start launches or connects to Chrome. Render calls it on demand.
func (r *RodRenderer) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.startLocked()
	return err
}

func (r *RodRenderer) startLocked() (*rod.Browser, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if r.browser != nil {
		return r.browser, nil
	}

	log := r.opts.logger
	wsURL := r.opts.remoteURL

	if wsURL != "" {
		log.Debug("connecting to remote browser", "url", wsURL)
	} else {
		l := launcher.New().Headless(!r.opts.headful)

		// Hides navigator.webdriver from page scripts.
		l = l.Set("disable-blink-features", "AutomationControlled")
		if r.opts.proxy != "" {
			l = l.Set("proxy-server", r.opts.proxy)
		}

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("%w: launch browser: %w", ErrRenderFailure, err)
		}
		wsURL = u
		r.lnch = l
		log.Debug("launched local browser", "url", wsURL, "headful", r.opts.headful)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		r.cleanupLocked()
		return nil, fmt.Errorf("%w: connect browser: %w", ErrRenderFailure, err)
	}
	r.browser = b
	return b, nil
}

// Render opens a stealth tab, navigates, waits for load plus the settle
// period and returns the outer HTML of the document.
func (r *RodRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", renderError(pageURL, err)
	}

	r.mu.Lock()
	b, err := r.startLocked()
	r.mu.Unlock()
	if err != nil {
		return "", err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return "", renderError(pageURL, fmt.Errorf("open tab: %w", err))
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			r.opts.logger.Debug("close tab failed", "url", pageURL, "error", cerr)
		}
	}()

	if r.opts.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.opts.userAgent}); err != nil {
			r.opts.logger.Debug("set user agent failed", "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, r.opts.timeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return "", renderError(pageURL, fmt.Errorf("navigate: %w", err))
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		return "", renderError(pageURL, fmt.Errorf("wait load: %w", err))
	}
	if err := sleepContext(navCtx, r.opts.settle); err != nil {
		return "", renderError(pageURL, err)
	}

	res, err := page.Context(navCtx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", renderError(pageURL, fmt.Errorf("serialise DOM: %w", err))
	}
	return res.Value.Str(), nil
}

// Close shuts down the browser and removes the launcher's profile.
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.cleanupLocked()
}

func (r *RodRenderer) cleanupLocked() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.lnch != nil {
		r.lnch.Cleanup()
		r.lnch = nil
	}
	return err
}
