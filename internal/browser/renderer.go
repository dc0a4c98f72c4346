package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Render errors.
var (
	// ErrRenderFailure wraps every navigation, load, timeout or
	// serialisation failure.
	ErrRenderFailure = errors.New("render failure")

	// ErrClosed is returned by Render after Close.
	ErrClosed = errors.New("renderer is closed")

	// ErrUnknownEngine is returned by New for an unsupported engine name.
	ErrUnknownEngine = errors.New("unknown render engine")
)

// Engine names accepted by New.
const (
	EngineBrowser = "browser"
	EngineHTTP    = "http"
)

// Default render settings.
const (
	DefaultSettle      = 2 * time.Second
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	DefaultMaxBodySize = 10 * 1024 * 1024
)

// Renderer produces the rendered HTML of a page.
type Renderer interface {
	// Render navigates to pageURL and returns the serialised DOM.
	Render(ctx context.Context, pageURL string) (string, error)

	// Close releases the session. Calling Close more than once is safe.
	Close() error
}

// options holds the settings shared by both engines.
type options struct {
	settle      time.Duration
	timeout     time.Duration
	rps         float64
	userAgent   string
	proxy       string
	headful     bool
	remoteURL   string
	maxBodySize int64
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		settle:      DefaultSettle,
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		logger:      slog.Default(),
	}
}

// Option configures a Renderer.
type Option func(*options)

// WithSettle sets how long to wait after the load event before serialising.
// The browser engine honours it; the HTTP engine ignores it.
func WithSettle(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.settle = d
		}
	}
}

// WithTimeout bounds a single render.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRate limits renders to rps per second. Zero means unlimited.
func WithRate(rps float64) Option {
	return func(o *options) {
		if rps >= 0 {
			o.rps = rps
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithProxy routes traffic through a proxy URL such as
// "socks5://127.0.0.1:9050" or "http://proxy:3128".
func WithProxy(proxyURL string) Option {
	return func(o *options) {
		o.proxy = proxyURL
	}
}

// WithHeadful shows the browser window.
func WithHeadful(headful bool) Option {
	return func(o *options) {
		o.headful = headful
	}
}

// WithRemoteURL connects to an already running Chrome DevTools endpoint
// instead of launching a local browser.
func WithRemoteURL(u string) Option {
	return func(o *options) {
		o.remoteURL = u
	}
}

// WithMaxBodySize caps the HTTP engine's response body.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New returns the renderer for the named engine.
func New(engine string, opts ...Option) (Renderer, error) {
	switch engine {
	case EngineBrowser, "":
		return NewRodRenderer(opts...), nil
	case EngineHTTP:
		return NewHTTPRenderer(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// newLimiter builds the pacing limiter. Zero rps never blocks.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// renderError wraps err around ErrRenderFailure with the page URL.
func renderError(pageURL string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRenderFailure, pageURL, err)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
