package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

// HTTPRenderer fetches pages with a plain GET and returns the body as is.
type HTTPRenderer struct {
	opts    options
	client  *http.Client
	limiter *rate.Limiter

	mu     sync.Mutex
	closed bool
}

// NewHTTPRenderer creates an HTTP-backed renderer.
func NewHTTPRenderer(opts ...Option) (*HTTPRenderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	transport, err := newTransport(o.proxy)
	if err != nil {
		return nil, err
	}

	return &HTTPRenderer{
		opts: o,
		client: &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		limiter: newLimiter(o.rps),
	}, nil
}

// newTransport builds a transport that honours an optional proxy URL.
// socks5 proxies go through x/net/proxy; http(s) proxies use the
// standard proxy hook.
func newTransport(proxyURL string) (*http.Transport, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}
	if proxyURL == "" {
		return transport, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}

	switch u.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return transport, nil
}

// Render performs the GET and returns the body. Non-2xx responses fail.
func (r *HTTPRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return "", ErrClosed
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return "", renderError(pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", renderError(pageURL, err)
	}
	req.Header.Set("User-Agent", r.opts.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", renderError(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", renderError(pageURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.opts.maxBodySize))
	if err != nil {
		return "", renderError(pageURL, err)
	}
	return string(body), nil
}

// Close releases idle connections.
func (r *HTTPRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.client.CloseIdleConnections()
	return nil
}

// IsRenderFailure reports whether err came from a renderer.
func IsRenderFailure(err error) bool {
	return errors.Is(err, ErrRenderFailure)
}
