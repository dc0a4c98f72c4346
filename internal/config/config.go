package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/blotter/internal/browser"
	"github.com/nao1215/blotter/internal/classifier"
	"github.com/nao1215/blotter/internal/crawler"
	"github.com/nao1215/blotter/internal/extract"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "blotter"

	// DefaultMaxLinks is the CLI link cap.
	DefaultMaxLinks = 20

	// DefaultServeMaxLinks is the link cap of /scrape without a max parameter.
	DefaultServeMaxLinks = 50

	// DefaultOutput is the spreadsheet written by every run.
	DefaultOutput = "crime_data_final.xlsx"

	// DefaultServerAddr is the listen address of the HTTP wrapper.
	DefaultServerAddr = "0.0.0.0:10000"

	// DefaultTorStartupTimeout bounds the embedded Tor bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute
)

// Config holds all options of a run. It is populated from defaults, the
// config file and CLI flags, then passed down explicitly.
type Config struct {
	// Site locates the listing and article content.
	Site crawler.Site

	// MaxLinks caps the number of article links collected.
	MaxLinks int

	// Output is the spreadsheet path, overwritten per run.
	Output string

	// Engine selects the render collaborator: browser or http.
	Engine string

	// Settle is the fixed wait after a page load.
	Settle time.Duration

	// Timeout bounds one navigation.
	Timeout time.Duration

	// Rate is the navigation ceiling in requests per second. Zero is unlimited.
	Rate float64

	// RemoteURL connects to an already running browser instead of launching one.
	RemoteURL string

	// Proxy routes page loads through an http, https or socks5 proxy.
	Proxy string

	// Headful shows the browser window.
	Headful bool

	// Tor starts an embedded Tor daemon and uses it as the proxy.
	Tor bool

	// TorStartupTimeout bounds the embedded Tor bootstrap.
	TorStartupTimeout time.Duration

	// UserAgent is sent with every page load.
	UserAgent string

	// Keywords is the crime vocabulary. Empty means the built-in list.
	Keywords []string

	// ExtraKeywords are appended to Keywords.
	ExtraKeywords []string

	// Patterns are the suspect extraction word lists.
	Patterns extract.Patterns

	// ContinueOnError logs and skips a failing article instead of aborting.
	ContinueOnError bool

	// ServerAddr is the listen address of the HTTP wrapper.
	ServerAddr string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit config file. Empty means search.
	ConfigFilePath string

	// JSONSummary prints the run summary as JSON.
	JSONSummary bool

	// MarkdownSummary prints the run summary as Markdown.
	MarkdownSummary bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Site:              crawler.DefaultSite(),
		MaxLinks:          DefaultMaxLinks,
		Output:            DefaultOutput,
		Engine:            browser.EngineBrowser,
		Settle:            browser.DefaultSettle,
		Timeout:           browser.DefaultTimeout,
		TorStartupTimeout: DefaultTorStartupTimeout,
		UserAgent:         browser.DefaultUserAgent,
		Patterns:          extract.DefaultPatterns(),
		ServerAddr:        DefaultServerAddr,
	}
}

// Vocabulary returns the effective crime keyword list.
func (c *Config) Vocabulary() []string {
	base := c.Keywords
	if len(base) == 0 {
		base = classifier.DefaultKeywords()
	}
	out := make([]string, 0, len(base)+len(c.ExtraKeywords))
	out = append(out, base...)
	return append(out, c.ExtraKeywords...)
}

// RenderOptions converts the render settings into browser options.
// The proxy argument overrides Proxy when non-empty.
func (c *Config) RenderOptions(proxy string) []browser.Option {
	if proxy == "" {
		proxy = c.Proxy
	}
	return []browser.Option{
		browser.WithSettle(c.Settle),
		browser.WithTimeout(c.Timeout),
		browser.WithRate(c.Rate),
		browser.WithUserAgent(c.UserAgent),
		browser.WithProxy(proxy),
		browser.WithHeadful(c.Headful),
		browser.WithRemoteURL(c.RemoteURL),
	}
}

// XDGConfigDir returns the XDG config directory for blotter.
// On Linux: ~/.config/blotter
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.MaxLinks <= 0 {
		return ErrInvalidMaxLinks
	}
	if c.Output == "" {
		return ErrInvalidOutput
	}
	switch c.Engine {
	case browser.EngineBrowser, browser.EngineHTTP:
	default:
		return ErrInvalidEngine
	}
	if c.Timeout <= 0 || c.Settle < 0 {
		return ErrInvalidTimeout
	}
	if c.Rate < 0 {
		return ErrInvalidRate
	}
	if u, err := url.Parse(c.Site.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}
	if c.JSONSummary && c.MarkdownSummary {
		return ErrConflictingSummaryFormats
	}
	if c.Tor && c.Proxy != "" {
		return ErrConflictingProxy
	}
	return nil
}
