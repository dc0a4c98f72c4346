package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sync"

	"github.com/nao1215/blotter/internal/browser"
	"github.com/nao1215/blotter/internal/classifier"
	"github.com/nao1215/blotter/internal/config"
	"github.com/nao1215/blotter/internal/crawler"
	"github.com/nao1215/blotter/internal/extract"
	"github.com/nao1215/blotter/internal/model"
	"github.com/nao1215/blotter/internal/pipeline"
	"github.com/nao1215/blotter/internal/report"
	"github.com/nao1215/blotter/internal/tor"
)

// RendererFactory opens a render session routed through proxy ("" for none).
type RendererFactory func(proxy string) (browser.Renderer, error)

// TorDaemon is an embedded Tor process that supplies a SOCKS5 proxy.
type TorDaemon interface {
	Start(ctx context.Context) error
	Stop() error
	ProxyURL() (string, error)
}

// Summary is the result of a successful run.
type Summary struct {
	// RowCount is the number of rows written.
	RowCount int

	// OutputPath is the spreadsheet that was written.
	OutputPath string

	// Run holds the full run statistics.
	Run *model.RunSummary
}

// Service runs scrapes for one configuration.
type Service struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier *classifier.Classifier
	extractor  *extract.Extractor
	writer     *report.SpreadsheetWriter

	newRenderer RendererFactory
	newTor      func() TorDaemon

	// mu serialises runs.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRendererFactory replaces the renderer built from the config.
func WithRendererFactory(f RendererFactory) Option {
	return func(s *Service) {
		s.newRenderer = f
	}
}

// WithTorDaemon replaces the embedded Tor daemon used when cfg.Tor is set.
func WithTorDaemon(f func() TorDaemon) Option {
	return func(s *Service) {
		s.newTor = f
	}
}

// New creates a Service. It fails when the configured extraction word lists
// do not compile.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		logger: slog.Default(),
		writer: report.NewSpreadsheetWriter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	ex, err := extract.New(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	s.extractor = ex
	s.classifier = classifier.New(cfg.Vocabulary())

	if s.newRenderer == nil {
		s.newRenderer = func(proxy string) (browser.Renderer, error) {
			renderOpts := append(cfg.RenderOptions(proxy), browser.WithLogger(s.logger))
			return browser.New(cfg.Engine, renderOpts...)
		}
	}
	if s.newTor == nil {
		s.newTor = func() TorDaemon {
			return tor.NewEmbeddedTor(
				tor.WithStartupTimeout(cfg.TorStartupTimeout),
				tor.WithLogger(s.logger),
			)
		}
	}
	return s, nil
}

// OutputPath returns the spreadsheet path of every run.
func (s *Service) OutputPath() string {
	return s.cfg.Output
}

// RunPipeline collects up to maxLinks articles, extracts suspects and
// overwrites the output spreadsheet. The render session and any Tor daemon
// are released before it returns. On error the returned Summary still
// carries the partial run statistics.
func (s *Service) RunPipeline(ctx context.Context, maxLinks int) (Summary, error) {
	if maxLinks <= 0 {
		return Summary{}, ErrInvalidMaxLinks
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proxy, stopTor, err := s.prepareProxy(ctx)
	if err != nil {
		return Summary{}, err
	}
	defer stopTor()

	renderer, err := s.newRenderer(proxy)
	if err != nil {
		return Summary{}, fmt.Errorf("open renderer: %w", err)
	}
	defer func() {
		if cerr := renderer.Close(); cerr != nil {
			s.logger.Warn("failed to close renderer", "error", cerr)
		}
	}()

	p := s.newPipeline(renderer)
	rs, run, err := p.Run(ctx, maxLinks)
	if err != nil {
		return Summary{Run: run}, err
	}

	if err := s.writer.Write(rs.Rows(), s.cfg.Output); err != nil {
		return Summary{Run: run}, fmt.Errorf("write spreadsheet: %w", err)
	}
	run.OutputPath = s.cfg.Output
	s.logger.Info("spreadsheet written", "path", s.cfg.Output, "rows", rs.Len())

	return Summary{
		RowCount:   rs.Len(),
		OutputPath: s.cfg.Output,
		Run:        run,
	}, nil
}

func (s *Service) newPipeline(renderer browser.Renderer) *pipeline.Pipeline {
	site := s.cfg.Site
	collector := crawler.NewCollector(renderer, site, crawler.WithCollectorLogger(s.logger))
	fetcher := crawler.NewFetcher(renderer,
		crawler.WithContentSelectors(site.ContentSelectors),
		crawler.WithFetcherLogger(s.logger),
	)
	return pipeline.NewDefault(collector, fetcher, s.classifier, s.extractor,
		pipeline.WithLogger(s.logger),
		pipeline.WithContinueOnError(s.cfg.ContinueOnError),
	)
}

// prepareProxy starts the embedded Tor daemon or checks a configured SOCKS5
// proxy. The returned stop func is always non-nil.
func (s *Service) prepareProxy(ctx context.Context) (string, func(), error) {
	noop := func() {}

	if s.cfg.Tor {
		daemon := s.newTor()
		s.logger.Info("starting embedded Tor daemon")
		if err := daemon.Start(ctx); err != nil {
			return "", noop, fmt.Errorf("start tor: %w", err)
		}
		stop := func() {
			if err := daemon.Stop(); err != nil {
				s.logger.Warn("failed to stop Tor daemon", "error", err)
			}
		}
		proxy, err := daemon.ProxyURL()
		if err != nil {
			stop()
			return "", noop, err
		}
		s.logger.Info("embedded Tor ready", "proxy", proxy)
		return proxy, stop, nil
	}

	if s.cfg.Proxy == "" {
		return "", noop, nil
	}
	if err := checkSOCKSProxy(ctx, s.cfg.Proxy); err != nil {
		return "", noop, err
	}
	s.logger.Info("using proxy", "proxy", s.cfg.Proxy)
	return s.cfg.Proxy, noop, nil
}

// checkSOCKSProxy probes an unauthenticated socks5 proxy URL. Other proxy
// kinds are not probed.
func checkSOCKSProxy(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}
	if (u.Scheme != "socks5" && u.Scheme != "socks5h") || u.User != nil {
		return nil
	}
	if err := tor.ValidateAddress(u.Host); err != nil {
		return err
	}
	if status := tor.Probe(ctx, u.Host); status != tor.ProxyStatusOK {
		return fmt.Errorf("proxy %s: %w", u.Host, status.Err())
	}
	return nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CheckOutput returns ErrOutputNotFound when the output spreadsheet is absent.
func (s *Service) CheckOutput() error {
	if !FileExists(s.cfg.Output) {
		return fmt.Errorf("%s: %w", s.cfg.Output, ErrOutputNotFound)
	}
	return nil
}

// IsUserError reports whether err was caused by the request rather than the
// run itself.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidMaxLinks)
}
