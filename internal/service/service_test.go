package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/blotter/internal/browser"
	"github.com/nao1215/blotter/internal/config"
	"github.com/nao1215/blotter/internal/crawler"
	"github.com/nao1215/blotter/internal/report"
	"github.com/nao1215/blotter/internal/tor"
)

func releaseURL(id int) string {
	return fmt.Sprintf("%s%s%d/", crawler.DefaultBaseURL, crawler.DefaultListingPath, id)
}

// fixturePages is a news-release site with two crime articles.
func fixturePages() map[string]string {
	site := crawler.DefaultSite()
	var listing strings.Builder
	listing.WriteString("<html><body>")
	for id := 1; id <= 3; id++ {
		fmt.Fprintf(&listing, `<a href="/media-centre/news-releases/%d/">Release %d</a>`, id, id)
	}
	listing.WriteString("</body></html>")

	return map[string]string{
		site.ListingURL(1): listing.String(),
		site.ListingURL(2): listing.String(),
		releaseURL(1): `<article><p>John Smith, 34, was charged with robbery.</p>
			<p>Published: January 5, 2024</p></article>`,
		releaseURL(2): `<article><p>Road closures for the annual parade.</p></article>`,
		releaseURL(3): `<article><p>Ann Lee, 52, was arrested for impaired driving.</p></article>`,
	}
}

// recordingFactory hands out StaticRenderers and remembers them.
type recordingFactory struct {
	mu        sync.Mutex
	pages     map[string]string
	proxies   []string
	renderers []*browser.StaticRenderer
	err       error
}

func (f *recordingFactory) New(proxy string) (browser.Renderer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proxies = append(f.proxies, proxy)
	if f.err != nil {
		return nil, f.err
	}
	r := browser.NewStaticRenderer(f.pages)
	f.renderers = append(f.renderers, r)
	return r, nil
}

type fakeTor struct {
	mu       sync.Mutex
	startErr error
	started  int
	stopped  int
}

func (f *fakeTor) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return f.startErr
}

func (f *fakeTor) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

func (f *fakeTor) ProxyURL() (string, error) {
	return "socks5://127.0.0.1:39050", nil
}

func newTestService(t *testing.T, cfg *config.Config, opts ...Option) *Service {
	t.Helper()
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Output = filepath.Join(t.TempDir(), "crime_data_final.xlsx")
	return cfg
}

func TestRunPipeline(t *testing.T) {
	t.Parallel()

	t.Run("writes spreadsheet and closes renderer", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		factory := &recordingFactory{pages: fixturePages()}
		s := newTestService(t, cfg, WithRendererFactory(factory.New))

		got, err := s.RunPipeline(context.Background(), 10)
		if err != nil {
			t.Fatalf("RunPipeline() error = %v", err)
		}
		if got.RowCount != 2 || got.OutputPath != cfg.Output {
			t.Errorf("Summary = %+v", got)
		}
		if got.Run == nil || got.Run.OutputPath != cfg.Output || got.Run.CrimeArticles != 2 {
			t.Errorf("Run = %+v", got.Run)
		}

		rows, err := report.ReadSpreadsheet(cfg.Output)
		if err != nil {
			t.Fatalf("ReadSpreadsheet() error = %v", err)
		}
		if len(rows) != 2 || rows[0].Name != "John Smith" || rows[0].Date != "January 5, 2024" {
			t.Errorf("rows = %+v", rows)
		}
		if rows[1].Name != "Ann Lee" || rows[1].Crime != "impaired" {
			t.Errorf("second row = %+v", rows[1])
		}

		if len(factory.renderers) != 1 || factory.renderers[0].CloseCount() != 1 {
			t.Error("expected one renderer closed once")
		}
		if factory.proxies[0] != "" {
			t.Errorf("proxy = %q, want none", factory.proxies[0])
		}
	})

	t.Run("respects max links", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		factory := &recordingFactory{pages: fixturePages()}
		s := newTestService(t, cfg, WithRendererFactory(factory.New))

		got, err := s.RunPipeline(context.Background(), 1)
		if err != nil {
			t.Fatalf("RunPipeline() error = %v", err)
		}
		if got.RowCount != 1 || got.Run.LinksCollected != 1 {
			t.Errorf("Summary = %+v, Run = %+v", got, got.Run)
		}
	})

	t.Run("render failure aborts and still closes", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		pages := fixturePages()
		delete(pages, releaseURL(3))
		factory := &recordingFactory{pages: pages}
		s := newTestService(t, cfg, WithRendererFactory(factory.New))

		_, err := s.RunPipeline(context.Background(), 10)
		if !errors.Is(err, browser.ErrRenderFailure) {
			t.Fatalf("RunPipeline() error = %v, want ErrRenderFailure", err)
		}
		if factory.renderers[0].CloseCount() != 1 {
			t.Error("renderer should be closed after failure")
		}
		if FileExists(cfg.Output) {
			t.Error("no spreadsheet should be written after an aborted run")
		}
	})

	t.Run("continue on error writes remaining rows", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.ContinueOnError = true
		pages := fixturePages()
		delete(pages, releaseURL(1))
		factory := &recordingFactory{pages: pages}
		s := newTestService(t, cfg, WithRendererFactory(factory.New))

		got, err := s.RunPipeline(context.Background(), 10)
		if err != nil {
			t.Fatalf("RunPipeline() error = %v", err)
		}
		if got.RowCount != 1 || got.Run.FailedArticles != 1 {
			t.Errorf("Summary = %+v, Run = %+v", got, got.Run)
		}
	})

	t.Run("invalid max links", func(t *testing.T) {
		t.Parallel()

		factory := &recordingFactory{pages: fixturePages()}
		s := newTestService(t, testConfig(t), WithRendererFactory(factory.New))
		if _, err := s.RunPipeline(context.Background(), 0); !errors.Is(err, ErrInvalidMaxLinks) {
			t.Errorf("RunPipeline(0) error = %v", err)
		}
		if len(factory.proxies) != 0 {
			t.Error("renderer should not be opened")
		}
	})

	t.Run("renderer factory error", func(t *testing.T) {
		t.Parallel()

		factory := &recordingFactory{err: errors.New("no chrome")}
		s := newTestService(t, testConfig(t), WithRendererFactory(factory.New))
		_, err := s.RunPipeline(context.Background(), 5)
		if err == nil || !strings.Contains(err.Error(), "open renderer") {
			t.Errorf("RunPipeline() error = %v", err)
		}
	})

	t.Run("overwrites previous output", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		if err := os.WriteFile(cfg.Output, []byte("stale"), 0o600); err != nil {
			t.Fatal(err)
		}
		factory := &recordingFactory{pages: fixturePages()}
		s := newTestService(t, cfg, WithRendererFactory(factory.New))
		if _, err := s.RunPipeline(context.Background(), 10); err != nil {
			t.Fatalf("RunPipeline() error = %v", err)
		}
		if _, err := report.ReadSpreadsheet(cfg.Output); err != nil {
			t.Errorf("output not replaced: %v", err)
		}
	})
}

func TestRunPipelineTor(t *testing.T) {
	t.Parallel()

	t.Run("embedded tor supplies the proxy", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Tor = true
		daemon := &fakeTor{}
		factory := &recordingFactory{pages: fixturePages()}
		s := newTestService(t, cfg,
			WithRendererFactory(factory.New),
			WithTorDaemon(func() TorDaemon { return daemon }),
		)

		if _, err := s.RunPipeline(context.Background(), 10); err != nil {
			t.Fatalf("RunPipeline() error = %v", err)
		}
		if factory.proxies[0] != "socks5://127.0.0.1:39050" {
			t.Errorf("proxy = %q", factory.proxies[0])
		}
		if daemon.started != 1 || daemon.stopped != 1 {
			t.Errorf("started = %d, stopped = %d", daemon.started, daemon.stopped)
		}
	})

	t.Run("tor start failure", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Tor = true
		daemon := &fakeTor{startErr: errors.New("bootstrap failed")}
		factory := &recordingFactory{pages: fixturePages()}
		s := newTestService(t, cfg,
			WithRendererFactory(factory.New),
			WithTorDaemon(func() TorDaemon { return daemon }),
		)

		_, err := s.RunPipeline(context.Background(), 10)
		if err == nil || !strings.Contains(err.Error(), "start tor") {
			t.Errorf("RunPipeline() error = %v", err)
		}
		if len(factory.proxies) != 0 {
			t.Error("renderer should not be opened")
		}
	})
}

func TestRunPipelineProxyCheck(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close() //nolint:errcheck

	cfg := testConfig(t)
	cfg.Proxy = "socks5://" + addr
	factory := &recordingFactory{pages: fixturePages()}
	s := newTestService(t, cfg, WithRendererFactory(factory.New))

	_, err = s.RunPipeline(context.Background(), 10)
	if !errors.Is(err, tor.ErrProxyCannotConnect) {
		t.Errorf("RunPipeline() error = %v, want ErrProxyCannotConnect", err)
	}
}

func TestCheckSOCKSProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "http proxy is not probed", raw: "http://127.0.0.1:1", wantErr: nil},
		{name: "authenticated socks is not probed", raw: "socks5://u:p@127.0.0.1:1", wantErr: nil},
		{name: "missing port", raw: "socks5://127.0.0.1", wantErr: tor.ErrInvalidProxyAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkSOCKSProxy(context.Background(), tt.raw)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkSOCKSProxy() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkSOCKSProxy() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Patterns.ChargeWords = []string{" "}
	if _, err := New(cfg); err == nil {
		t.Error("expected error for blank charge words")
	}

	s := newTestService(t, testConfig(t))
	if s.newRenderer == nil || s.newTor == nil {
		t.Error("expected default factories")
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	if FileExists(path) {
		t.Error("missing file reported as existing")
	}
	if FileExists(dir) {
		t.Error("directory reported as file")
	}
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("existing file not found")
	}
}

func TestCheckOutput(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	s := newTestService(t, cfg)
	if err := s.CheckOutput(); !errors.Is(err, ErrOutputNotFound) {
		t.Errorf("CheckOutput() = %v, want ErrOutputNotFound", err)
	}
	if err := os.WriteFile(cfg.Output, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.CheckOutput(); err != nil {
		t.Errorf("CheckOutput() = %v", err)
	}
}
