package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nao1215/blotter/internal/service"
	"golang.org/x/sync/singleflight"
)

// XLSXContentType is the media type of the downloaded spreadsheet.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultMaxLinks is the link cap of /scrape without a max parameter.
const DefaultMaxLinks = 50

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Scraper runs one scrape and knows where its output lives.
type Scraper interface {
	RunPipeline(ctx context.Context, maxLinks int) (service.Summary, error)
	OutputPath() string
}

// Server serves the scrape endpoints.
type Server struct {
	scraper  Scraper
	logger   *slog.Logger
	maxLinks int
	group    singleflight.Group
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultMaxLinks sets the cap used when /scrape has no max parameter.
func WithDefaultMaxLinks(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLinks = n
		}
	}
}

// New creates a Server for scraper.
func New(scraper Scraper, opts ...Option) *Server {
	s := &Server{
		scraper:  scraper,
		logger:   slog.Default(),
		maxLinks: DefaultMaxLinks,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/", s.handleIndex)
	r.Get("/scrape", s.handleScrape)
	r.Get("/download", s.handleDownload)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "blotter is online. Visit /scrape to run it.") //nolint:errcheck
}

// scrapeResponse is the body of a successful /scrape.
type scrapeResponse struct {
	Status      string `json:"status"`
	File        string `json:"file"`
	Rows        int    `json:"rows"`
	DownloadURL string `json:"download_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	maxLinks := s.maxLinks
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "max must be a positive integer"})
			return
		}
		maxLinks = n
	}

	// The run outlives any single caller of the shared flight.
	ctx := context.WithoutCancel(r.Context())
	v, err, shared := s.group.Do(strconv.Itoa(maxLinks), func() (any, error) {
		return s.scraper.RunPipeline(ctx, maxLinks)
	})
	if err != nil {
		s.logger.Error("scrape failed", "max", maxLinks, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	summary, _ := v.(service.Summary)
	s.logger.Info("scrape complete", "max", maxLinks, "rows", summary.RowCount, "shared", shared)

	if !service.FileExists(summary.OutputPath) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no data found"})
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Status:      "scraping complete",
		File:        summary.OutputPath,
		Rows:        summary.RowCount,
		DownloadURL: "/download",
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path := s.scraper.OutputPath()
	if !service.FileExists(path) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no file found, run /scrape first"})
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("failed to write response", "error", err)
	}
}
