package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/beachwatch/internal/adapter/beachwatch"
	"github.com/couchcryptid/beachwatch/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// siteNameParam mirrors the upstream filter key so URLs can be passed through.
const siteNameParam = "site_name"

var _ sharedobs.ReadinessChecker = (*Server)(nil)

// Server exposes live site lookups plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	fetcher    domain.SiteFetcher
	logger     *slog.Logger
	ready      atomic.Bool
}

// NewServer creates an HTTP server with /sites, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, fetcher domain.SiteFetcher, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
			// Upstream requests may take up to the client timeout.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		fetcher: fetcher,
		logger:  logger,
	}

	r.Get("/sites", s.handleSites)
	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(s))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	names := r.URL.Query()[siteNameParam]

	sites, err := s.fetcher.Fetch(r.Context(), names...)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	s.ready.Store(true)

	sharedobs.WriteJSON(w, http.StatusOK, domain.NewSnapshot(names, sites))
}

func (s *Server) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	var unresolved *domain.UnresolvedSiteError
	if errors.As(err, &unresolved) {
		// The upstream answered, so it is reachable.
		s.ready.Store(true)
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]any{
			"error":      err.Error(),
			"unresolved": unresolved.Names,
		})
		return
	}

	var transportErr *beachwatch.TransportError
	if errors.As(err, &transportErr) {
		s.logger.Warn("upstream request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"status", transportErr.StatusCode,
			"error", err,
		)
		sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	s.logger.Error("upstream response rejected",
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}

// CheckReadiness reports ready once the upstream has answered a fetch. Until
// then it probes the upstream with an unfiltered fetch bounded by ctx.
func (s *Server) CheckReadiness(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	if _, err := s.fetcher.Fetch(ctx); err != nil {
		return fmt.Errorf("beachwatch upstream: %w", err)
	}
	s.ready.Store(true)
	return nil
}
