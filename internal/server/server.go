// Package server exposes dungeon generation over HTTP.
//
// Routes:
//
//	GET /healthz                 liveness probe
//	GET /v1/policies             available split policies
//	GET /v1/dungeon?width=80&... generate and render a dungeon
//
// /v1/dungeon accepts the generation settings as query parameters (width,
// height, depth, seed, policy, min_ratio, max_ratio, padding, min_room,
// corridor, scale, regions, ids, detailed, siblings) and a format of json
// (default), svg, txt, dot or tree. Unset parameters take the server's
// defaults. The seed actually used is returned in the X-Bspgen-Seed header.
// Requests beyond [MaxMapArea], [MaxDepth] or with more leaves than map
// cells are rejected.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bspgen/pkg/config"
	"github.com/matzehuels/bspgen/pkg/observability"
	"github.com/matzehuels/bspgen/pkg/pipeline"
)

// MaxMapArea caps width × height per request.
const MaxMapArea = 1 << 20

// MaxDepth caps the split depth per request. Tree size doubles with every
// level regardless of map size.
const MaxDepth = 16

// RequestTimeout bounds a single request.
const RequestTimeout = 30 * time.Second

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults config.Config
}

// New creates a server. Requests start from defaults and override it with
// their query parameters.
func New(runner *pipeline.Runner, logger *log.Logger, defaults config.Config) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger, defaults: defaults}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/policies", s.handlePolicies)
		r.Get("/dungeon", s.handleDungeon)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// logRequests logs one line per request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}
