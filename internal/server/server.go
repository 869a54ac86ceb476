// Package server exposes dependency trees over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/depth/pkg/deps"
	deperrors "github.com/matzehuels/depth/pkg/errors"
	"github.com/matzehuels/depth/pkg/graph"
	depio "github.com/matzehuels/depth/pkg/io"
	"github.com/matzehuels/depth/pkg/render/nodelink"
	"github.com/matzehuels/depth/pkg/render/tree"
)

const (
	DefaultMaxLevels      = 10
	DefaultRequestTimeout = 60 * time.Second
)

// Config configures a Server.
type Config struct {
	Registry       deps.Registry // Source of crate data (required)
	Logger         *log.Logger   // Request logger (default: log.Default())
	MaxLevels      int           // Upper bound for ?levels= (default: 10)
	RequestTimeout time.Duration // Per-request deadline (default: 60s)
}

// Server serves crate dependency trees. Every request runs its own fetch
// into a fresh graph; only the registry (and its cache) is shared.
type Server struct {
	registry  deps.Registry
	logger    *log.Logger
	maxLevels int
	timeout   time.Duration
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.MaxLevels <= 0 {
		cfg.MaxLevels = DefaultMaxLevels
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &Server{
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		maxLevels: cfg.MaxLevels,
		timeout:   cfg.RequestTimeout,
	}
}

// Handler returns the HTTP routes:
//
//	GET /healthz
//	GET /crates/{name}/tree?levels=1&optional=false
//	GET /crates/{name}/graph.dot
//	GET /crates/{name}/graph.json
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	r.Route("/crates/{name}", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/graph.dot", s.handleDOT)
		r.Get("/graph.json", s.handleJSON)
	})
	return r
}

// query is a parsed tree request.
type query struct {
	name     string
	levels   int
	optional bool
}

func (s *Server) parseQuery(r *http.Request) (query, error) {
	q := query{name: chi.URLParam(r, "name"), levels: 1}

	if v := r.URL.Query().Get("levels"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, deperrors.New(deperrors.ErrCodeInvalidInput, "levels must be an integer, got %q", v)
		}
		q.levels = n
	}
	if err := deperrors.ValidateLevels(q.levels); err != nil {
		return q, err
	}
	if q.levels > s.maxLevels {
		return q, deperrors.New(deperrors.ErrCodeInvalidInput, "levels must be at most %d", s.maxLevels)
	}

	if v := r.URL.Query().Get("optional"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, deperrors.New(deperrors.ErrCodeInvalidInput, "optional must be a boolean, got %q", v)
		}
		q.optional = b
	}
	return q, nil
}

// resolve fetches the graph for a request, writing an error response and
// returning ok=false on failure.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (q query, g *graph.Graph, ok bool) {
	q, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return q, nil, false
	}

	g = graph.New()
	f := deps.NewFetcher(s.registry, g, deps.Options{
		Optional: q.optional,
		Logger: func(format string, args ...any) {
			s.logger.Debug(fmt.Sprintf(format, args...), "request_id", middleware.GetReqID(r.Context()))
		},
	})
	pkg, err := f.Fetch(r.Context(), q.name, q.levels+1)
	if err != nil {
		s.writeError(w, r, err)
		return q, nil, false
	}
	if pkg == nil {
		http.Error(w, fmt.Sprintf("crate %q not found", q.name), http.StatusNotFound)
		return q, nil, false
	}
	q.name = pkg.Name
	return q, g, true
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q, g, ok := s.resolve(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Dependencies for package '%s':\n", q.name)
	if err := tree.NewPrinter(w, tree.Options{NoColor: true}).Print(g, q.name, 0, q.levels+1); err != nil {
		s.logger.Warn("write tree", "err", err)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	_, g, ok := s.resolve(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	fmt.Fprint(w, nodelink.ToDOT(g, nodelink.Options{Detailed: true}))
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	q, g, ok := s.resolve(w, r)
	if !ok {
		return
	}
	meta := depio.Meta{RunID: uuid.NewString(), Root: q.name, Levels: q.levels, Optional: q.optional}
	w.Header().Set("Content-Type", "application/json")
	if err := depio.WriteJSON(g, meta, w); err != nil {
		s.logger.Warn("write json", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	http.Error(w, deperrors.UserMessage(err), status)
}

func statusFor(err error) int {
	switch deperrors.GetCode(err) {
	case deperrors.ErrCodeInvalidInput, deperrors.ErrCodeInvalidPackage:
		return http.StatusBadRequest
	case deperrors.ErrCodePackageNotFound:
		return http.StatusNotFound
	case deperrors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
