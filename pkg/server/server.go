package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flightmesh/pkg/mesh"
	"github.com/matzehuels/flightmesh/pkg/pipeline"
)

// maxImportBytes bounds POST /import bodies.
const maxImportBytes = 8 << 20

// Server routes HTTP requests to an engine.
type Server struct {
	engine *mesh.Engine
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil runner renders without caching; a nil logger
// uses log.Default().
func New(engine *mesh.Engine, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{engine: engine, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/healthz", s.handleHealth)

	r.Route("/points", func(r chi.Router) {
		r.Get("/", s.handleListPoints)
		r.Post("/", s.handleAddPoint)
		r.Delete("/", s.handleClearPoints)
		r.Put("/{id}", s.handleMovePoint)
		r.Delete("/{id}", s.handleRemovePoint)
		r.Delete("/index/{index}", s.handleRemoveAt)
	})

	r.Get("/matrix", s.handleMatrix)
	r.Get("/export", s.handleExport)
	r.Post("/import", s.handleImport)
	r.Get("/graph.dot", s.handleGraph(pipeline.FormatDOT))
	r.Get("/graph.svg", s.handleGraph(pipeline.FormatSVG))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route", map[string]any{"path": r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", map[string]any{"method": r.Method})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
