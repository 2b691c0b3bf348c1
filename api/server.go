package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uyouii/automation-impact/analysis"
	"github.com/uyouii/automation-impact/dataset"
	"github.com/uyouii/automation-impact/utils"
	"go.uber.org/zap"
)

// Server exposes analysis results as JSON for a presentation layer.
type Server struct {
	router   *chi.Mux
	cache    *dataset.Cache
	analyzer *analysis.Analyzer
}

func NewServer(cache *dataset.Cache, analyzer *analysis.Analyzer) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		cache:    cache,
		analyzer: analyzer,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/records", s.handleRecords)
		r.Get("/summary", s.handleSummary)
		r.Get("/sectors", s.handleSectors)
		r.Get("/sectors/{sector}/interval", s.handleSectorInterval)
		r.Get("/sectors/{sector}/test", s.handleSectorTest)
		r.Get("/regression", s.handleRegression)
		r.Get("/map", s.handleMap)
		r.Get("/report", s.handleReport)
		r.Post("/reload", s.handleReload)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	logger := utils.GetLogger(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		utils.GetLogger(r.Context()).Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
