package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/ports/driving"
)

// Server hosts the HTTP API over a Documents service.
type Server struct {
	docs      driving.Documents
	log       *zap.Logger
	staticDir string
	mux       *http.ServeMux
}

// New wires the routes. staticDir is served on the catch-all GET route
// when non-empty.
func New(docs driving.Documents, log *zap.Logger, staticDir string) *Server {
	s := &Server{docs: docs, log: log, staticDir: staticDir}

	mux := http.NewServeMux()
	mux.HandleFunc("/repo-structure", s.handleRepoStructure)
	mux.HandleFunc("/full-structure", s.handleFullStructure)
	mux.HandleFunc("/generate-pdf", s.handleGeneratePDF)
	mux.HandleFunc("/healthz", s.handleHealth)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}
	s.mux = mux

	return s
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
