// Package web serves the wizard over HTTP. Every page request passes the
// same guard the terminal UI uses.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"launchpad/internal/deposit"
	"launchpad/internal/state"
)

type Server struct {
	http.Server
	store    *state.Store
	deposits deposit.Options
	log      *zap.Logger
}

// NewServer checks deposit data posted to the upload stage against deposits.
func NewServer(addr string, store *state.Store, deposits deposit.Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       30 * time.Second,
		},
		store:    store,
		deposits: deposits,
		log:      log,
	}
	s.Handler = s.router()
	return s
}

func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.HandleRoot).Methods(http.MethodGet)
	router.HandleFunc("/api/state", s.HandleState).Methods(http.MethodGet)
	router.HandleFunc("/clients/{role}", s.HandleSetClient).Methods(http.MethodPut)
	router.HandleFunc("/{page}/continue", s.HandleContinue).Methods(http.MethodPost)
	router.HandleFunc("/{page}", s.HandlePage).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	router.Use(s.loggingMiddleware)
	return router
}

func (s *Server) Start() error {
	s.log.Info("starting http server", zap.String("addr", s.Addr))
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	s.log.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
