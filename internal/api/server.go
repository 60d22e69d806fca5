package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/policypulse/policypulse/internal/memory"
	"github.com/policypulse/policypulse/internal/pipeline"
)

// Answerer is the pipeline entrypoint the server exposes over HTTP.
type Answerer interface {
	GenerateAnswer(ctx context.Context, userID, question string) (string, []pipeline.SourceRef, error)
}

type Server struct {
	router *chi.Mux
	port   int
	answer Answerer
	store  memory.Store
	logger *slog.Logger
}

func NewServer(port int, answer Answerer, store memory.Store, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		answer: answer,
		store:  store,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/status", s.status)
	router.Post("/ask", s.ask)
	router.Post("/memory/clear", s.clearMemory)
	router.Post("/memory/view", s.viewMemory)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "policypulse",
		"status":  "ready",
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
