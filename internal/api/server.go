package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/command"
	"github.com/sagejournal/sage/internal/dispatch"
	"github.com/sagejournal/sage/internal/interpret"
)

// CommandRunner executes a parsed command for an owner. Satisfied by
// processor.Processor.
type CommandRunner interface {
	Run(ctx context.Context, owner uuid.UUID, cmd *command.Command) dispatch.Outcome
}

type Server struct {
	router     *chi.Mux
	port       int
	classifier *interpret.Classifier
	runner     CommandRunner
	threshold  float64
}

func NewServer(port int, apiToken string, classifier *interpret.Classifier, runner CommandRunner, threshold float64) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       port,
		classifier: classifier,
		runner:     runner,
		threshold:  threshold,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/sage/status", s.status)

	router.Route("/api/v1/chat", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/", s.chat)
		r.Post("/preview", s.preview)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// BearerAuthMiddleware guards a route group with a static bearer token.
// An empty configured token disables the check (local development).
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" {
				got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
				if got != token {
					http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"agent":     "sage",
		"rules":     s.classifier.RuleCount(),
		"threshold": s.threshold,
	})
}
