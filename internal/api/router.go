package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dotgrid/dotsboxes-go/internal/api/handler"
	"github.com/dotgrid/dotsboxes-go/internal/api/middleware"
	"github.com/dotgrid/dotsboxes-go/internal/services/bot"
	"github.com/dotgrid/dotsboxes-go/internal/services/match"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Orchestrator *match.Orchestrator
	BotService   *bot.Service
	Storage      storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	matchHandler := handler.NewMatchHandler(cfg.Orchestrator, cfg.BotService, cfg.Storage, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Match routes
	api.HandleFunc("/matches", matchHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/matches", matchHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}", matchHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}/join", matchHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/bot", matchHandler.AddBot).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/start", matchHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/cancel", matchHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/moves", matchHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/rematch", matchHandler.Rematch).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/events", matchHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
