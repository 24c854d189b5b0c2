package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/handler"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/middleware"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/sse"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	GameConfig     model.GameConfig
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.GameConfig, cfg.HubManager, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Gameplay routes
	api.HandleFunc("/game/play", gameHandler.Play).Methods(http.MethodPost)
	api.HandleFunc("/game/guess", gameHandler.Guess).Methods(http.MethodPost)

	// Read routes
	api.HandleFunc("/players/{id}", gameHandler.GetPlayer).Methods(http.MethodGet)
	api.HandleFunc("/rounds/{id}", gameHandler.GetRound).Methods(http.MethodGet)
	api.HandleFunc("/rounds/{id}/events", gameHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/archive/{id}", gameHandler.GetArchive).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
