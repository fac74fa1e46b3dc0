package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/boardtown/gamearea-go/internal/api/handler"
	"github.com/boardtown/gamearea-go/internal/api/middleware"
	"github.com/boardtown/gamearea-go/internal/services/auth"
	"github.com/boardtown/gamearea-go/internal/sse"
	"github.com/boardtown/gamearea-go/internal/town"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	TownController town.ControllerInterface
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	townHandler := handler.NewTownHandler(cfg.TownController)
	areaHandler := handler.NewAreaHandler(cfg.TownController)
	eventsHandler := handler.NewEventsHandler(cfg.TownController, cfg.HubManager, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Public town listing; a session is attached when present but not required
	optionalAuth := middleware.OptionalAuth(cfg.AuthService)
	api.Handle("/towns", optionalAuth(http.HandlerFunc(townHandler.List))).Methods(http.MethodGet)

	// Town routes (all require auth)
	towns := api.PathPrefix("/towns").Subrouter()
	towns.Use(authMiddleware)
	towns.HandleFunc("", townHandler.Create).Methods(http.MethodPost)
	towns.HandleFunc("/{town_id}", townHandler.Get).Methods(http.MethodGet)
	towns.HandleFunc("/{town_id}", townHandler.Update).Methods(http.MethodPatch)
	towns.HandleFunc("/{town_id}", townHandler.Delete).Methods(http.MethodDelete)
	towns.HandleFunc("/{town_id}/join", townHandler.Join).Methods(http.MethodPost)
	towns.HandleFunc("/{town_id}/leave", townHandler.Leave).Methods(http.MethodPost)
	towns.HandleFunc("/{town_id}/move", townHandler.Move).Methods(http.MethodPost)
	towns.HandleFunc("/{town_id}/chat", townHandler.GetChat).Methods(http.MethodGet)
	towns.HandleFunc("/{town_id}/chat", townHandler.PostChat).Methods(http.MethodPost)

	// Area routes
	towns.HandleFunc("/{town_id}/areas", areaHandler.List).Methods(http.MethodGet)
	towns.HandleFunc("/{town_id}/areas/{area_id}", areaHandler.Get).Methods(http.MethodGet)
	towns.HandleFunc("/{town_id}/areas/{area_id}/history", areaHandler.GetHistory).Methods(http.MethodGet)
	towns.HandleFunc("/{town_id}/areas/{area_id}/command", areaHandler.Command).Methods(http.MethodPost)

	// Event stream
	towns.HandleFunc("/{town_id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
