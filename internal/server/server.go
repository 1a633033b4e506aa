package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/export"
	"github.com/joan-ouma/nutrifit-sub000/internal/handler"
	"github.com/joan-ouma/nutrifit-sub000/internal/middleware"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/recipe"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
	ws "github.com/joan-ouma/nutrifit-sub000/internal/websocket"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	tokens       *auth.TokenIssuer
	authH        *handler.AuthHandler
	profileH     *handler.ProfileHandler
	mealH        *handler.MealHandler
	dailyH       *handler.DailyHandler
	leaderboardH *handler.LeaderboardHandler
	summaryH     *handler.SummaryHandler
	exportH      *handler.ExportHandler
	recipeH      *handler.RecipeHandler
	rateLimiter  *middleware.RateLimiter
	wsOrigins    []string
	logger       *slog.Logger
}

// New wires handlers over trk. exports and suggester may be nil; the routes
// that need them answer 503.
func New(db *sql.DB, trk *tracker.Tracker, tokens *auth.TokenIssuer, exports *export.Store, suggester recipe.Suggester, wsOrigins []string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	trk.Scorer.OnUpdate(func(e model.LeaderboardEntry) {
		hub.Broadcast(ws.NewMessage("leaderboard", "updated", e.UserID, map[string]any{
			"date":  e.Date.String(),
			"score": e.Score,
		}))
	})

	userStore := store.NewUserStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		tokens:       tokens,
		authH:        handler.NewAuthHandler(userStore, tokens, logger.With("component", "auth")),
		profileH:     handler.NewProfileHandler(userStore, logger.With("component", "profile")),
		mealH:        handler.NewMealHandler(trk.Ledger, hub, logger.With("component", "meal")),
		dailyH:       handler.NewDailyHandler(trk.Aggregates, hub, logger.With("component", "daily")),
		leaderboardH: handler.NewLeaderboardHandler(trk.Scorer, logger.With("component", "leaderboard")),
		summaryH:     handler.NewSummaryHandler(trk.Rollup, logger.With("component", "summary")),
		exportH:      handler.NewExportHandler(trk.Ledger, exports, logger.With("component", "export")),
		recipeH:      handler.NewRecipeHandler(suggester, logger.With("component", "recipe")),
		rateLimiter:  middleware.NewRateLimiter(),
		wsOrigins:    wsOrigins,
		logger:       logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))

	// Protected routes, wrapped with RequireAuth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/", authMiddleware(protectedMux))

	httpLogger := s.logger.With("component", "http")
	return middleware.RequestLogger(httpLogger)(middleware.Recoverer(httpLogger)(outerMux))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status":            status,
		"websocket_clients": s.hub.ClientCount(),
		"websocket_users":   s.hub.UserCount(),
		"rate_limit_keys":   s.rateLimiter.Len(),
	})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.ByIPAndPath, authRateLimit, authRateWindow)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/profile", s.profileH.Get)
	mux.HandleFunc("PUT /api/profile", s.profileH.Update)

	// Meal ledger
	mux.HandleFunc("POST /api/meals", s.mealH.Create)
	mux.HandleFunc("GET /api/meals", s.mealH.List)
	mux.HandleFunc("GET /api/meals/{id}", s.mealH.Get)
	mux.HandleFunc("PUT /api/meals/{id}", s.mealH.Update)
	mux.HandleFunc("DELETE /api/meals/{id}", s.mealH.Delete)

	// Daily aggregates
	mux.HandleFunc("GET /api/daily", s.dailyH.Daily)
	mux.HandleFunc("POST /api/water", s.dailyH.AddWater)

	// Leaderboard
	mux.HandleFunc("GET /api/leaderboard/daily", s.leaderboardH.Daily)
	mux.HandleFunc("GET /api/leaderboard/weekly", s.leaderboardH.Weekly)
	mux.HandleFunc("GET /api/leaderboard/rank", s.leaderboardH.Rank)

	// Rollups
	mux.HandleFunc("GET /api/summary/weekly", s.summaryH.Weekly)
	mux.HandleFunc("GET /api/insights", s.summaryH.Insights)

	// Export
	mux.HandleFunc("GET /api/export/meals.csv", s.exportH.DownloadCSV)
	mux.HandleFunc("POST /api/export/meals", s.exportH.Upload)
	mux.HandleFunc("GET /api/export/files/{name}", s.exportH.Download)

	mux.HandleFunc("POST /api/recipes/suggest", s.recipeH.Suggest)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.wsOrigins, s.logger.With("component", "websocket")))
}
