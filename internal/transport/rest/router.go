package rest

import (
	"log/slog"
	"net/http"

	"github.com/dailystart/messages-backend/internal/config"
	"github.com/dailystart/messages-backend/internal/transport/middleware"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Messages  *MessageHandler
	Auth      *AuthHandler
	Users     *UserHandler
	Favorites *FavoriteHandler
	Journal   *JournalHandler
	Goals     *GoalHandler
	Health    *HealthHandler
	Root      *RootHandler
}

// NewRouter builds the routing table and wraps it in the shared
// middleware chain. Endpoints under /api/me additionally require an
// authenticated user; everything else is open to anonymous callers.
func NewRouter(
	h Handlers,
	validator middleware.TokenValidator,
	limiter *middleware.RateLimiter,
	cfg config.Config,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Infrastructure and service info.
	mux.HandleFunc("GET /{$}", h.Root.Info)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	// Public message retrieval.
	mux.HandleFunc("GET /api/messages", h.Messages.List)
	mux.HandleFunc("GET /api/messages/random", h.Messages.Random)
	mux.HandleFunc("POST /api/messages/{id}/reaction", h.Messages.React)
	mux.HandleFunc("GET /api/categories", h.Messages.Categories)
	mux.HandleFunc("GET /api/stats", h.Messages.Stats)

	// Accounts.
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// Authenticated user area.
	me := http.NewServeMux()
	me.HandleFunc("GET /api/me", h.Users.Me)
	me.HandleFunc("PUT /api/me", h.Users.UpdateMe)
	me.HandleFunc("GET /api/me/stats", h.Users.MyStats)

	me.HandleFunc("POST /api/me/favorites", h.Favorites.AddFavorite)
	me.HandleFunc("GET /api/me/favorites", h.Favorites.ListFavorites)
	me.HandleFunc("DELETE /api/me/favorites/{id}", h.Favorites.RemoveFavorite)

	me.HandleFunc("POST /api/me/history", h.Favorites.RecordHistory)
	me.HandleFunc("GET /api/me/history", h.Favorites.ListHistory)
	me.HandleFunc("DELETE /api/me/history", h.Favorites.ClearHistory)

	me.HandleFunc("POST /api/me/journal", h.Journal.Create)
	me.HandleFunc("GET /api/me/journal", h.Journal.List)
	me.HandleFunc("GET /api/me/journal/{date}", h.Journal.Get)
	me.HandleFunc("PUT /api/me/journal/{date}", h.Journal.Update)

	me.HandleFunc("POST /api/me/goals", h.Goals.Create)
	me.HandleFunc("GET /api/me/goals", h.Goals.List)
	me.HandleFunc("GET /api/me/goals/{id}", h.Goals.Get)
	me.HandleFunc("PUT /api/me/goals/{id}", h.Goals.Update)
	me.HandleFunc("POST /api/me/goals/{id}/progress", h.Goals.Advance)
	me.HandleFunc("DELETE /api/me/goals/{id}", h.Goals.Delete)

	mux.Handle("/api/me", middleware.RequireAuth(me))
	mux.Handle("/api/me/", middleware.RequireAuth(me))

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Logger(logger),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(validator),
	)

	return chain(mux)
}
