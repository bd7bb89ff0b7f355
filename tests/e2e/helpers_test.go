//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/dailystart/messages-backend/internal/adapter/postgres/access"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/favorite"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/goal"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/journal"
	msgrepo "github.com/dailystart/messages-backend/internal/adapter/postgres/message"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/dailystart/messages-backend/internal/adapter/postgres/user"
	authpkg "github.com/dailystart/messages-backend/internal/auth"
	"github.com/dailystart/messages-backend/internal/config"
	"github.com/dailystart/messages-backend/internal/domain"
	authsvc "github.com/dailystart/messages-backend/internal/service/auth"
	favsvc "github.com/dailystart/messages-backend/internal/service/favorite"
	goalsvc "github.com/dailystart/messages-backend/internal/service/goal"
	histsvc "github.com/dailystart/messages-backend/internal/service/history"
	journalsvc "github.com/dailystart/messages-backend/internal/service/journal"
	msgsvc "github.com/dailystart/messages-backend/internal/service/message"
	usersvc "github.com/dailystart/messages-backend/internal/service/user"
	"github.com/dailystart/messages-backend/internal/transport/middleware"
	"github.com/dailystart/messages-backend/internal/transport/rest"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := config.Config{}
	cfg.Server.RateLimitPerMin = 100000
	cfg.Auth = config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		PasswordHashCost: 4,
	}
	cfg.Messages.PopularCategories = 5
	cfg.Messages.HistoryDefaultSize = 100
	cfg.Messages.JournalPageSize = 30
	cfg.CORS = config.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowedHeaders: "Authorization,Content-Type",
		MaxAge:         86400,
	}

	messages := msgrepo.New(pool)
	accessLog := access.New(pool)
	users := userrepo.New(pool)
	favorites := favorite.New(pool)
	journals := journal.New(pool)
	goals := goal.New(pool)

	jwtMgr := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	messageService := msgsvc.NewService(logger, messages, accessLog, cfg.Messages.PopularCategories)
	authService := authsvc.NewService(logger, users, jwtMgr, cfg.Auth)
	userService := usersvc.NewService(logger, users)
	favoriteService := favsvc.NewService(logger, favorites)
	historyService := histsvc.NewService(logger, favorites, cfg.Messages.HistoryDefaultSize)
	journalService := journalsvc.NewService(logger, journals, cfg.Messages.JournalPageSize)
	goalService := goalsvc.NewService(logger, goals)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handlers := rest.Handlers{
		Messages:  rest.NewMessageHandler(messageService, logger),
		Auth:      rest.NewAuthHandler(authService, logger),
		Users:     rest.NewUserHandler(userService, logger),
		Favorites: rest.NewFavoriteHandler(favoriteService, historyService, logger),
		Journal:   rest.NewJournalHandler(journalService, logger),
		Goals:     rest.NewGoalHandler(goalService, logger),
		Health:    rest.NewHealthHandler(pool, "test-version"),
		Root:      rest.NewRootHandler("test-version"),
	}

	router := rest.NewRouter(handlers, authService, limiter, cfg, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// doJSON performs an HTTP request with an optional JSON body and bearer
// token, returning the status code and the decoded JSON response.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result), "response body: %s", raw)
	}
	return resp.StatusCode, result
}

// registerTestUser registers a fresh user and returns the access token.
func registerTestUser(t *testing.T, ts *testServer, username string) string {
	t.Helper()

	status, result := ts.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"username": username,
		"password": "sunrise-pass-1",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register response: %v", result)

	token, ok := result["accessToken"].(string)
	require.True(t, ok, "expected accessToken in %v", result)
	return token
}

// seedMessages inserts n active messages in the given category directly.
func seedMessages(t *testing.T, ts *testServer, category string, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for range n {
		ids = append(ids, testhelper.SeedMessage(t, ts.Pool, func(m *domain.Message) {
			m.Category = category
		}))
	}
	return ids
}
