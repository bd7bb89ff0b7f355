package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/access"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/favorite"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/goal"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/journal"
	msgrepo "github.com/dailystart/messages-backend/internal/adapter/postgres/message"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/user"
	"github.com/dailystart/messages-backend/internal/auth"
	"github.com/dailystart/messages-backend/internal/config"
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

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and the HTTP router, then
// serves until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(pool); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	// Repositories.
	messages := msgrepo.New(pool)
	accessLog := access.New(pool)
	users := user.New(pool)
	favorites := favorite.New(pool)
	journals := journal.New(pool)
	goals := goal.New(pool)

	// Services.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	messageService := msgsvc.NewService(logger, messages, accessLog, cfg.Messages.PopularCategories)
	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, users)
	favoriteService := favsvc.NewService(logger, favorites)
	historyService := histsvc.NewService(logger, favorites, cfg.Messages.HistoryDefaultSize)
	journalService := journalsvc.NewService(logger, journals, cfg.Messages.JournalPageSize)
	goalService := goalsvc.NewService(logger, goals)

	// Transport.
	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handlers := rest.Handlers{
		Messages:  rest.NewMessageHandler(messageService, logger),
		Auth:      rest.NewAuthHandler(authService, logger),
		Users:     rest.NewUserHandler(userService, logger),
		Favorites: rest.NewFavoriteHandler(favoriteService, historyService, logger),
		Journal:   rest.NewJournalHandler(journalService, logger),
		Goals:     rest.NewGoalHandler(goalService, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Root:      rest.NewRootHandler(Version),
	}

	router := rest.NewRouter(handlers, authService, limiter, *cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped cleanly")
	return nil
}
