package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/api"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/chat"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/internal/shell/config"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/internal/shell/handler"
	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/health"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/planner"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/storage"
)

// App wires together all dependencies and runs the dashboard shell.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      storage.Store
	redisStore *storage.RedisStore
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Client state store: the browser-storage analog.
	var store storage.Store
	var redisStore *storage.RedisStore
	switch cfg.StateStore {
	case "redis":
		rs, err := storage.NewRedisStore(ctx, storage.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPass,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))
		store = rs
		redisStore = rs
	default:
		store = storage.NewMemoryStore()
	}

	// Session, guard, API client.
	vault := session.NewVault(store, logger)
	guard := session.NewGuard(vault)
	apiClient := api.New(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout}, vault, logger)
	apiClient.OnSessionEvicted(func(ctx context.Context) {
		// The guard notices the empty vault on the next route transition and
		// redirects to /login.
		logger.InfoContext(ctx, "session evicted, next navigation lands on login")
	})

	// Trip planner, hydrated once at startup. Unreadable state is reset and
	// surfaced as a warning rather than swallowed.
	tripPlanner := planner.New(store, logger)
	if err := tripPlanner.Hydrate(ctx); err != nil {
		if errors.Is(err, apperrors.ErrCorruptState) {
			logger.Warn("persisted trip plan was unreadable and has been reset",
				slog.String("error", err.Error()),
			)
		} else {
			return nil, fmt.Errorf("hydrate trip plan: %w", err)
		}
	}

	// Chat panel.
	chatClient := chat.NewClient(apiClient, logger)
	botSession := chat.NewBotSession(apiClient)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("backend", apiClient.Ping)
	if redisStore != nil {
		healthHandler.Register("redis", redisStore.Ping)
	}

	router := handler.NewRouter(handler.Handlers{
		Auth:      handler.NewAuthHandler(apiClient, vault, logger),
		Dashboard: handler.NewDashboardHandler(apiClient, logger),
		Planning:  handler.NewPlanningHandler(tripPlanner, logger),
		Chat:      handler.NewChatHandler(chatClient, botSession, logger),
		Health:    healthHandler,
		Guard:     guard,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		redisStore: redisStore,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.redisStore != nil {
		if err := a.redisStore.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
