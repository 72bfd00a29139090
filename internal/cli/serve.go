package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paramreg/registry/config"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/internal/handler"
	"github.com/paramreg/registry/internal/middleware"
	"github.com/paramreg/registry/internal/router"
	"github.com/paramreg/registry/pkg/circuit"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer store.Close(context.Background())

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if err := store.Migrate(ctx); err != nil {
		logger.GetLogger().Error("Failed to run database migrations", zap.Error(err))
		return err
	}

	redisClient, limiter := rateLimitStore(cfg)
	defer redisClient.Close()

	svc := newServices(store)
	engine := router.NewRouter(
		handler.NewCategoryHandler(svc.categories),
		handler.NewParameterHandler(svc.parameters),
		handler.NewHealthHandler(store, redisClient),
		limiter,
		cfg,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", cfg.App.Port),
			zap.String("api_prefix", constants.APIPrefix),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.GetLogger().Error("Failed to start server",
			zap.String("port", cfg.App.Port),
			zap.Error(err),
		)
		return err
	case <-quit:
	}

	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// rateLimitStore picks Redis for the rate limiter when it is enabled and
// reachable, and the in-process counter otherwise. A Redis outage after
// startup trips the breaker onto the in-process counter.
func rateLimitStore(cfg *config.Config) (*redis.Client, middleware.WindowCounter) {
	if !cfg.Redis.Enabled {
		return nil, middleware.NewMemoryCounter()
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		logger.GetLogger().Warn("Redis unavailable, rate limiting per process",
			zap.String("address", cfg.RedisAddress()),
			zap.Error(err),
		)
		return nil, middleware.NewMemoryCounter()
	}
	breaker := circuit.NewBreaker("redis-ratelimit", circuit.DefaultConfig(), logger.GetLogger())
	return client, middleware.NewFallbackCounter(client, middleware.NewMemoryCounter(), breaker)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
