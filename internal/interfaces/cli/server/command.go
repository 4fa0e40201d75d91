package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/clinicplace/console/internal/infrastructure/cache"
	"github.com/clinicplace/console/internal/infrastructure/config"
	"github.com/clinicplace/console/internal/infrastructure/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/metrics"
	"github.com/clinicplace/console/internal/infrastructure/ratelimit"
	viewtemplate "github.com/clinicplace/console/internal/infrastructure/template"
	httpRouter "github.com/clinicplace/console/internal/interfaces/http"
	"github.com/clinicplace/console/internal/shared/goroutine"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/version"
)

// janitorInterval is how often in-memory sessions and rate limit buckets
// are swept when Redis is disabled.
const janitorInterval = 5 * time.Minute

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the console HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = MapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"version", version.String(),
		"upstream", cfg.Upstream.BaseURL)

	gin.SetMode(cfg.Server.Mode)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limits := ratelimit.PerMinute(cfg.Console.MutationsPerMin)

	var (
		store   cache.SessionStore
		limiter ratelimit.Limiter
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

		store = cache.NewRedisSessionStore(redisClient, cfg.Redis.SessionTTL(), log.Named("sessions"))
		limiter = ratelimit.NewRedisRateLimiter(redisClient, limits)
	} else {
		log.Warnw("redis disabled, console sessions are kept in memory")

		memStore := cache.NewMemorySessionStore(cfg.Redis.SessionTTL())
		localLimiter := ratelimit.NewLocalRateLimiter(limits)
		goroutine.Every(ctx, log, "session-janitor", janitorInterval, func(ctx context.Context) {
			sessions := memStore.Sweep(ctx)
			buckets := localLimiter.Sweep(ctx, janitorInterval)
			if sessions > 0 || buckets > 0 {
				log.Debugw("swept idle state", "sessions", sessions, "rate_buckets", buckets)
			}
		})

		store = memStore
		limiter = localLimiter
	}

	m := metrics.New()
	client := marketplace.NewClient(cfg.Upstream.BaseURL,
		marketplace.WithTimeout(cfg.Upstream.Timeout()),
		marketplace.WithMetrics(m),
		marketplace.WithLogger(log.Named("marketplace")),
	)

	views, err := viewtemplate.NewViewLoader(cfg.Server.ViewsPath, log.Named("views")).Load()
	if err != nil {
		return fmt.Errorf("failed to load views: %w", err)
	}

	router := httpRouter.NewRouter(httpRouter.RouterDeps{
		Config:  cfg,
		Client:  client,
		Store:   store,
		Limiter: limiter,
		Metrics: m,
		Views:   views,
		Logger:  log,
	})
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Infow("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// MapEnvToGinMode maps a deployment environment to a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return gin.ReleaseMode
	case "development", "dev":
		return gin.DebugMode
	case "test", "testing":
		return gin.TestMode
	case "debug":
		return gin.DebugMode
	case "release":
		return gin.ReleaseMode
	default:
		return gin.DebugMode
	}
}
