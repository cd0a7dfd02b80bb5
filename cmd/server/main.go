package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/config"
	"github.com/reviewpulse/reviewpulse/internal/database"
	"github.com/reviewpulse/reviewpulse/internal/logging"
	"github.com/reviewpulse/reviewpulse/internal/ratelimit"
	"github.com/reviewpulse/reviewpulse/internal/redis"
	"github.com/reviewpulse/reviewpulse/internal/sentiment"
	"github.com/reviewpulse/reviewpulse/internal/server"
)

const evictionInterval = 1 * time.Minute

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

// setupLimiter picks the submission limiter backend: Redis when configured
// (shared state across instances), an in-process sliding window otherwise.
// The returned stop function tears down the in-process eviction timer.
func setupLimiter(cfg *config.Config, redisClient *goredis.Client, clock clockwork.Clock) (ratelimit.Limiter, func()) {
	if redisClient != nil {
		return redis.NewSlidingWindow(redisClient, clock, cfg.RateLimit, cfg.RateWindow), func() {}
	}

	limiter := ratelimit.NewSlidingWindow(cfg.RateLimit, cfg.RateWindow, clock)
	stop := limiter.StartEvictionTimer(evictionInterval)
	return limiter, stop
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()
	}

	limiter, stopEviction := setupLimiter(cfg, redisClient, clock)
	defer stopEviction()

	classifier := sentiment.NewDefaultClassifier(cfg.OpenAIAPIKey, cfg.HFAccessToken, &http.Client{Timeout: 30 * time.Second})

	reviewRepo := database.NewReviewRepo(pool)
	appSvc := app.NewService(reviewRepo, limiter, classifier, clock)

	// Pass nil explicitly to avoid a typed-nil interface when Redis is absent.
	var (
		srv    *server.Server
		srvErr error
	)
	if redisClient != nil {
		srv, srvErr = server.NewServer(cfg, appSvc, pool, redisClient)
	} else {
		srv, srvErr = server.NewServer(cfg, appSvc, pool, nil)
	}
	if srvErr != nil {
		slog.Error("Failed to create server", "error", srvErr)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
