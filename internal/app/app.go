package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/emilia-tb/sg60-game/internal/config"
	"github.com/emilia-tb/sg60-game/internal/db/repository"
	"github.com/emilia-tb/sg60-game/internal/leaderboard"
	"github.com/emilia-tb/sg60-game/internal/logging"
	"github.com/emilia-tb/sg60-game/internal/server"
	ws "github.com/emilia-tb/sg60-game/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	participantRepo := repository.NewParticipantRepository(pool)
	cache := leaderboard.NewRedisStore(redisClient, cfg.Leaderboard.Namespace, logger)
	hub := ws.NewHub(logger)

	lbSvc := leaderboard.NewService(participantRepo, cache, hub, leaderboard.ServiceOptions{
		Namespace:  cfg.Leaderboard.Namespace,
		Capacity:   cfg.Leaderboard.Capacity,
		TopDisplay: cfg.Leaderboard.TopDisplay,
	}, logger)

	lbHandler := leaderboard.NewHTTPHandler(lbSvc, cfg.Leaderboard.SharedSecret, logger)
	httpSrv := server.NewHTTPServer(cfg, logger, pool, redisClient, lbHandler, hub)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   httpSrv,
	}, nil
}

// Run serves HTTP until the context is cancelled or a signal arrives, then
// shuts down gracefully within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn().Err(err).Msg("http shutdown incomplete")
	}
	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("redis close failed")
	}
	return nil
}
