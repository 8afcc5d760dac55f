package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/emilia-tb/sg60-game/internal/config"
	"github.com/emilia-tb/sg60-game/internal/leaderboard"
	ws "github.com/emilia-tb/sg60-game/pkg/http/ws"
)

// WSUpgrader handles WebSocket upgrades for the leaderboard stream.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The game is embedded on a marketing page; origin is enforced
		// upstream at the CDN.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewHTTPServer wires the API routes: health, metrics, the two leaderboard
// calls and the live update stream.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, lbHandler *leaderboard.HTTPHandler, hub *ws.Hub) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Warn().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/participants", lbHandler.HandleSubmit)
	mux.HandleFunc("/v1/leaderboard", lbHandler.HandleGet)
	mux.HandleFunc("/ws/leaderboard", leaderboardStreamHandler(hub, logger))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func leaderboardStreamHandler(hub *ws.Hub, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := WSUpgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		conn := ws.NewConnection(raw, logger)
		id := hub.Register(conn)
		go conn.WritePump()
		conn.ReadPump()
		hub.Unregister(id)
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if pool != nil {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
	}
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
