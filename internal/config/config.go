package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"sg60-sound-game"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres    Postgres
	Redis       Redis
	Game        Game
	Audio       Audio
	Leaderboard Leaderboard
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache configuration for the ranked-list store.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Game groups the fixed per-deployment gameplay settings.
type Game struct {
	QuestionCount   int  `env:"GAME_QUESTION_COUNT" envDefault:"10"`
	CountdownTicks  int  `env:"GAME_COUNTDOWN_TICKS" envDefault:"3"`
	ConsentRequired bool `env:"GAME_CONSENT_REQUIRED" envDefault:"true"`
	FeedbackEnabled bool `env:"GAME_FEEDBACK_ENABLED" envDefault:"true"`
}

// Audio governs playback bounds and the synthesized fallback tone.
type Audio struct {
	PlaybackTimeout time.Duration `env:"AUDIO_PLAYBACK_TIMEOUT" envDefault:"10s"`
	ToneFrequencyHz float64       `env:"AUDIO_TONE_FREQUENCY_HZ" envDefault:"800"`
	ToneDuration    time.Duration `env:"AUDIO_TONE_DURATION" envDefault:"2s"`
}

// Leaderboard governs capacity, display size and remote submission.
type Leaderboard struct {
	Capacity     int    `env:"LEADERBOARD_CAPACITY" envDefault:"50"`
	TopDisplay   int    `env:"LEADERBOARD_TOP_DISPLAY" envDefault:"5"`
	Namespace    string `env:"LEADERBOARD_NAMESPACE" envDefault:"sg60-sound-game"`
	SharedSecret string `env:"LEADERBOARD_SHARED_SECRET"`
	RemoteURL    string `env:"LEADERBOARD_REMOTE_URL"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
