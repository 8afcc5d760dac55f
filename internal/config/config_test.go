package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_USER", "sg60")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "sg60")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LEADERBOARD_SHARED_SECRET", "")
	t.Setenv("LEADERBOARD_REMOTE_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sg60-sound-game", cfg.Name)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)

	assert.Equal(t, 10, cfg.Game.QuestionCount)
	assert.Equal(t, 3, cfg.Game.CountdownTicks)
	assert.True(t, cfg.Game.ConsentRequired)
	assert.True(t, cfg.Game.FeedbackEnabled)

	assert.Equal(t, 10*time.Second, cfg.Audio.PlaybackTimeout)
	assert.Equal(t, float64(800), cfg.Audio.ToneFrequencyHz)
	assert.Equal(t, 2*time.Second, cfg.Audio.ToneDuration)

	assert.Equal(t, 50, cfg.Leaderboard.Capacity)
	assert.Equal(t, 5, cfg.Leaderboard.TopDisplay)
	assert.Equal(t, "sg60-sound-game", cfg.Leaderboard.Namespace)

	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GAME_CONSENT_REQUIRED", "false")
	t.Setenv("AUDIO_PLAYBACK_TIMEOUT", "5s")
	t.Setenv("LEADERBOARD_CAPACITY", "100")
	t.Setenv("LEADERBOARD_NAMESPACE", "sg60-preview")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.False(t, cfg.Game.ConsentRequired)
	assert.Equal(t, 5*time.Second, cfg.Audio.PlaybackTimeout)
	assert.Equal(t, 100, cfg.Leaderboard.Capacity)
	assert.Equal(t, "sg60-preview", cfg.Leaderboard.Namespace)
}

func TestLoadMissingRequiredFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PG_HOST", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}
