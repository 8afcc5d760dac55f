package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisStore keeps the ranked list as a JSON blob under a namespaced key.
// The API service uses it as the hot read path in front of Postgres.
type RedisStore struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

func NewRedisStore(client *redis.Client, namespace string, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("sg60:lb:%s", namespace),
		logger: logger.With().Str("component", "leaderboard_redis").Logger(),
	}
}

func (s *RedisStore) Load(ctx context.Context) ([]Entry, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("malformed leaderboard payload, treating as empty")
		return nil, nil
	}
	return entries, nil
}

func (s *RedisStore) Save(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}
