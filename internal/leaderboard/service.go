package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	ws "github.com/emilia-tb/sg60-game/pkg/http/ws"
)

// ParticipantStore is the durable store behind the API service.
type ParticipantStore interface {
	// Insert stores a submission; returns false when the session was
	// already recorded.
	Insert(ctx context.Context, sub Submission) (bool, error)
	// TopEntries returns the ranked top limit using the canonical
	// comparator (score desc, total time asc, created_at asc).
	TopEntries(ctx context.Context, leaderboard string, limit int) ([]Entry, error)
}

// ServiceOptions configures the server-side leaderboard service.
type ServiceOptions struct {
	Namespace  string
	Capacity   int
	TopDisplay int
}

// Service is the remote-authoritative leaderboard: Postgres is ground
// truth, Redis holds the current ranked list for cheap reads, and the ws
// hub pushes updates to result screens.
type Service struct {
	repo       ParticipantStore
	cache      Store
	hub        *ws.Hub
	logger     zerolog.Logger
	namespace  string
	capacity   int
	topDisplay int
}

// NewService constructs the leaderboard service. cache and hub may be nil;
// the service degrades to repo-only reads and no pushes.
func NewService(repo ParticipantStore, cache Store, hub *ws.Hub, opts ServiceOptions, logger zerolog.Logger) *Service {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = 50
	}
	topDisplay := opts.TopDisplay
	if topDisplay <= 0 {
		topDisplay = 5
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "sg60-sound-game"
	}

	return &Service{
		repo:       repo,
		cache:      cache,
		hub:        hub,
		logger:     logger.With().Str("component", "leaderboard_service").Logger(),
		namespace:  namespace,
		capacity:   capacity,
		topDisplay: topDisplay,
	}
}

// SubmitParticipant records a finished session. Returns false when the
// session was already submitted; a duplicate leaves the ranked list
// untouched.
func (s *Service) SubmitParticipant(ctx context.Context, sub Submission) (bool, error) {
	if sub.LeaderboardName == "" {
		sub.LeaderboardName = s.namespace
	}

	inserted, err := s.repo.Insert(ctx, sub)
	if err != nil {
		metricSubmissions.WithLabelValues("error").Inc()
		return false, fmt.Errorf("insert participant: %w", err)
	}
	if !inserted {
		metricSubmissions.WithLabelValues("duplicate").Inc()
		return false, nil
	}
	metricSubmissions.WithLabelValues("accepted").Inc()

	s.refresh(ctx)
	return true, nil
}

// Top returns the first limit ranked entries, reading the Redis list first
// and falling back to Postgres when the cache is cold or unreachable.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.capacity {
		limit = s.topDisplay
	}
	metricFetches.Inc()

	if s.cache != nil {
		if entries, err := s.cache.Load(ctx); err == nil && len(entries) > 0 {
			return TopM(entries, limit), nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("cache read failed, falling back to postgres")
		}
	}

	entries, err := s.repo.TopEntries(ctx, s.namespace, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch ranked list: %w", err)
	}
	return entries, nil
}

// refresh rebuilds the cached ranked list from Postgres and pushes the
// display slice to connected viewers. Best effort: failures are logged.
func (s *Service) refresh(ctx context.Context) {
	entries, err := s.repo.TopEntries(ctx, s.namespace, s.capacity)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rebuild ranked list failed")
		return
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, entries); err != nil {
			s.logger.Warn().Err(err).Msg("cache ranked list failed")
		}
	}
	s.broadcast(entries)
}

func (s *Service) broadcast(entries []Entry) {
	if s.hub == nil {
		return
	}

	top := TopM(entries, s.topDisplay)
	rows := make([]ws.LeaderboardEntry, len(top))
	for i, e := range top {
		rows[i] = ws.LeaderboardEntry{
			Rank:      i + 1,
			Name:      e.Name,
			Score:     e.Score,
			TotalTime: e.TotalTime,
			CreatedAt: e.Timestamp,
		}
	}

	payload, err := json.Marshal(ws.LeaderboardUpdatePayload{
		Leaderboard: s.namespace,
		Top:         rows,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("marshal leaderboard update failed")
		return
	}

	delivered := s.hub.Broadcast(ws.Message{Type: ws.TypeLeaderboardUpdate, Payload: payload})
	metricBroadcasts.Add(float64(delivered))
}
