package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emilia-tb/sg60-game/internal/leaderboard"
)

// ParticipantRepository persists finished-session submissions and serves
// the ranked list. Idempotency lives at the database: session_id is unique,
// so a retried submit can never produce a second row.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository constructs a participant repository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Insert stores a submission. Returns false when the session was already
// recorded.
func (r *ParticipantRepository) Insert(ctx context.Context, sub leaderboard.Submission) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO participants
			(session_id, leaderboard, name, phone, email, rating, outlet, interested, score, total_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO NOTHING`,
		sub.SessionID, sub.LeaderboardName, sub.Name, sub.Phone, sub.Email,
		sub.Rating, sub.Outlet, sub.Interested, sub.Score, sub.TotalTime,
	)
	if err != nil {
		return false, fmt.Errorf("insert participant: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// TopEntries returns the ranked top limit for a leaderboard using the
// canonical comparator: score descending, total time ascending, then
// submission order.
func (r *ParticipantRepository) TopEntries(ctx context.Context, board string, limit int) ([]leaderboard.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, score, total_time, created_at
		FROM participants
		WHERE leaderboard = $1
		ORDER BY score DESC, total_time ASC, created_at ASC
		LIMIT $2`,
		board, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query ranked list: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var (
			e       leaderboard.Entry
			created time.Time
		)
		if err := rows.Scan(&e.Name, &e.Score, &e.TotalTime, &created); err != nil {
			return nil, fmt.Errorf("scan ranked row: %w", err)
		}
		e.Timestamp = created.UnixMilli()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranked rows: %w", err)
	}
	return entries, nil
}
