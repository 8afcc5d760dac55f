package ws

import "encoding/json"

// MessageType constants for the leaderboard stream protocol.
const (
	// Server -> Client
	TypeLeaderboardUpdate = "leaderboard_update"
	TypeError             = "error"
	TypePong              = "pong"

	// Client -> Server
	TypePing = "ping"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// LeaderboardUpdatePayload is pushed to every viewer whenever a submission
// changes the ranked list.
type LeaderboardUpdatePayload struct {
	Leaderboard string             `json:"leaderboard"`
	Top         []LeaderboardEntry `json:"top"`
}

// LeaderboardEntry is one ranked row as shown on the results screen.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	TotalTime int    `json:"total_time"`
	CreatedAt int64  `json:"created_at"`
}
