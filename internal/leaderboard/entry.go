// Package leaderboard ranks finished sessions by score and time. The ranked
// collection lives behind a Store port, so the same ranker drives the
// in-memory, file and Redis backed modes; the remote-authoritative mode is
// served by Client against the API service in this repo.
package leaderboard

import "sort"

// Entry is one stored, ranked record of a completed session.
type Entry struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	TotalTime int    `json:"totalTime"` // whole seconds
	Timestamp int64  `json:"timestamp"` // creation time, epoch milliseconds
}

// Compare orders entries: score descending, then total time ascending.
// Returns a negative value when a ranks ahead of b, zero when the keys tie.
func Compare(a, b Entry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return a.TotalTime - b.TotalTime
}

// SortEntries sorts in place. The sort is stable so entries equal on both
// keys keep their insertion order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Compare(entries[i], entries[j]) < 0
	})
}

// TopM returns the first m entries of an already sorted list.
func TopM(entries []Entry, m int) []Entry {
	if m < 0 {
		m = 0
	}
	if m > len(entries) {
		m = len(entries)
	}
	return entries[:m]
}

// Submission is the participant record sent to the remote store when a
// session completes.
type Submission struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	LeaderboardName string `json:"leaderboardName"`
	Rating          int    `json:"rating"`
	Outlet          string `json:"outlet"`
	Interested      string `json:"interested"`
	Score           int    `json:"score"`
	TotalTime       int    `json:"totalTime"`
	SessionID       string `json:"sessionId"`
}

// RawRecord is one row of the remote fetch response. Fields are pointers so
// missing values can be told apart from zeros and filtered out client-side.
type RawRecord struct {
	Name      *string `json:"name"`
	Score     *int    `json:"score"`
	TotalTime *int    `json:"total_time"`
	CreatedAt int64   `json:"created_at"`
}

// FilterRecords drops records missing name, score or total_time and maps
// the remainder to entries, preserving order.
func FilterRecords(records []RawRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if r.Name == nil || r.Score == nil || r.TotalTime == nil {
			continue
		}
		entries = append(entries, Entry{
			Name:      *r.Name,
			Score:     *r.Score,
			TotalTime: *r.TotalTime,
			Timestamp: r.CreatedAt,
		})
	}
	return entries
}
