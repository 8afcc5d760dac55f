package game

import (
	"time"

	"github.com/google/uuid"
)

// SoundQuestion is one entry in the fixed quiz sequence. Questions are
// immutable and loaded once per deployment.
type SoundQuestion struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	AudioURL      string `json:"audio_url"`
	CorrectAnswer string `json:"correct_answer"`
}

// PlayerResponse records one answer to one question. Once appended to a
// session it is never mutated or removed.
type PlayerResponse struct {
	SoundID        int    `json:"sound_id"`
	SelectedAnswer string `json:"selected_answer"`
	Correct        bool   `json:"correct"`
	TimeSpentMS    int64  `json:"time_spent_ms"`
}

// Particulars holds the contact details captured before the results screen.
// The core treats them as opaque beyond required-field checks.
type Particulars struct {
	FullName string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Interest answers for the hearing-test question on the feedback screen.
const (
	InterestYes = "yes"
	InterestNo  = "no"
)

// Feedback captures the post-game rating and hearing-test interest.
type Feedback struct {
	Rating     int    `json:"rating"`
	Interested string `json:"interested"`
	Outlet     string `json:"outlet,omitempty"`
}

// Session is one player's run through the card sequence. It is created at
// name entry, mutated only by the controller, and reset wholesale on retake.
type Session struct {
	ID            uuid.UUID
	PlayerName    string
	Responses     []PlayerResponse
	GameStart     time.Time
	QuestionStart time.Time
	TotalGameTime time.Duration
	Particulars   *Particulars
	Feedback      *Feedback
}

// Score derives the number of correct responses. Never stored redundantly.
func (s *Session) Score() int {
	return Score(s.Responses)
}

// TotalSeconds returns the completed game time in whole seconds.
func (s *Session) TotalSeconds() int {
	return int(s.TotalGameTime / time.Second)
}

func (s *Session) reset() {
	*s = Session{}
}

// Result is the finished-session payload handed to the leaderboard port on
// entering the results screen.
type Result struct {
	SessionID    uuid.UUID
	Name         string
	Score        int
	TotalSeconds int
	Responses    []PlayerResponse
	Particulars  *Particulars
	Feedback     *Feedback
}
