package game

import "time"

// Evaluate produces the immutable response record for one answered question.
// Correctness is exact byte equality against the canonical label: option
// labels carry embedded quoting and localized annotations, so no trimming,
// case folding or other normalization is applied.
func Evaluate(q SoundQuestion, selected string, questionStart, now time.Time) PlayerResponse {
	return PlayerResponse{
		SoundID:        q.ID,
		SelectedAnswer: selected,
		Correct:        selected == q.CorrectAnswer,
		TimeSpentMS:    now.Sub(questionStart).Milliseconds(),
	}
}

// Score counts correct responses.
func Score(responses []PlayerResponse) int {
	score := 0
	for _, r := range responses {
		if r.Correct {
			score++
		}
	}
	return score
}
