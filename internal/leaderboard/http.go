package leaderboard

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/emilia-tb/sg60-game/pkg/http/errors"
)

// HTTPHandler exposes the two leaderboard endpoints of the remote protocol.
type HTTPHandler struct {
	svc    *Service
	secret string
	logger zerolog.Logger
}

// NewHTTPHandler constructs the leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, secret string, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		secret: secret,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

// record mirrors the wire shape clients filter on.
type record struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	TotalTime int    `json:"total_time"`
	CreatedAt int64  `json:"created_at"`
}

// HandleSubmit accepts a participant submission.
// Route: POST /v1/participants
func (h *HTTPHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.authorized(r) {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidSecret, "missing or invalid shared secret")
		return
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		httperrors.RespondError(w, http.StatusBadRequest, httperrors.ErrCodeInvalidPayload, "malformed submission")
		return
	}
	if sub.Name == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "name is required", "name")
		return
	}
	if sub.SessionID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "sessionId is required", "sessionId")
		return
	}
	if sub.Score < 0 || sub.TotalTime < 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeOutOfRange, "score and totalTime must be non-negative", "score")
		return
	}

	accepted, err := h.svc.SubmitParticipant(r.Context(), sub)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", sub.SessionID).Msg("submission failed")
		httperrors.RespondInternalError(w, "could not record submission")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"accepted": accepted})
}

// HandleGet responds with the current ranked list.
// Route: GET /v1/leaderboard?limit=5
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.svc.Top(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard fetch failed")
		httperrors.RespondInternalError(w, "could not fetch leaderboard")
		return
	}

	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{
			Name:      e.Name,
			Score:     e.Score,
			TotalTime: e.TotalTime,
			CreatedAt: e.Timestamp,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": records})
}

func (h *HTTPHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	provided := r.Header.Get(SecretHeader)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}
