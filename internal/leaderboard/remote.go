package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/emilia-tb/sg60-game/internal/game"
)

// SecretHeader carries the application-level shared secret on submit calls.
const SecretHeader = "X-Api-Secret"

// Client talks to the remote-authoritative leaderboard store. The fetched
// list is ground truth; the client never merges locally, it only filters,
// re-sorts with the shared comparator and takes the display slice.
type Client struct {
	baseURL         string
	secret          string
	leaderboardName string
	http            *http.Client
	logger          zerolog.Logger
}

// ClientOptions configures a remote leaderboard client.
type ClientOptions struct {
	BaseURL         string
	SharedSecret    string
	LeaderboardName string
	HTTPClient      *http.Client
}

// NewClient constructs a remote client.
func NewClient(opts ClientOptions, logger zerolog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:         opts.BaseURL,
		secret:          opts.SharedSecret,
		leaderboardName: opts.LeaderboardName,
		http:            httpClient,
		logger:          logger.With().Str("component", "leaderboard_client").Logger(),
	}
}

// SubmitParticipant posts the finished session record to the remote store.
func (c *Client) SubmitParticipant(ctx context.Context, sub Submission) error {
	if sub.LeaderboardName == "" {
		sub.LeaderboardName = c.leaderboardName
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/participants", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit participant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("submit participant: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// FetchTop retrieves the remote ranked list, filters malformed records and
// returns the top m entries. Any failure degrades to an empty view.
func (c *Client) FetchTop(ctx context.Context, m int) ([]Entry, error) {
	u := c.baseURL + "/v1/leaderboard?limit=" + strconv.Itoa(m) + "&name=" + url.QueryEscape(c.leaderboardName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch leaderboard: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Entries []RawRecord `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}

	entries := FilterRecords(payload.Entries)
	SortEntries(entries)
	return TopM(entries, m), nil
}

// Submit maps a finished session to a participant submission, satisfying
// the session controller's leaderboard port in remote-authoritative mode.
func (c *Client) Submit(ctx context.Context, res game.Result) error {
	sub := Submission{
		Name:      res.Name,
		Score:     res.Score,
		TotalTime: res.TotalSeconds,
		SessionID: res.SessionID.String(),
	}
	// The leaderboard display name stays the in-game name; particulars
	// contribute contact details only.
	if res.Particulars != nil {
		sub.Phone = res.Particulars.Phone
		sub.Email = res.Particulars.Email
	}
	if res.Feedback != nil {
		sub.Rating = res.Feedback.Rating
		sub.Interested = res.Feedback.Interested
		sub.Outlet = res.Feedback.Outlet
	}
	return c.SubmitParticipant(ctx, sub)
}
