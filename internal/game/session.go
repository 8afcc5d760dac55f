package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Phase enumerates the screens of the card sequence.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseNameEntry
	PhaseCountdown
	PhaseQuestion
	PhaseParticulars
	PhaseFeedback
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhaseNameEntry:
		return "name_entry"
	case PhaseCountdown:
		return "countdown"
	case PhaseQuestion:
		return "question"
	case PhaseParticulars:
		return "particulars"
	case PhaseFeedback:
		return "feedback"
	case PhaseResults:
		return "results"
	default:
		return "unknown"
	}
}

// Submitter is the leaderboard port invoked once per completed session. The
// local ranker and the remote participant client both satisfy it.
type Submitter interface {
	Submit(ctx context.Context, res Result) error
}

// PlaybackHandle is the controller's view of one question's audio playback.
type PlaybackHandle interface {
	// PressPlay starts audible playback; a no-op unless the asset is
	// ready.
	PressPlay() bool
	// Done closes when the play-complete signal has fired at least once
	// (natural end, forced timeout, or fallback completion).
	Done() <-chan struct{}
	// Cancel discards any in-flight load or playback.
	Cancel()
}

// AudioStarter begins loading a question's sound asset.
type AudioStarter interface {
	Start(ctx context.Context, audioURL string) PlaybackHandle
}

// Options configures a Controller. Zero-value fields fall back to the
// canonical deployment defaults.
type Options struct {
	Questions       []SoundQuestion
	CountdownTicks  int
	ConsentRequired bool
	FeedbackEnabled bool
	Clock           Clock
	Scheduler       Scheduler
	Audio           AudioStarter
	Submitter       Submitter
}

// Controller is the total finite-state machine sequencing the quiz screens.
// Every event method is a no-op when received in a phase that cannot handle
// it, so the machine can never enter an undefined state. Methods are safe
// for use from timer callbacks.
type Controller struct {
	mu     sync.Mutex
	logger zerolog.Logger

	questions       []SoundQuestion
	ticks           int
	consentRequired bool
	feedbackEnabled bool
	clock           Clock
	sched           Scheduler
	audio           AudioStarter
	submitter       Submitter

	phase     Phase
	session   Session
	countdown int
	playback  PlaybackHandle
	submitted bool

	// gen is bumped on every phase exit; pending callbacks capture the
	// generation they were scheduled under and bail out if it has moved on.
	gen     uint64
	pending []CancelFunc
}

// NewController builds a controller in the Welcome phase.
func NewController(opts Options, logger zerolog.Logger) *Controller {
	questions := opts.Questions
	if len(questions) == 0 {
		questions = Sounds()
	}
	ticks := opts.CountdownTicks
	if ticks <= 0 {
		ticks = 3
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = SystemScheduler()
	}

	return &Controller{
		logger:          logger.With().Str("component", "session").Logger(),
		questions:       questions,
		ticks:           ticks,
		consentRequired: opts.ConsentRequired,
		feedbackEnabled: opts.FeedbackEnabled,
		clock:           clock,
		sched:           sched,
		audio:           opts.Audio,
		submitter:       opts.Submitter,
		phase:           PhaseWelcome,
	}
}

// Phase returns the current screen.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Snapshot returns a copy of the session for display purposes.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.session
	snap.Responses = append([]PlayerResponse(nil), c.session.Responses...)
	return snap
}

// Countdown returns the current tick value; 0 means "Go".
func (c *Controller) Countdown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown
}

// CurrentQuestion returns the active question and its zero-based index.
func (c *Controller) CurrentQuestion() (SoundQuestion, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseQuestion {
		return SoundQuestion{}, 0, false
	}
	i := len(c.session.Responses)
	return c.questions[i], i, true
}

// AnswerReady reports whether the current question's answer options should
// be selectable: true once playback has fired its play-complete signal, or
// immediately when no audio engine is attached.
func (c *Controller) AnswerReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseQuestion {
		return false
	}
	if c.playback == nil {
		return true
	}
	select {
	case <-c.playback.Done():
		return true
	default:
		return false
	}
}

// PlaySound presses the play button for the current question's sound.
func (c *Controller) PlaySound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseQuestion || c.playback == nil {
		return false
	}
	return c.playback.PressPlay()
}

// Playback exposes the current question's playback handle for UI layers
// that await completion. Nil outside the question phase or when no audio
// engine is attached.
func (c *Controller) Playback() PlaybackHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseQuestion {
		return nil
	}
	return c.playback
}

// ElapsedSeconds returns whole seconds since the game started, for the
// on-screen timer. Zero before the countdown completes.
func (c *Controller) ElapsedSeconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.GameStart.IsZero() {
		return 0
	}
	return int(c.clock.Now().Sub(c.session.GameStart) / time.Second)
}

// Start advances Welcome to NameEntry.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseWelcome {
		return false
	}
	c.exitPhaseLocked()
	c.phase = PhaseNameEntry
	return true
}

// SubmitName records the player name and begins the countdown. The name must
// be non-empty after trimming; when consent gating is enabled the consent
// box must be ticked. Invalid input leaves the machine on NameEntry.
func (c *Controller) SubmitName(name string, consentGiven bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseNameEntry {
		return false
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	if c.consentRequired && !consentGiven {
		return false
	}

	c.exitPhaseLocked()
	c.session.ID = uuid.New()
	c.session.PlayerName = trimmed
	c.phase = PhaseCountdown
	c.countdown = c.ticks
	c.scheduleTickLocked()
	return true
}

func (c *Controller) scheduleTickLocked() {
	gen := c.gen
	cancel := c.sched.AfterFunc(time.Second, func() { c.tick(gen) })
	c.pending = append(c.pending, cancel)
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.phase != PhaseCountdown {
		return
	}
	if c.countdown > 0 {
		c.countdown--
		c.scheduleTickLocked()
		return
	}
	// "Go" has been shown for one second; the game begins now.
	c.exitPhaseLocked()
	now := c.clock.Now()
	c.session.GameStart = now
	c.enterQuestionLocked(now)
}

func (c *Controller) enterQuestionLocked(now time.Time) {
	c.phase = PhaseQuestion
	c.session.QuestionStart = now
	if c.audio != nil {
		q := c.questions[len(c.session.Responses)]
		c.playback = c.audio.Start(context.Background(), q.AudioURL)
	}
}

// Respond records the selected label for the current question, then either
// advances to the next question or, after the last one, closes the game time
// and moves to Particulars. A second respond for the same index is
// impossible: recording the answer advances the machine out of Question(i).
func (c *Controller) Respond(selected string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseQuestion {
		return false
	}

	i := len(c.session.Responses)
	q := c.questions[i]
	now := c.clock.Now()
	c.session.Responses = append(c.session.Responses, Evaluate(q, selected, c.session.QuestionStart, now))

	c.exitPhaseLocked()
	if i+1 < len(c.questions) {
		c.enterQuestionLocked(now)
		return true
	}
	c.session.TotalGameTime = now.Sub(c.session.GameStart)
	c.phase = PhaseParticulars
	return true
}

// SubmitParticulars stores the contact details once all required fields are
// non-empty, then advances to Feedback (or straight to Results when the
// feedback step is disabled for this deployment).
func (c *Controller) SubmitParticulars(p Particulars) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseParticulars {
		return false
	}
	p.FullName = strings.TrimSpace(p.FullName)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	if p.FullName == "" || p.Phone == "" || p.Email == "" {
		return false
	}

	c.exitPhaseLocked()
	c.session.Particulars = &p
	if c.feedbackEnabled {
		c.phase = PhaseFeedback
		return true
	}
	c.finishLocked()
	return true
}

// CompleteFeedback stores the rating and hearing-test interest and advances
// to Results. An outlet is required only when the interest answer is yes.
func (c *Controller) CompleteFeedback(rating int, interested, outlet string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseFeedback {
		return false
	}
	if rating < 1 {
		return false
	}
	if interested != InterestYes && interested != InterestNo {
		return false
	}
	if interested == InterestYes && strings.TrimSpace(outlet) == "" {
		return false
	}

	c.exitPhaseLocked()
	c.session.Feedback = &Feedback{Rating: rating, Interested: interested, Outlet: outlet}
	c.finishLocked()
	return true
}

// Retake resets the session from any phase and returns to Welcome. Persisted
// leaderboard data is untouched; the controller does not own the store.
func (c *Controller) Retake() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitPhaseLocked()
	c.session.reset()
	c.countdown = 0
	c.submitted = false
	c.phase = PhaseWelcome
	return true
}

// finishLocked enters Results and hands the finished session to the
// leaderboard port at most once. Submission runs off the event path;
// failures are logged and never block the results screen.
func (c *Controller) finishLocked() {
	c.phase = PhaseResults
	if c.submitted || c.submitter == nil {
		return
	}
	c.submitted = true

	res := Result{
		SessionID:    c.session.ID,
		Name:         c.session.PlayerName,
		Score:        c.session.Score(),
		TotalSeconds: c.session.TotalSeconds(),
		Responses:    append([]PlayerResponse(nil), c.session.Responses...),
		Particulars:  c.session.Particulars,
		Feedback:     c.session.Feedback,
	}
	submitter := c.submitter
	logger := c.logger
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := submitter.Submit(ctx, res); err != nil {
			logger.Warn().Err(err).Str("session_id", res.SessionID.String()).Msg("leaderboard submission failed")
		}
	}()
}

// exitPhaseLocked cancels everything owned by the phase being left so no
// late timer or audio callback can mutate a successor state.
func (c *Controller) exitPhaseLocked() {
	c.gen++
	for _, cancel := range c.pending {
		cancel()
	}
	c.pending = nil
	if c.playback != nil {
		c.playback.Cancel()
		c.playback = nil
	}
}
