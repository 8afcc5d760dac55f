package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 9, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeTask struct {
	fn       func()
	canceled bool
}

type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		task.canceled = true
		s.mu.Unlock()
	}
}

// fire runs the oldest pending task, canceled or not, mimicking a timer
// that already went off.
func (s *fakeScheduler) fire() bool {
	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		return false
	}
	task := s.tasks[0]
	s.tasks = s.tasks[1:]
	s.mu.Unlock()
	task.fn()
	return true
}

func (s *fakeScheduler) fireAll() {
	for s.fire() {
	}
}

type fakePlayback struct {
	done     chan struct{}
	canceled bool
}

func (p *fakePlayback) PressPlay() bool      { return true }
func (p *fakePlayback) Done() <-chan struct{} { return p.done }
func (p *fakePlayback) Cancel()              { p.canceled = true }

type fakeAudio struct {
	mu      sync.Mutex
	started []string
	handles []*fakePlayback
}

func (a *fakeAudio) Start(ctx context.Context, uri string) PlaybackHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	h := &fakePlayback{done: make(chan struct{})}
	close(h.done)
	a.started = append(a.started, uri)
	a.handles = append(a.handles, h)
	return h
}

type captureSubmitter struct {
	mu      sync.Mutex
	results []Result
	done    chan struct{}
}

func newCaptureSubmitter() *captureSubmitter {
	return &captureSubmitter{done: make(chan struct{}, 8)}
}

func (s *captureSubmitter) Submit(ctx context.Context, res Result) error {
	s.mu.Lock()
	s.results = append(s.results, res)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func (s *captureSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

func newTestController(t *testing.T, opts Options) (*Controller, *fakeClock, *fakeScheduler) {
	t.Helper()
	clock := newFakeClock()
	sched := &fakeScheduler{}
	opts.Clock = clock
	opts.Scheduler = sched
	ctrl := NewController(opts, zerolog.Nop())
	return ctrl, clock, sched
}

// runToQuestions advances a fresh controller through welcome, name entry
// and the countdown.
func runToQuestions(t *testing.T, ctrl *Controller, sched *fakeScheduler) {
	t.Helper()
	require.True(t, ctrl.Start())
	require.True(t, ctrl.SubmitName("Alice", true))
	require.Equal(t, PhaseCountdown, ctrl.Phase())
	sched.fireAll()
	require.Equal(t, PhaseQuestion, ctrl.Phase())
}

func TestCountdownSequence(t *testing.T) {
	ctrl, _, sched := newTestController(t, Options{})
	require.True(t, ctrl.Start())
	require.True(t, ctrl.SubmitName("Alice", true))

	assert.Equal(t, 3, ctrl.Countdown())
	sched.fire()
	assert.Equal(t, 2, ctrl.Countdown())
	sched.fire()
	assert.Equal(t, 1, ctrl.Countdown())
	sched.fire()
	assert.Equal(t, 0, ctrl.Countdown(), `0 renders as "Go"`)
	assert.Equal(t, PhaseCountdown, ctrl.Phase())
	sched.fire()
	assert.Equal(t, PhaseQuestion, ctrl.Phase())

	snap := ctrl.Snapshot()
	assert.False(t, snap.GameStart.IsZero())
	assert.Equal(t, snap.GameStart, snap.QuestionStart)
}

func TestNameEntryValidation(t *testing.T) {
	ctrl, _, _ := newTestController(t, Options{ConsentRequired: true})
	require.True(t, ctrl.Start())

	assert.False(t, ctrl.SubmitName("   ", true), "blank name blocks")
	assert.False(t, ctrl.SubmitName("Alice", false), "missing consent blocks")
	assert.Equal(t, PhaseNameEntry, ctrl.Phase())

	assert.True(t, ctrl.SubmitName("  Alice  ", true))
	assert.Equal(t, "Alice", ctrl.Snapshot().PlayerName)
}

func TestConsentOptionalWhenDisabled(t *testing.T) {
	ctrl, _, _ := newTestController(t, Options{ConsentRequired: false})
	require.True(t, ctrl.Start())
	assert.True(t, ctrl.SubmitName("Bob", false))
}

func TestFullRunScoresAndTimes(t *testing.T) {
	questions := Sounds()
	sub := newCaptureSubmitter()
	ctrl, clock, sched := newTestController(t, Options{
		FeedbackEnabled: true,
		Submitter:       sub,
	})
	runToQuestions(t, ctrl, sched)

	pattern := []bool{true, true, false, true, true, true, false, true, true, true}
	for i, correct := range pattern {
		q, idx, ok := ctrl.CurrentQuestion()
		require.True(t, ok)
		require.Equal(t, i, idx)
		require.Equal(t, i, len(ctrl.Snapshot().Responses), "responses track the question index")

		clock.advance(4 * time.Second)
		answer := q.CorrectAnswer
		if !correct {
			answer = "Wet Market"
			if q.CorrectAnswer == "Wet Market" {
				answer = "Mahjong"
			}
		}
		require.True(t, ctrl.Respond(answer))
	}

	assert.Equal(t, PhaseParticulars, ctrl.Phase())
	snap := ctrl.Snapshot()
	assert.Len(t, snap.Responses, len(questions))
	assert.Equal(t, 8, snap.Score())
	assert.Equal(t, 40*time.Second, snap.TotalGameTime)
	for _, r := range snap.Responses {
		assert.Equal(t, int64(4000), r.TimeSpentMS)
	}

	require.True(t, ctrl.SubmitParticulars(Particulars{FullName: "Alice Tan", Phone: "91234567", Email: "alice@example.com"}))
	assert.Equal(t, PhaseFeedback, ctrl.Phase())
	require.True(t, ctrl.CompleteFeedback(5, InterestYes, "Tampines"))
	assert.Equal(t, PhaseResults, ctrl.Phase())

	select {
	case <-sub.done:
	case <-time.After(time.Second):
		t.Fatal("submission never arrived")
	}
	require.Equal(t, 1, sub.count())
	res := sub.results[0]
	assert.Equal(t, "Alice", res.Name)
	assert.Equal(t, 8, res.Score)
	assert.Equal(t, 40, res.TotalSeconds)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", res.SessionID.String())
}

func TestRespondRejectedOutsideQuestionPhase(t *testing.T) {
	ctrl, _, _ := newTestController(t, Options{})
	assert.False(t, ctrl.Respond("Mahjong"))

	require.True(t, ctrl.Start())
	assert.False(t, ctrl.Respond("Mahjong"))
	assert.Empty(t, ctrl.Snapshot().Responses)
}

func TestParticularsRequireAllFields(t *testing.T) {
	ctrl, _, sched := newTestController(t, Options{})
	runToQuestions(t, ctrl, sched)
	for range Sounds() {
		require.True(t, ctrl.Respond("Mahjong"))
	}
	require.Equal(t, PhaseParticulars, ctrl.Phase())

	assert.False(t, ctrl.SubmitParticulars(Particulars{FullName: "A", Phone: "", Email: "a@b.c"}))
	assert.False(t, ctrl.SubmitParticulars(Particulars{FullName: " ", Phone: "9", Email: "a@b.c"}))
	assert.Equal(t, PhaseParticulars, ctrl.Phase())
	assert.True(t, ctrl.SubmitParticulars(Particulars{FullName: "A", Phone: "9", Email: "a@b.c"}))
}

func TestFeedbackGates(t *testing.T) {
	ctrl, _, sched := newTestController(t, Options{FeedbackEnabled: true})
	runToQuestions(t, ctrl, sched)
	for range Sounds() {
		require.True(t, ctrl.Respond("Mahjong"))
	}
	require.True(t, ctrl.SubmitParticulars(Particulars{FullName: "A", Phone: "9", Email: "a@b.c"}))
	require.Equal(t, PhaseFeedback, ctrl.Phase())

	assert.False(t, ctrl.CompleteFeedback(0, InterestNo, ""), "unrated blocks")
	assert.False(t, ctrl.CompleteFeedback(4, "maybe", ""), "interest answer required")
	assert.False(t, ctrl.CompleteFeedback(4, InterestYes, ""), "outlet required when interested")
	assert.True(t, ctrl.CompleteFeedback(4, InterestNo, ""))
	assert.Equal(t, PhaseResults, ctrl.Phase())
}

func TestFeedbackStepSkippedWhenDisabled(t *testing.T) {
	ctrl, _, sched := newTestController(t, Options{FeedbackEnabled: false})
	runToQuestions(t, ctrl, sched)
	for range Sounds() {
		require.True(t, ctrl.Respond("Mahjong"))
	}
	require.True(t, ctrl.SubmitParticulars(Particulars{FullName: "A", Phone: "9", Email: "a@b.c"}))
	assert.Equal(t, PhaseResults, ctrl.Phase())
}

func TestRetakeResetsSessionFromAnyPhase(t *testing.T) {
	ctrl, _, sched := newTestController(t, Options{})
	runToQuestions(t, ctrl, sched)
	require.True(t, ctrl.Respond("Mahjong"))

	require.True(t, ctrl.Retake())
	assert.Equal(t, PhaseWelcome, ctrl.Phase())

	snap := ctrl.Snapshot()
	assert.Empty(t, snap.Responses)
	assert.Empty(t, snap.PlayerName)
	assert.True(t, snap.GameStart.IsZero())
	assert.True(t, snap.QuestionStart.IsZero())
	assert.Zero(t, snap.TotalGameTime)
}

func TestLateCountdownTickIgnoredAfterRetake(t *testing.T) {
	ctrl, _, sched := newTestController(t, Options{})
	require.True(t, ctrl.Start())
	require.True(t, ctrl.SubmitName("Alice", true))
	require.Equal(t, PhaseCountdown, ctrl.Phase())

	require.True(t, ctrl.Retake())
	// The timer already fired before cancellation took hold; the stale
	// generation must keep it from mutating the fresh session.
	sched.fireAll()
	assert.Equal(t, PhaseWelcome, ctrl.Phase())
	assert.True(t, ctrl.Snapshot().GameStart.IsZero())
}

func TestAudioStartedPerQuestionAndCancelledOnAdvance(t *testing.T) {
	starter := &fakeAudio{}
	ctrl, _, sched := newTestController(t, Options{Audio: starter})
	runToQuestions(t, ctrl, sched)

	require.True(t, ctrl.AnswerReady())
	require.True(t, ctrl.Respond("Mahjong"))

	starter.mu.Lock()
	defer starter.mu.Unlock()
	require.Len(t, starter.started, 2, "next question preloads immediately")
	assert.Equal(t, Sounds()[0].AudioURL, starter.started[0])
	assert.Equal(t, Sounds()[1].AudioURL, starter.started[1])
	assert.True(t, starter.handles[0].canceled, "previous playback cancelled on advance")
	assert.False(t, starter.handles[1].canceled)
}

func TestSubmitOncePerSession(t *testing.T) {
	sub := newCaptureSubmitter()
	ctrl, _, sched := newTestController(t, Options{Submitter: sub})
	runToQuestions(t, ctrl, sched)
	for range Sounds() {
		require.True(t, ctrl.Respond("Mahjong"))
	}
	require.True(t, ctrl.SubmitParticulars(Particulars{FullName: "A", Phone: "9", Email: "a@b.c"}))
	require.Equal(t, PhaseResults, ctrl.Phase())

	<-sub.done
	assert.Equal(t, 1, sub.count())

	// A retaken and replayed session submits again with a new identifier.
	first := sub.results[0].SessionID
	require.True(t, ctrl.Retake())
	runToQuestions(t, ctrl, sched)
	for range Sounds() {
		require.True(t, ctrl.Respond("Mahjong"))
	}
	require.True(t, ctrl.SubmitParticulars(Particulars{FullName: "A", Phone: "9", Email: "a@b.c"}))
	<-sub.done
	require.Equal(t, 2, sub.count())
	assert.NotEqual(t, first, sub.results[1].SessionID)
}
