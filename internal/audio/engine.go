package audio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures an Engine. Zero-value fields use deployment defaults.
type Options struct {
	Loader          Loader
	Sink            Sink
	PlaybackTimeout time.Duration
	ToneFrequency   float64
	ToneDuration    time.Duration
}

// Engine builds per-question playback machines. One Playback lives per
// question; re-entering a question means starting a fresh one.
type Engine struct {
	loader  Loader
	sink    Sink
	timeout time.Duration
	freq    float64
	toneDur time.Duration
	logger  zerolog.Logger
}

// NewEngine constructs a playback engine.
func NewEngine(opts Options, logger zerolog.Logger) *Engine {
	timeout := opts.PlaybackTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	freq := opts.ToneFrequency
	if freq <= 0 {
		freq = 800
	}
	toneDur := opts.ToneDuration
	if toneDur <= 0 {
		toneDur = 2 * time.Second
	}
	sink := opts.Sink
	if sink == nil {
		sink = NullSink{}
	}

	return &Engine{
		loader:  opts.Loader,
		sink:    sink,
		timeout: timeout,
		freq:    freq,
		toneDur: toneDur,
		logger:  logger.With().Str("component", "audio").Logger(),
	}
}

// Playback is one question's playback machine:
//
//	Loading -> Ready -> Playing -> Ended
//	Loading|Playing -> Error -> Fallback -> Ended
//
// Done fires on natural end, forced timeout, or fallback completion,
// whichever comes first. Cancel discards all in-flight work; a cancelled
// playback never completes.
type Playback struct {
	engine *Engine
	uri    string

	mu      sync.Mutex
	state   State
	outcome Outcome
	err     error
	data    []byte

	ready    chan struct{}
	done     chan struct{}
	doneOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

// Start begins loading the asset at uri and returns immediately.
func (e *Engine) Start(ctx context.Context, uri string) *Playback {
	ctx, cancel := context.WithCancel(ctx)
	p := &Playback{
		engine: e,
		uri:    uri,
		state:  StateLoading,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	go p.load()
	return p
}

// State returns the current machine state.
func (p *Playback) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the recovered load/playback error, if any. Non-nil only on
// the fallback path; it never blocks progression.
func (p *Playback) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Ready closes once loading has settled, in Ready or on the error path.
func (p *Playback) Ready() <-chan struct{} { return p.ready }

// Done closes when the play-complete signal fires for the first time.
func (p *Playback) Done() <-chan struct{} { return p.done }

// Outcome reports how playback completed. Valid once Done has fired.
func (p *Playback) Outcome() Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome
}

// Await blocks until the play-complete signal or ctx cancellation.
func (p *Playback) Await(ctx context.Context) (Outcome, error) {
	select {
	case <-p.done:
		return p.Outcome(), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Cancel resets the machine and discards any in-flight load or playback.
func (p *Playback) Cancel() {
	p.cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateEnded {
		p.state = StateIdle
	}
}

// PressPlay starts audible playback from position zero. Only valid in
// Ready; anywhere else it is a no-op returning false.
func (p *Playback) PressPlay() bool {
	p.mu.Lock()
	if p.state != StateReady {
		p.mu.Unlock()
		return false
	}
	p.state = StatePlaying
	data := p.data
	p.mu.Unlock()

	go p.play(data)
	return true
}

func (p *Playback) load() {
	data, err := p.engine.loader.Load(p.ctx, p.uri)

	p.mu.Lock()
	if p.state != StateLoading {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.state = StateError
		p.err = err
		p.mu.Unlock()
		close(p.ready)
		if p.ctx.Err() == nil {
			p.engine.logger.Warn().Err(err).Str("uri", p.uri).Msg("asset load failed, playing fallback tone")
			p.fallback()
		}
		return
	}
	p.data = data
	p.state = StateReady
	p.mu.Unlock()
	close(p.ready)
}

func (p *Playback) play(data []byte) {
	// Wall-clock bound: a stuck or over-long asset cannot hold the
	// Playing state open past the timeout.
	playCtx, cancel := context.WithTimeout(p.ctx, p.engine.timeout)
	defer cancel()

	err := p.engine.sink.PlayClip(playCtx, Clip{URI: p.uri, Data: data, Encoding: EncodingAsset})

	if p.ctx.Err() != nil {
		return
	}
	switch {
	case err == nil:
		p.finish(OutcomeEnded)
	case errors.Is(err, context.DeadlineExceeded):
		p.finish(OutcomeTimeout)
	default:
		p.mu.Lock()
		p.state = StateError
		p.err = err
		p.mu.Unlock()
		p.engine.logger.Warn().Err(err).Str("uri", p.uri).Msg("playback failed, playing fallback tone")
		p.fallback()
	}
}

func (p *Playback) fallback() {
	p.mu.Lock()
	p.state = StateFallback
	p.mu.Unlock()

	clip := Tone(p.engine.freq, p.engine.toneDur)
	if err := p.engine.sink.PlayClip(p.ctx, clip); err != nil && p.ctx.Err() == nil {
		p.engine.logger.Warn().Err(err).Msg("fallback tone playback failed")
	}
	if p.ctx.Err() != nil {
		return
	}
	p.finish(OutcomeFallback)
}

func (p *Playback) finish(outcome Outcome) {
	p.mu.Lock()
	p.state = StateEnded
	p.outcome = outcome
	p.mu.Unlock()
	p.doneOnce.Do(func() { close(p.done) })
}
