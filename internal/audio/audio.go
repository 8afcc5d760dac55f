// Package audio loads and plays one sound asset per quiz question, falling
// back to a synthesized tone when the real asset cannot be played. Failures
// are always recovered locally so the quiz stays playable offline.
package audio

import "context"

// State of a single question's playback machine.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StateFallback
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateFallback:
		return "fallback"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome describes how playback reached Ended.
type Outcome int

const (
	// OutcomeEnded means natural end-of-media.
	OutcomeEnded Outcome = iota
	// OutcomeTimeout means the wall-clock bound forced the end.
	OutcomeTimeout
	// OutcomeFallback means the synthesized tone played instead of the asset.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEnded:
		return "ended"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Encoding tags the payload carried by a Clip.
type Encoding int

const (
	// EncodingAsset is the fetched media file, bytes as served.
	EncodingAsset Encoding = iota
	// EncodingPCM16 is synthesized mono 16-bit little-endian PCM.
	EncodingPCM16
)

// Clip is a playable audio payload handed to a Sink.
type Clip struct {
	URI        string
	Data       []byte
	Encoding   Encoding
	SampleRate int
}

// Loader fetches the raw bytes of a sound asset.
type Loader interface {
	Load(ctx context.Context, uri string) ([]byte, error)
}

// Sink receives audible output. PlayClip blocks until the clip has played
// through or ctx is done; the engine supplies the wall-clock bound via ctx.
type Sink interface {
	PlayClip(ctx context.Context, clip Clip) error
}

// NullSink discards audio instantly, reporting immediate natural end. Used
// for headless runs and tests.
type NullSink struct{}

func (NullSink) PlayClip(ctx context.Context, clip Clip) error { return ctx.Err() }
