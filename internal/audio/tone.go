package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const toneSampleRate = 44100

// Initial and final gain of the decay envelope, matching the audible shape
// of the original beep cue.
const (
	toneStartGain = 0.3
	toneEndGain   = 0.01
)

// Tone synthesizes the fallback cue: a mono sine at freq Hz with an
// exponentially decaying envelope, rendered as 16-bit little-endian PCM.
func Tone(freq float64, duration time.Duration) Clip {
	n := int(float64(toneSampleRate) * duration.Seconds())
	if n < 1 {
		n = 1
	}
	decay := math.Log(toneEndGain/toneStartGain) / float64(n)

	data := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		t := float64(i) / toneSampleRate
		gain := toneStartGain * math.Exp(decay*float64(i))
		sample := gain * math.Sin(2*math.Pi*freq*t)
		binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(sample*math.MaxInt16)))
	}

	return Clip{
		Data:       data,
		Encoding:   EncodingPCM16,
		SampleRate: toneSampleRate,
	}
}
