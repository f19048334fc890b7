package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/alert-fx/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
// rng is only consulted for WaveNoise and may be nil otherwise
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack to peak, then an exponential
// decay that reaches floor at decayEnd and holds there
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	decayEnd int
	peak     float64
	floor    float64
}

// NewEnvelope wraps s; gains are absolute amplitudes
func NewEnvelope(s beep.Streamer, attack, duration time.Duration, peak, floor float64, rate beep.SampleRate) beep.Streamer {
	att := rate.N(attack)
	end := rate.N(duration)
	if end < att {
		end = att
	}
	return &envelope{
		streamer: s,
		attack:   att,
		decayEnd: end,
		peak:     peak,
		floor:    math.Min(floor, peak),
	}
}

// gain returns the envelope value at sample position p
func (e *envelope) gain(p int) float64 {
	switch {
	case e.peak <= 0:
		return 0
	case p < e.attack:
		return e.peak * float64(p) / float64(e.attack)
	case p >= e.decayEnd || e.decayEnd == e.attack:
		return e.floor
	}
	t := float64(p-e.attack) / float64(e.decayEnd-e.attack)
	return e.peak * math.Pow(e.floor/e.peak, t)
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// lowpassSweep is a one-pole lowpass whose cutoff moves exponentially from start to end Hz
type lowpassSweep struct {
	streamer   beep.Streamer
	rate       beep.SampleRate
	start, end float64
	total      int
	position   int
	state      [2]float64
}

// NewLowpassSweep filters s over duration
func NewLowpassSweep(s beep.Streamer, startHz, endHz float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &lowpassSweep{
		streamer: s,
		rate:     rate,
		start:    startHz,
		end:      endHz,
		total:    max(1, rate.N(duration)),
	}
}

func (f *lowpassSweep) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := math.Min(1, float64(f.position)/float64(f.total))
		cutoff := f.start * math.Pow(f.end/f.start, t)
		alpha := 1 - math.Exp(-2*math.Pi*cutoff/float64(f.rate))
		for c := 0; c < 2; c++ {
			f.state[c] += alpha * (samples[i][c] - f.state[c])
			samples[i][c] = f.state[c]
		}
		f.position++
	}
	return n, ok
}

func (f *lowpassSweep) Err() error { return f.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone renders a shaped oscillator ringing for duration plus the tail
func tone(freq float64, duration time.Duration, wave WaveType, gain float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration+constant.ToneTail, wave, rate, nil)
	return NewEnvelope(osc, constant.ToneAttack, duration, gain, constant.ToneFloor, rate)
}

// noise renders a lowpass-swept white noise hit with no attack
// The stream plays on the speaker goroutine, so it draws from its own source seeded by rng
func noise(duration time.Duration, gain float64, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	src := NewOscillator(0, duration, WaveNoise, rate, rand.New(rand.NewSource(rng.Int63())))
	filtered := NewLowpassSweep(src, constant.NoiseCutoffStartHz, constant.NoiseCutoffEndHz, duration, rate)
	return NewEnvelope(filtered, 0, duration, gain, constant.ToneFloor, rate)
}
