package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume scales every cue
	AudioMasterVolume = 0.6
)

// Tone Envelope
const (
	// ToneAttack is the linear ramp from silence to peak
	ToneAttack = 10 * time.Millisecond

	// ToneFloor is the gain the exponential decay reaches at tone end
	ToneFloor = 0.001

	// ToneTail is extra silence after a tone stops ringing
	ToneTail = 100 * time.Millisecond
)

// Noise Burst
const (
	// NoiseCutoffStartHz and NoiseCutoffEndHz bound the lowpass sweep of impact noise
	NoiseCutoffStartHz = 3000.0
	NoiseCutoffEndHz   = 200.0
)
