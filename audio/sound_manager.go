package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/alert-fx/constant"
)

// ErrNotInitialized is returned by Play before Initialize succeeded
var ErrNotInitialized = errors.New("audio: not initialized")

// Config is injected sound tuning
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
}

// DefaultConfig returns the stock audio settings
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: constant.AudioMasterVolume,
		SampleRate:   constant.AudioSampleRate,
	}
}

// SoundManager plays cues fire-and-forget on the speaker mixer
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	rng         *rand.Rand
	log         *slog.Logger
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg Config, log *slog.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constant.AudioSampleRate
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   log,
		muted: !cfg.Enabled,
	}
}

// Initialize sets up the audio device; safe to call repeatedly
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constant.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Info("audio initialized", "sample_rate", int(sm.rate))
	return nil
}

// Cleanup stops all sounds and closes the audio device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// SetMuted toggles playback without releasing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play queues cue on the mixer and returns immediately
// Muted playback is a silent success
func (sm *SoundManager) Play(cue Cue) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted || cue == CueNone {
		return nil
	}
	if !sm.initialized {
		return ErrNotInitialized
	}

	s := Build(cue, sm.rate, sm.cfg.MasterVolume, sm.rng)
	if s == nil {
		return fmt.Errorf("audio: unknown cue %q", cue)
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return nil
}
