package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/alert-fx/audio"
	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/engine"
	"github.com/lixenwraith/alert-fx/scheduler"
)

// ErrMissingToken means no Streamlabs socket token was supplied
var ErrMissingToken = errors.New("config: missing streamlabs token")

// TokenEnv is the environment variable holding the socket token
const TokenEnv = "STREAMLABS_TOKEN"

// DefaultFeedURL is the Streamlabs socket endpoint
const DefaultFeedURL = "wss://sockets.streamlabs.com/socket.io/"

// Config is the decoded config.toml plus the socket token
type Config struct {
	Timing    TimingConfig    `toml:"timing"`
	Particles ParticlesConfig `toml:"particles"`
	Audio     AudioConfig     `toml:"audio"`
	Feed      FeedConfig      `toml:"feed"`
	Display   DisplayConfig   `toml:"display"`

	// Token is never read from the TOML file
	Token string `toml:"-"`
}

// TimingConfig sets the alert cycle phases in milliseconds
type TimingConfig struct {
	EnterMS int `toml:"enter_ms"`
	HoldMS  int `toml:"hold_ms"`
	ExitMS  int `toml:"exit_ms"`
	GapMS   int `toml:"gap_ms"`
}

// ParticlesConfig bounds the particle field and its cell geometry
type ParticlesConfig struct {
	Cap        int `toml:"cap"`
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
}

// AudioConfig controls the synthesized cues
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
	SampleRate   int     `toml:"sample_rate"`
}

// FeedConfig locates the alert socket
type FeedConfig struct {
	URL string `toml:"url"`
}

// DisplayConfig sets the initial status line visibility and the frame rate
type DisplayConfig struct {
	HUD     bool `toml:"hud"`
	FrameMS int  `toml:"frame_ms"`
}

// LoadResult carries the config plus non-fatal findings
type LoadResult struct {
	Config   Config
	Warnings []string
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Timing: TimingConfig{
			EnterMS: int(constant.AlertEnterDuration / time.Millisecond),
			HoldMS:  int(constant.AlertHoldDuration / time.Millisecond),
			ExitMS:  int(constant.AlertExitDuration / time.Millisecond),
			GapMS:   int(constant.AlertGapDuration / time.Millisecond),
		},
		Particles: ParticlesConfig{
			Cap:        constant.ParticleCap,
			CellWidth:  constant.CellWidthPx,
			CellHeight: constant.CellHeightPx,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: constant.AudioMasterVolume,
			SampleRate:   constant.AudioSampleRate,
		},
		Feed: FeedConfig{URL: DefaultFeedURL},
		Display: DisplayConfig{
			HUD:     false,
			FrameMS: int(constant.FrameUpdateInterval / time.Millisecond),
		},
	}
}

// DefaultPath returns ~/.config/alert-fx/config.toml, or "" without a home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "alert-fx", "config.toml")
}

// LoadFrom reads path over the defaults; a missing file yields the defaults
// Unknown keys are reported as warnings, not errors
func LoadFrom(path string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}
	if path == "" {
		return result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	md, err := toml.Decode(string(data), &result.Config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	for _, key := range md.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key.String()))
	}

	if err := result.Config.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// Validate rejects settings the engine or scheduler cannot run with
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("timing.enter_ms", c.Timing.EnterMS)
	positive("timing.hold_ms", c.Timing.HoldMS)
	positive("timing.exit_ms", c.Timing.ExitMS)
	if c.Timing.GapMS < 0 {
		errs = append(errs, fmt.Errorf("timing.gap_ms must not be negative, got %d", c.Timing.GapMS))
	}
	positive("particles.cap", c.Particles.Cap)
	positive("particles.cell_width", c.Particles.CellWidth)
	positive("particles.cell_height", c.Particles.CellHeight)
	positive("audio.sample_rate", c.Audio.SampleRate)
	positive("display.frame_ms", c.Display.FrameMS)
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.master_volume must be within [0,1], got %g", c.Audio.MasterVolume))
	}
	if !strings.HasPrefix(c.Feed.URL, "ws://") && !strings.HasPrefix(c.Feed.URL, "wss://") {
		errs = append(errs, fmt.Errorf("feed.url must be a ws:// or wss:// URL, got %q", c.Feed.URL))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadToken resolves the socket token: flag value first, then the environment
// after loading envFile (missing .env is not an error)
func LoadToken(flagValue, envFile string) (string, error) {
	if t := strings.TrimSpace(flagValue); t != "" {
		return t, nil
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	if t := strings.TrimSpace(os.Getenv(TokenEnv)); t != "" {
		return t, nil
	}
	return "", ErrMissingToken
}

// SchedulerTiming converts the timing section
func (c *Config) SchedulerTiming() scheduler.Timing {
	return scheduler.Timing{
		Enter: time.Duration(c.Timing.EnterMS) * time.Millisecond,
		Hold:  time.Duration(c.Timing.HoldMS) * time.Millisecond,
		Exit:  time.Duration(c.Timing.ExitMS) * time.Millisecond,
		Gap:   time.Duration(c.Timing.GapMS) * time.Millisecond,
	}
}

// EngineConfig converts the particle and display sections
func (c *Config) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Cap = c.Particles.Cap
	cfg.CellWidth = c.Particles.CellWidth
	cfg.CellHeight = c.Particles.CellHeight
	cfg.FrameInterval = c.FrameInterval()
	return cfg
}

// SoundConfig converts the audio section
func (c *Config) SoundConfig() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		MasterVolume: c.Audio.MasterVolume,
		SampleRate:   c.Audio.SampleRate,
	}
}

// FrameInterval is the display frame period
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Display.FrameMS) * time.Millisecond
}
