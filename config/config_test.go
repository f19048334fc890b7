package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	result, err := LoadFrom("/nonexistent/path/config.toml")
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 800, cfg.Timing.EnterMS)
	assert.Equal(t, 6200, cfg.Timing.HoldMS)
	assert.Equal(t, 600, cfg.Timing.ExitMS)
	assert.Equal(t, 500, cfg.Timing.GapMS)
	assert.Equal(t, 600, cfg.Particles.Cap)
	assert.Equal(t, 0.6, cfg.Audio.MasterVolume)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, DefaultFeedURL, cfg.Feed.URL)
	assert.Empty(t, result.Warnings)
}

func TestLoadFromOverridesOnlyPresentKeys(t *testing.T) {
	path := writeFile(t, "config.toml", `
[timing]
hold_ms = 3000

[particles]
cap = 250

[audio]
enabled = false
`)
	result, err := LoadFrom(path)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 3000, cfg.Timing.HoldMS)
	assert.Equal(t, 800, cfg.Timing.EnterMS, "untouched keys keep defaults")
	assert.Equal(t, 250, cfg.Particles.Cap)
	assert.Equal(t, 8, cfg.Particles.CellWidth)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.6, cfg.Audio.MasterVolume)

	timing := cfg.SchedulerTiming()
	assert.Equal(t, 3*time.Second, timing.Hold)
	assert.Equal(t, 250, cfg.EngineConfig().Cap)
	assert.False(t, cfg.SoundConfig().Enabled)
}

func TestLoadFromUnknownKeysWarn(t *testing.T) {
	path := writeFile(t, "config.toml", `
colour = "red"

[display]
hud = true
fps = 30
`)
	result, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, result.Config.Display.HUD)
	assert.Len(t, result.Warnings, 2)
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	path := writeFile(t, "config.toml", `
[particles]
cap = 0

[audio]
master_volume = 2.0
`)
	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "particles.cap")
	assert.Contains(t, err.Error(), "audio.master_volume")
}

func TestLoadFromMalformed(t *testing.T) {
	path := writeFile(t, "config.toml", "[timing\nenter_ms = ")
	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidateFeedURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Feed.URL = "https://sockets.streamlabs.com"
	assert.Error(t, cfg.Validate())

	cfg.Feed.URL = "ws://127.0.0.1:9000/socket.io/"
	assert.NoError(t, cfg.Validate())
}

func TestLoadTokenFlagWins(t *testing.T) {
	t.Setenv(TokenEnv, "from-env")
	token, err := LoadToken("  from-flag ", "")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", token)
}

func TestLoadTokenFromEnvFile(t *testing.T) {
	t.Setenv(TokenEnv, "")
	os.Unsetenv(TokenEnv)
	envFile := writeFile(t, ".env", TokenEnv+"=abc123\n")

	token, err := LoadToken("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestLoadTokenMissing(t *testing.T) {
	t.Setenv(TokenEnv, "")
	_, err := LoadToken("", filepath.Join(t.TempDir(), "absent.env"))
	assert.True(t, errors.Is(err, ErrMissingToken))
}
