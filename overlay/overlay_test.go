package overlay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/config"
	"github.com/lixenwraith/alert-fx/feed"
	"github.com/lixenwraith/alert-fx/render"
	"github.com/lixenwraith/alert-fx/scheduler"
	"github.com/lixenwraith/alert-fx/status"
)

func quietConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = false
	cfg.Timing = config.TimingConfig{EnterMS: 20, HoldMS: 20, ExitMS: 20, GapMS: 0}
	return cfg
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSampleCoversEveryCategory(t *testing.T) {
	for _, c := range alert.Categories {
		a := Sample(c)
		assert.Equal(t, c, a.Category)
		assert.NotEqual(t, alert.AnonymousName, a.DisplayName)
	}

	d := Sample(alert.CategoryDonation)
	assert.Equal(t, "TestUser123", d.DisplayName)
	assert.Equal(t, "$25.00", d.AmountLabel)
	assert.Equal(t, "12 months", Sample(alert.CategoryResub).AmountLabel)
	assert.Equal(t, "150 raiders", Sample(alert.CategoryRaid).AmountLabel)

	samples := Samples()
	require.Len(t, samples, len(alert.Categories))
	assert.Equal(t, alert.CategoryFollow, samples[0].Category)
}

func TestSampleKeysBindEveryCategory(t *testing.T) {
	seen := make(map[alert.Category]bool)
	for _, c := range sampleKeys {
		seen[c] = true
	}
	assert.Len(t, seen, len(alert.Categories))
}

func TestHandleKey(t *testing.T) {
	a := New(Options{Config: quietConfig(), Offline: true}, nil)

	assert.True(t, a.handleKey(key('d')))
	assert.True(t, a.handleKey(key('R')))
	assert.Equal(t, 2, a.sched.Pending())
	assert.Equal(t, alert.CategoryDonation, a.sched.Queue()[0].Category)

	assert.True(t, a.handleKey(key('x')))
	assert.Equal(t, 2, a.sched.Pending())

	assert.True(t, a.handleKey(key('m')))
	assert.True(t, a.scene.muted)
	assert.True(t, a.handleKey(key('i')))
	assert.True(t, a.scene.hud)

	assert.False(t, a.handleKey(key('q')))
	assert.False(t, a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, a.handleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestHUDFromConfig(t *testing.T) {
	off := New(Options{Config: quietConfig(), Offline: true}, nil)
	assert.False(t, off.scene.hud)

	cfg := quietConfig()
	cfg.Display.HUD = true
	on := New(Options{Config: cfg, Offline: true}, nil)
	assert.True(t, on.scene.hud)

	flag := New(Options{Config: quietConfig(), Offline: true, HUD: true}, nil)
	assert.True(t, flag.scene.hud)
}

func TestMissingTokenShowsBanner(t *testing.T) {
	a := New(Options{Config: quietConfig()}, nil)
	assert.Nil(t, a.feed)
	assert.True(t, a.scene.banner.visible)
	assert.Contains(t, a.scene.banner.text, config.TokenEnv)

	offline := New(Options{Config: quietConfig(), Offline: true}, nil)
	assert.False(t, offline.scene.banner.visible)

	cfg := quietConfig()
	cfg.Token = "secret"
	online := New(Options{Config: cfg}, nil)
	assert.NotNil(t, online.feed)
}

func TestBannerFor(t *testing.T) {
	assert.Equal(t, render.RgbGreen, bannerFor(feed.StatusConnected, nil).color)
	assert.Equal(t, render.RgbYellow, bannerFor(feed.StatusConnecting, nil).color)
	assert.Equal(t, render.RgbOrange, bannerFor(feed.StatusDisconnected, nil).color)

	b := bannerFor(feed.StatusError, errors.New("dial refused"))
	assert.Equal(t, render.RgbRed, b.color)
	assert.Contains(t, b.text, "dial refused")
	assert.True(t, b.visible)
}

func TestHUDLine(t *testing.T) {
	snap := status.Snapshot{
		Ints: map[string]int64{
			status.EngineLive:     1234,
			status.EngineFrames:   56789,
			status.SchedulerQueue: 2,
			status.SchedulerShown: 5,
			status.FeedEvents:     17,
		},
		Strings: map[string]string{
			status.SchedulerState: "held",
			status.FeedState:      "connected",
		},
	}

	line := hudLine(snap, true)
	assert.Contains(t, line, "1,234 live")
	assert.Contains(t, line, "56,789 frames")
	assert.Contains(t, line, "held · queue 2")
	assert.Contains(t, line, "feed connected · 17 events")
	assert.Contains(t, line, "muted")

	delete(snap.Strings, status.FeedState)
	assert.NotContains(t, hudLine(snap, false), "feed")
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	return tcell.NewSimulationScreen("UTF-8")
}

func TestRunExitsWhenQueueDrains(t *testing.T) {
	a := New(Options{
		Config:       quietConfig(),
		Screen:       newSimScreen(t),
		Offline:      true,
		HUD:          true,
		Alerts:       []alert.Alert{Sample(alert.CategoryFollow)},
		ExitWhenIdle: true,
	}, nil)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not exit after the queue drained")
	}

	snap := a.Registry().Snapshot()
	assert.Equal(t, int64(1), snap.Ints[status.SchedulerShown])
	assert.Equal(t, scheduler.StateIdle.String(), snap.Strings[status.SchedulerState])
	assert.Equal(t, int64(0), snap.Ints[status.EngineLive])
}

func TestRunStopsOnCancel(t *testing.T) {
	a := New(Options{Config: quietConfig(), Screen: newSimScreen(t), Offline: true}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
