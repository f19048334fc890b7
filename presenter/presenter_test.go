package presenter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/audio"
	"github.com/lixenwraith/alert-fx/engine"
	"github.com/lixenwraith/alert-fx/render"
	"github.com/lixenwraith/alert-fx/scheduler"
	"github.com/lixenwraith/alert-fx/status"
)

type triggerCall struct {
	effect    engine.Effect
	intensity int
}

type fakeEffects struct{ calls []triggerCall }

func (f *fakeEffects) Trigger(effect engine.Effect, intensity int) {
	f.calls = append(f.calls, triggerCall{effect, intensity})
}

type fakeSounds struct {
	cues []audio.Cue
	err  error
}

func (f *fakeSounds) Play(cue audio.Cue) error {
	f.cues = append(f.cues, cue)
	return f.err
}

func TestStyleTable(t *testing.T) {
	cases := []struct {
		category  alert.Category
		label     string
		effect    engine.Effect
		intensity int
		cue       audio.Cue
		chromatic bool
	}{
		{alert.CategoryDonation, "NEW DONATION", engine.EffectDonationExplosion, 100, audio.CueDonation, true},
		{alert.CategoryBits, "BITS CHEERED", engine.EffectBitsShower, 80, audio.CueBits, true},
		{alert.CategoryRaid, "INCOMING RAID", engine.EffectRaidInvasion, 120, audio.CueRaid, true},
		{alert.CategorySubscription, "NEW SUBSCRIBER", engine.EffectSubGlow, 50, audio.CueSubscription, false},
		{alert.CategoryResub, "RESUBSCRIBED", engine.EffectSubGlow, 50, audio.CueSubscription, false},
		{alert.CategoryHost, "NOW HOSTING", engine.EffectFollowTwinkle, 30, audio.CueFollow, false},
		{alert.CategoryFollow, "NEW FOLLOWER", engine.EffectFollowTwinkle, 20, audio.CueFollow, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			st := StyleFor(tc.category)
			assert.Equal(t, tc.label, st.Label)
			assert.Equal(t, tc.effect, st.Effect)
			assert.Equal(t, tc.intensity, st.Intensity)
			assert.Equal(t, tc.cue, st.Cue)
			assert.Equal(t, tc.chromatic, st.Chromatic)
			assert.NotEmpty(t, st.Icon)
		})
	}
}

func TestResubSharesSubscriptionStyling(t *testing.T) {
	sub, resub := StyleFor(alert.CategorySubscription), StyleFor(alert.CategoryResub)
	assert.Equal(t, sub.Cue, resub.Cue)
	assert.Equal(t, sub.Effect, resub.Effect)
	assert.Equal(t, sub.Accent, resub.Accent)
	assert.NotEqual(t, sub.Label, resub.Label)
}

func TestUnknownCategoryFallback(t *testing.T) {
	st := StyleFor(alert.Category("gift"))
	assert.Equal(t, "GIFT", st.Label)
	assert.Equal(t, FallbackIcon, st.Icon)
	assert.Empty(t, st.Effect)
}

func TestShowTriggersEffectAndSound(t *testing.T) {
	fx, snd := &fakeEffects{}, &fakeSounds{}
	p := New(fx, snd, nil)

	p.Show(alert.New(alert.CategoryHost, "streamer", "", "12 viewers"))

	require.Len(t, fx.calls, 1)
	assert.Equal(t, triggerCall{engine.EffectFollowTwinkle, 30}, fx.calls[0])
	assert.Equal(t, []audio.Cue{audio.CueFollow}, snd.cues)
}

func TestShowToleratesSoundFailure(t *testing.T) {
	fx := &fakeEffects{}
	p := New(fx, &fakeSounds{err: audio.ErrNotInitialized}, nil)
	p.Show(alert.New(alert.CategoryBits, "b", "", "500 bits"))
	p = New(fx, &fakeSounds{err: errors.New("device gone")}, nil)
	p.Show(alert.New(alert.CategoryBits, "b", "", "500 bits"))
	assert.Len(t, fx.calls, 2)

	// Nil sounds is silent operation
	New(fx, nil, nil).Show(alert.New(alert.CategoryFollow, "f", "", ""))
	assert.Len(t, fx.calls, 3)
}

func TestPresenterCalledOncePerEntrance(t *testing.T) {
	fx, snd := &fakeEffects{}, &fakeSounds{}
	clock := scheduler.NewMockClock(time.Unix(0, 0))
	s := scheduler.New(clock, scheduler.DefaultTiming(), New(fx, snd, nil), status.NewRegistry(), nil)

	s.Enqueue(alert.New(alert.CategoryRaid, "r", "", "150 raiders"))
	for i := 0; i < 200; i++ {
		s.Update()
		clock.Advance(50 * time.Millisecond)
	}
	assert.Len(t, fx.calls, 1)
	assert.Len(t, snd.cues, 1)
}

func TestWrap(t *testing.T) {
	lines := wrap("the quick brown fox jumps over the lazy dog", 10, 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "the quick", lines[0])
	assert.Equal(t, "brown fox", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "…"))

	assert.Equal(t, []string{"short"}, wrap("short", 10, 3))
	assert.Empty(t, wrap("   ", 10, 3))
}

func rowText(buf *render.Buffer, y int) string {
	w, _ := buf.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if r := buf.Get(x, y).Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func screenText(buf *render.Buffer) string {
	_, h := buf.Size()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.WriteString(rowText(buf, y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestDrawCardHeldShowsFields(t *testing.T) {
	buf := render.NewBuffer(100, 30, render.RgbBackground)
	a := alert.New(alert.CategoryDonation, "TestUser123", "Keep up the great work!", "$25.00")
	DrawCard(buf, scheduler.View{Alert: a, State: scheduler.StateHeld, Progress: 0.5}, 7)

	text := screenText(buf)
	assert.Contains(t, text, "NEW DONATION")
	assert.Contains(t, text, "TestUser123")
	assert.Contains(t, text, "$25.00")
	assert.Contains(t, text, "Keep up the great work!")
	assert.Contains(t, text, "╭")
}

func TestDrawCardHidesEmptyRows(t *testing.T) {
	with := render.NewBuffer(100, 30, render.RgbBackground)
	without := render.NewBuffer(100, 30, render.RgbBackground)
	DrawCard(with, scheduler.View{Alert: alert.New(alert.CategoryBits, "b", "hi", "500 bits"), State: scheduler.StateHeld}, 0)
	DrawCard(without, scheduler.View{Alert: alert.New(alert.CategoryFollow, "f", "", ""), State: scheduler.StateHeld}, 0)

	count := func(buf *render.Buffer) int {
		n := 0
		_, h := buf.Size()
		for y := 0; y < h; y++ {
			if strings.Contains(rowText(buf, y), "│") {
				n++
			}
		}
		return n
	}
	// Follow card: header, blank, name. Bits card adds amount, blank, one message line
	assert.Equal(t, 3, count(without))
	assert.Equal(t, 6, count(with))
}

func TestDrawCardIdleDrawsNothing(t *testing.T) {
	buf := render.NewBuffer(80, 24, render.RgbBackground)
	DrawCard(buf, scheduler.View{State: scheduler.StateGap}, 0)
	assert.NotContains(t, screenText(buf), "╭")
}

func TestEntranceStartsOffscreen(t *testing.T) {
	shift, alpha := placement(scheduler.View{State: scheduler.StateEntering, Progress: 0}, 30)
	assert.Equal(t, -30, shift)
	assert.Equal(t, 0.0, alpha)

	shift, alpha = placement(scheduler.View{State: scheduler.StateEntering, Progress: 1}, 30)
	assert.Equal(t, 0, shift)
	assert.Equal(t, 1.0, alpha)

	_, alpha = placement(scheduler.View{State: scheduler.StateExiting, Progress: 1}, 30)
	assert.Equal(t, 0.0, alpha)
}
