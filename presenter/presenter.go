package presenter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/audio"
	"github.com/lixenwraith/alert-fx/engine"
)

// Effects receives particle bursts
type Effects interface {
	Trigger(effect engine.Effect, intensity int)
}

// Sounds plays cues fire-and-forget
type Sounds interface {
	Play(cue audio.Cue) error
}

// Presenter issues the burst and sound of an alert entering the screen
type Presenter struct {
	effects Effects
	sounds  Sounds
	log     *slog.Logger
}

// New creates a Presenter; sounds may be nil for silent operation
func New(effects Effects, sounds Sounds, log *slog.Logger) *Presenter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Presenter{effects: effects, sounds: sounds, log: log}
}

// Show fires the side effects for a; called once at the start of its entrance
func (p *Presenter) Show(a alert.Alert) {
	st := StyleFor(a.Category)

	if st.Effect != "" && p.effects != nil {
		p.effects.Trigger(st.Effect, st.Intensity)
	}

	if p.sounds == nil {
		return
	}
	if err := p.sounds.Play(st.Cue); err != nil {
		level := slog.LevelWarn
		if errors.Is(err, audio.ErrNotInitialized) {
			level = slog.LevelDebug
		}
		p.log.Log(context.Background(), level, "sound cue failed", "cue", string(st.Cue), "category", string(a.Category), "error", err)
	}
}
