package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/render"
)

// shakeState decays linearly from intensity to zero over total frames
type shakeState struct {
	intensity float64 // pixels
	total     int
	remaining int
	offX      int // cells, valid for the current frame
	offY      int
}

// flashState decays by a fixed step per frame
type flashState struct {
	color   render.RGB
	opacity float64
}

func (s *shakeState) magnitude() float64 {
	if s.remaining <= 0 || s.total <= 0 {
		return 0
	}
	return s.intensity * float64(s.remaining) / float64(s.total)
}

func (s *shakeState) atRest() bool {
	return s.remaining <= 0
}

// startShake replaces the current shake only when the new one is stronger right now
func (e *Engine) startShake(intensity float64, duration time.Duration) {
	frames := e.frames(duration)
	if frames <= 0 || intensity <= 0 {
		return
	}
	if e.shake.magnitude() >= intensity {
		return
	}
	e.shake = shakeState{intensity: intensity, total: frames, remaining: frames}
}

func (e *Engine) startFlash(color render.RGB) {
	e.flash = flashState{color: color, opacity: constant.FlashInitialOpacity}
}

// updateScreenEffects advances shake and flash by one frame
func (e *Engine) updateScreenEffects() {
	if e.shake.remaining > 0 {
		mag := e.shake.magnitude()
		e.shake.offX = int(math.Round(e.spread(mag) / e.cellW))
		e.shake.offY = int(math.Round(e.spread(mag) / e.cellH))
		e.shake.remaining--
	} else {
		e.shake.offX, e.shake.offY = 0, 0
	}

	if e.flash.opacity > 0 {
		e.flash.opacity -= constant.FlashStep
		if e.flash.opacity < 1e-9 {
			e.flash.opacity = 0
		}
	}
}
