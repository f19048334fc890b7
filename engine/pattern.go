package engine

import (
	"time"

	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/render"
)

// Effect names a burst pattern
type Effect string

const (
	EffectConfetti          Effect = "burst-confetti"
	EffectSparkle           Effect = "burst-sparkle"
	EffectDonationExplosion Effect = "donation-explosion"
	EffectBitsShower        Effect = "bits-shower"
	EffectRaidInvasion      Effect = "raid-invasion"
	EffectSubGlow           Effect = "sub-glow"
	EffectFollowTwinkle     Effect = "follow-twinkle"
	EffectAmbient           Effect = "ambient"
)

// Effects lists every known pattern
var Effects = []Effect{
	EffectConfetti, EffectSparkle, EffectDonationExplosion, EffectBitsShower,
	EffectRaidInvasion, EffectSubGlow, EffectFollowTwinkle, EffectAmbient,
}

// Step is one stage of a pattern: Do runs Delay after the trigger, with e.mu held
type Step struct {
	Delay time.Duration
	Do    func(e *Engine)
}

// Pattern is a fixed choreography built for a given intensity
type Pattern func(intensity int) []Step

var patterns = map[Effect]Pattern{
	EffectConfetti:          confettiBurst,
	EffectSparkle:           sparkleBurst,
	EffectDonationExplosion: donationExplosion,
	EffectBitsShower:        bitsShower,
	EffectRaidInvasion:      raidInvasion,
	EffectSubGlow:           subGlow,
	EffectFollowTwinkle:     sparkleBurst,
	EffectAmbient:           ambient,
}

// staggered emits n single-particle steps starting at start, one stagger apart
func staggered(start time.Duration, n int, spawn func(e *Engine)) []Step {
	steps := make([]Step, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, Step{Delay: start + time.Duration(i)*constant.PatternStagger, Do: spawn})
	}
	return steps
}

func at(delay time.Duration, do func(e *Engine)) Step {
	return Step{Delay: delay, Do: do}
}

func confetti(e *Engine) { e.spawnConfetti(e.origin()) }

func sparkle(e *Engine) { e.spawnSparkle(e.origin(), render.SparkleColors) }

func confettiBurst(n int) []Step {
	return staggered(0, n, confetti)
}

func sparkleBurst(n int) []Step {
	return staggered(0, n, sparkle)
}

func donationExplosion(n int) []Step {
	steps := []Step{
		at(0, func(e *Engine) {
			o := e.origin()
			e.startFlash(render.RgbGold)
			e.startShake(12, 500*time.Millisecond)
			e.spawnShockwave(o, render.RgbGold)
			for i := 0; i < 24; i++ {
				e.spawnGlowOrb(o, e.pick([]render.RGB{render.RgbGold, render.RgbOrange, render.RgbYellow}))
			}
		}),
	}
	steps = append(steps, staggered(100*time.Millisecond, n, confetti)...)
	steps = append(steps, at(250*time.Millisecond, func(e *Engine) {
		e.spawnRing(e.origin(), render.RgbPink)
	}))
	steps = append(steps, staggered(250*time.Millisecond, n/2, sparkle)...)
	steps = append(steps, at(500*time.Millisecond, func(e *Engine) {
		w, h := e.bounds.W, e.bounds.H
		e.spawnFirework(Vec2{w * 0.25, h * 0.3}, 30, 40)
		e.spawnFirework(Vec2{w * 0.5, h * 0.2}, 30, 300)
		e.spawnFirework(Vec2{w * 0.75, h * 0.3}, 30, 180)
	}))
	steps = append(steps, staggered(900*time.Millisecond, 12, (*Engine).spawnMote)...)
	return steps
}

var bitsColors = []render.RGB{render.RgbCyan, render.RgbPurple, render.RGBWhite, render.RgbPink}

func bitsShower(n int) []Step {
	steps := []Step{
		at(0, func(e *Engine) {
			e.startFlash(render.RgbCyan)
			e.spawnRing(e.origin(), render.RgbCyan)
		}),
	}
	steps = append(steps, staggered(0, n, func(e *Engine) {
		e.spawnSparkle(e.origin(), bitsColors)
	})...)
	steps = append(steps,
		at(200*time.Millisecond, func(e *Engine) { e.spawnRing(e.origin(), render.RgbPurple) }),
		at(400*time.Millisecond, func(e *Engine) { e.spawnFirework(e.origin(), 24, 190) }),
	)
	return steps
}

const raidWaves = 3

func raidInvasion(n int) []Step {
	steps := []Step{
		at(0, func(e *Engine) {
			e.startShake(8, 800*time.Millisecond)
			e.startFlash(render.RgbRed)
		}),
	}
	perWave := n / raidWaves
	for w := 0; w < raidWaves; w++ {
		start := time.Duration(w) * 400 * time.Millisecond
		steps = append(steps, at(start, func(e *Engine) {
			e.spawnShockwave(Vec2{e.bounds.W / 2, 0}, render.RgbRed)
		}))
		steps = append(steps, staggered(start, perWave, (*Engine).spawnRaider)...)
	}
	steps = append(steps, staggered(1200*time.Millisecond, n/4, confetti)...)
	steps = append(steps, staggered(1400*time.Millisecond, 8, (*Engine).spawnMote)...)
	return steps
}

func subGlow(n int) []Step {
	steps := []Step{
		at(0, func(e *Engine) {
			o := e.origin()
			e.spawnRing(o, render.RgbPurple)
			for i := 0; i < 6; i++ {
				e.spawnGlowOrb(o, render.RgbPink)
			}
		}),
	}
	return append(steps, staggered(0, n, sparkle)...)
}

func ambient(n int) []Step {
	return staggered(0, n, (*Engine).spawnMote)
}
