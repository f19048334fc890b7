package engine

import (
	"math"

	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/render"
)

// Spawners build one particle each and hand it to add; callers hold e.mu

func (e *Engine) pick(colors []render.RGB) render.RGB {
	return colors[e.rng.Intn(len(colors))]
}

// spread returns a uniform value in [-half, half]
func (e *Engine) spread(half float64) float64 {
	return (e.rng.Float64()*2 - 1) * half
}

// origin is the default burst point: horizontally centered, a third down
func (e *Engine) origin() Vec2 {
	return Vec2{X: e.bounds.W / 2, Y: e.bounds.H / 3}
}

func (e *Engine) spawnConfetti(at Vec2) {
	e.add(Particle{
		Kind:    KindConfetti,
		Pos:     Vec2{at.X + e.spread(100), at.Y + e.spread(50)},
		Vel:     Vec2{e.spread(7.5), (e.rng.Float64()-0.8)*15 - 5},
		Size:    4 + e.rng.Float64()*8,
		Opacity: 1,
		Color:   e.pick(render.ConfettiColors),
		Confetti: Confetti{
			Rotation:    e.rng.Float64() * 360,
			Spin:        e.spread(10),
			WobblePhase: e.rng.Float64() * 2 * math.Pi,
		},
	})
}

func (e *Engine) spawnSparkle(at Vec2, colors []render.RGB) {
	base := 2 + e.rng.Float64()*4
	e.add(Particle{
		Kind:    KindSparkle,
		Pos:     Vec2{at.X + e.spread(150), at.Y + e.spread(100)},
		Vel:     Vec2{e.spread(1.5), e.spread(1.5)},
		Size:    base,
		Opacity: 1,
		Color:   e.pick(colors),
		Sparkle: Sparkle{
			BaseSize:   base,
			Phase:      e.rng.Float64() * 2 * math.Pi,
			PulseSpeed: 0.1 + e.rng.Float64()*0.2,
			Trail:      newTrail(constant.SparkleTrailLen),
		},
	})
}

func (e *Engine) spawnGlowOrb(at Vec2, color render.RGB) {
	angle := e.rng.Float64() * 2 * math.Pi
	speed := 2 + e.rng.Float64()*4
	e.add(Particle{
		Kind:    KindGlowOrb,
		Pos:     at,
		Vel:     Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
		Size:    6 + e.rng.Float64()*6,
		Opacity: 1,
		Color:   color,
	})
}

func (e *Engine) spawnRing(at Vec2, color render.RGB) {
	e.add(Particle{
		Kind:    KindRing,
		Pos:     at,
		Opacity: 1,
		Color:   color,
		Ring: Ring{
			MaxRadius: math.Max(e.bounds.W, e.bounds.H) * constant.RingMaxRadiusRatio,
			Growth:    constant.RingGrowth,
			Fade:      constant.RingFade,
			Thickness: 1,
		},
	})
}

func (e *Engine) spawnShockwave(at Vec2, color render.RGB) {
	e.add(Particle{
		Kind:    KindExpandingRing,
		Pos:     at,
		Opacity: 1,
		Color:   color,
		Ring: Ring{
			MaxRadius: math.Max(e.bounds.W, e.bounds.H) * constant.ShockwaveMaxRadiusRatio,
			Growth:    constant.ShockwaveGrowth,
			Fade:      constant.ShockwaveFade,
			Thickness: 1,
		},
	})
}

var raiderColors = []render.RGB{render.RgbRed, render.RgbOrange, render.RgbPurple}

func (e *Engine) spawnRaider() {
	e.add(Particle{
		Kind:    KindRaider,
		Pos:     Vec2{e.rng.Float64() * e.bounds.W, -e.rng.Float64()*e.bounds.H*0.3 - 20},
		Vel:     Vec2{e.spread(0.5), 2 + e.rng.Float64()*3},
		Size:    8,
		Opacity: 1,
		Color:   e.pick(raiderColors),
		Streak:  Streak{Trail: newTrail(constant.RaiderTrailLen)},
	})
}

// spawnFirework bursts n sparks radially from at, hues spread around baseHue
func (e *Engine) spawnFirework(at Vec2, n int, baseHue float64) {
	for i := 0; i < n; i++ {
		angle := float64(i)/float64(n)*2*math.Pi + e.spread(0.1)
		speed := 3 + e.rng.Float64()*4
		e.add(Particle{
			Kind:    KindFireworkSpark,
			Pos:     at,
			Vel:     Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
			Size:    3,
			Opacity: 1,
			Color:   render.Hue(baseHue + e.rng.Float64()*40),
			Streak:  Streak{Trail: newTrail(constant.FireworkTrailLen)},
		})
	}
}

func (e *Engine) spawnMote() {
	e.add(Particle{
		Kind:    KindAmbientMote,
		Pos:     Vec2{e.rng.Float64() * e.bounds.W, e.bounds.H * (0.6 + e.rng.Float64()*0.4)},
		Vel:     Vec2{e.spread(0.2), 0},
		Size:    1 + e.rng.Float64()*2,
		Opacity: 0.6,
		Color:   e.pick(render.SparkleColors),
		Mote:    Mote{Phase: e.rng.Float64() * 2 * math.Pi},
	})
}

// add appends p and enforces the cap by evicting the oldest particles
func (e *Engine) add(p Particle) {
	e.nextID++
	p.ID = e.nextID
	e.particles = append(e.particles, p)
	if excess := len(e.particles) - e.cap; excess > 0 {
		n := copy(e.particles, e.particles[excess:])
		clear(e.particles[n:])
		e.particles = e.particles[:n]
		e.statEvicted.Add(int64(excess))
	}
}
