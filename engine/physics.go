package engine

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/alert-fx/constant"
)

const sizeCeiling = constant.ParticleSizeCeiling

// bounds is the simulation surface in pixels
type bounds struct {
	W, H float64
}

// step advances p by one frame according to its variant rule
func (p *Particle) step(b bounds, rng *rand.Rand) {
	switch p.Kind {
	case KindConfetti:
		stepConfetti(p, b)
	case KindSparkle:
		stepSparkle(p, rng)
	case KindGlowOrb:
		stepGlowOrb(p)
	case KindRing, KindExpandingRing:
		stepRing(p)
	case KindRaider:
		stepRaider(p, b)
	case KindFireworkSpark:
		stepFirework(p)
	case KindAmbientMote:
		stepMote(p)
	default:
		p.Opacity = 0
	}
	if p.Opacity < 0 {
		p.Opacity = 0
	}
}

func stepConfetti(p *Particle, b bounds) {
	c := &p.Confetti
	p.Vel.Y += constant.ConfettiGravity
	p.Vel.X *= constant.ConfettiDrag
	p.Vel.Y *= constant.ConfettiDrag
	c.WobblePhase += constant.ConfettiWobbleSpeed
	p.Pos.X += p.Vel.X + math.Sin(c.WobblePhase)*constant.ConfettiWobbleAmp*p.Size
	p.Pos.Y += p.Vel.Y
	c.Rotation = math.Mod(c.Rotation+c.Spin+360, 360)

	fade := constant.ConfettiFade
	if p.Pos.Y > b.H*constant.ConfettiFloorRatio {
		fade *= constant.ConfettiFloorFadeMult
	}
	p.Opacity -= fade
}

func stepSparkle(p *Particle, rng *rand.Rand) {
	s := &p.Sparkle
	s.Trail.Push(p.Pos)
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Vel.Y += constant.SparkleDownDrift
	s.Phase += s.PulseSpeed
	p.Size = s.BaseSize * (1 + constant.SparklePulseAmp*math.Sin(s.Phase))
	p.Opacity -= constant.SparkleFade

	// Twinkle: the only rule that raises opacity, capped per particle
	if p.Opacity > 0 && s.Twinkles < constant.SparkleMaxTwinkles && rng.Float64() < constant.SparkleTwinkleChance {
		s.Twinkles++
		p.Opacity = math.Min(1, p.Opacity+constant.SparkleTwinkleBoost)
	}
}

func stepGlowOrb(p *Particle) {
	p.Vel.X *= constant.GlowOrbDrag
	p.Vel.Y = p.Vel.Y*constant.GlowOrbDrag - constant.GlowOrbLift
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Opacity -= constant.GlowOrbFade
}

func stepRing(p *Particle) {
	r := &p.Ring
	if p.Size < r.MaxRadius {
		p.Size = math.Min(r.MaxRadius, p.Size+r.Growth)
		return
	}
	p.Opacity -= r.Fade
	r.Thickness = math.Max(constant.RingThicknessMin, r.Thickness*constant.RingThicknessTape)
}

func stepRaider(p *Particle, b bounds) {
	p.Streak.Trail.Push(p.Pos)
	p.Vel.Y = math.Min(constant.RaiderMaxSpeed, p.Vel.Y+constant.RaiderGravity)
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Opacity -= constant.RaiderFade
	if p.Pos.Y > b.H+constant.RaiderExitMarginPx {
		p.Opacity = 0
	}
}

func stepFirework(p *Particle) {
	p.Streak.Trail.Push(p.Pos)
	p.Vel.X *= constant.FireworkDrag
	p.Vel.Y = p.Vel.Y*constant.FireworkDrag + constant.FireworkGravity
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Opacity -= constant.FireworkFade
}

func stepMote(p *Particle) {
	m := &p.Mote
	m.Phase += constant.MoteSwaySpeed
	p.Pos.X += p.Vel.X + math.Sin(m.Phase)*constant.MoteSwayAmp
	p.Pos.Y -= constant.MoteRise
	p.Opacity -= constant.MoteFade
}

// maxLifetime returns an upper bound on frames until a fresh particle of kind k dies
// Sparkles include the full twinkle allowance
func maxLifetime(k Kind, b bounds) int {
	frames := func(opacity, fade float64) int { return int(math.Ceil(opacity/fade)) + 1 }
	switch k {
	case KindConfetti:
		return frames(1, constant.ConfettiFade)
	case KindSparkle:
		return frames(1+constant.SparkleMaxTwinkles*constant.SparkleTwinkleBoost, constant.SparkleFade)
	case KindGlowOrb:
		return frames(1, constant.GlowOrbFade)
	case KindRing:
		return int(math.Max(b.W, b.H)*constant.RingMaxRadiusRatio/constant.RingGrowth) + 1 + frames(1, constant.RingFade)
	case KindExpandingRing:
		return int(math.Max(b.W, b.H)*constant.ShockwaveMaxRadiusRatio/constant.ShockwaveGrowth) + 1 + frames(1, constant.ShockwaveFade)
	case KindRaider:
		return frames(1, constant.RaiderFade)
	case KindFireworkSpark:
		return frames(1, constant.FireworkFade)
	case KindAmbientMote:
		return frames(1, constant.MoteFade)
	}
	return 0
}
