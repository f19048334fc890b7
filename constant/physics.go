package constant

import "time"

// Particle physics tuning, per frame at FrameUpdateInterval, in simulation pixels

// Confetti
const (
	ConfettiGravity       = 0.3
	ConfettiDrag          = 0.99
	ConfettiFade          = 0.008
	ConfettiFloorFadeMult = 3.0
	// ConfettiFloorRatio is the surface height fraction below which confetti fades faster
	ConfettiFloorRatio  = 0.8
	ConfettiWobbleAmp   = 0.15
	ConfettiWobbleSpeed = 0.12
)

// Sparkle
const (
	SparkleDownDrift = 0.02
	SparkleFade      = 0.015
	SparkleTrailLen  = 4
	// SparkleTwinkleChance is the per-frame probability of a brief re-brighten
	SparkleTwinkleChance = 0.01
	SparkleTwinkleBoost  = 0.15
	// SparkleMaxTwinkles bounds re-brightens so every sparkle still dies
	SparkleMaxTwinkles = 2
	SparklePulseAmp    = 0.3
)

// Glow Orb
const (
	GlowOrbLift = 0.05
	GlowOrbDrag = 0.96
	GlowOrbFade = 0.012
)

// Ring / Expanding Ring
const (
	RingGrowth        = 6.0
	RingFade          = 0.03
	ShockwaveGrowth   = 14.0
	ShockwaveFade     = 0.04
	RingThicknessMin  = 0.5
	RingThicknessTape = 0.97
	// RingMaxRadiusRatio is the radius cap as a fraction of the larger surface dimension
	RingMaxRadiusRatio      = 0.35
	ShockwaveMaxRadiusRatio = 0.6
)

// Raider
const (
	RaiderGravity  = 0.05
	RaiderMaxSpeed = 9.0
	RaiderFade     = 0.004
	RaiderTrailLen = 5
)

// Firework Spark
const (
	FireworkGravity  = 0.08
	FireworkDrag     = 0.98
	FireworkFade     = 0.018
	FireworkTrailLen = 3
)

// Ambient Mote
const (
	MoteRise = 0.4
	MoteFade = 0.005
	// MoteSwaySpeed is the phase advance of the lateral sway
	MoteSwaySpeed = 0.05
	MoteSwayAmp   = 0.3
)

// Engine limits
const (
	// ParticleCap is the default hard ceiling on live particles
	ParticleCap = 600

	// ParticleSizeCeiling removes any particle whose size grows past it
	ParticleSizeCeiling = 4000.0

	// PatternStagger is the default delay between staggered particle creations
	PatternStagger = 10 * time.Millisecond

	// RaiderExitMarginPx is how far past the bottom edge a raider travels before removal
	RaiderExitMarginPx = 16.0
)

// Screen Effects
const (
	// FlashInitialOpacity is the overlay opacity at flash start
	FlashInitialOpacity = 0.35

	// FlashStep is the per-frame opacity decrement
	FlashStep = 0.02
)
