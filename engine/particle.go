package engine

import (
	"github.com/lixenwraith/alert-fx/render"
)

// Kind discriminates the particle variants
type Kind uint8

const (
	KindConfetti Kind = iota
	KindSparkle
	KindGlowOrb
	KindRing
	KindExpandingRing
	KindRaider
	KindFireworkSpark
	KindAmbientMote
)

var kindNames = [...]string{
	KindConfetti:      "confetti",
	KindSparkle:       "sparkle",
	KindGlowOrb:       "glow-orb",
	KindRing:          "ring",
	KindExpandingRing: "expanding-ring",
	KindRaider:        "raider",
	KindFireworkSpark: "firework-spark",
	KindAmbientMote:   "ambient-mote",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Vec2 is a position or velocity in simulation pixels
type Vec2 struct {
	X, Y float64
}

// maxTrail is the longest trail any variant keeps
const maxTrail = 6

// Trail is a fixed-capacity history of recent positions, newest first
type Trail struct {
	points [maxTrail]Vec2
	n      int
	limit  int
}

func newTrail(limit int) Trail {
	if limit > maxTrail {
		limit = maxTrail
	}
	return Trail{limit: limit}
}

// Push records p as the newest position, dropping the oldest beyond the limit
func (t *Trail) Push(p Vec2) {
	if t.limit == 0 {
		return
	}
	if t.n < t.limit {
		t.n++
	}
	copy(t.points[1:t.n], t.points[:t.n-1])
	t.points[0] = p
}

// Len returns the number of recorded positions
func (t *Trail) Len() int {
	return t.n
}

// At returns the i-th newest position
func (t *Trail) At(i int) Vec2 {
	return t.points[i]
}

// Confetti payload
type Confetti struct {
	Rotation    float64 // degrees
	Spin        float64 // degrees per frame
	WobblePhase float64
}

// Sparkle payload
type Sparkle struct {
	BaseSize   float64
	Phase      float64
	PulseSpeed float64
	Twinkles   int
	Trail      Trail
}

// Ring payload, shared by ring and expanding-ring
type Ring struct {
	MaxRadius float64
	Growth    float64
	Fade      float64
	Thickness float64
}

// Streak payload for variants that only carry a trail (raider, firework-spark)
type Streak struct {
	Trail Trail
}

// Mote payload
type Mote struct {
	Phase float64
}

// Particle is a tagged union: common kinematic fields plus the payload selected by Kind
// Only the payload matching Kind is meaningful
type Particle struct {
	Kind    Kind
	ID      uint64
	Pos     Vec2
	Vel     Vec2
	Size    float64
	Opacity float64
	Color   render.RGB

	Confetti Confetti
	Sparkle  Sparkle
	Ring     Ring
	Streak   Streak
	Mote     Mote
}

// Dead reports whether the particle must be removed this frame
func (p *Particle) Dead() bool {
	return p.Opacity <= 0 || p.Size > sizeCeiling
}
