package engine

import (
	"math"

	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/render"
)

var (
	confettiGlyphs = [...]rune{'▀', '▐', '▄', '▌'}
	sparkleGlyphs  = [...]rune{'·', '+', '*', '✦'}
)

// cell maps a simulation position to a cell coordinate
func (e *Engine) cell(p Vec2) (int, int) {
	return int(math.Floor(p.X / e.cellW)), int(math.Floor(p.Y / e.cellH))
}

// draw renders one particle; dispatch mirrors step
func (e *Engine) draw(buf *render.Buffer, p *Particle) {
	switch p.Kind {
	case KindConfetti:
		x, y := e.cell(p.Pos)
		g := confettiGlyphs[int(p.Confetti.Rotation/90)%len(confettiGlyphs)]
		buf.SetGlyph(x, y, g, p.Color, p.Opacity)

	case KindSparkle:
		e.drawTrail(buf, &p.Sparkle.Trail, '·', p.Color, p.Opacity)
		x, y := e.cell(p.Pos)
		idx := int(p.Size / 1.6)
		if idx >= len(sparkleGlyphs) {
			idx = len(sparkleGlyphs) - 1
		}
		buf.SetGlyph(x, y, sparkleGlyphs[idx], p.Color, p.Opacity)

	case KindGlowOrb:
		x, y := e.cell(p.Pos)
		halo := constant.GlowHaloAlpha * p.Opacity
		for dy := -1; dy <= 1; dy++ {
			for dx := -2; dx <= 2; dx++ {
				buf.SetBg(x+dx, y+dy, p.Color, render.BlendAdd, halo)
			}
		}
		buf.SetBg(x, y, p.Color, render.BlendAdd, halo)
		buf.SetGlyph(x, y, '●', p.Color, p.Opacity)

	case KindRing, KindExpandingRing:
		e.drawRing(buf, p)

	case KindRaider:
		e.drawTrail(buf, &p.Streak.Trail, '│', p.Color, p.Opacity)
		x, y := e.cell(p.Pos)
		buf.SetGlyph(x, y, '▼', p.Color, p.Opacity)

	case KindFireworkSpark:
		e.drawTrail(buf, &p.Streak.Trail, '·', p.Color, p.Opacity)
		x, y := e.cell(p.Pos)
		buf.SetGlyph(x, y, '*', p.Color, p.Opacity)

	case KindAmbientMote:
		x, y := e.cell(p.Pos)
		buf.SetGlyph(x, y, '∙', p.Color, p.Opacity)
	}
}

// drawTrail fades older positions linearly toward zero
func (e *Engine) drawTrail(buf *render.Buffer, t *Trail, glyph rune, color render.RGB, opacity float64) {
	n := t.Len()
	for i := n - 1; i >= 0; i-- {
		x, y := e.cell(t.At(i))
		buf.SetGlyph(x, y, glyph, color, opacity*float64(n-i)/float64(n+1))
	}
}

// drawRing samples the circumference densely enough to touch each cell once
func (e *Engine) drawRing(buf *render.Buffer, p *Particle) {
	r := p.Size
	if r <= 0 {
		return
	}
	alpha := p.Opacity * p.Ring.Thickness
	steps := int(2*math.Pi*r/math.Min(e.cellW, e.cellH)) + 8
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i < steps; i++ {
		a := float64(i) / float64(steps) * 2 * math.Pi
		x, y := e.cell(Vec2{p.Pos.X + r*math.Cos(a), p.Pos.Y + r*math.Sin(a)})
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		buf.SetBg(x, y, p.Color, render.BlendAdd, alpha*0.6)
	}
}
