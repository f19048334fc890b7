package presenter

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/render"
	"github.com/lixenwraith/alert-fx/scheduler"
)

// Card geometry in cells
const (
	cardMinWidth     = 34
	cardPadX         = 3
	cardMessageLines = 3
)

// cardLines builds the visible rows; empty amount and message rows are omitted
func cardLines(v scheduler.View, inner int) (header, name, amount string, message []string) {
	st := StyleFor(v.Alert.Category)
	header = st.Icon + "  " + st.Label
	name = v.Alert.DisplayName
	amount = v.Alert.AmountLabel
	if v.Alert.Note != "" {
		message = wrap(v.Alert.Note, inner, cardMessageLines)
	}
	return header, name, amount, message
}

// wrap splits s into at most maxLines lines of width w, truncating the last
func wrap(s string, w, maxLines int) []string {
	words := strings.Fields(s)
	var lines []string
	var cur strings.Builder
	for i, word := range words {
		candidate := word
		if cur.Len() > 0 {
			candidate = cur.String() + " " + word
		}
		if runewidth.StringWidth(candidate) <= w {
			cur.Reset()
			cur.WriteString(candidate)
			continue
		}
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if len(lines) == maxLines-1 {
			rest := strings.Join(words[i:], " ")
			lines = append(lines, runewidth.Truncate(rest, w, "…"))
			return lines
		}
		cur.WriteString(runewidth.Truncate(word, w, "…"))
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// easeOutBack overshoots slightly before settling, for the entrance slide
func easeOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// placement returns the card's vertical shift and opacity for the current phase
func placement(v scheduler.View, rows int) (shift int, alpha float64) {
	switch v.State {
	case scheduler.StateEntering:
		return int(math.Round(-float64(rows) * (1 - easeOutBack(v.Progress)))), math.Min(1, v.Progress*2)
	case scheduler.StateExiting:
		return int(math.Round(float64(rows) / 3 * v.Progress * v.Progress)), 1 - v.Progress
	default:
		return 0, 1
	}
}

// DrawCard renders the active alert over buf; tick advances the chromatic accent
func DrawCard(buf *render.Buffer, v scheduler.View, tick uint64) {
	if !v.State.Visible() {
		return
	}
	cols, rows := buf.Size()
	st := StyleFor(v.Alert.Category)

	inner := max(cardMinWidth, cols/3)
	inner = min(inner, cols-2*cardPadX-2)
	if inner <= 0 {
		return
	}
	header, name, amount, message := cardLines(v, inner)

	height := 5 // border, header, blank, name, border
	if amount != "" {
		height++
	}
	if len(message) > 0 {
		height += 1 + len(message)
	}
	width := inner + 2*cardPadX + 2

	shift, alpha := placement(v, rows)
	x0 := (cols - width) / 2
	y0 := rows*2/5 - height/2 + shift

	border := st.Accent
	if st.Chromatic {
		border = render.Hue(float64(tick*6%360) + render.HueOf(st.Accent))
	}

	// Background and border
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetBg(x0+x, y0+y, render.RgbCardBg, render.BlendAlpha, constant.CardBackgroundAlpha*alpha)
			edge := y == 0 || y == height-1 || x == 0 || x == width-1
			if edge {
				buf.SetGlyph(x0+x, y0+y, borderRune(x, y, width, height), border, alpha)
			}
		}
	}

	textX := x0 + 1 + cardPadX
	center := func(s string) int { return x0 + (width-runewidth.StringWidth(s))/2 }
	row := y0 + 1

	headerX := center(header)
	if st.Chromatic {
		// Split-channel ghost behind the label only; the icon may be double width
		labelX := headerX + runewidth.StringWidth(header) - runewidth.StringWidth(st.Label)
		drawFaded(buf, labelX-1, row, st.Label, render.RgbRed, alpha*0.4)
		drawFaded(buf, labelX+1, row, st.Label, render.RgbCyan, alpha*0.4)
	}
	drawFaded(buf, headerX, row, header, st.Accent, alpha)
	row += 2

	drawFaded(buf, center(name), row, name, render.RgbCardText, alpha)
	row++

	if amount != "" {
		drawFaded(buf, center(amount), row, amount, st.Accent, alpha)
		row++
	}
	if len(message) > 0 {
		row++
		for _, line := range message {
			drawFaded(buf, textX, row, line, render.RgbCardDim, alpha)
			row++
		}
	}
}

// drawFaded writes text whose color is blended toward the card background by alpha
func drawFaded(buf *render.Buffer, x, y int, s string, fg render.RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	buf.DrawText(x, y, s, render.Blend(render.RgbCardBg, fg, alpha))
}

func borderRune(x, y, w, h int) rune {
	switch {
	case x == 0 && y == 0:
		return '╭'
	case x == w-1 && y == 0:
		return '╮'
	case x == 0 && y == h-1:
		return '╰'
	case x == w-1 && y == h-1:
		return '╯'
	case y == 0 || y == h-1:
		return '─'
	default:
		return '│'
	}
}
