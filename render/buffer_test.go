package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestBufferClearUsesBackground(t *testing.T) {
	bg := RGB{1, 2, 3}
	b := NewBuffer(10, 4, bg)
	b.SetCell(2, 2, 'x', RGBWhite, RGBWhite)
	b.Clear()
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			c := b.Get(x, y)
			if c.Rune != ' ' || c.Bg != bg {
				t.Fatalf("Expected cleared cell at %d,%d, got %+v", x, y, c)
			}
		}
	}
}

func TestBufferOffsetTranslatesWrites(t *testing.T) {
	b := NewBuffer(10, 5, RGBBlack)
	b.SetOffset(2, 1)
	b.SetCell(0, 0, 'a', RGBWhite, RGBBlack)
	if got := b.Get(2, 1).Rune; got != 'a' {
		t.Errorf("Expected 'a' at translated position, got %q", got)
	}
	if got := b.Get(0, 0).Rune; got != ' ' {
		t.Errorf("Expected untouched origin, got %q", got)
	}

	// Writes pushed off-surface are dropped
	b.SetCell(9, 4, 'z', RGBWhite, RGBBlack)
	dx, dy := b.Offset()
	if dx != 2 || dy != 1 {
		t.Errorf("Expected offset 2,1, got %d,%d", dx, dy)
	}
}

func TestBufferGlyphFadesIntoBackground(t *testing.T) {
	bg := RGB{20, 20, 20}
	b := NewBuffer(4, 4, bg)
	b.SetGlyph(1, 1, '*', RGBWhite, 0.0)
	if got := b.Get(1, 1).Rune; got != ' ' {
		t.Errorf("Expected invisible glyph to be skipped, got %q", got)
	}
	b.SetGlyph(1, 1, '*', RGBWhite, 0.5)
	c := b.Get(1, 1)
	if c.Rune != '*' {
		t.Errorf("Expected '*', got %q", c.Rune)
	}
	if c.Fg.R <= bg.R || c.Fg.R >= 255 {
		t.Errorf("Expected partially blended fg, got %v", c.Fg)
	}
}

func TestBufferFillOverlaysEveryCell(t *testing.T) {
	b := NewBuffer(3, 3, RGBBlack)
	b.Fill(RgbGold, 0.35)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if b.Get(x, y).Bg == RGBBlack {
				t.Fatalf("Expected tinted background at %d,%d", x, y)
			}
		}
	}
}

func TestDrawTextWideRunes(t *testing.T) {
	b := NewBuffer(10, 1, RGBBlack)
	n := b.DrawText(0, 0, "💰ab", RGBWhite)
	if n != 4 {
		t.Errorf("Expected 4 columns, got %d", n)
	}
	if b.Get(0, 0).Rune != '💰' || b.Get(1, 0).Rune != 0 || b.Get(2, 0).Rune != 'a' {
		t.Errorf("Expected wide rune with continuation cell, got %q %q %q",
			b.Get(0, 0).Rune, b.Get(1, 0).Rune, b.Get(2, 0).Rune)
	}
	if TextWidth("💰ab") != 4 {
		t.Errorf("Expected text width 4")
	}
}

func TestResizeReusesCapacity(t *testing.T) {
	b := NewBuffer(10, 10, RGBBlack)
	b.Resize(5, 5)
	w, h := b.Size()
	if w != 5 || h != 5 {
		t.Errorf("Expected 5x5, got %dx%d", w, h)
	}
	if cap(b.cells) < 100 {
		t.Errorf("Expected capacity to be retained")
	}
}

func TestFlushToSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(8, 2)

	b := NewBuffer(8, 2, RGBBlack)
	b.SetCell(3, 1, '#', RgbPink, RgbCyan)
	Flush(screen, b)

	mainc, _, style, _ := screen.GetContent(3, 1)
	if mainc != '#' {
		t.Errorf("Expected '#', got %q", mainc)
	}
	fg, bg, _ := style.Decompose()
	if want := RGBToTcell(RgbPink); fg != want {
		t.Errorf("Expected fg %v, got %v", want, fg)
	}
	if want := RGBToTcell(RgbCyan); bg != want {
		t.Errorf("Expected bg %v, got %v", want, bg)
	}
}
