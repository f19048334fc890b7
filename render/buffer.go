package render

import "github.com/mattn/go-runewidth"

// Cell is one raster unit of the surface
// Rune 0 marks the trailing half of a wide glyph and is skipped on flush
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Buffer is the drawing surface: a cell grid with a global translation offset
// Every write is shifted by the offset, which is how screen shake moves the whole frame
type Buffer struct {
	cells      []Cell
	width      int
	height     int
	offX, offY int
	background RGB
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int, background RGB) *Buffer {
	b := &Buffer{background: background}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions in cells
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Background returns the clear color
func (b *Buffer) Background() RGB {
	return b.background
}

// SetOffset sets the translation applied to all subsequent writes
func (b *Buffer) SetOffset(dx, dy int) {
	b.offX = dx
	b.offY = dy
}

// Offset returns the current translation
func (b *Buffer) Offset() (int, int) {
	return b.offX, b.offY
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: b.background, Bg: b.background}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// index translates and bounds-checks a coordinate
func (b *Buffer) index(x, y int) (int, bool) {
	x += b.offX
	y += b.offY
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// Get returns the cell at the untranslated position
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Fill composites color over every cell background and foreground
// Used for the full-surface flash overlay
func (b *Buffer) Fill(color RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	for i := range b.cells {
		c := &b.cells[i]
		c.Bg = Blend(c.Bg, color, alpha)
		c.Fg = Blend(c.Fg, color, alpha)
	}
}

// SetGlyph draws r with fg blended over the cell's current background by alpha
// A glyph at alpha near zero disappears into the background
func (b *Buffer) SetGlyph(x, y int, r rune, fg RGB, alpha float64) {
	idx, ok := b.index(x, y)
	if !ok || alpha <= 0 {
		return
	}
	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = Blend(dst.Bg, fg, alpha)
}

// SetBg composites bg onto the cell background with the given mode
func (b *Buffer) SetBg(x, y int, bg RGB, mode BlendMode, alpha float64) {
	idx, ok := b.index(x, y)
	if !ok {
		return
	}
	dst := &b.cells[idx]
	dst.Bg = mode.Apply(dst.Bg, bg, alpha)
}

// SetCell writes an opaque cell
func (b *Buffer) SetCell(x, y int, r rune, fg, bg RGB) {
	idx, ok := b.index(x, y)
	if !ok {
		return
	}
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
}

// DrawText writes s starting at x,y with fg over the existing background
// Returns the number of columns consumed
func (b *Buffer) DrawText(x, y int, s string, fg RGB) int {
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if idx, ok := b.index(x+col, y); ok {
			b.cells[idx].Rune = r
			b.cells[idx].Fg = fg
		}
		if w == 2 {
			if idx, ok := b.index(x+col+1, y); ok {
				b.cells[idx].Rune = 0
			}
		}
		col += w
	}
	return col
}

// TextWidth returns the column width of s
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
