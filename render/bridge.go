package render

import "github.com/gdamore/tcell/v2"

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// Flush writes the buffer to the screen and shows it
func Flush(screen tcell.Screen, buf *Buffer) {
	for y := 0; y < buf.height; y++ {
		row := buf.cells[y*buf.width : (y+1)*buf.width]
		for x := range row {
			c := &row[x]
			if c.Rune == 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(RGBToTcell(c.Fg)).Background(RGBToTcell(c.Bg))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}
