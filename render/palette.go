package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MustHex parses "#rrggbb", panics on malformed input (palette literals only)
func MustHex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette color " + s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}
}

// Hue returns a saturated neon color at hue degrees
func Hue(deg float64) RGB {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	r, g, b := colorful.Hsv(deg, 0.85, 1.0).Clamped().RGB255()
	return RGB{r, g, b}
}

// HueOf returns the hue of c in degrees
func HueOf(c RGB) float64 {
	h, _, _ := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsv()
	return h
}

// Neon palette
var (
	RgbCyan   = MustHex("#00f0ff")
	RgbPink   = MustHex("#ff00aa")
	RgbPurple = MustHex("#b400ff")
	RgbYellow = MustHex("#f0ff00")
	RgbGreen  = MustHex("#00ff88")
	RgbOrange = MustHex("#ff6b00")
	RgbGold   = MustHex("#ffd700")
	RgbRed    = MustHex("#ff2a3d")

	RgbBackground = MustHex("#0b0716")
	RgbCardBg     = MustHex("#140c26")
	RgbCardText   = MustHex("#e8e6ff")
	RgbCardDim    = MustHex("#8a86a8")
)

// ConfettiColors is the confetti palette
var ConfettiColors = []RGB{RgbCyan, RgbPink, RgbPurple, RgbYellow, RgbGreen, RgbOrange}

// SparkleColors is the sparkle palette
var SparkleColors = []RGB{RGBWhite, RgbCyan, RgbPink, RgbYellow}
