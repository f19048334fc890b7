package overlay

import (
	"github.com/lixenwraith/alert-fx/config"
	"github.com/lixenwraith/alert-fx/feed"
	"github.com/lixenwraith/alert-fx/render"
)

// banner is the connection line at the top of the surface
type banner struct {
	text    string
	color   render.RGB
	visible bool
}

func missingTokenBanner() banner {
	return banner{
		text:    "✕ No Streamlabs token: set " + config.TokenEnv + " or --token  (test keys: " + SampleKeys + ")",
		color:   render.RgbRed,
		visible: true,
	}
}

func bannerFor(s feed.Status, err error) banner {
	switch s {
	case feed.StatusConnecting:
		return banner{text: "⟳ Connecting to Streamlabs...", color: render.RgbYellow, visible: true}
	case feed.StatusConnected:
		return banner{text: "● Connected to Streamlabs", color: render.RgbGreen, visible: true}
	case feed.StatusDisconnected:
		return banner{text: "○ Disconnected, reconnecting...", color: render.RgbOrange, visible: true}
	default:
		text := "✕ Connection error"
		if err != nil {
			text += ": " + err.Error()
		}
		return banner{text: text, color: render.RgbRed, visible: true}
	}
}

// drawBanner centers b on the top row over a tinted strip
func drawBanner(buf *render.Buffer, b banner) {
	if !b.visible {
		return
	}
	w, _ := buf.Size()
	for x := 0; x < w; x++ {
		buf.SetBg(x, 0, b.color, render.BlendAlpha, 0.2)
	}
	x := (w - render.TextWidth(b.text)) / 2
	buf.DrawText(max(0, x), 0, b.text, b.color)
}
