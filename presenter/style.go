package presenter

import (
	"strings"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/audio"
	"github.com/lixenwraith/alert-fx/engine"
	"github.com/lixenwraith/alert-fx/render"
)

// Style is the static presentation of one category
type Style struct {
	Icon      string
	Label     string
	Effect    engine.Effect
	Intensity int
	Cue       audio.Cue
	Accent    render.RGB
	// Chromatic marks high-tier alerts drawn with a cycling border and split label
	Chromatic bool
}

// FallbackIcon is shown for categories without a table entry
const FallbackIcon = "🎉"

var subscriptionStyle = Style{
	Icon:      "⭐",
	Label:     "NEW SUBSCRIBER",
	Effect:    engine.EffectSubGlow,
	Intensity: 50,
	Cue:       audio.CueSubscription,
	Accent:    render.RgbPurple,
}

var followStyle = Style{
	Icon:      "❤",
	Label:     "NEW FOLLOWER",
	Effect:    engine.EffectFollowTwinkle,
	Intensity: 20,
	Cue:       audio.CueFollow,
	Accent:    render.RgbPink,
}

var styles = map[alert.Category]Style{
	alert.CategoryDonation: {
		Icon:      "💰",
		Label:     "NEW DONATION",
		Effect:    engine.EffectDonationExplosion,
		Intensity: 100,
		Cue:       audio.CueDonation,
		Accent:    render.RgbGold,
		Chromatic: true,
	},
	alert.CategoryBits: {
		Icon:      "💎",
		Label:     "BITS CHEERED",
		Effect:    engine.EffectBitsShower,
		Intensity: 80,
		Cue:       audio.CueBits,
		Accent:    render.RgbCyan,
		Chromatic: true,
	},
	alert.CategoryRaid: {
		Icon:      "⚔",
		Label:     "INCOMING RAID",
		Effect:    engine.EffectRaidInvasion,
		Intensity: 120,
		Cue:       audio.CueRaid,
		Accent:    render.RgbRed,
		Chromatic: true,
	},
	alert.CategorySubscription: subscriptionStyle,
	alert.CategoryResub:        restyle(subscriptionStyle, "🌟", "RESUBSCRIBED"),
	alert.CategoryHost: {
		Icon:      "🏠",
		Label:     "NOW HOSTING",
		Effect:    engine.EffectFollowTwinkle,
		Intensity: 30,
		Cue:       followStyle.Cue,
		Accent:    render.RgbGreen,
	},
	alert.CategoryFollow: followStyle,
}

// restyle keeps the effect, sound and accent of base with a new icon and label
func restyle(base Style, icon, label string) Style {
	base.Icon = icon
	base.Label = label
	return base
}

// StyleFor returns the style of c; unknown categories get an upper-cased label,
// the fallback icon, the follow cue and no particle effect
func StyleFor(c alert.Category) Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return Style{
		Icon:   FallbackIcon,
		Label:  strings.ToUpper(string(c)),
		Cue:    audio.CueFollow,
		Accent: render.RgbCyan,
	}
}
