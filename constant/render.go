package constant

// Render alpha levels
const (
	// GlowHaloAlpha is the background tint strength under bright particles
	GlowHaloAlpha = 0.25

	// CardBackgroundAlpha is the alert card fill strength over the surface
	CardBackgroundAlpha = 0.85
)
