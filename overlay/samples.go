package overlay

import (
	"github.com/lixenwraith/alert-fx/alert"
)

// sampleKeys binds the test-alert keys
var sampleKeys = map[rune]alert.Category{
	'd': alert.CategoryDonation,
	'b': alert.CategoryBits,
	's': alert.CategorySubscription,
	'r': alert.CategoryResub,
	'R': alert.CategoryRaid,
	'h': alert.CategoryHost,
	'f': alert.CategoryFollow,
}

// SampleKeys is the key legend shown when no feed is available
const SampleKeys = "d b s r R h f"

// Sample returns a canned alert for previewing category
func Sample(c alert.Category) alert.Alert {
	switch c {
	case alert.CategoryBits:
		return alert.New(c, "BitCheerer", "Cheer100 Amazing gameplay!", "500 bits")
	case alert.CategorySubscription:
		return alert.New(c, "NewSubscriber", "Finally subbed! Love the content!", "")
	case alert.CategoryResub:
		return alert.New(c, "LoyalViewer", "Been here since day 1!", "12 months")
	case alert.CategoryRaid:
		return alert.New(c, "FriendlyStreamer", "", "150 raiders")
	case alert.CategoryHost:
		return alert.New(c, "HostingFriend", "", "42 viewers")
	case alert.CategoryFollow:
		return alert.New(c, "NewFollower", "", "")
	default:
		return alert.New(alert.CategoryDonation, "TestUser123", "Great stream! Keep it up! 🎉", "$25.00")
	}
}

// Samples returns one canned alert per category, in arrival order for a demo run
func Samples() []alert.Alert {
	out := make([]alert.Alert, 0, len(alert.Categories))
	for i := len(alert.Categories) - 1; i >= 0; i-- {
		out = append(out, Sample(alert.Categories[i]))
	}
	return out
}
