package constant

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the display frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// StatusHideDelay is how long the "Connected" banner stays visible
	StatusHideDelay = 3 * time.Second
)

// Presentation Cycle Timing
const (
	// AlertDisplayDuration is the full on-screen time measured from entrance start
	AlertDisplayDuration = 7000 * time.Millisecond

	// AlertEnterDuration is the entrance transition
	AlertEnterDuration = 800 * time.Millisecond

	// AlertHoldDuration is the fully visible time after the entrance completes
	AlertHoldDuration = AlertDisplayDuration - AlertEnterDuration

	// AlertExitDuration is the exit transition
	AlertExitDuration = 600 * time.Millisecond

	// AlertGapDuration separates consecutive alerts
	AlertGapDuration = 500 * time.Millisecond
)

// Surface Geometry
const (
	// CellWidthPx and CellHeightPx map terminal cells to simulation pixels
	CellWidthPx  = 8
	CellHeightPx = 16
)

// Feed Connection
const (
	// FeedMinBackoff is the first reconnect delay; it doubles per failed attempt
	FeedMinBackoff = time.Second

	// FeedMaxBackoff caps the reconnect delay
	FeedMaxBackoff = 30 * time.Second

	// FeedPingInterval is used until the server handshake supplies its own
	FeedPingInterval = 25 * time.Second

	// FeedPingTimeout is added to the ping interval for the read deadline
	FeedPingTimeout = 5 * time.Second

	// FeedHandshakeTimeout bounds the websocket dial
	FeedHandshakeTimeout = 10 * time.Second
)

// AlertInboxSize buffers feed alerts waiting for the run loop
const AlertInboxSize = 64

// DemoMoteCount is the number of ambient motes seeded by the demo
const DemoMoteCount = 24
