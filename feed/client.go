package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/status"
)

var (
	// ErrClosed means the server ended the session with a close or disconnect packet
	ErrClosed = errors.New("feed: session closed by server")

	// ErrNoToken means the client was started without a socket token
	ErrNoToken = errors.New("feed: no socket token")
)

// Status is the connectivity state published to the overlay
type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusDisconnected
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Config holds the socket endpoint and reconnect tuning
type Config struct {
	URL        string
	Token      string
	MinBackoff time.Duration
	MaxBackoff time.Duration
	Dialer     *websocket.Dialer
}

// StatusFunc receives connectivity changes; it is called from the client's goroutines
type StatusFunc func(s Status, err error)

// Client keeps one Streamlabs socket session alive and hands decoded events to a callback
type Client struct {
	cfg      Config
	log      *slog.Logger
	onStatus StatusFunc

	statConnected *atomic.Bool
	statEvents    *atomic.Int64
	statState     *status.AtomicString
}

// NewClient creates a client; zero backoff values take the defaults
func NewClient(cfg Config, reg *status.Registry, log *slog.Logger) *Client {
	if cfg.MinBackoff <= 0 {
		cfg.MinBackoff = constant.FeedMinBackoff
	}
	if cfg.MaxBackoff < cfg.MinBackoff {
		cfg.MaxBackoff = max(constant.FeedMaxBackoff, cfg.MinBackoff)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.Dialer == nil {
		cfg.Dialer = &websocket.Dialer{HandshakeTimeout: constant.FeedHandshakeTimeout}
	}

	c := &Client{
		cfg:           cfg,
		log:           log,
		statConnected: reg.Bools.Get(status.FeedConnected),
		statEvents:    reg.Ints.Get(status.FeedEvents),
		statState:     reg.Strings.Get(status.FeedState),
	}
	c.statState.Store(StatusDisconnected.String())
	return c
}

// SetStatusHandler registers the connectivity callback; call before Run
func (c *Client) SetStatusHandler(fn StatusFunc) {
	c.onStatus = fn
}

// Run connects and reconnects with capped exponential backoff until ctx is cancelled
// Cancellation is a clean shutdown and returns nil
func (c *Client) Run(ctx context.Context, handle func(alert.Event)) error {
	if c.cfg.Token == "" {
		c.publish(StatusError, ErrNoToken)
		return ErrNoToken
	}

	backoff := c.cfg.MinBackoff
	for {
		c.publish(StatusConnecting, nil)
		connected, err := c.session(ctx, handle)

		if ctx.Err() != nil {
			c.publish(StatusDisconnected, nil)
			return nil
		}

		if connected {
			backoff = c.cfg.MinBackoff
		}
		if err != nil && !errors.Is(err, ErrClosed) {
			c.publish(StatusError, err)
		} else {
			c.publish(StatusDisconnected, err)
		}
		c.log.Debug("feed session ended", "connected", connected, "next_delay", backoff, "error", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.publish(StatusDisconnected, nil)
			return nil
		case <-timer.C:
		}
		backoff = min(backoff*2, c.cfg.MaxBackoff)
	}
}

func (c *Client) publish(s Status, err error) {
	c.statConnected.Store(s == StatusConnected)
	c.statState.Store(s.String())
	if c.onStatus != nil {
		c.onStatus(s, err)
	}
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("parsing feed url: %w", err)
	}
	q := u.Query()
	q.Set("token", c.cfg.Token)
	q.Set("EIO", "3")
	q.Set("transport", "websocket")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// session runs one socket connection to completion
// connected reports whether the Socket.IO connect packet was seen
func (c *Client) session(ctx context.Context, handle func(alert.Event)) (connected bool, err error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return false, err
	}

	conn, resp, err := c.cfg.Dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return false, fmt.Errorf("dialing feed: %w", err)
	}
	defer conn.Close()

	h, err := readHandshake(conn)
	if err != nil {
		return false, err
	}
	interval := h.pingInterval(constant.FeedPingInterval)
	readWindow := interval + h.pingTimeout(constant.FeedPingTimeout)
	c.log.Debug("feed handshake", "sid", h.SID, "ping_interval", interval)

	s := &session{conn: conn}
	var sawConnect atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		conn.Close()
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := s.write(framePing); err != nil {
					return fmt.Errorf("sending ping: %w", err)
				}
			}
		}
	})
	g.Go(func() error {
		for {
			conn.SetReadDeadline(time.Now().Add(readWindow))
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("reading feed: %w", err)
			}

			p, err := parsePacket(frame)
			if err != nil {
				c.log.Warn("feed frame dropped", "error", err)
				continue
			}

			switch p.kind {
			case packetPing:
				if err := s.write(framePong); err != nil {
					return fmt.Errorf("sending pong: %w", err)
				}
			case packetConnect:
				if sawConnect.CompareAndSwap(false, true) {
					c.publish(StatusConnected, nil)
				}
			case packetClose, packetDisconnect:
				return ErrClosed
			case packetError:
				return fmt.Errorf("feed rejected session: %s", p.text)
			case packetEvent:
				c.dispatch(p, handle)
			}
		}
	})

	err = g.Wait()
	return sawConnect.Load(), err
}

func (c *Client) dispatch(p packet, handle func(alert.Event)) {
	if p.name != streamlabsEvent || len(p.data) == 0 {
		return
	}
	ev, err := alert.DecodeEvent(p.data)
	if err != nil {
		c.log.Warn("feed event dropped", "error", err)
		return
	}
	c.statEvents.Add(1)
	c.log.Debug("feed event", "type", ev.Type, "for", ev.For, "items", len(ev.Items))
	handle(ev)
}

func readHandshake(conn *websocket.Conn) (handshake, error) {
	conn.SetReadDeadline(time.Now().Add(constant.FeedHandshakeTimeout))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		return handshake{}, fmt.Errorf("reading handshake: %w", err)
	}
	p, err := parsePacket(frame)
	if err != nil {
		return handshake{}, err
	}
	if p.kind != packetOpen {
		return handshake{}, fmt.Errorf("expected open packet, got %q", frame)
	}
	return p.open, nil
}

// session serializes writes; gorilla connections allow one concurrent writer
type session struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *session) write(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, frame)
}
