package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Engine.IO v3 packet types, first byte of every text frame
const (
	eioOpen    = '0'
	eioClose   = '1'
	eioPing    = '2'
	eioPong    = '3'
	eioMessage = '4'
	eioUpgrade = '5'
	eioNoop    = '6'
)

// Socket.IO v2 packet types, first byte after the Engine.IO message marker
const (
	sioConnect    = '0'
	sioDisconnect = '1'
	sioEvent      = '2'
	sioError      = '4'
)

// streamlabsEvent is the Socket.IO event name carrying alerts
const streamlabsEvent = "event"

var errEmptyPacket = errors.New("empty packet")

// packetKind classifies a decoded frame for the session loop
type packetKind int

const (
	packetIgnore packetKind = iota
	packetOpen
	packetClose
	packetPing
	packetPong
	packetConnect
	packetDisconnect
	packetEvent
	packetError
)

// packet is one decoded text frame
type packet struct {
	kind packetKind
	// open carries the handshake for packetOpen
	open handshake
	// name and data carry the event for packetEvent; data is the first argument
	name string
	data json.RawMessage
	// text carries the error payload for packetError
	text string
}

// handshake is the Engine.IO open payload; intervals are milliseconds
type handshake struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
}

func (h handshake) pingInterval(fallback time.Duration) time.Duration {
	if h.PingInterval <= 0 {
		return fallback
	}
	return time.Duration(h.PingInterval) * time.Millisecond
}

func (h handshake) pingTimeout(fallback time.Duration) time.Duration {
	if h.PingTimeout <= 0 {
		return fallback
	}
	return time.Duration(h.PingTimeout) * time.Millisecond
}

// parsePacket decodes one Engine.IO text frame
// Socket.IO namespaces other than "/" and ack ids are not used by the feed and are skipped
func parsePacket(frame []byte) (packet, error) {
	if len(frame) == 0 {
		return packet{}, errEmptyPacket
	}

	switch frame[0] {
	case eioOpen:
		var h handshake
		if err := json.Unmarshal(frame[1:], &h); err != nil {
			return packet{}, fmt.Errorf("decoding handshake: %w", err)
		}
		return packet{kind: packetOpen, open: h}, nil
	case eioClose:
		return packet{kind: packetClose}, nil
	case eioPing:
		return packet{kind: packetPing}, nil
	case eioPong:
		return packet{kind: packetPong}, nil
	case eioUpgrade, eioNoop:
		return packet{kind: packetIgnore}, nil
	case eioMessage:
		return parseSocketPacket(frame[1:])
	default:
		return packet{}, fmt.Errorf("unknown engine.io packet type %q", frame[0])
	}
}

func parseSocketPacket(body []byte) (packet, error) {
	if len(body) == 0 {
		return packet{}, errEmptyPacket
	}

	switch body[0] {
	case sioConnect:
		return packet{kind: packetConnect}, nil
	case sioDisconnect:
		return packet{kind: packetDisconnect}, nil
	case sioError:
		return packet{kind: packetError, text: string(body[1:])}, nil
	case sioEvent:
		return parseEvent(body[1:])
	default:
		return packet{kind: packetIgnore}, nil
	}
}

// parseEvent decodes ["name", arg, ...] after skipping an optional ack id
func parseEvent(body []byte) (packet, error) {
	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++
	}
	body = body[i:]

	var args []json.RawMessage
	if err := json.Unmarshal(body, &args); err != nil {
		return packet{}, fmt.Errorf("decoding event frame: %w", err)
	}
	if len(args) == 0 {
		return packet{}, errors.New("event frame without a name")
	}

	var name string
	if err := json.Unmarshal(args[0], &name); err != nil {
		return packet{}, fmt.Errorf("decoding event name: %w", err)
	}

	p := packet{kind: packetEvent, name: name}
	if len(args) > 1 {
		p.data = args[1]
	}
	return p, nil
}

// Outgoing frames
var (
	framePing = []byte{eioPing}
	framePong = []byte{eioPong}
)
