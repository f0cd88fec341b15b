// Package session drives input injection over a transport channel.
//
// A Session owns the routing metadata for one endpoint pair and turns
// semantic calls (tap here, press that button) into wire messages. It
// is constructed explicitly and passed to call sites; nothing in this
// package is a process-wide singleton.
package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/simforge-io/indigo/hid"
	"github.com/simforge-io/indigo/log"
	"github.com/simforge-io/indigo/metrics"
	"github.com/simforge-io/indigo/transport"
)

// DefaultBits is the header bits value the reference endpoint expects
// for a copied send right.
const DefaultBits = 0x13

// Recorder observes every message the session puts on the channel.
// Implementations must tolerate concurrent calls.
type Recorder interface {
	RecordMessage(kind hid.EventKind, timestamp uint64, wire []byte) error
}

// Config configures a session. Conn is required; everything else has
// usable defaults.
type Config struct {
	// SessionID labels log entries and metrics.
	SessionID string
	// Device is the target device identifier, informational.
	Device string

	// Routing metadata stamped into every message header.
	Bits        uint32
	RemotePort  uint32
	LocalPort   uint32
	VoucherPort uint32
	MessageID   int32

	// StrictTouch rejects touch positions outside [0.0, 1.0] instead
	// of passing them through.
	StrictTouch bool

	Conn     transport.Conn
	Logger   *log.Logger
	Metrics  *metrics.Collector
	Recorder Recorder

	// Clock supplies message timestamps. Defaults to a monotonic
	// nanosecond clock anchored at session start.
	Clock func() uint64
}

// Session injects input events over one channel.
type Session struct {
	cfg    Config
	logger *log.Logger
	closed atomic.Bool
}

// New creates a session. Returns an error when no Conn is supplied.
func New(cfg Config) (*Session, error) {
	if cfg.Conn == nil {
		return nil, fmt.Errorf("session %q: no transport conn", cfg.SessionID)
	}
	if cfg.Bits == 0 {
		cfg.Bits = DefaultBits
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Nop()
	}
	if cfg.Clock == nil {
		start := time.Now()
		cfg.Clock = func() uint64 { return uint64(time.Since(start)) }
	}
	return &Session{cfg: cfg, logger: cfg.Logger}, nil
}

// header returns the routing header for an outbound message.
func (s *Session) header() hid.Header {
	return hid.Header{
		Bits:        s.cfg.Bits,
		RemotePort:  s.cfg.RemotePort,
		LocalPort:   s.cfg.LocalPort,
		VoucherPort: s.cfg.VoucherPort,
		MessageID:   s.cfg.MessageID,
	}
}

// Tap sends a down/up pair at the normalized position.
func (s *Session) Tap(ctx context.Context, x, y float64) error {
	if err := s.Touch(ctx, x, y, hid.DirectionDown); err != nil {
		return err
	}
	return s.Touch(ctx, x, y, hid.DirectionUp)
}

// TouchDown begins a contact at the normalized position.
func (s *Session) TouchDown(ctx context.Context, x, y float64) error {
	return s.Touch(ctx, x, y, hid.DirectionDown)
}

// TouchMove continues a contact at a new position. On the wire this is
// a down-phase message with updated coordinates.
func (s *Session) TouchMove(ctx context.Context, x, y float64) error {
	return s.Touch(ctx, x, y, hid.DirectionDown)
}

// TouchUp ends a contact at the normalized position.
func (s *Session) TouchUp(ctx context.Context, x, y float64) error {
	return s.Touch(ctx, x, y, hid.DirectionUp)
}

// Touch sends one touch message. The trailing payload slot is filled
// with a duplicate of the primary contact.
func (s *Session) Touch(ctx context.Context, x, y float64, phase hid.Direction) error {
	return s.MultiTouch(ctx, hid.NewTouch(x, y, phase), nil)
}

// MultiTouch sends one touch message with an explicit paired contact
// in the trailing payload slot. A nil secondary duplicates the
// primary.
func (s *Session) MultiTouch(ctx context.Context, primary, secondary *hid.TouchEvent) error {
	if s.cfg.StrictTouch {
		if err := hid.ValidateTouch(primary.X, primary.Y); err != nil {
			return err
		}
		if secondary != nil {
			if err := hid.ValidateTouch(secondary.X, secondary.Y); err != nil {
				return err
			}
		}
	}

	ts := s.cfg.Clock()
	var second *hid.Payload
	if secondary != nil {
		second = hid.NewPayload(secondary, ts)
	}
	wire, err := hid.BuildTouchMessage(s.header(), hid.NewPayload(primary, ts), second)
	if err != nil {
		return err
	}
	s.cfg.Metrics.IncEncoded(hid.EventKindTouch.String())
	s.logger.Debug("touch", map[string]any{
		"x":     primary.X,
		"y":     primary.Y,
		"phase": primary.Phase().String(),
	})
	return s.send(ctx, hid.EventKindTouch, ts, wire)
}

// PressButton sends a down/up pair for a hardware button source.
func (s *Session) PressButton(ctx context.Context, source hid.ButtonSource) error {
	if err := s.Button(ctx, source, hid.ButtonTargetHardware, 0, hid.DirectionDown); err != nil {
		return err
	}
	return s.Button(ctx, source, hid.ButtonTargetHardware, 0, hid.DirectionUp)
}

// PressKey sends a down/up pair for a key code through the keyboard
// source and target.
func (s *Session) PressKey(ctx context.Context, keyCode uint32) error {
	if err := s.Button(ctx, hid.ButtonSourceKeyboard, hid.ButtonTargetKeyboard, keyCode, hid.DirectionDown); err != nil {
		return err
	}
	return s.Button(ctx, hid.ButtonSourceKeyboard, hid.ButtonTargetKeyboard, keyCode, hid.DirectionUp)
}

// Button sends one button message.
func (s *Session) Button(ctx context.Context, source hid.ButtonSource, target hid.ButtonTarget, keyCode uint32, direction hid.Direction) error {
	event := &hid.ButtonEvent{
		Source:    source,
		Direction: direction,
		Target:    target,
		KeyCode:   keyCode,
	}
	if !event.KnownCodes() {
		s.cfg.Metrics.IncUnknownCodes()
		s.logger.Warn("button with undocumented code", map[string]any{
			"source": uint32(source),
			"target": uint32(target),
		})
	}

	ts := s.cfg.Clock()
	wire, err := hid.BuildMessage(s.header(), hid.EventKindButton, hid.NewPayload(event, ts))
	if err != nil {
		return err
	}
	s.cfg.Metrics.IncEncoded(hid.EventKindButton.String())
	s.logger.Debug("button", map[string]any{
		"source":    uint32(source),
		"direction": direction.String(),
		"key_code":  keyCode,
	})
	return s.send(ctx, hid.EventKindButton, ts, wire)
}

// GameController sends one controller state snapshot. The kind byte is
// the locally negotiated game-controller value; the format reserves no
// discriminant for it.
func (s *Session) GameController(ctx context.Context, event *hid.GameControllerEvent) error {
	ts := s.cfg.Clock()
	wire, err := hid.BuildMessage(s.header(), hid.EventKindGameController, hid.NewPayload(event, ts))
	if err != nil {
		return err
	}
	s.cfg.Metrics.IncEncoded(hid.EventKindGameController.String())
	return s.send(ctx, hid.EventKindGameController, ts, wire)
}

// SendWire puts an already-encoded message on the channel unchanged.
// Replay and relay paths use this to preserve foreign traffic
// bit-for-bit.
func (s *Session) SendWire(ctx context.Context, kind hid.EventKind, timestamp uint64, wire []byte) error {
	return s.send(ctx, kind, timestamp, wire)
}

func (s *Session) send(ctx context.Context, kind hid.EventKind, ts uint64, wire []byte) error {
	if s.closed.Load() {
		return transport.ErrClosed
	}
	if err := s.cfg.Conn.Send(ctx, wire); err != nil {
		s.cfg.Metrics.IncSendFailure()
		s.logger.Error("send failed", map[string]any{"kind": kind.String(), "error": err.Error()})
		return fmt.Errorf("send %s message: %w", kind, err)
	}
	s.cfg.Metrics.AddSent(len(wire))

	if s.cfg.Recorder != nil {
		if err := s.cfg.Recorder.RecordMessage(kind, ts, wire); err != nil {
			// Recording is observability, not delivery: log and move on.
			s.logger.Warn("record failed", map[string]any{"error": err.Error()})
		}
	}
	return nil
}

// Metrics returns a snapshot of the session's counters.
func (s *Session) Metrics() metrics.Snapshot {
	return s.cfg.Metrics.Snapshot()
}

// Close closes the underlying channel. Subsequent sends fail with
// transport.ErrClosed.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.cfg.Conn.Close()
}
