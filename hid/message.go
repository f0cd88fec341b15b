package hid

import (
	"encoding/binary"
	"math"
)

// Header is the fixed 24-byte message header. Field order is wire
// order. The size field always carries the total encoded length of the
// message including the header; for touch messages that is the full
// two-payload total, since the channel send primitive needs the true
// length.
type Header struct {
	Bits uint32
	// Size is filled by the builder; caller-supplied values are
	// overwritten on build.
	Size        uint32
	RemotePort  uint32
	LocalPort   uint32
	VoucherPort uint32
	MessageID   int32
}

// Message is one parsed wire message: header, inner size, event-kind
// discriminant, and payload(s). Secondary is non-nil only for touch
// messages, which stack a standalone second payload after the message.
type Message struct {
	Header    Header
	InnerSize uint32
	EventKind EventKind
	Payload   *Payload
	Secondary *Payload
}

// BuildMessage assembles a complete 176-byte single-payload message.
//
// The inner-size field is computed as the byte length of everything
// after the header through the end of the encoded payload, which is
// always InnerSize for this fixed format; the computation is still
// checked against the field width defensively and fails with
// SizeOverflow if it cannot be represented.
func BuildMessage(h Header, kind EventKind, p *Payload) ([]byte, error) {
	encoded, err := EncodePayload(p)
	if err != nil {
		return nil, err
	}
	return assemble(h, kind, encoded, nil)
}

// BuildTouchMessage assembles a complete 320-byte touch message: one
// message followed immediately by one standalone encoded payload. A
// nil secondary duplicates the primary payload, the common case for a
// single contact point; callers pass a distinct secondary for a paired
// multi-touch contact.
//
// The inner-size field covers only the first payload — the trailing
// payload is not counted. This asymmetry is how the format works on
// the wire and is preserved exactly; the header size field, by
// contrast, carries the full 320-byte total.
func BuildTouchMessage(h Header, primary, secondary *Payload) ([]byte, error) {
	first, err := EncodePayload(primary)
	if err != nil {
		return nil, err
	}
	if secondary == nil {
		secondary = primary
	}
	second, err := EncodePayload(secondary)
	if err != nil {
		return nil, err
	}
	return assemble(h, EventKindTouch, first, second)
}

// assemble lays out header, size fields, discriminant, padding, and
// payload bytes. The 3 padding bytes after the discriminant are always
// zero.
func assemble(h Header, kind EventKind, payload, extra []byte) ([]byte, error) {
	inner := 4 + 1 + 3 + len(payload)
	total := HeaderSize + inner + len(extra)
	if int64(total) > math.MaxUint32 || int64(inner) > math.MaxUint32 {
		return nil, wireErrorf(SizeOverflow, "message size %d exceeds size field width", total)
	}

	buf := make([]byte, total)
	h.Size = uint32(total)
	putHeader(buf, h)
	binary.LittleEndian.PutUint32(buf[offInnerSize:], uint32(inner))
	buf[offEventKind] = byte(kind)
	copy(buf[offPayload:], payload)
	copy(buf[offPayload+len(payload):], extra)
	return buf, nil
}

// ParseMessage decodes a complete wire message.
//
// Fails with TruncatedMessage when fewer than 176 bytes are supplied.
// A touch-discriminant message requires the full 320-byte two-payload
// total and fails with MissingSecondaryPayload between those sizes.
// Nonzero padding after the discriminant is a wire-format error.
//
// An unknown discriminant parses successfully with RawEvent payloads
// and returns a warning-grade UnknownDiscriminant error alongside the
// message, so relays can forward it unchanged.
func ParseMessage(b []byte) (*Message, error) {
	if len(b) < MessageSize {
		return nil, wireErrorf(TruncatedMessage, "message is %d bytes, want at least %d", len(b), MessageSize)
	}

	m := &Message{
		Header:    getHeader(b),
		InnerSize: binary.LittleEndian.Uint32(b[offInnerSize:]),
		EventKind: EventKind(b[offEventKind]),
	}
	if b[offPadding] != 0 || b[offPadding+1] != 0 || b[offPadding+2] != 0 {
		return nil, wireErrorf(MalformedEvent, "nonzero padding after event-kind discriminant")
	}

	payload, warn := DecodePayload(b[offPayload:offPayload+PayloadSize], m.EventKind)
	if payload == nil {
		return nil, warn
	}
	m.Payload = payload

	if m.EventKind == EventKindTouch {
		if len(b) < TouchMessageSize {
			return nil, wireErrorf(MissingSecondaryPayload, "touch message is %d bytes, want %d", len(b), TouchMessageSize)
		}
		secondary, err := DecodePayload(b[MessageSize:TouchMessageSize], m.EventKind)
		if err != nil {
			return nil, err
		}
		m.Secondary = secondary
	}
	return m, warn
}

func putHeader(b []byte, h Header) {
	binary.LittleEndian.PutUint32(b[0x00:], h.Bits)
	binary.LittleEndian.PutUint32(b[0x04:], h.Size)
	binary.LittleEndian.PutUint32(b[0x08:], h.RemotePort)
	binary.LittleEndian.PutUint32(b[0x0c:], h.LocalPort)
	binary.LittleEndian.PutUint32(b[0x10:], h.VoucherPort)
	binary.LittleEndian.PutUint32(b[0x14:], uint32(h.MessageID))
}

func getHeader(b []byte) Header {
	return Header{
		Bits:        binary.LittleEndian.Uint32(b[0x00:]),
		Size:        binary.LittleEndian.Uint32(b[0x04:]),
		RemotePort:  binary.LittleEndian.Uint32(b[0x08:]),
		LocalPort:   binary.LittleEndian.Uint32(b[0x0c:]),
		VoucherPort: binary.LittleEndian.Uint32(b[0x10:]),
		MessageID:   int32(binary.LittleEndian.Uint32(b[0x14:])),
	}
}
