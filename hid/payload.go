package hid

import "encoding/binary"

// Payload is the 144-byte record carrying a timestamp and one event.
//
// Layout:
//
//	prologue word     +0x00  4
//	timestamp         +0x04  8
//	epilogue word     +0x0c  4
//	event union       +0x10  128
//
// The two words are undocumented; the reference producer leaves them
// zero. They are preserved byte-for-byte on round-trip.
type Payload struct {
	Prologue  uint32
	Timestamp uint64
	Epilogue  uint32
	Event     Event

	// Trailing holds the union bytes beyond the active variant,
	// captured on decode so they are never silently dropped. Nil on
	// encode means zero-fill.
	Trailing []byte
}

// NewPayload wraps an event with a timestamp.
func NewPayload(e Event, timestamp uint64) *Payload {
	return &Payload{Timestamp: timestamp, Event: e}
}

// EncodePayload encodes the payload into its fixed 144-byte layout.
// Fails with MalformedEvent if the event plus trailing bytes do not
// fit the union region, or if trailing bytes are present but do not
// fill it exactly.
func EncodePayload(p *Payload) ([]byte, error) {
	if p.Event == nil {
		return nil, wireErrorf(MalformedEvent, "payload has no event")
	}
	encoded, err := EncodeEvent(p.Event)
	if err != nil {
		return nil, err
	}
	if len(encoded) > EventUnionSize {
		return nil, wireErrorf(MalformedEvent, "event is %d bytes, union holds %d", len(encoded), EventUnionSize)
	}
	remainder := EventUnionSize - len(encoded)
	if p.Trailing != nil && len(p.Trailing) != remainder {
		return nil, wireErrorf(MalformedEvent, "trailing bytes are %d, union remainder is %d", len(p.Trailing), remainder)
	}

	buf := make([]byte, PayloadSize)
	binary.LittleEndian.PutUint32(buf[0x00:], p.Prologue)
	binary.LittleEndian.PutUint64(buf[0x04:], p.Timestamp)
	binary.LittleEndian.PutUint32(buf[0x0c:], p.Epilogue)
	copy(buf[0x10:], encoded)
	copy(buf[0x10+len(encoded):], p.Trailing)
	return buf, nil
}

// DecodePayload decodes a 144-byte payload region using the externally
// supplied discriminant. Union bytes beyond the active variant are
// captured in Trailing. An unknown discriminant yields a RawEvent
// spanning the whole union plus a warning-grade error, exactly as
// DecodeEvent does.
func DecodePayload(b []byte, kind EventKind) (*Payload, error) {
	if len(b) != PayloadSize {
		return nil, wireErrorf(MalformedEvent, "payload is %d bytes, want %d", len(b), PayloadSize)
	}
	p := &Payload{
		Prologue:  binary.LittleEndian.Uint32(b[0x00:]),
		Timestamp: binary.LittleEndian.Uint64(b[0x04:]),
		Epilogue:  binary.LittleEndian.Uint32(b[0x0c:]),
	}

	union := b[0x10 : 0x10+EventUnionSize]
	size := variantSize(kind)
	event, err := DecodeEvent(union[:size], kind)
	if event == nil {
		return nil, err
	}
	p.Event = event
	if size < EventUnionSize {
		p.Trailing = make([]byte, EventUnionSize-size)
		copy(p.Trailing, union[size:])
	}
	return p, err
}

// variantSize returns the fixed size of a variant, or the full union
// size for kinds outside the known set.
func variantSize(kind EventKind) int {
	switch kind {
	case EventKindTouch:
		return TouchEventSize
	case EventKindButton:
		return ButtonEventSize
	case EventKindGameController:
		return GameControllerEventSize
	default:
		return EventUnionSize
	}
}
