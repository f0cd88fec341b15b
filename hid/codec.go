package hid

import (
	"encoding/binary"
	"math"
)

// Field offsets within an encoded touch event.
const (
	offTouchX         = 0x0c
	offTouchY         = 0x14
	offTouchIndicator = 0x34
)

// EncodeTouch encodes a touch event into its fixed 112-byte layout.
//
// A non-zero phase is written into both indicator words, overriding
// whatever the event holds; a zero phase keeps the stored indicator
// pair, which is what a transparent relay wants.
func EncodeTouch(e *TouchEvent, phase Direction) []byte {
	buf := make([]byte, TouchEventSize)

	for i, w := range e.Reserved {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	putFloat64(buf[offTouchX:], e.X)
	putFloat64(buf[offTouchY:], e.Y)
	for i, f := range e.ReservedF {
		putFloat64(buf[0x1c+8*i:], f)
	}

	indicator := e.Indicator
	if phase != 0 {
		indicator = [2]uint32{uint32(phase), uint32(phase)}
	}
	binary.LittleEndian.PutUint32(buf[offTouchIndicator:], indicator[0])
	binary.LittleEndian.PutUint32(buf[offTouchIndicator+4:], indicator[1])

	for i, w := range e.ReservedTail {
		binary.LittleEndian.PutUint32(buf[0x3c+4*i:], w)
	}
	for i, f := range e.ReservedTailF {
		putFloat64(buf[0x48+8*i:], f)
	}
	return buf
}

// decodeTouch decodes a 112-byte touch region. Length is checked by
// DecodeEvent.
func decodeTouch(b []byte) *TouchEvent {
	e := &TouchEvent{
		X: getFloat64(b[offTouchX:]),
		Y: getFloat64(b[offTouchY:]),
	}
	for i := range e.Reserved {
		e.Reserved[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	for i := range e.ReservedF {
		e.ReservedF[i] = getFloat64(b[0x1c+8*i:])
	}
	e.Indicator[0] = binary.LittleEndian.Uint32(b[offTouchIndicator:])
	e.Indicator[1] = binary.LittleEndian.Uint32(b[offTouchIndicator+4:])
	for i := range e.ReservedTail {
		e.ReservedTail[i] = binary.LittleEndian.Uint32(b[0x3c+4*i:])
	}
	for i := range e.ReservedTailF {
		e.ReservedTailF[i] = getFloat64(b[0x48+8*i:])
	}
	return e
}

// EncodeButton encodes a button event into its fixed 20-byte layout.
// Unknown source/target codes are accepted as-is; the enumeration is
// informative, not a schema constraint.
func EncodeButton(e *ButtonEvent) []byte {
	buf := make([]byte, ButtonEventSize)
	binary.LittleEndian.PutUint32(buf[0x00:], uint32(e.Source))
	binary.LittleEndian.PutUint32(buf[0x04:], uint32(e.Direction))
	binary.LittleEndian.PutUint32(buf[0x08:], uint32(e.Target))
	binary.LittleEndian.PutUint32(buf[0x0c:], e.KeyCode)
	binary.LittleEndian.PutUint32(buf[0x10:], e.Reserved)
	return buf
}

func decodeButton(b []byte) *ButtonEvent {
	return &ButtonEvent{
		Source:    ButtonSource(binary.LittleEndian.Uint32(b[0x00:])),
		Direction: Direction(binary.LittleEndian.Uint32(b[0x04:])),
		Target:    ButtonTarget(binary.LittleEndian.Uint32(b[0x08:])),
		KeyCode:   binary.LittleEndian.Uint32(b[0x0c:]),
		Reserved:  binary.LittleEndian.Uint32(b[0x10:]),
	}
}

// EncodeGameController encodes a controller event into its fixed
// 128-byte layout: d-pad, face, shoulder, joystick quads in order.
func EncodeGameController(e *GameControllerEvent) []byte {
	buf := make([]byte, GameControllerEventSize)
	for i, q := range []Quad{e.DPad, e.Face, e.Shoulder, e.Joystick} {
		putQuad(buf[QuadSize*i:], q)
	}
	return buf
}

func decodeGameController(b []byte) *GameControllerEvent {
	return &GameControllerEvent{
		DPad:     getQuad(b[0*QuadSize:]),
		Face:     getQuad(b[1*QuadSize:]),
		Shoulder: getQuad(b[2*QuadSize:]),
		Joystick: getQuad(b[3*QuadSize:]),
	}
}

// EncodeEvent encodes any variant into its fixed layout. Touch events
// are encoded with the phase already stored in their indicator pair;
// use EncodeTouch to apply a phase explicitly.
func EncodeEvent(e Event) ([]byte, error) {
	switch ev := e.(type) {
	case *TouchEvent:
		return EncodeTouch(ev, 0), nil
	case *ButtonEvent:
		return EncodeButton(ev), nil
	case *GameControllerEvent:
		return EncodeGameController(ev), nil
	case *RawEvent:
		out := make([]byte, len(ev.Data))
		copy(out, ev.Data)
		return out, nil
	default:
		return nil, wireErrorf(MalformedEvent, "unsupported event type %T", e)
	}
}

// DecodeEvent decodes an event region using the externally supplied
// discriminant. The byte length must match the fixed size of the
// variant exactly; a mismatch fails with MalformedEvent.
//
// An unknown discriminant decodes to a RawEvent holding the bytes
// unchanged, returned together with a warning-grade WireError of kind
// UnknownDiscriminant. The event is valid and relayable; callers that
// cannot tolerate unknown kinds check IsFatal.
func DecodeEvent(b []byte, kind EventKind) (Event, error) {
	switch kind {
	case EventKindTouch:
		if len(b) != TouchEventSize {
			return nil, wireErrorf(MalformedEvent, "touch event is %d bytes, want %d", len(b), TouchEventSize)
		}
		return decodeTouch(b), nil
	case EventKindButton:
		if len(b) != ButtonEventSize {
			return nil, wireErrorf(MalformedEvent, "button event is %d bytes, want %d", len(b), ButtonEventSize)
		}
		return decodeButton(b), nil
	case EventKindGameController:
		if len(b) != GameControllerEventSize {
			return nil, wireErrorf(MalformedEvent, "game controller event is %d bytes, want %d", len(b), GameControllerEventSize)
		}
		return decodeGameController(b), nil
	default:
		data := make([]byte, len(b))
		copy(data, b)
		return &RawEvent{RawKind: kind, Data: data},
			wireErrorf(UnknownDiscriminant, "event kind %d is not a documented discriminant", kind)
	}
}

// Fatal reports whether the error aborts the operation. Only
// UnknownDiscriminant is warning-grade: its decode still produced a
// usable RawEvent.
func (e *WireError) Fatal() bool {
	return e.Kind != UnknownDiscriminant
}

// IsFatal reports whether err should abort processing. Errors that are
// not WireErrors are always fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if we := asWireError(err); we != nil {
		return we.Fatal()
	}
	return true
}

func putFloat64(b []byte, f float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(f))
}

func getFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func putQuad(b []byte, q Quad) {
	putFloat64(b[0:], q.Top)
	putFloat64(b[8:], q.Left)
	putFloat64(b[16:], q.Bottom)
	putFloat64(b[24:], q.Right)
}

func getQuad(b []byte) Quad {
	return Quad{
		Top:    getFloat64(b[0:]),
		Left:   getFloat64(b[8:]),
		Bottom: getFloat64(b[16:]),
		Right:  getFloat64(b[24:]),
	}
}
