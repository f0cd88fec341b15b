// Package hid implements the Indigo HID wire protocol: fixed-layout
// binary encoding of touch, hardware-button, and game-controller events
// as consumed by the simulator's input port.
//
// The format is a packed little-endian layout with 4-byte alignment.
// All offsets below are fixed; field order in this file is wire order.
//
// Single-payload message (176 bytes):
//
//	header.bits        0x00  4
//	header.size        0x04  4
//	header.remotePort  0x08  4
//	header.localPort   0x0c  4
//	header.voucherPort 0x10  4
//	header.messageId   0x14  4
//	innerSize          0x18  4
//	eventType          0x1c  1
//	(zero padding)     0x1d  3
//	payload            0x20  144
//
// A touch message appends one extra standalone payload after the
// message, for a 320-byte total. See BuildTouchMessage.
package hid

import "fmt"

// Record sizes in bytes.
const (
	// HeaderSize is the size of the message header.
	HeaderSize = 24
	// TouchEventSize is the size of an encoded touch event.
	TouchEventSize = 112
	// ButtonEventSize is the size of an encoded button event.
	ButtonEventSize = 20
	// QuadSize is the size of one game-controller quad.
	QuadSize = 32
	// GameControllerEventSize is the size of an encoded game-controller
	// event. It is the largest variant and sizes the event union.
	GameControllerEventSize = 4 * QuadSize
	// EventUnionSize is the size of the event union region inside a
	// payload, sized by the largest variant.
	EventUnionSize = GameControllerEventSize
	// PayloadSize is the size of one payload: a 4-byte word, an 8-byte
	// timestamp, a 4-byte word, and the event union.
	PayloadSize = 16 + EventUnionSize
	// MessageSize is the size of a complete single-payload message.
	MessageSize = HeaderSize + 4 + 1 + 3 + PayloadSize
	// TouchMessageSize is the size of a complete touch message: one
	// message plus one standalone trailing payload.
	TouchMessageSize = MessageSize + PayloadSize
	// InnerSize is the fixed value of the inner-size field: everything
	// after the header through the end of the first payload. The
	// trailing payload of a touch message is never counted.
	InnerSize = MessageSize - HeaderSize
)

// Field offsets within a message.
const (
	offInnerSize = 0x18
	offEventKind = 0x1c
	offPadding   = 0x1d
	offPayload   = 0x20
)

// EventKind is the 1-byte discriminant stored in the message, outside
// the event union, identifying which variant the payload carries.
type EventKind byte

// Wire discriminant values. Game-controller events have no reserved
// value in the format; EventKindGameController is a local hint that
// callers must negotiate out of band before putting it on the wire.
const (
	EventKindButton         EventKind = 1
	EventKindTouch          EventKind = 2
	EventKindGameController EventKind = 3
)

// String returns the conventional name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventKindButton:
		return "button"
	case EventKindTouch:
		return "touch"
	case EventKindGameController:
		return "game_controller"
	default:
		return "unknown"
	}
}

// Direction is the down/up code carried alongside touch and button
// events.
type Direction uint32

// Direction codes.
const (
	DirectionDown Direction = 1
	DirectionUp   Direction = 2
)

// String returns the conventional name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "down"
	case DirectionUp:
		return "up"
	default:
		return "unknown"
	}
}

// ButtonSource identifies the logical input origin of a button event
// on the remote endpoint.
type ButtonSource uint32

// Known button source codes. The enumeration is informative, not a
// schema constraint: unknown codes encode and decode without loss.
const (
	ButtonSourceHome     ButtonSource = 0x0
	ButtonSourceLock     ButtonSource = 0x1
	ButtonSourceApplePay ButtonSource = 0x1f4
	ButtonSourceSide     ButtonSource = 0xbb8
	ButtonSourceKeyboard ButtonSource = 0x2710
	ButtonSourceSiri     ButtonSource = 0x400002
)

// String returns the conventional name for the source, or its hex
// code when undocumented.
func (s ButtonSource) String() string {
	switch s {
	case ButtonSourceHome:
		return "home"
	case ButtonSourceLock:
		return "lock"
	case ButtonSourceApplePay:
		return "apple-pay"
	case ButtonSourceSide:
		return "side"
	case ButtonSourceKeyboard:
		return "keyboard"
	case ButtonSourceSiri:
		return "siri"
	default:
		return fmt.Sprintf("source(0x%x)", uint32(s))
	}
}

// Known reports whether the source is one of the documented codes.
func (s ButtonSource) Known() bool {
	switch s {
	case ButtonSourceHome, ButtonSourceLock, ButtonSourceApplePay,
		ButtonSourceSide, ButtonSourceKeyboard, ButtonSourceSiri:
		return true
	}
	return false
}

// ButtonTarget identifies the logical input destination of a button
// event on the remote endpoint.
type ButtonTarget uint32

// Known button target codes.
const (
	ButtonTargetHardware ButtonTarget = 0x33
	ButtonTargetKeyboard ButtonTarget = 0x64
)

// Known reports whether the target is one of the documented codes.
func (t ButtonTarget) Known() bool {
	return t == ButtonTargetHardware || t == ButtonTargetKeyboard
}
