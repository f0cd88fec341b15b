package hid

// Event is one semantic input event. Exactly one variant occupies the
// payload's union region at a time; the enclosing message carries the
// discriminant, not the union itself.
type Event interface {
	// Kind returns the discriminant the variant encodes under.
	Kind() EventKind
	// EncodedSize returns the fixed encoded size of the variant.
	EncodedSize() int
}

// TouchEvent is a digitizer contact. X and Y are normalized to
// [0.0, 1.0] with origin at the top-left of the display. The format
// does not clamp; out-of-range values pass through unchanged (see
// ValidateTouch).
//
// The touch phase is not a field of the wire record proper: it is
// carried in the Indicator word pair, which the reference endpoint
// fills with the same direction code in both words. EncodeTouch
// accepts the phase as a parameter and writes it there; relays that
// must preserve foreign traffic bit-for-bit pass a zero phase to keep
// the stored words.
type TouchEvent struct {
	X float64
	Y float64

	// Indicator is the down/up indicator word pair.
	Indicator [2]uint32

	// Reserved regions, preserved byte-for-byte on round-trip. Their
	// meaning is undocumented; the reference producer leaves them zero.
	Reserved      [3]uint32  // words before the coordinates
	ReservedF     [3]float64 // doubles between coordinates and indicators
	ReservedTail  [3]uint32  // words after the indicators
	ReservedTailF [5]float64 // trailing doubles
}

// Kind implements Event.
func (e *TouchEvent) Kind() EventKind { return EventKindTouch }

// EncodedSize implements Event.
func (e *TouchEvent) EncodedSize() int { return TouchEventSize }

// Phase returns the direction stored in the indicator pair.
func (e *TouchEvent) Phase() Direction { return Direction(e.Indicator[0]) }

// NewTouch returns a touch event at the given normalized position with
// the phase stored in the indicator pair.
func NewTouch(x, y float64, phase Direction) *TouchEvent {
	return &TouchEvent{
		X:         x,
		Y:         y,
		Indicator: [2]uint32{uint32(phase), uint32(phase)},
	}
}

// ValidateTouch reports whether the normalized coordinates are within
// [0.0, 1.0]. Encoding never enforces this; callers that want strict
// positions check here first.
func ValidateTouch(x, y float64) error {
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return wireErrorf(MalformedEvent, "touch position (%v, %v) outside [0.0, 1.0]", x, y)
	}
	return nil
}

// ButtonEvent is a hardware or keyboard button transition.
type ButtonEvent struct {
	// Source is the logical input origin (home, lock, side, ...).
	Source ButtonSource
	// Direction is the down/up transition code.
	Direction Direction
	// Target is the logical input destination (hardware, keyboard).
	Target ButtonTarget
	// KeyCode is the key code for keyboard-sourced events, zero
	// otherwise.
	KeyCode uint32
	// Reserved is an undocumented trailing word, preserved on
	// round-trip.
	Reserved uint32
}

// Kind implements Event.
func (e *ButtonEvent) Kind() EventKind { return EventKindButton }

// EncodedSize implements Event.
func (e *ButtonEvent) EncodedSize() int { return ButtonEventSize }

// KnownCodes reports whether both the source and target codes are in
// the documented enumerations. Unknown codes still encode and decode
// without loss; this exists for observability only.
func (e *ButtonEvent) KnownCodes() bool {
	return e.Source.Known() && e.Target.Known()
}

// Quad is one game-controller input cluster: four floating values in
// fixed order. The layout matches a packed NSEdgeInsets, hence the
// field names.
type Quad struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// GameControllerEvent carries the full controller state as four quads
// in fixed wire order.
type GameControllerEvent struct {
	DPad     Quad
	Face     Quad
	Shoulder Quad
	Joystick Quad
}

// Kind implements Event.
func (e *GameControllerEvent) Kind() EventKind { return EventKindGameController }

// EncodedSize implements Event.
func (e *GameControllerEvent) EncodedSize() int { return GameControllerEventSize }

// RawEvent holds the union bytes of an event whose discriminant is
// outside the known set. It exists so a relay can forward
// unrecognized kinds unchanged instead of failing on them.
type RawEvent struct {
	RawKind EventKind
	Data    []byte
}

// Kind implements Event.
func (e *RawEvent) Kind() EventKind { return e.RawKind }

// EncodedSize implements Event.
func (e *RawEvent) EncodedSize() int { return len(e.Data) }
