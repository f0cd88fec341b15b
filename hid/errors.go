package hid

import (
	"errors"
	"fmt"
)

// ErrorKind classifies codec and builder failures.
type ErrorKind int

const (
	// MalformedEvent indicates a byte-length or layout mismatch for a
	// given discriminant.
	MalformedEvent ErrorKind = iota
	// TruncatedMessage indicates fewer bytes than the fixed minimum
	// message size.
	TruncatedMessage
	// MissingSecondaryPayload indicates a touch message shorter than
	// the two-payload total.
	MissingSecondaryPayload
	// SizeOverflow indicates a computed size that cannot be
	// represented in the size field.
	SizeOverflow
	// UnknownDiscriminant indicates an event kind outside the known
	// set. Decode paths surface this as a warning alongside a RawEvent
	// so that relays can forward unrecognized kinds unchanged.
	UnknownDiscriminant
)

// String returns the conventional name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case MalformedEvent:
		return "malformed_event"
	case TruncatedMessage:
		return "truncated_message"
	case MissingSecondaryPayload:
		return "missing_secondary_payload"
	case SizeOverflow:
		return "size_overflow"
	case UnknownDiscriminant:
		return "unknown_discriminant"
	default:
		return "unknown"
	}
}

// WireError represents a codec, builder, or parser failure. All
// failures are local and deterministic; no retry applies at this
// layer.
type WireError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *WireError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *WireError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *WireError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var we *WireError
	if errors.As(err, &we) {
		return we.Kind == kind
	}
	return false
}

// wireErrorf constructs a WireError with a formatted message.
func wireErrorf(kind ErrorKind, format string, args ...any) *WireError {
	return &WireError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// asWireError unwraps err to a *WireError, or nil.
func asWireError(err error) *WireError {
	var we *WireError
	if errors.As(err, &we) {
		return we
	}
	return nil
}
