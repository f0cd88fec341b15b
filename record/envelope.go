// Package record captures injected messages as a replayable stream.
//
// A recording is a sequence of length-prefixed msgpack envelopes, each
// wrapping one complete wire message plus enough context to inspect
// and re-send it. Frames use a 4-byte big-endian length prefix.
package record

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/simforge-io/indigo/hid"
)

// SchemaVersion is the recording schema version.
const SchemaVersion = "1.0.0"

// Envelope wraps one recorded wire message.
type Envelope struct {
	// Schema is the recording schema version.
	Schema string `msgpack:"schema"`
	// Seq is the monotonic sequence number, contiguous from zero.
	Seq uint64 `msgpack:"seq"`
	// Timestamp is the session-monotonic timestamp the message was
	// sent with.
	Timestamp uint64 `msgpack:"ts"`
	// Kind is the event-kind discriminant of the message.
	Kind byte `msgpack:"kind"`
	// Wire is the complete encoded message, 176 or 320 bytes for the
	// documented kinds.
	Wire []byte `msgpack:"wire"`
}

// EventKind returns the discriminant as its typed form.
func (e *Envelope) EventKind() hid.EventKind {
	return hid.EventKind(e.Kind)
}

// Message parses the wrapped wire message. Warning-grade errors from
// unknown discriminants pass through just as hid.ParseMessage's do.
func (e *Envelope) Message() (*hid.Message, error) {
	return hid.ParseMessage(e.Wire)
}

// encodeEnvelope serializes an envelope to msgpack.
func encodeEnvelope(env *Envelope) ([]byte, error) {
	return msgpack.Marshal(env)
}

// decodeEnvelope deserializes a msgpack payload into an envelope.
func decodeEnvelope(payload []byte) (*Envelope, error) {
	var env Envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
