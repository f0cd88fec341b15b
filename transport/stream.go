package transport

import (
	"encoding/binary"
	"io"

	"github.com/simforge-io/indigo/hid"
)

// MaxMessageSize caps what the reader will accept on a stream. Known
// messages are 176 or 320 bytes; the headroom admits future kinds
// without letting a corrupt size field allocate unbounded memory.
const MaxMessageSize = 64 * 1024

// MessageReader frames complete wire messages off a byte stream.
//
// The wire format is self-framing: the header's size field carries the
// total message length, including the trailing payload a touch message
// stacks after it. The reader trusts that field within MaxMessageSize
// and hands back whole-message buffers ready for hid.ParseMessage.
type MessageReader struct {
	reader io.Reader
}

// NewMessageReader creates a reader over a stream.
func NewMessageReader(r io.Reader) *MessageReader {
	return &MessageReader{reader: r}
}

// ReadMessage reads a single complete message from the stream.
//
// Errors:
//   - io.EOF: stream ended cleanly between messages
//   - TruncatedMessage: stream ended inside a message
//   - SizeOverflow: size field exceeds MaxMessageSize
//   - MalformedEvent: size field below the fixed minimum
func (r *MessageReader) ReadMessage() ([]byte, error) {
	header := make([]byte, hid.HeaderSize)
	if _, err := io.ReadFull(r.reader, header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &hid.WireError{
			Kind: hid.TruncatedMessage,
			Msg:  "stream ended inside message header",
			Err:  err,
		}
	}

	size := binary.LittleEndian.Uint32(header[0x04:])
	if size < hid.MessageSize {
		return nil, &hid.WireError{
			Kind: hid.MalformedEvent,
			Msg:  "size field below minimum message size",
		}
	}
	if size > MaxMessageSize {
		return nil, &hid.WireError{
			Kind: hid.SizeOverflow,
			Msg:  "size field exceeds stream maximum",
		}
	}

	msg := make([]byte, size)
	copy(msg, header)
	if _, err := io.ReadFull(r.reader, msg[hid.HeaderSize:]); err != nil {
		return nil, &hid.WireError{
			Kind: hid.TruncatedMessage,
			Msg:  "stream ended inside message body",
			Err:  err,
		}
	}
	return msg, nil
}
