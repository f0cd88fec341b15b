package record

import (
	"fmt"
	"io"
	"os"
)

// Reader streams envelopes back out of a recording.
type Reader struct {
	dec     *FrameDecoder
	closer  io.Closer
	lastSeq uint64
	first   bool
}

// OpenFile opens a recording file for reading.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording %q: %w", path, err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// NewReader reads envelopes from a framed stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: NewFrameDecoder(r), first: true}
}

// Next returns the next envelope, io.EOF at a clean end of stream, or
// a FrameError when the stream is damaged. Envelopes already seen are
// skipped: the recorder retries a whole batch after a failed flush, so
// a recording may carry duplicates. Forward sequence gaps are reported
// as decode errors since envelopes are written contiguously.
func (r *Reader) Next() (*Envelope, error) {
	for {
		payload, err := r.dec.ReadFrame()
		if err != nil {
			return nil, err
		}

		env, err := decodeEnvelope(payload)
		if err != nil {
			return nil, &FrameError{Kind: FrameErrorDecode, Msg: "decode envelope", Err: err}
		}

		if r.first {
			r.first = false
		} else if env.Seq <= r.lastSeq {
			// Re-flushed duplicate.
			continue
		} else if env.Seq != r.lastSeq+1 {
			return nil, &FrameError{
				Kind: FrameErrorDecode,
				Msg:  fmt.Sprintf("sequence gap: envelope %d follows %d", env.Seq, r.lastSeq),
			}
		}
		r.lastSeq = env.Seq

		return env, nil
	}
}

// ReadAll drains the stream into memory. Damaged-tail errors still
// return the envelopes read before the damage.
func (r *Reader) ReadAll() ([]*Envelope, error) {
	var envelopes []*Envelope
	for {
		env, err := r.Next()
		if err == io.EOF {
			return envelopes, nil
		}
		if err != nil {
			return envelopes, err
		}
		envelopes = append(envelopes, env)
	}
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
