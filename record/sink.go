package record

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink persists batches of envelopes. Implementations must preserve
// ordering within and across batches.
type Sink interface {
	// WriteEnvelopes persists a batch of envelopes in order.
	WriteEnvelopes(ctx context.Context, envelopes []*Envelope) error
	// Close flushes and releases sink resources.
	Close() error
}

// FileSink writes framed envelopes to a stream, typically a file.
type FileSink struct {
	mu     sync.Mutex
	w      io.WriteCloser
	closed bool
}

// CreateFile creates (or truncates) a recording file.
func CreateFile(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording %q: %w", path, err)
	}
	return NewFileSink(f), nil
}

// NewFileSink wraps an open stream.
func NewFileSink(w io.WriteCloser) *FileSink {
	return &FileSink{w: w}
}

// WriteEnvelopes implements Sink. The whole batch is encoded first and
// written in one call, so a failed write leaves no partial batch for a
// retry to duplicate.
func (s *FileSink) WriteEnvelopes(_ context.Context, envelopes []*Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("recording sink closed")
	}

	var buf bytes.Buffer
	for _, env := range envelopes {
		payload, err := encodeEnvelope(env)
		if err != nil {
			return fmt.Errorf("encode envelope %d: %w", env.Seq, err)
		}
		buf.Write(encodeFrame(payload))
	}
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write batch of %d envelopes: %w", len(envelopes), err)
	}
	return nil
}

// Close implements Sink.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.w.Close()
}

// StubSink accepts writes without persisting, for tests.
type StubSink struct {
	mu sync.Mutex

	// Envelopes stores all written envelopes for inspection.
	Envelopes []*Envelope
	// Batches is the number of WriteEnvelopes calls.
	Batches int64
	// Closed indicates whether Close was called.
	Closed bool
	// FailWrites makes every write return an error.
	FailWrites error
}

// WriteEnvelopes implements Sink.
func (s *StubSink) WriteEnvelopes(_ context.Context, envelopes []*Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.Envelopes = append(s.Envelopes, envelopes...)
	s.Batches++
	return nil
}

// Close implements Sink.
func (s *StubSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// Len returns the number of envelopes written.
func (s *StubSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Envelopes)
}
