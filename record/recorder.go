package record

import (
	"context"
	"errors"
	"sync"

	"github.com/simforge-io/indigo/hid"
	"github.com/simforge-io/indigo/log"
)

// RecorderConfig configures a Recorder.
type RecorderConfig struct {
	// MaxBufferMessages is the number of buffered envelopes that
	// triggers a flush. Zero means no count threshold.
	MaxBufferMessages int

	// MaxBufferBytes is the buffered wire-byte total that triggers a
	// flush. Zero means no byte threshold.
	// At least one threshold must be set.
	MaxBufferBytes int64

	// Logger is optional. If nil, no logging is emitted.
	Logger *log.Logger
}

// DefaultRecorderConfig returns thresholds suited to interactive sessions.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		MaxBufferMessages: 256,
		MaxBufferBytes:    1 * 1024 * 1024, // 1 MB
	}
}

// ErrInvalidConfig is returned when RecorderConfig has no threshold set.
var ErrInvalidConfig = errors.New("invalid config: at least one of MaxBufferMessages or MaxBufferBytes must be set")

// ErrRecorderClosed is returned when recording into a closed Recorder.
var ErrRecorderClosed = errors.New("recorder closed")

// Recorder buffers wire messages as envelopes and flushes them to a
// sink when either threshold is crossed. Sequence numbers are assigned
// at record time and are contiguous from zero.
//
// Flushes keep the buffer intact on sink failure, so a later flush
// retries the same envelopes. Duplicate writes are preferred over loss.
type Recorder struct {
	sink   Sink
	config RecorderConfig
	logger *log.Logger

	// flushMu serializes whole flushes so the trimmed prefix always
	// matches the batch that was written. mu stays free during the
	// sink write, so concurrent records keep landing.
	flushMu sync.Mutex

	mu          sync.Mutex
	buffer      []*Envelope
	bufferBytes int64
	nextSeq     uint64
	closed      bool
}

// NewRecorder creates a buffered recorder over sink.
func NewRecorder(sink Sink, config RecorderConfig) (*Recorder, error) {
	if config.MaxBufferMessages <= 0 && config.MaxBufferBytes <= 0 {
		return nil, ErrInvalidConfig
	}
	return &Recorder{
		sink:   sink,
		config: config,
		logger: config.Logger,
		buffer: make([]*Envelope, 0, max(config.MaxBufferMessages, 64)),
	}, nil
}

// RecordMessage buffers one wire message. The wire bytes are copied,
// so the caller may reuse its buffer.
func (r *Recorder) RecordMessage(kind hid.EventKind, timestamp uint64, wire []byte) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRecorderClosed
	}

	env := &Envelope{
		Schema:    SchemaVersion,
		Seq:       r.nextSeq,
		Timestamp: timestamp,
		Kind:      byte(kind),
		Wire:      append([]byte(nil), wire...),
	}
	r.nextSeq++
	r.buffer = append(r.buffer, env)
	r.bufferBytes += int64(len(wire))
	full := r.thresholdReached()
	r.mu.Unlock()

	if !full {
		return nil
	}
	return r.Flush(context.Background())
}

// thresholdReached reports whether a flush is due. Caller must hold mu.
func (r *Recorder) thresholdReached() bool {
	if r.config.MaxBufferMessages > 0 && len(r.buffer) >= r.config.MaxBufferMessages {
		return true
	}
	if r.config.MaxBufferBytes > 0 && r.bufferBytes >= r.config.MaxBufferBytes {
		return true
	}
	return false
}

// Flush writes all buffered envelopes to the sink. The buffer is
// cleared only after the sink accepts the whole batch. Concurrent
// flushes serialize; only the flush that wrote a batch trims it.
func (r *Recorder) Flush(ctx context.Context) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	batch := r.buffer
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := r.sink.WriteEnvelopes(ctx, batch); err != nil {
		if r.logger != nil {
			r.logger.Error("flush failed", map[string]any{
				"envelopes": len(batch),
				"error":     err.Error(),
			})
		}
		return err
	}

	r.mu.Lock()
	// Drop only what was flushed; records that landed during the sink
	// write stay buffered.
	r.buffer = r.buffer[len(batch):]
	var remaining int64
	for _, env := range r.buffer {
		remaining += int64(len(env.Wire))
	}
	r.bufferBytes = remaining
	r.mu.Unlock()
	return nil
}

// Buffered returns the number of envelopes awaiting flush.
func (r *Recorder) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffer)
}

// Close flushes remaining envelopes and closes the sink.
func (r *Recorder) Close() error {
	flushErr := r.Flush(context.Background())

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	closeErr := r.sink.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
