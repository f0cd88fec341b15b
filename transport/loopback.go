package transport

import (
	"context"
	"sync"
)

// Loopback is an in-memory Conn pair. Messages sent on one end arrive
// at the other in order. Used by tests and by dry-run mode, where the
// CLI wants to exercise the full encode path without a device.
type Loopback struct {
	out  chan []byte
	in   chan []byte
	once *sync.Once
	done chan struct{}
}

// NewLoopback returns two connected ends. Buffer is the per-direction
// queue depth; zero makes every Send rendezvous with a Recv.
func NewLoopback(buffer int) (*Loopback, *Loopback) {
	ab := make(chan []byte, buffer)
	ba := make(chan []byte, buffer)
	done := make(chan struct{})
	once := &sync.Once{}
	a := &Loopback{out: ab, in: ba, once: once, done: done}
	b := &Loopback{out: ba, in: ab, once: once, done: done}
	return a, b
}

// Send implements Conn. The message is copied, so the caller may reuse
// its buffer.
func (l *Loopback) Send(ctx context.Context, msg []byte) error {
	buf := make([]byte, len(msg))
	copy(buf, msg)
	select {
	case l.out <- buf:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv implements Conn.
func (l *Loopback) Recv(ctx context.Context) ([]byte, error) {
	select {
	case msg := <-l.in:
		return msg, nil
	case <-l.done:
		// Drain anything already queued before reporting closure.
		select {
		case msg := <-l.in:
			return msg, nil
		default:
			return nil, ErrClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close implements Conn. Closing either end closes both.
func (l *Loopback) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}
