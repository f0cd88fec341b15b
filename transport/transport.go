// Package transport abstracts the channel that carries wire messages
// to the input-consuming endpoint.
//
// The codec layer only defines what bytes go on the wire; opening and
// scheduling the channel is the caller's business. Conn is the seam:
// the native message-port primitive, a unix-socket relay, and the
// in-memory loopback all satisfy it. Reliability, ordering, and
// cancellation are the channel's own guarantees — implementations here
// are FIFO and reliable, and every blocking call honors its context.
package transport

import (
	"context"
	"errors"
)

// ErrClosed indicates an operation on a closed connection.
var ErrClosed = errors.New("transport: connection closed")

// Conn is one logical channel to an endpoint pair.
//
// Send transmits one complete wire message. Recv blocks for the next
// inbound message; channels that never deliver inbound traffic return
// ErrClosed. Both honor context cancellation.
type Conn interface {
	Send(ctx context.Context, msg []byte) error
	Recv(ctx context.Context) ([]byte, error)
	Close() error
}
