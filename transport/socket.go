package transport

import (
	"context"
	"net"
	"sync"
	"time"
)

// SocketConn adapts a stream socket to Conn. Outbound messages are
// written whole; inbound messages are framed by MessageReader.
type SocketConn struct {
	conn   net.Conn
	reader *MessageReader

	mu     sync.Mutex // serializes writes
	closed bool
}

// Dial connects to a relay listening on a unix socket.
func Dial(path string) (*SocketConn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return NewSocketConn(conn), nil
}

// NewSocketConn wraps an established stream connection.
func NewSocketConn(conn net.Conn) *SocketConn {
	return &SocketConn{conn: conn, reader: NewMessageReader(conn)}
}

// Send implements Conn. A context deadline maps onto the socket write
// deadline.
func (c *SocketConn) Send(ctx context.Context, msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
		defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	}
	_, err := c.conn.Write(msg)
	return err
}

// Recv implements Conn. A context deadline maps onto the socket read
// deadline.
func (c *SocketConn) Recv(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		defer func() { _ = c.conn.SetReadDeadline(time.Time{}) }()
	}
	return c.reader.ReadMessage()
}

// Close implements Conn.
func (c *SocketConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
