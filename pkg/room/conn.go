package room

import (
	"bufio"
	"net"
	"strings"
	"sync"
)

// Conn is a single client transport carrying newline-framed protocol lines.
// Implementations must support one concurrent reader plus any number of
// concurrent writers.
type Conn interface {
	// ReadLine blocks until the next protocol line arrives
	ReadLine() (string, error)

	// WriteLine sends a single protocol line
	WriteLine(line string) error

	// Close tears the transport down; a blocked ReadLine returns an error
	Close() error

	// RemoteAddr identifies the peer for logging
	RemoteAddr() string
}

// TCPConn adapts a net.Conn to the line transport. This is the primary,
// protocol-mandated surface.
type TCPConn struct {
	conn net.Conn
	r    *bufio.Reader

	mu sync.Mutex
	w  *bufio.Writer
}

// NewTCPConn wraps an accepted connection
func NewTCPConn(conn net.Conn) *TCPConn {
	return &TCPConn{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}
}

// ReadLine reads the next newline-terminated line, with the terminator and
// any trailing carriage return stripped
func (c *TCPConn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine writes a single newline-terminated line
func (c *TCPConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.w.WriteString(line); err != nil {
		return err
	}

	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}

	return c.w.Flush()
}

// Close closes the underlying connection
func (c *TCPConn) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the peer address
func (c *TCPConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
