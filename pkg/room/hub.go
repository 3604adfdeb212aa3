package room

import (
	"net"

	"github.com/sirupsen/logrus"
)

// Hub owns the process-wide registries and accepts client connections.
// It is constructed once at process start and handed by reference to every
// connection worker; there is no package-level state.
type Hub struct {
	names *NameRegistry
	rooms *Registry
}

// NewHub returns a hub whose rooms use the given options
func NewHub(opts Options) *Hub {
	return &Hub{
		names: NewNameRegistry(),
		rooms: NewRegistry(opts),
	}
}

// Rooms returns the room registry
func (h *Hub) Rooms() *Registry {
	return h.rooms
}

// Names returns the name registry
func (h *Hub) Names() *NameRegistry {
	return h.names
}

// ListenAndServe listens on the TCP address and serves clients until the
// listener fails
func (h *Hub) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	logrus.WithField("addr", addr).Info("listening")
	return h.Serve(ln)
}

// Serve accepts connections until the listener is closed, running one
// session goroutine per client
func (h *Hub) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}

		go h.ServeConn(NewTCPConn(conn))
	}
}

// ServeConn runs one client session over the given transport and returns
// when the connection closes. The websocket gateway uses this to serve the
// same protocol over an alternate transport.
func (h *Hub) ServeConn(conn Conn) {
	NewSession(conn, h.names, h.rooms).Run()
}
