package room

import (
	"errors"
	"io"
	"net"
	"strings"

	"cardrush-server/pkg/deck"
	"cardrush-server/pkg/game"

	"github.com/sirupsen/logrus"
)

// Session is one client's protocol worker: the name handshake, then a
// blocking read loop dispatching commands until the connection closes.
type Session struct {
	client *Client
	names  *NameRegistry
	rooms  *Registry

	// room is nil until the client joins one
	room *Room
}

// NewSession returns a session for the given transport
func NewSession(conn Conn, names *NameRegistry, rooms *Registry) *Session {
	return &Session{
		client: NewClient(conn),
		names:  names,
		rooms:  rooms,
	}
}

// Run drives the session until the connection closes, then releases the
// client's name and room membership
func (s *Session) Run() {
	defer s.cleanup()

	log := logrus.WithFields(logrus.Fields{
		"client": s.client.ID,
		"remote": s.client.conn.RemoteAddr(),
	})

	if err := s.handshake(); err != nil {
		if !isDisconnect(err) {
			log.WithError(err).Warn("handshake failed")
		}
		return
	}

	log.WithField("name", s.client.Name).Info("player registered")

	for {
		line, err := s.client.conn.ReadLine()
		if err != nil {
			if !isDisconnect(err) {
				log.WithError(err).Warn("read failed")
			}
			return
		}

		s.dispatch(line)
	}
}

// handshake prompts for an identity and loops until a unique, non-empty name
// is reserved. The client line is <name>|<badge> with the badge optional.
func (s *Session) handshake() error {
	c := s.client
	c.Send("ENTER_NAME")

	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			return err
		}

		name, badge := splitNameBadge(line)
		if !s.names.Register(name) {
			c.Send("NAME_INVALID")
			continue
		}

		c.Name = name
		c.Badge = badge
		return nil
	}
}

func splitNameBadge(line string) (name, badge string) {
	parts := strings.SplitN(line, "|", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		badge = parts[1]
	}

	return name, badge
}

// dispatch routes one command line. Before a room is joined only the lobby
// commands work; afterward only the in-room commands do. Anything malformed
// or out of place is dropped without feedback, as the protocol requires, and
// logged at debug.
func (s *Session) dispatch(line string) {
	if s.room == nil {
		switch {
		case line == "GET_ROOMS":
			s.sendRoomList()
		case strings.HasPrefix(line, "CREATE "):
			s.createRoom(line[len("CREATE "):])
		case strings.HasPrefix(line, "ENTER_ROOM "):
			s.enterRoom(line[len("ENTER_ROOM "):])
		default:
			s.dropLine(line)
		}
		return
	}

	switch {
	case strings.HasPrefix(line, "PLAY "):
		s.play(line[len("PLAY "):])
	case strings.HasPrefix(line, "ALL "):
		s.room.HandleChat(s.client, false, line[len("ALL "):])
	case strings.HasPrefix(line, "TEAM "):
		s.room.HandleChat(s.client, true, line[len("TEAM "):])
	default:
		s.dropLine(line)
	}
}

func (s *Session) dropLine(line string) {
	logrus.WithFields(logrus.Fields{
		"client": s.client.String(),
		"line":   line,
	}).Debug("dropped unknown command")
}

func (s *Session) sendRoomList() {
	for _, name := range s.rooms.List() {
		s.client.Send("ROOM " + name)
	}

	s.client.Send("ROOM_END")
}

// createRoom makes a room and joins the creator to it
func (s *Session) createRoom(name string) {
	if _, err := s.rooms.Create(name); err != nil {
		s.client.Send("MSG [SYSTEM] room already exists")
		return
	}

	logrus.WithFields(logrus.Fields{
		"client": s.client.String(),
		"room":   name,
	}).Info("room created")

	s.enterRoom(name)
}

func (s *Session) enterRoom(name string) {
	room, ok := s.rooms.Get(name)
	if !ok {
		s.client.Send("MSG could not enter room")
		return
	}

	if err := room.Join(s.client); err != nil {
		s.client.Send("MSG room is full")
		return
	}

	s.room = room
}

func (s *Session) play(args string) {
	parts := strings.Split(args, " ")
	if len(parts) != 2 {
		s.dropLine("PLAY " + args)
		return
	}

	card, err := deck.CardFromString(parts[0])
	if err != nil {
		s.dropLine("PLAY " + args)
		return
	}

	side, err := game.SideFromString(parts[1])
	if err != nil {
		s.dropLine("PLAY " + args)
		return
	}

	s.room.HandlePlay(s.client, card, side)
}

func (s *Session) cleanup() {
	_ = s.client.conn.Close()

	if s.room != nil {
		s.room.Leave(s.client)
	}

	if s.client.Name != "" {
		s.names.Release(s.client.Name)
		logrus.WithField("name", s.client.Name).Debug("name released")
	}
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}
