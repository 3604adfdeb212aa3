package room

import (
	"fmt"
	"time"

	"cardrush-server/pkg/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client is one connected player session
type Client struct {
	// ID is a per-connection trace identifier
	ID uuid.UUID

	conn Conn

	// Name is the globally unique display name, empty until the handshake
	// completes
	Name string

	// Badge is an optional cosmetic tag, opaque to game logic
	Badge string

	// Team is assigned when the client joins a room
	Team game.Team

	// moderation state; guarded by the room lock once the client has joined
	warnings  int
	muteUntil time.Time
}

// NewClient returns a client for the given transport
func NewClient(conn Conn) *Client {
	return &Client{
		ID:   uuid.New(),
		conn: conn,
	}
}

// Send writes a single protocol line to the client. Sends are
// fire-and-forget: a write failure is logged and the dead connection is left
// for its own read loop to notice.
func (c *Client) Send(line string) {
	if err := c.conn.WriteLine(line); err != nil {
		logrus.WithError(err).WithField("client", c.String()).Debug("could not write line")
	}
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.ID)
}

// BadgeOrNone returns the badge, or the literal NONE when absent
func (c *Client) BadgeOrNone() string {
	if c.Badge == "" {
		return "NONE"
	}

	return c.Badge
}

// Muted returns true if the client may not chat at the given time
func (c *Client) Muted(now time.Time) bool {
	return c.muteUntil.After(now)
}

// Warnings returns the number of flagged messages the client has sent.
// The count is never reset.
func (c *Client) Warnings() int {
	return c.warnings
}

// recordViolation counts a flagged message and, at or beyond the warning
// limit, mutes the client. Every violation after the limit re-mutes on
// expiry.
func (c *Client) recordViolation(now time.Time, maxWarnings int, muteFor time.Duration) {
	c.warnings++
	if c.warnings >= maxWarnings {
		c.muteUntil = now.Add(muteFor)
	}
}
