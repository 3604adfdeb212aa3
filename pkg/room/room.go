package room

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cardrush-server/pkg/chat"
	"cardrush-server/pkg/deck"
	"cardrush-server/pkg/game"

	"github.com/sirupsen/logrus"
)

// Capacity is the number of players a room holds
const Capacity = 4

// ErrRoomFull is an error when joining a room that is full or already started
var ErrRoomFull = errors.New("room is full")

// Options control match timing and chat moderation for a room
type Options struct {
	// GameDuration is how long a started match may run before the deadline
	// supervisor judges it
	GameDuration time.Duration

	// MuteDuration is how long a mute lasts
	MuteDuration time.Duration

	// MaxWarnings is the number of flagged messages before a mute
	MaxWarnings int

	// Moderator screens chat messages
	Moderator *chat.Moderator

	// Seed fixes the deal for deterministic tests
	Seed int64
}

func (o *Options) applyDefaults() {
	if o.GameDuration == 0 {
		o.GameDuration = 30 * time.Second
	}

	if o.MuteDuration == 0 {
		o.MuteDuration = 30 * time.Second
	}

	if o.MaxWarnings == 0 {
		o.MaxWarnings = 3
	}

	if o.Moderator == nil {
		o.Moderator = chat.New(nil)
	}
}

// Room is a bounded group of up to four clients sharing one match.
//
// One lock guards the member list, the game engine, and every broadcast, so
// all members observe state-transition lines in a single serialized order.
type Room struct {
	name string
	opts Options

	mu      sync.Mutex
	members []*Client
	started bool
	game    *game.Game
}

func newRoom(name string, opts Options) *Room {
	return &Room{
		name: name,
		opts: opts,
	}
}

// Name returns the room name
func (r *Room) Name() string {
	return r.name
}

// Info is a point-in-time view of a room for the status API
type Info struct {
	Name     string `json:"name"`
	Members  int    `json:"members"`
	Started  bool   `json:"started"`
	Finished bool   `json:"finished"`
}

// Info returns the room's current state
func (r *Room) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	info := Info{
		Name:    r.name,
		Members: len(r.members),
		Started: r.started,
	}

	if r.game != nil {
		info.Finished = r.game.IsFinished()
	}

	return info
}

// Join adds the client to the room and assigns a team by join-order parity:
// the first and second joiners form team A, the third and fourth team B.
// The fourth successful join starts the match.
//
// Joining a full or already-started room returns ErrRoomFull.
func (r *Room) Join(c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || len(r.members) >= Capacity {
		return ErrRoomFull
	}

	team := game.TeamA
	if len(r.members)%2 == 1 {
		team = game.TeamB
	}

	c.Team = team
	r.members = append(r.members, c)

	c.Send("ENTER_OK " + r.name)
	r.broadcast(fmt.Sprintf("ENTER %s %s %s", c.Name, c.Team, c.BadgeOrNone()))

	if len(r.members) == Capacity {
		r.start()
	}

	return nil
}

// Leave removes the client from the member list. The remaining members are
// not told; the protocol has no departure line, so the departure is only
// logged server-side.
func (r *Room) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.members {
		if m == c {
			r.members = append(r.members[:i], r.members[i+1:]...)
			logrus.WithFields(logrus.Fields{
				"client": c.String(),
				"room":   r.name,
			}).Debug("client left room")
			return
		}
	}
}

// start transitions the room from waiting to started. The transition is
// one-way: the started flag also guards against a second concurrent
// fourth-join double-starting the match.
//
// Must be called with the room lock held.
func (r *Room) start() {
	if r.started {
		return
	}
	r.started = true

	names := make([]string, len(r.members))
	for i, m := range r.members {
		names[i] = m.Name
	}

	g, err := game.New(names, game.Options{Seed: r.opts.Seed})
	if err != nil {
		// cannot happen with a full room
		logrus.WithError(err).WithField("room", r.name).Error("could not create game")
		return
	}
	r.game = g

	logrus.WithFields(logrus.Fields{
		"room":    r.name,
		"players": names,
	}).Info("game started")

	r.broadcast("GAME_START")
	r.broadcast("CENTER L " + g.CenterLeft().String())
	r.broadcast("CENTER R " + g.CenterRight().String())

	for _, m := range r.members {
		m.Send(fmt.Sprintf("HAND %s %s", m.Name, g.HandString(m.Name)))
	}

	for _, m := range r.members {
		m.Send(r.countsLine(m))
	}

	time.AfterFunc(r.opts.GameDuration, r.resolveDeadline)
}

// resolveDeadline is the deadline supervisor: it fires once per match, after
// the configured game duration. A match that already finished is left alone;
// anything else is judged by remaining card counts.
func (r *Room) resolveDeadline() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game == nil || r.game.IsFinished() {
		return
	}

	result := r.game.JudgeByTimeOver()
	r.game.Finish()

	logrus.WithFields(logrus.Fields{
		"room":   r.name,
		"result": result,
	}).Info("game timed out")

	if result == game.Draw {
		r.broadcast("GAME_OVER DRAW")
	} else {
		r.broadcast("GAME_OVER TEAM_" + result)
	}
}

// HandlePlay applies a PLAY command. An illegal play is rejected without
// feedback to keep the wire behavior; the rejection is logged instead.
func (r *Room) HandlePlay(c *Client, card deck.Card, side game.Side) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game == nil {
		return
	}

	if !r.game.PlayCard(c.Name, card, side) {
		logrus.WithFields(logrus.Fields{
			"client": c.String(),
			"room":   r.name,
			"card":   card.String(),
			"side":   side,
		}).Debug("rejected play")
		return
	}

	r.broadcast(fmt.Sprintf("CENTER %s %s", side, card))
	r.broadcast(fmt.Sprintf("HAND %s %s", c.Name, r.game.HandString(c.Name)))

	for _, m := range r.members {
		m.Send(r.countsLine(m))
	}

	if r.game.IsFinished() {
		logrus.WithFields(logrus.Fields{
			"room":   r.name,
			"winner": r.game.Winner(),
		}).Info("game won")

		r.broadcast("GAME_OVER " + string(r.game.Winner()))
	}
}

// HandleChat routes an ALL or TEAM chat line through moderation.
// A muted client gets a system notice and nothing is broadcast. A flagged
// message is masked, counted, and still delivered.
func (r *Room) HandleChat(c *Client, teamOnly bool, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if c.Muted(now) {
		c.Send("MSG [SYSTEM] chat restricted")
		return
	}

	filtered, flagged := r.opts.Moderator.Filter(text)
	if flagged {
		c.recordViolation(now, r.opts.MaxWarnings, r.opts.MuteDuration)
		logrus.WithFields(logrus.Fields{
			"client":   c.String(),
			"room":     r.name,
			"warnings": c.Warnings(),
		}).Debug("chat message flagged")
	}

	channel := "ALL"
	if teamOnly {
		channel = "TEAM"
	}

	line := fmt.Sprintf("CHAT %s %s %s %s %s", channel, c.Name, c.Team, c.BadgeOrNone(), filtered)
	if teamOnly {
		r.broadcastTeam(c.Team, line)
	} else {
		r.broadcast(line)
	}
}

// countsLine formats the per-viewer counts snapshot.
// Must be called with the room lock held and a live game.
func (r *Room) countsLine(viewer *Client) string {
	counts := r.game.CountsFor(viewer.Name)
	return fmt.Sprintf("COUNTS %d %d %d %d %d",
		counts.Teammate, counts.EnemyLeft, counts.EnemyRight, counts.SideLeft, counts.SideRight)
}

// broadcast sends a line to every member. Writes happen under the room lock,
// so a slow member delays the whole room for the duration of its write.
//
// Must be called with the room lock held.
func (r *Room) broadcast(line string) {
	for _, m := range r.members {
		m.Send(line)
	}
}

// broadcastTeam sends a line to every member on the given team.
// Must be called with the room lock held.
func (r *Room) broadcastTeam(team game.Team, line string) {
	for _, m := range r.members {
		if m.Team == team {
			m.Send(line)
		}
	}
}
