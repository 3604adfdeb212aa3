package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSession runs a session over a chanConn, feeding it the given lines and
// closing the connection, then returns everything the server wrote
func testSession(t *testing.T, names *NameRegistry, rooms *Registry, lines ...string) []string {
	t.Helper()

	conn := newChanConn()
	s := NewSession(conn, names, rooms)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run()
	}()

	for _, line := range lines {
		conn.in <- line
	}
	close(conn.in)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not terminate")
	}

	return conn.Lines()
}

func TestSession_handshake(t *testing.T) {
	a := assert.New(t)
	names := NewNameRegistry()
	rooms := NewRegistry(Options{})

	out := testSession(t, names, rooms, "bob|badge.png")
	a.Equal([]string{"ENTER_NAME"}, out)

	// the name was released on disconnect
	a.True(names.Register("bob"))
}

func TestSession_handshake_rejectsBadNames(t *testing.T) {
	a := assert.New(t)
	names := NewNameRegistry()
	require.True(t, names.Register("taken"))
	rooms := NewRegistry(Options{})

	out := testSession(t, names, rooms, "", "  |badge.png", "taken", "bob")
	a.Equal([]string{"ENTER_NAME", "NAME_INVALID", "NAME_INVALID", "NAME_INVALID"}, out)

	// "taken" belongs to someone else and survives the disconnect
	a.False(names.Register("taken"))
	a.True(names.Register("bob"))
}

func TestSession_lobby(t *testing.T) {
	a := assert.New(t)
	names := NewNameRegistry()
	rooms := NewRegistry(Options{})

	_, err := rooms.Create("alpha")
	require.NoError(t, err)
	_, err = rooms.Create("bravo")
	require.NoError(t, err)

	out := testSession(t, names, rooms,
		"bob",
		"GET_ROOMS",
		"ENTER_ROOM nope",
		"CREATE alpha",
		"PLAY 5C L", // in-room command before joining: dropped
		"BOGUS",     // unknown command: dropped
		"CREATE charlie",
	)

	a.Equal([]string{
		"ENTER_NAME",
		"ROOM alpha",
		"ROOM bravo",
		"ROOM_END",
		"MSG could not enter room",
		"MSG [SYSTEM] room already exists",
		"ENTER_OK charlie",
		"ENTER bob A NONE",
	}, out)

	a.Equal([]string{"alpha", "bravo", "charlie"}, rooms.List())

	// the session has ended, so the creator's membership is gone, but the
	// room itself is never removed
	a.Equal(0, mustGet(t, rooms, "charlie").Info().Members)
}

func TestSession_createJoinsCreator(t *testing.T) {
	names := NewNameRegistry()
	rooms := NewRegistry(Options{})

	out := testSession(t, names, rooms, "bob|star.png", "CREATE myroom", "ALL hello")

	assert.Equal(t, []string{
		"ENTER_NAME",
		"ENTER_OK myroom",
		"ENTER bob A star.png",
		"CHAT ALL bob A star.png hello",
	}, out)

	// membership was released on disconnect
	assert.Equal(t, 0, mustGet(t, rooms, "myroom").Info().Members)
}

func TestSession_malformedPlayIsSilent(t *testing.T) {
	names := NewNameRegistry()
	rooms := NewRegistry(Options{})

	out := testSession(t, names, rooms,
		"bob",
		"CREATE myroom",
		"PLAY",          // no arguments
		"PLAY 5C",       // missing side
		"PLAY 5C L R",   // too many fields
		"PLAY 14C L",    // number out of range
		"PLAY 5X L",     // bad suit
		"PLAY 5C C",     // bad side
		"GET_ROOMS",     // lobby command while in a room: dropped
	)

	assert.Equal(t, []string{
		"ENTER_NAME",
		"ENTER_OK myroom",
		"ENTER bob A NONE",
	}, out)
}

func mustGet(t *testing.T, rooms *Registry, name string) *Room {
	t.Helper()
	r, ok := rooms.Get(name)
	require.True(t, ok)
	return r
}

// startSession runs a session in the background. Callers feed lines through
// the returned conn and poll room state to synchronize.
func startSession(t *testing.T, names *NameRegistry, rooms *Registry) (*chanConn, chan struct{}) {
	t.Helper()

	conn := newChanConn()
	s := NewSession(conn, names, rooms)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run()
	}()

	return conn, done
}

func TestSession_fourPlayersStartAGame(t *testing.T) {
	a := assert.New(t)
	names := NewNameRegistry()
	rooms := NewRegistry(Options{GameDuration: time.Hour, Seed: 1})

	conns := make([]*chanConn, 4)
	dones := make([]chan struct{}, 4)
	for i := range conns {
		conns[i], dones[i] = startSession(t, names, rooms)
		conns[i].in <- fmt.Sprintf("p%d", i+1)
	}

	conns[0].in <- "CREATE battle"
	require.Eventually(t, func() bool {
		r, ok := rooms.Get("battle")
		return ok && r.Info().Members == 1
	}, 5*time.Second, time.Millisecond)

	for i := 1; i < 4; i++ {
		conns[i].in <- "ENTER_ROOM battle"
		want := i + 1
		require.Eventually(t, func() bool {
			return mustGet(t, rooms, "battle").Info().Members == want
		}, 5*time.Second, time.Millisecond)
	}

	r := mustGet(t, rooms, "battle")
	a.True(r.Info().Started)

	// the creator observed the complete start sequence
	lines := conns[0].Lines()
	require.Len(t, lines, 11)
	a.Equal("ENTER_NAME", lines[0])
	a.Equal("ENTER_OK battle", lines[1])
	a.Equal("ENTER p1 A NONE", lines[2])
	a.Equal("GAME_START", lines[6])
	a.Regexp(centerRx, lines[7])
	a.Regexp(centerRx, lines[8])
	a.Regexp(`^HAND p1 `, lines[9])
	a.Equal("COUNTS 5 5 5 5 5", lines[10])

	// a team chat from p3 reaches only team B
	markP2 := len(conns[1].Lines())
	markP4 := len(conns[3].Lines())
	conns[2].in <- "TEAM push left"
	require.Eventually(t, func() bool {
		lines := conns[3].Lines()
		return len(lines) > markP4 && lines[len(lines)-1] == "CHAT TEAM p3 B NONE push left"
	}, 5*time.Second, time.Millisecond)
	a.Equal(markP2, len(conns[1].Lines()))

	for i := range conns {
		close(conns[i].in)
		select {
		case <-dones[i]:
		case <-time.After(5 * time.Second):
			t.Fatal("session did not terminate")
		}
	}

	// all memberships and names were released
	a.Equal(0, r.Info().Members)
	a.True(names.Register("p1"))
}
