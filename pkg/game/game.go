package game

import (
	"errors"
	"fmt"

	"cardrush-server/pkg/deck"
)

// Team identifies one of the two sides in a match
type Team string

// team constants
const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Draw is the result of a timed-out match where both teams hold the same
// number of cards
const Draw = "DRAW"

// Side selects one of the two center piles
type Side string

// side constants, matching the wire letter
const (
	SideLeft  Side = "L"
	SideRight Side = "R"
)

// SideFromString parses a wire side token
func SideFromString(s string) (Side, error) {
	switch s {
	case "L":
		return SideLeft, nil
	case "R":
		return SideRight, nil
	}

	return "", fmt.Errorf("invalid side: %q", s)
}

// NumPlayers is the number of players required for a match
const NumPlayers = 4

const (
	handSize         = 5
	personalDeckSize = 18
	sideStackSize    = 5
)

// ErrInvalidPlayers is an error when a game is created without exactly four players
var ErrInvalidPlayers = errors.New("a game requires exactly four players")

// Options configure a new game
type Options struct {
	// Seed fixes the shuffle for deterministic deals. Zero shuffles with the
	// crypto-backed generator.
	Seed int64
}

// Game is the rule engine for a single four-player match.
// A game holds no lock of its own; the owning room serializes all access.
type Game struct {
	players  []string
	hands    map[string]*deck.Hand
	personal map[string][]deck.Card
	teams    map[string]Team

	centerLeft  deck.Card
	centerRight deck.Card

	sideLeft  []deck.Card
	sideRight []deck.Card

	winner   Team
	finished bool
}

// New creates a game for the given players, in join order, and deals the
// opening layout: five cards to each hand, eighteen to each personal deck,
// one card to each center pile, and five to each side stack.
// The first two players form team A, the last two team B.
func New(players []string, opts Options) (*Game, error) {
	if len(players) != NumPlayers {
		return nil, ErrInvalidPlayers
	}

	g := &Game{
		players:  append([]string{}, players...),
		hands:    make(map[string]*deck.Hand, NumPlayers),
		personal: make(map[string][]deck.Card, NumPlayers),
		teams:    make(map[string]Team, NumPlayers),
	}

	for i, player := range g.players {
		team := TeamA
		if i >= NumPlayers/2 {
			team = TeamB
		}

		g.teams[player] = team
	}

	d := deck.New()
	if opts.Seed != 0 {
		d.SetSeed(opts.Seed)
	}
	d.Shuffle()

	g.deal(d)
	return g, nil
}

// deal distributes the whole shoe. The draw order matters for seeded games:
// hands first, then personal decks, then centers, then side stacks.
func (g *Game) deal(d *deck.Deck) {
	for _, player := range g.players {
		hand := make(deck.Hand, 0, handSize)
		for i := 0; i < handSize; i++ {
			hand.AddCard(g.mustDraw(d))
		}

		g.hands[player] = &hand
	}

	for _, player := range g.players {
		personal := make([]deck.Card, 0, personalDeckSize)
		for i := 0; i < personalDeckSize; i++ {
			personal = append(personal, g.mustDraw(d))
		}

		g.personal[player] = personal
	}

	g.centerLeft = g.mustDraw(d)
	g.centerRight = g.mustDraw(d)

	for i := 0; i < sideStackSize; i++ {
		g.sideLeft = append(g.sideLeft, g.mustDraw(d))
	}

	for i := 0; i < sideStackSize; i++ {
		g.sideRight = append(g.sideRight, g.mustDraw(d))
	}
}

// mustDraw draws from the shoe during the deal. The shoe always holds enough
// cards for a four-player layout, so an empty draw is a programming error.
func (g *Game) mustDraw(d *deck.Deck) deck.Card {
	card, err := d.Draw()
	if err != nil {
		panic(err)
	}

	return card
}

// PlayCard attempts to place a card from the player's hand onto the chosen
// center pile. It returns false, with no state change, if the card is not in
// the player's hand or is not adjacent to the pile's current card.
//
// After a legal play the hand is replenished from the player's personal deck,
// and a player who empties both hand and personal deck wins the match for
// their team. Only the acting player is checked.
func (g *Game) PlayCard(player string, card deck.Card, side Side) bool {
	if g.finished {
		return false
	}

	hand, ok := g.hands[player]
	if !ok || !hand.HasCard(card) {
		return false
	}

	center := g.centerLeft
	if side == SideRight {
		center = g.centerRight
	}

	if !canPlay(card, center) {
		return false
	}

	hand.Remove(card)
	if side == SideLeft {
		g.centerLeft = card
	} else {
		g.centerRight = card
	}

	if personal := g.personal[player]; hand.Len() < handSize && len(personal) > 0 {
		hand.AddCard(personal[len(personal)-1])
		g.personal[player] = personal[:len(personal)-1]
	}

	if hand.Len() == 0 && len(g.personal[player]) == 0 {
		g.winner = g.teams[player]
		g.finished = true
	}

	return true
}

// canPlay implements the adjacency rule: a card is playable iff its number
// differs from the center's by one, or the pair is ace and king (circular
// wrap). Suit never matters.
func canPlay(card, center deck.Card) bool {
	a, b := card.Number, center.Number
	if a-b == 1 || b-a == 1 {
		return true
	}

	return (a == deck.Ace && b == deck.King) || (a == deck.King && b == deck.Ace)
}

// JudgeByTimeOver decides a timed-out match: the team holding strictly fewer
// cards (hands plus personal decks) wins; equal totals are a draw.
// The result is "A", "B", or Draw. This never mutates the game; the caller
// decides how to report it.
func (g *Game) JudgeByTimeOver() string {
	var teamACount, teamBCount int
	for _, player := range g.players {
		count := g.HandCount(player) + g.PersonalDeckCount(player)
		if g.teams[player] == TeamA {
			teamACount += count
		} else {
			teamBCount += count
		}
	}

	switch {
	case teamACount < teamBCount:
		return string(TeamA)
	case teamACount > teamBCount:
		return string(TeamB)
	}

	return Draw
}

// FlipSide pops the top card of the chosen side stack onto the corresponding
// center pile. It returns false if the stack is empty.
// No client command reaches this yet; the trigger was never defined.
func (g *Game) FlipSide(side Side) bool {
	stack := &g.sideLeft
	if side == SideRight {
		stack = &g.sideRight
	}

	n := len(*stack)
	if n == 0 {
		return false
	}

	card := (*stack)[n-1]
	*stack = (*stack)[:n-1]

	if side == SideLeft {
		g.centerLeft = card
	} else {
		g.centerRight = card
	}

	return true
}

// Finish marks the game over without declaring a winner.
// The deadline supervisor calls this after judging a timed-out match so that
// no further plays are accepted.
func (g *Game) Finish() {
	g.finished = true
}

// IsFinished returns true once the match has been resolved by a win or a
// timeout
func (g *Game) IsFinished() bool {
	return g.finished
}

// Winner returns the winning team, or the empty team if the match is not won
func (g *Game) Winner() Team {
	return g.winner
}

// Players returns the players in join order
func (g *Game) Players() []string {
	return append([]string{}, g.players...)
}

// Team returns the team the player belongs to
func (g *Game) Team(player string) Team {
	return g.teams[player]
}

// CenterLeft returns the card on the left center pile
func (g *Game) CenterLeft() deck.Card {
	return g.centerLeft
}

// CenterRight returns the card on the right center pile
func (g *Game) CenterRight() deck.Card {
	return g.centerRight
}

// HandString returns the player's hand as a comma-joined token list
func (g *Game) HandString(player string) string {
	hand, ok := g.hands[player]
	if !ok {
		return ""
	}

	return hand.String()
}

// HandCount returns the number of cards in the player's hand
func (g *Game) HandCount(player string) int {
	hand, ok := g.hands[player]
	if !ok {
		return 0
	}

	return hand.Len()
}

// PersonalDeckCount returns the number of cards left in the player's
// personal deck
func (g *Game) PersonalDeckCount(player string) int {
	return len(g.personal[player])
}

// SideLeftCount returns the number of cards in the left side stack
func (g *Game) SideLeftCount() int {
	return len(g.sideLeft)
}

// SideRightCount returns the number of cards in the right side stack
func (g *Game) SideRightCount() int {
	return len(g.sideRight)
}
