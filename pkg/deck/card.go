package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCard is an error when a card token cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit string

// suit constants, matching the wire letter
const (
	Clubs    Suit = "C"
	Diamonds Suit = "D"
	Hearts   Suit = "H"
	Spades   Suit = "S"
)

// Suits enumerates the four suits in deal order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// card numbers run 1 (ace) through 13 (king)
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card is an individual playing card.
// Cards are compared by value: two cards with the same number and suit are
// interchangeable in hand lookups.
type Card struct {
	Number int  `json:"number"`
	Suit   Suit `json:"suit"`
}

func (c Card) String() string {
	return strconv.Itoa(c.Number) + string(c.Suit)
}

var cardRx = regexp.MustCompile(`^([0-9]{1,2})([CDHS])\z`)

// CardFromString returns a Card from a wire token in the format of
// <number><suit> where number >= 1 and <= 13 and suit in [CDHS].
// Tokens arrive from untrusted clients, so a bad token is an error, not a
// panic.
func CardFromString(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	number, err := strconv.Atoi(match[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	if number < 1 || number > King {
		return Card{}, fmt.Errorf("%w: number out of range: %q", ErrInvalidCard, s)
	}

	return Card{Number: number, Suit: Suit(match[2])}, nil
}

// CardsFromString returns a slice of cards from a comma-joined token list
func CardsFromString(s string) ([]Card, error) {
	if s == "" {
		return []Card{}, nil
	}

	tokens := strings.Split(s, ",")
	cards := make([]Card, len(tokens))
	for i, token := range tokens {
		card, err := CardFromString(token)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// CardsToString will convert a slice of cards to a string in the format of 11C,1D,13S,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}
