package deck

import (
	"errors"

	"cardrush-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in the shoe: two standard 52-card decks
const Size = 104

// Deck is a shoe of two standard 52-card decks merged together.
// Every (number, suit) pair appears exactly twice; there are no jokers.
type Deck struct {
	Cards []Card `json:"cards"`
	rng   rng.Generator
}

// New returns a new double deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		rng: rng.Crypto{},
	}

	d.buildDeck()
	return d
}

// SetSeed swaps the generator for a deterministic one.
// This should only be used by tests.
func (d *Deck) SetSeed(seed int64) {
	d.rng = rng.NewSeeded(seed)
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for i := 0; i < 2; i++ {
		for _, suit := range Suits {
			for number := 1; number <= King; number++ {
				cards = append(cards, Card{
					Number: number,
					Suit:   suit,
				})
			}
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the deck of cards uniformly at random
func (d *Deck) Shuffle() {
	if len(d.Cards) != Size {
		d.buildDeck()
	}

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a zero card.
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) == 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
