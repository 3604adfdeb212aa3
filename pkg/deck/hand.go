package deck

// Hand represents an ordered collection of cards
type Hand []Card

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h)
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// Remove removes a single copy of the specified card from the hand.
// The shoe holds two copies of every card, so only the first match is
// removed.
func (h *Hand) Remove(card Card) bool {
	for i, c := range *h {
		if c == card {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
