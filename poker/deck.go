package poker

import (
	"errors"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when dealing past the last card since the last reset.
var ErrDeckExhausted = errors.New("deck exhausted")

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Deck is a standard 52-card deck with a deal cursor.
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck drawing randomness from rng.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: deck requires an rng")
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// NewOrderedDeck creates a deck that deals the given cards first, in order, followed by the
// remaining cards of the standard deck in suit-major order. It never reshuffles on Reset, which
// makes it useful for scripted hands.
func NewOrderedDeck(top ...Card) *Deck {
	d := &Deck{}
	var seen [DeckSize]bool
	i := 0
	for _, c := range top {
		if !c.Valid() || seen[c.index()] {
			panic("poker: invalid or duplicate card " + c.String())
		}
		seen[c.index()] = true
		d.cards[i] = c
		i++
	}
	for _, s := range AllSuits {
		for r := Two; r <= Ace; r++ {
			c := NewCard(r, s)
			if !seen[c.index()] {
				d.cards[i] = c
				i++
			}
		}
	}
	return d
}

// Reset restores all 52 cards, shuffles them (Fisher-Yates) and rewinds the cursor.
// Ordered decks only rewind.
func (d *Deck) Reset() {
	d.next = 0
	if d.rng == nil {
		return
	}
	i := 0
	for _, s := range AllSuits {
		for r := Two; r <= Ace; r++ {
			d.cards[i] = NewCard(r, s)
			i++
		}
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next card.
func (d *Deck) Deal() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// DealN deals n cards. Nothing is dealt when fewer than n remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
