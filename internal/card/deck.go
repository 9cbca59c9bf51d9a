package card

import "math/rand"

// Deck is a mutable stack of cards, popped from the top — mirrors the
// corpus's CardList helper (Init/Shuffle/PopCards) narrowed to what the
// dealer needs.
type Deck []Card

func NewDeck(cards []Card) Deck {
	d := make(Deck, len(cards))
	copy(d, cards)
	return d
}

func (d Deck) Count() int { return len(d) }

func (d Deck) ShuffleWith(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
}

func (d *Deck) PopCards(n int) ([]Card, bool) {
	if n > d.Count() || n < 0 {
		return nil, false
	}
	cards := make([]Card, n)
	copy(cards, (*d)[:n])
	*d = (*d)[n:]
	return cards, true
}
