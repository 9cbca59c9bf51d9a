package euchre

import (
	"math/rand"

	"funeuchre/internal/card"
)

// dealHand builds the next hand's initial state: shuffles (or consumes an
// injected deterministic deck), deals 5 cards to each seat, turns the
// 21st card face up as the upcard, and sets the bidding clock to the seat
// left of the dealer — mirrors holdem.Game.dealHoleCards/shuffle narrowed
// to Euchre's 5-card deal and turned-up kitty card.
func dealHand(s State, a Action, rng *rand.Rand) (State, *Reject) {
	if s.HandNumber > 0 && s.Phase != PhaseScore {
		return reject(RejectInvalidState, "a hand is already in progress")
	}

	deck := a.Deck
	if deck == nil {
		deck = append([]card.Card(nil), card.EuchreDeck()...)
		d := card.NewDeck(deck)
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		d.ShuffleWith(rng)
		deck = []card.Card(d)
	}
	if len(deck) != 24 {
		return reject(RejectInvalidAction, "deck override must contain exactly 24 cards")
	}

	d := card.NewDeck(deck)
	next := State{
		Phase:       PhaseRound1Bidding,
		HandNumber:  s.HandNumber + 1,
		Dealer:      s.Dealer,
		TargetScore: s.TargetScore,
		Scores:      s.Scores,
	}
	if s.HandNumber > 0 {
		next.Dealer = s.Dealer.Next()
	}

	dealOrder := [2]int{3, 2}
	firstToDeal := next.Dealer.Next()
	for round, n := range dealOrder {
		for i := 0; i < 4; i++ {
			seat := (firstToDeal + Seat(i)) % 4
			cards, ok := d.PopCards(n)
			if !ok {
				return reject(RejectInvalidState, "deck exhausted mid-deal")
			}
			next.Hands[seat] = append(next.Hands[seat], cards...)
		}
		_ = round
	}

	upcard, ok := d.PopCards(1)
	if !ok {
		return reject(RejectInvalidState, "deck exhausted before turning the upcard")
	}
	next.Upcard = &upcard[0]
	next.Kitty, _ = d.PopCards(d.Count())

	next.Turn = firstToDeal
	next.Bidding = &BiddingState{Round: 1, Turn: firstToDeal}
	return next, nil
}
