package euchre

import "funeuchre/internal/card"

// Clone returns a deep copy of s so callers (stores, protocol projections)
// can freely mutate the result without aliasing engine-owned slices —
// mirrors the corpus's Game.Snapshot(), which always copies its card
// slices rather than returning the live ones.
func (s State) Clone() State {
	out := s

	if s.Trump != nil {
		v := *s.Trump
		out.Trump = &v
	}
	if s.Maker != nil {
		v := *s.Maker
		out.Maker = &v
	}
	if s.PartnerSitsOut != nil {
		v := *s.PartnerSitsOut
		out.PartnerSitsOut = &v
	}
	if s.Upcard != nil {
		v := *s.Upcard
		out.Upcard = &v
	}
	if s.Winner != nil {
		v := *s.Winner
		out.Winner = &v
	}

	for i := range s.Hands {
		if s.Hands[i] != nil {
			out.Hands[i] = append([]card.Card(nil), s.Hands[i]...)
		}
	}
	if s.Kitty != nil {
		out.Kitty = append([]card.Card(nil), s.Kitty...)
	}
	if s.Bidding != nil {
		b := *s.Bidding
		if s.Bidding.TurnedDownSuit != nil {
			v := *s.Bidding.TurnedDownSuit
			b.TurnedDownSuit = &v
		}
		out.Bidding = &b
	}
	if s.Trick != nil {
		tr := *s.Trick
		tr.Plays = append([]TrickPlay(nil), s.Trick.Plays...)
		out.Trick = &tr
	}
	return out
}
