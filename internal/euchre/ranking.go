package euchre

import "funeuchre/internal/card"

// IsRightBower reports whether c is the jack of the trump suit.
func IsRightBower(c card.Card, trump card.Suit) bool {
	return c.IsJack() && c.Suit() == trump
}

// IsLeftBower reports whether c is the jack of trump's same-color suit —
// reinterpreted as trump for both ranking and suit-following purposes.
func IsLeftBower(c card.Card, trump card.Suit) bool {
	return c.IsJack() && c.Suit() == trump.SameColorSuit()
}

// EffectiveSuit returns the suit c counts as for lead-suit-following
// purposes: trump for the left bower, its printed suit otherwise.
func EffectiveSuit(c card.Card, trump card.Suit) card.Suit {
	if IsLeftBower(c, trump) {
		return trump
	}
	return c.Suit()
}

// trumpPower returns the within-trump ranking of c (7=highest, the right
// bower, down to 1, the trump nine) and whether c counts as trump at all.
func trumpPower(c card.Card, trump card.Suit) (power int, isTrump bool) {
	switch {
	case IsRightBower(c, trump):
		return 7, true
	case IsLeftBower(c, trump):
		return 6, true
	case c.Suit() == trump:
		switch c.Rank() {
		case 14:
			return 5, true
		case 13:
			return 4, true
		case 12:
			return 3, true
		case 10:
			return 2, true
		case 9:
			return 1, true
		}
	}
	return 0, false
}

// LegalPlays returns the subset of hand that may legally be played given
// the current trick's lead suit (nil if hand is leading the trick).
func LegalPlays(hand []card.Card, trump card.Suit, leadSuit *card.Suit) []card.Card {
	if leadSuit == nil {
		return append([]card.Card(nil), hand...)
	}
	following := make([]card.Card, 0, len(hand))
	for _, c := range hand {
		if EffectiveSuit(c, trump) == *leadSuit {
			following = append(following, c)
		}
	}
	if len(following) > 0 {
		return following
	}
	return append([]card.Card(nil), hand...)
}

// TrickWinner returns the seat that wins a completed trick: the highest
// trump played, else the highest card of the lead suit.
func TrickWinner(plays []TrickPlay, trump card.Suit) Seat {
	bestIdx := 0
	bestPower, bestIsTrump := trumpPower(plays[0].Card, trump)
	leadSuit := EffectiveSuit(plays[0].Card, trump)

	for i := 1; i < len(plays); i++ {
		power, isTrump := trumpPower(plays[i].Card, trump)
		switch {
		case isTrump && !bestIsTrump:
			bestIdx, bestIsTrump, bestPower = i, true, power
		case isTrump && bestIsTrump:
			if power > bestPower {
				bestIdx, bestPower = i, power
			}
		case !isTrump && !bestIsTrump:
			suit := EffectiveSuit(plays[i].Card, trump)
			if suit == leadSuit && plays[i].Card.Rank() > plays[bestIdx].Card.Rank() {
				bestIdx = i
			}
		}
	}
	return plays[bestIdx].Seat
}
