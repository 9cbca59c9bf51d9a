package euchre

import "funeuchre/internal/card"

// passBid handles a pass in either bidding round. Round 1 passes rotate to
// round 2 once all four seats have passed; round 2 has no fifth pass
// ("stick the dealer" — the dealer must call a trump rather than pass
// once the other three have).
func passBid(s State, a Action) (State, *Reject) {
	if s.Bidding == nil {
		return reject(RejectInvalidState, "no bid in progress")
	}
	if a.Actor != s.Bidding.Turn {
		return reject(RejectNotYourTurn, "not this seat's turn to bid")
	}

	next := s.Clone()
	if next.Bidding.Round == 2 && next.Bidding.PassesInRound == 3 {
		return reject(RejectInvalidAction, "the dealer must name a trump suit")
	}

	next.Bidding.PassesInRound++
	if next.Bidding.Round == 1 && next.Bidding.PassesInRound == 4 {
		turnedDown := *next.Upcard
		suit := turnedDown.Suit()
		next.Upcard = nil
		next.Phase = PhaseRound2Bidding
		next.Bidding.Round = 2
		next.Bidding.PassesInRound = 0
		next.Bidding.TurnedDownSuit = &suit
		next.Bidding.Turn = next.Dealer.Next()
		next.Turn = next.Bidding.Turn
		return next, nil
	}

	next.Bidding.Turn = next.Bidding.Turn.Next()
	next.Turn = next.Bidding.Turn
	return next, nil
}

// orderUp handles a round-1 order-up: the upcard's suit becomes trump,
// the dealer picks it up and discards back down to five cards.
func orderUp(s State, a Action) (State, *Reject) {
	if s.Bidding == nil || s.Bidding.Round != 1 {
		return reject(RejectInvalidState, "not in round-one bidding")
	}
	if a.Actor != s.Bidding.Turn {
		return reject(RejectNotYourTurn, "not this seat's turn to bid")
	}
	if s.Upcard == nil {
		return reject(RejectInvalidState, "no upcard to order up")
	}
	trump := s.Upcard.Suit()
	next := startPlay(s, a.Actor, trump, a.Alone)

	dealerHand := append(append([]card.Card(nil), next.Hands[s.Dealer]...), *s.Upcard)
	discardIdx := worstDiscardIndex(dealerHand, trump)
	discarded := dealerHand[discardIdx]
	dealerHand = append(dealerHand[:discardIdx], dealerHand[discardIdx+1:]...)
	next.Hands[s.Dealer] = dealerHand
	next.Kitty = append(append([]card.Card(nil), next.Kitty...), discarded)
	next.Upcard = nil

	return next, nil
}

// callTrump handles a round-2 trump call, which may name any suit except
// the one turned down at the end of round 1.
func callTrump(s State, a Action) (State, *Reject) {
	if s.Bidding == nil || s.Bidding.Round != 2 {
		return reject(RejectInvalidState, "not in round-two bidding")
	}
	if a.Actor != s.Bidding.Turn {
		return reject(RejectNotYourTurn, "not this seat's turn to bid")
	}
	if s.Bidding.TurnedDownSuit != nil && a.Trump == *s.Bidding.TurnedDownSuit {
		return reject(RejectInvalidAction, "cannot call the suit turned down this hand")
	}

	next := startPlay(s, a.Actor, a.Trump, a.Alone)
	next.Upcard = nil
	return next, nil
}

// startPlay transitions a hand from bidding into play once a maker and
// trump suit are settled: it fixes the partner-sits-out seat for a lone
// hand, sets the leader to the dealer's left (skipping a sitting-out
// partner), and opens the first trick.
func startPlay(s State, maker Seat, trump card.Suit, alone bool) State {
	next := s.Clone()
	next.Phase = PhasePlay
	next.Trump = &trump
	next.Maker = &maker
	next.Alone = alone
	next.Bidding = nil
	next.TricksWon = Tricks{}

	if alone {
		partner := maker.Next().Next()
		next.PartnerSitsOut = &partner
	} else {
		next.PartnerSitsOut = nil
	}

	leader := s.Dealer.Next()
	for next.PartnerSitsOut != nil && leader == *next.PartnerSitsOut {
		leader = leader.Next()
	}
	next.Trick = &TrickState{Leader: leader, Turn: leader}
	next.Turn = leader
	return next
}

// worstDiscardIndex picks the dealer's weakest card (by trump power, then
// raw rank) to return to the kitty after picking up the upcard.
func worstDiscardIndex(hand []card.Card, trump card.Suit) int {
	worst := 0
	worstPower, worstIsTrump := trumpPower(hand[0], trump)
	for i := 1; i < len(hand); i++ {
		power, isTrump := trumpPower(hand[i], trump)
		switch {
		case worstIsTrump && !isTrump:
			worst, worstPower, worstIsTrump = i, power, isTrump
		case worstIsTrump == isTrump:
			if isTrump {
				if power < worstPower {
					worst, worstPower = i, power
				}
			} else if hand[i].Rank() < hand[worst].Rank() {
				worst = i
			}
		}
	}
	return worst
}
