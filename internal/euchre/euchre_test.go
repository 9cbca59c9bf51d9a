package euchre

import (
	"testing"

	"funeuchre/internal/card"
)

// fixedDeck lays out a 24-card deck in deal order so tests can reason
// about exactly who holds what without touching the shuffle. North deals
// the first hand, so dealing starts at East.
func fixedDeck() []card.Card {
	return []card.Card{
		// East's first 3
		card.New(card.Spade, 9), card.New(card.Spade, 10), card.New(card.Spade, 11),
		// South's first 3
		card.New(card.Heart, 9), card.New(card.Heart, 10), card.New(card.Heart, 11),
		// West's first 3
		card.New(card.Club, 9), card.New(card.Club, 10), card.New(card.Club, 11),
		// North's first 3
		card.New(card.Diamond, 9), card.New(card.Diamond, 10), card.New(card.Diamond, 11),
		// East's next 2
		card.New(card.Spade, 12), card.New(card.Spade, 13),
		// South's next 2
		card.New(card.Heart, 12), card.New(card.Heart, 13),
		// West's next 2
		card.New(card.Club, 12), card.New(card.Club, 13),
		// North's next 2
		card.New(card.Diamond, 12), card.New(card.Diamond, 13),
		// upcard
		card.New(card.Spade, 14),
		// kitty
		card.New(card.Heart, 14), card.New(card.Club, 14), card.New(card.Diamond, 14),
	}
}

func dealt(t *testing.T) State {
	t.Helper()
	s, rej := Apply(State{TargetScore: 10}, Action{Type: ActionDealHand, Deck: fixedDeck()}, nil)
	if rej != nil {
		t.Fatalf("deal rejected: %v", rej)
	}
	return s
}

func TestDealAssignsFiveCardsAndUpcard(t *testing.T) {
	s := dealt(t)
	for seat := North; seat <= West; seat++ {
		if len(s.Hands[seat]) != 5 {
			t.Fatalf("seat %v: expected 5 cards, got %d", seat, len(s.Hands[seat]))
		}
	}
	if s.Upcard == nil || s.Upcard.Suit() != card.Spade || s.Upcard.Rank() != 14 {
		t.Fatalf("unexpected upcard: %v", s.Upcard)
	}
	if len(s.Kitty) != 3 {
		t.Fatalf("expected 3 kitty cards, got %d", len(s.Kitty))
	}
	if s.Phase != PhaseRound1Bidding {
		t.Fatalf("expected round1 bidding, got %v", s.Phase)
	}
	if s.Bidding.Turn != s.Dealer.Next() {
		t.Fatalf("bidding should open to dealer's left")
	}
}

func TestOrderUpSetsTrumpAndDealerDiscards(t *testing.T) {
	s := dealt(t)
	firstBidder := s.Bidding.Turn

	next, rej := Apply(s, Action{Type: ActionOrderUp, Actor: firstBidder}, nil)
	if rej != nil {
		t.Fatalf("order up rejected: %v", rej)
	}
	if next.Phase != PhasePlay {
		t.Fatalf("expected play phase, got %v", next.Phase)
	}
	if next.Trump == nil || *next.Trump != card.Spade {
		t.Fatalf("expected spade trump, got %v", next.Trump)
	}
	if next.Maker == nil || *next.Maker != firstBidder {
		t.Fatalf("expected maker %v, got %v", firstBidder, next.Maker)
	}
	if len(next.Hands[s.Dealer]) != 5 {
		t.Fatalf("dealer should hold 5 cards after pickup+discard, got %d", len(next.Hands[s.Dealer]))
	}
	if next.Upcard != nil {
		t.Fatalf("upcard should be cleared after order-up")
	}
	if next.Turn != s.Dealer.Next() {
		t.Fatalf("expected opening lead from dealer's left, got %v", next.Turn)
	}
}

func TestOutOfTurnBidIsRejected(t *testing.T) {
	s := dealt(t)
	wrongSeat := s.Bidding.Turn.Next()
	_, rej := Apply(s, Action{Type: ActionPass, Actor: wrongSeat}, nil)
	if rej == nil || rej.Code != RejectNotYourTurn {
		t.Fatalf("expected NOT_YOUR_TURN, got %v", rej)
	}
}

func TestFourPassesMoveToRoundTwoAndClearUpcard(t *testing.T) {
	s := dealt(t)
	for i := 0; i < 4; i++ {
		var rej *Reject
		s, rej = Apply(s, Action{Type: ActionPass, Actor: s.Bidding.Turn}, nil)
		if rej != nil {
			t.Fatalf("pass %d rejected: %v", i, rej)
		}
	}
	if s.Phase != PhaseRound2Bidding {
		t.Fatalf("expected round2 bidding, got %v", s.Phase)
	}
	if s.Upcard != nil {
		t.Fatalf("upcard should be turned down")
	}
	if s.Bidding.TurnedDownSuit == nil || *s.Bidding.TurnedDownSuit != card.Spade {
		t.Fatalf("expected spade turned down, got %v", s.Bidding.TurnedDownSuit)
	}
}

func TestCannotCallTurnedDownSuit(t *testing.T) {
	s := dealt(t)
	for i := 0; i < 4; i++ {
		s, _ = Apply(s, Action{Type: ActionPass, Actor: s.Bidding.Turn}, nil)
	}
	_, rej := Apply(s, Action{Type: ActionCallTrump, Actor: s.Bidding.Turn, Trump: card.Spade}, nil)
	if rej == nil || rej.Code != RejectInvalidAction {
		t.Fatalf("expected rejection for calling the turned-down suit, got %v", rej)
	}
}

func TestDealerStuckCannotPassThirdRoundTwoPass(t *testing.T) {
	s := dealt(t)
	for i := 0; i < 4; i++ {
		s, _ = Apply(s, Action{Type: ActionPass, Actor: s.Bidding.Turn}, nil)
	}
	// round 2 is open; pass the first three non-dealer seats.
	for i := 0; i < 3; i++ {
		var rej *Reject
		s, rej = Apply(s, Action{Type: ActionPass, Actor: s.Bidding.Turn}, nil)
		if rej != nil {
			t.Fatalf("round2 pass %d rejected: %v", i, rej)
		}
	}
	if s.Bidding.Turn != s.Dealer {
		t.Fatalf("expected the bid to reach the dealer, got %v", s.Bidding.Turn)
	}
	if _, rej := Apply(s, Action{Type: ActionPass, Actor: s.Dealer}, nil); rej == nil || rej.Code != RejectInvalidAction {
		t.Fatalf("expected the dealer to be stuck (forced to call), got %v", rej)
	}
}

func TestLeftBowerCountsAsTrumpForFollowingAndRanking(t *testing.T) {
	trump := card.Spade
	leftBower := card.New(card.Club, 11) // jack of clubs, same color as spade
	if !IsLeftBower(leftBower, trump) {
		t.Fatalf("jack of clubs should be the left bower when spades are trump")
	}
	if EffectiveSuit(leftBower, trump) != card.Spade {
		t.Fatalf("left bower should count as trump suit for suit-following")
	}

	rightBower := card.New(card.Spade, 11)
	plays := []TrickPlay{
		{Seat: North, Card: card.New(card.Spade, 14)}, // ace of trump, led
		{Seat: East, Card: leftBower},
		{Seat: South, Card: rightBower},
		{Seat: West, Card: card.New(card.Club, 9)},
	}
	winner := TrickWinner(plays, trump)
	if winner != South {
		t.Fatalf("right bower should win the trick, got %v", winner)
	}
}

func TestLegalPlaysMustFollowEffectiveSuit(t *testing.T) {
	trump := card.Spade
	hand := []card.Card{
		card.New(card.Club, 11), // left bower, counts as spade
		card.New(card.Heart, 9),
	}
	leadSuit := card.Spade
	legal := LegalPlays(hand, trump, &leadSuit)
	if len(legal) != 1 || legal[0] != hand[0] {
		t.Fatalf("expected only the left bower to be legal, got %v", legal)
	}
}

func TestScoreHandAwardsMarchAloneFourPoints(t *testing.T) {
	maker := North
	s := State{
		Phase:       PhaseScore,
		TargetScore: 10,
		Maker:       &maker,
		Alone:       true,
		TricksWon:   Tricks{TeamA: 5, TeamB: 0},
	}
	next, rej := Apply(s, Action{Type: ActionScoreHand}, nil)
	if rej != nil {
		t.Fatalf("score rejected: %v", rej)
	}
	if next.Scores.TeamA != 4 {
		t.Fatalf("expected 4 points for a lone march, got %d", next.Scores.TeamA)
	}
}

func TestScoreHandAwardsEuchrePenaltyToDefenders(t *testing.T) {
	maker := North
	s := State{
		Phase:       PhaseScore,
		TargetScore: 10,
		Maker:       &maker,
		TricksWon:   Tricks{TeamA: 2, TeamB: 3},
	}
	next, rej := Apply(s, Action{Type: ActionScoreHand}, nil)
	if rej != nil {
		t.Fatalf("score rejected: %v", rej)
	}
	if next.Scores.TeamB != 2 {
		t.Fatalf("expected defenders euchred for 2 points, got %d", next.Scores.TeamB)
	}
}

func TestScoreHandCompletesGameAtTargetScore(t *testing.T) {
	maker := North
	s := State{
		Phase:       PhaseScore,
		TargetScore: 10,
		Maker:       &maker,
		Scores:      Scores{TeamA: 9},
		TricksWon:   Tricks{TeamA: 3, TeamB: 2},
	}
	next, rej := Apply(s, Action{Type: ActionScoreHand}, nil)
	if rej != nil {
		t.Fatalf("score rejected: %v", rej)
	}
	if next.Phase != PhaseCompleted {
		t.Fatalf("expected completed phase, got %v", next.Phase)
	}
	if next.Winner == nil || *next.Winner != TeamA {
		t.Fatalf("expected team A to win, got %v", next.Winner)
	}
}

func TestCloneDoesNotAliasSlicesOrPointers(t *testing.T) {
	s := dealt(t)
	clone := s.Clone()
	clone.Hands[North][0] = card.New(card.Spade, 9)
	if s.Hands[North][0] == clone.Hands[North][0] {
		t.Fatalf("clone must not alias the original hand slice")
	}

	trump := card.Heart
	clone.Trump = &trump
	if s.Trump != nil {
		t.Fatalf("original trump should remain nil after mutating the clone's pointer")
	}
}
