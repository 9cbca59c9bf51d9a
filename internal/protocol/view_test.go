package protocol

import (
	"testing"

	"funeuchre/internal/card"
	"funeuchre/internal/euchre"
)

func TestPublicViewOmitsHands(t *testing.T) {
	s := euchre.State{
		Phase:  euchre.PhasePlay,
		Dealer: euchre.North,
		Turn:   euchre.East,
		Hands: [4][]card.Card{
			euchre.North: {card.New(card.Spade, 9)},
		},
	}
	v := ToPublicView(s)
	if v.HandCounts[euchre.North] != 1 {
		t.Fatalf("expected hand count 1, got %d", v.HandCounts[euchre.North])
	}
	if v.Dealer != "north" || v.Turn != "east" {
		t.Fatalf("unexpected seat rendering: %+v", v)
	}
}

func TestPrivateViewIncludesOwnHand(t *testing.T) {
	trump := card.Spade
	s := euchre.State{
		Phase: euchre.PhasePlay,
		Trump: &trump,
		Trick: &euchre.TrickState{Turn: euchre.North},
		Hands: [4][]card.Card{
			euchre.North: {card.New(card.Spade, 9), card.New(card.Heart, 10)},
		},
	}
	v := ToPrivateView(s, euchre.North)
	if len(v.Hand) != 2 {
		t.Fatalf("expected 2 cards in private hand view, got %d", len(v.Hand))
	}
	if len(v.LegalPlays) != 2 {
		t.Fatalf("expected both cards legal when leading, got %d", len(v.LegalPlays))
	}
}
