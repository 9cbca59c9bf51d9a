// Package protocol projects the engine's internal euchre.State into the
// wire-facing views sent to clients: a public view every seat receives,
// and a private view that additionally carries one seat's own hand.
// Grounded on the teacher's broadcast helpers in table.go, which build
// one spectator-safe envelope plus a per-seat hole-card envelope.
package protocol

import (
	"funeuchre/internal/card"
	"funeuchre/internal/euchre"
)

type TrickPlayView struct {
	Seat string `json:"seat"`
	Card string `json:"card"`
}

// PublicStateView is the projection every seat (and a spectator) sees:
// bidding progress, trump, trick plays, and scores, but no hands other
// than card counts.
type PublicStateView struct {
	Phase       string          `json:"phase"`
	HandNumber  int             `json:"handNumber"`
	Dealer      string          `json:"dealer"`
	Turn        string          `json:"turn"`
	Trump       *string         `json:"trump,omitempty"`
	Maker       *string         `json:"maker,omitempty"`
	Alone       bool            `json:"alone"`
	SittingOut  *string         `json:"sittingOut,omitempty"`
	Upcard      *string         `json:"upcard,omitempty"`
	HandCounts  [4]int          `json:"handCounts"`
	TrickPlays  []TrickPlayView `json:"trickPlays"`
	TricksWonA  int             `json:"tricksWonTeamA"`
	TricksWonB  int             `json:"tricksWonTeamB"`
	ScoreA      int             `json:"scoreTeamA"`
	ScoreB      int             `json:"scoreTeamB"`
	Winner      *string         `json:"winner,omitempty"`
}

// PrivateStateView additionally carries the requesting seat's own hand
// and legal plays, never sent to any other seat.
type PrivateStateView struct {
	PublicStateView
	Seat       string   `json:"seat"`
	Hand       []string `json:"hand"`
	LegalPlays []string `json:"legalPlays,omitempty"`
}

func seatPtr(s *euchre.Seat) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func suitPtr(s *card.Suit) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func cardPtr(c *card.Card) *string {
	if c == nil {
		return nil
	}
	v := c.String()
	return &v
}

func cardStrings(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// ToPublicView renders the seat-agnostic projection of s.
func ToPublicView(s euchre.State) PublicStateView {
	v := PublicStateView{
		Phase:      s.Phase.String(),
		HandNumber: s.HandNumber,
		Dealer:     s.Dealer.String(),
		Turn:       s.Turn.String(),
		Trump:      suitPtr(s.Trump),
		Maker:      seatPtr(s.Maker),
		Alone:      s.Alone,
		SittingOut: seatPtr(s.PartnerSitsOut),
		Upcard:     cardPtr(s.Upcard),
		TricksWonA: s.TricksWon.TeamA,
		TricksWonB: s.TricksWon.TeamB,
		ScoreA:     s.Scores.TeamA,
		ScoreB:     s.Scores.TeamB,
	}
	if s.Winner != nil {
		w := s.Winner.String()
		v.Winner = &w
	}
	for seat := euchre.North; seat <= euchre.West; seat++ {
		v.HandCounts[seat] = len(s.Hands[seat])
	}
	if s.Trick != nil {
		for _, p := range s.Trick.Plays {
			v.TrickPlays = append(v.TrickPlays, TrickPlayView{Seat: p.Seat.String(), Card: p.Card.String()})
		}
	}
	return v
}

// ToPrivateView renders seat's own view: the public projection plus its
// hand and, during play, the set of cards it may legally play right now.
func ToPrivateView(s euchre.State, seat euchre.Seat) PrivateStateView {
	v := PrivateStateView{
		PublicStateView: ToPublicView(s),
		Seat:            seat.String(),
		Hand:            cardStrings(s.Hands[seat]),
	}
	if s.Phase == euchre.PhasePlay && s.Trump != nil && s.Trick != nil && s.Trick.Turn == seat {
		var leadSuit *card.Suit
		if len(s.Trick.Plays) > 0 {
			suit := euchre.EffectiveSuit(s.Trick.Plays[0].Card, *s.Trump)
			leadSuit = &suit
		}
		v.LegalPlays = cardStrings(euchre.LegalPlays(s.Hands[seat], *s.Trump, leadSuit))
	}
	return v
}
