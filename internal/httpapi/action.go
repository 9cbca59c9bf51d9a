package httpapi

import (
	"fmt"
	"strings"

	"funeuchre/internal/card"
	"funeuchre/internal/euchre"
)

func parseAction(req submitActionRequest) (euchre.ActionType, euchre.Action, error) {
	switch req.Type {
	case "pass":
		return euchre.ActionPass, euchre.Action{}, nil
	case "order_up":
		return euchre.ActionOrderUp, euchre.Action{Alone: req.Alone}, nil
	case "call_trump":
		suit, ok := card.ParseSuit(req.Trump)
		if !ok {
			return 0, euchre.Action{}, fmt.Errorf("unrecognized trump suit %q", req.Trump)
		}
		return euchre.ActionCallTrump, euchre.Action{Alone: req.Alone, Trump: suit}, nil
	case "play_card":
		c, ok := parseCardToken(req.Card)
		if !ok {
			return 0, euchre.Action{}, fmt.Errorf("unrecognized card %q", req.Card)
		}
		return euchre.ActionPlayCard, euchre.Action{Card: c}, nil
	default:
		return 0, euchre.Action{}, fmt.Errorf("unrecognized action type %q", req.Type)
	}
}

// parseCardToken parses the wire card token rendered by card.Card.String,
// e.g. "A-spades" or "10-hearts" — the same format protocol.view.go
// renders hands and trick plays in, so a client can round-trip a card
// token straight back into an action without a second encoding.
func parseCardToken(token string) (card.Card, bool) {
	rankStr, suitStr, found := strings.Cut(token, "-")
	if !found {
		return card.Invalid, false
	}
	suit, ok := card.ParseSuit(suitStr)
	if !ok {
		return card.Invalid, false
	}

	var rank byte
	switch rankStr {
	case "9":
		rank = 9
	case "10":
		rank = 10
	case "J":
		rank = 11
	case "Q":
		rank = 12
	case "K":
		rank = 13
	case "A":
		rank = 14
	default:
		return card.Invalid, false
	}

	return card.New(suit, rank), true
}
