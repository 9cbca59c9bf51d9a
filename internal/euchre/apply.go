package euchre

import "math/rand"

// Apply is the engine's single entry point: given the current state and
// one action, it returns either the next state or a structured reject —
// never both, never a mutation of s. rng is consulted only by
// ActionDealHand when the action carries no deterministic Deck override;
// callers that always supply a Deck may pass nil.
//
// Grounded on holdem.Game's split between a pure legality projection and
// a single mutating Act entry point, generalized here so even the
// mutating step returns a new value instead of mutating in place.
func Apply(s State, a Action, rng *rand.Rand) (State, *Reject) {
	if a.Actor > West {
		return reject(RejectInvalidAction, "unknown seat")
	}

	switch a.Type {
	case ActionDealHand:
		return dealHand(s, a, rng)
	case ActionPass:
		return passBid(s, a)
	case ActionOrderUp:
		return orderUp(s, a)
	case ActionCallTrump:
		return callTrump(s, a)
	case ActionPlayCard:
		return playCard(s, a)
	case ActionScoreHand:
		return scoreHand(s, a)
	case ActionForfeit:
		return forfeit(s, a)
	default:
		return reject(RejectInvalidAction, "unknown action type")
	}
}
