package protocol

import (
	"fmt"

	"funeuchre/internal/broker"
	"funeuchre/internal/euchre"
	"funeuchre/internal/ids"
	"funeuchre/internal/store"
)

// GameRoom returns the broker room id for a game's shared state.
func GameRoom(gameId ids.GameId) string { return fmt.Sprintf("game:%s", gameId) }

// LobbyRoom returns the broker room id for a lobby's shared state.
func LobbyRoom(lobbyId ids.LobbyId) string { return fmt.Sprintf("lobby:%s", lobbyId) }

// BrokerPublisher adapts a broker.Broker into the gamemanager's
// Publisher interface: every game state change is broadcast to the
// game's room as the seat-agnostic public projection, and each seat's
// private projection is delivered point-to-point to that seat's own
// session, resolved through Sessions so no other seat ever sees it.
type BrokerPublisher struct {
	Broker   *broker.Broker
	Sessions *store.SessionStore
}

// PublishGameState fans out state after a successful mutation: the
// public projection to the whole game room, plus one private
// projection per seat delivered only to that seat's own session.
func (p BrokerPublisher) PublishGameState(gameId ids.GameId, seatPlayerIds [4]ids.PlayerId, state euchre.State) {
	_, _ = p.Broker.Publish(broker.SourceDomainTransition, GameRoom(gameId), []broker.EventInput{
		{Type: "game.state", Data: ToPublicView(state)},
	})
	p.publishPrivateStates(gameId, seatPlayerIds, state)
}

// PublishForfeit broadcasts a system notice alongside the terminal
// game state to the game room, both in one batch so a client never
// observes the notice and the final score out of order.
func (p BrokerPublisher) PublishForfeit(gameId ids.GameId, message string, state euchre.State) {
	_, _ = p.Broker.Publish(broker.SourceDomainTransition, GameRoom(gameId), []broker.EventInput{
		{Type: "system.notice", Data: message},
		{Type: "game.state", Data: ToPublicView(state)},
	})
}

func (p BrokerPublisher) publishPrivateStates(gameId ids.GameId, seatPlayerIds [4]ids.PlayerId, state euchre.State) {
	if p.Sessions == nil {
		return
	}
	for seat := euchre.North; seat <= euchre.West; seat++ {
		player := seatPlayerIds[seat]
		if player == "" {
			continue
		}
		sess, ok := p.Sessions.GetByPlayer(player)
		if !ok {
			continue
		}
		_, _ = p.Broker.PublishToSession(broker.SourceDomainTransition, string(sess.Id), []broker.EventInput{
			{Type: "game.private_state", Data: ToPrivateView(state, seat)},
		})
	}
}
