// Package dispatcher implements the runtime's command surface: lobby
// membership commands and game action routing, wired to the stores,
// the game manager's per-game lanes, the hand history recorder, and the
// realtime broker. Grounded on lobby.Lobby's QuickStart/CreateTable
// handlers, generalized from its resume-then-join-then-create sequence
// into this runtime's explicit create/join/start command set.
package dispatcher

import (
	"context"
	"fmt"

	"funeuchre/internal/broker"
	"funeuchre/internal/euchre"
	"funeuchre/internal/gamemanager"
	"funeuchre/internal/history"
	"funeuchre/internal/ids"
	"funeuchre/internal/protocol"
	"funeuchre/internal/store"
)

var (
	ErrLobbyNotFound    = fmt.Errorf("dispatcher: lobby not found")
	ErrLobbyFull        = fmt.Errorf("dispatcher: lobby is full")
	ErrNotEnoughPlayers = fmt.Errorf("dispatcher: a game needs exactly 4 players")
	ErrGameNotFound     = fmt.Errorf("dispatcher: game not found")
	ErrSeatNotFound     = fmt.Errorf("dispatcher: player is not seated in this game")
)

type Dispatcher struct {
	Lobbies *store.LobbyStore
	Games   *store.GameStore
	Manager *gamemanager.Manager
	Broker  *broker.Broker
	History history.Service
	NowMs   func() int64
}

func (d *Dispatcher) publishLobby(lobbyId ids.LobbyId, r store.LobbyRecord) {
	_, _ = d.Broker.Publish(broker.SourceDomainTransition, protocol.LobbyRoom(lobbyId), []broker.EventInput{
		{Type: "lobby.state", Data: r},
	})
}

// CreateLobby seats the creating player and opens a new lobby.
func (d *Dispatcher) CreateLobby(playerId ids.PlayerId, name string) store.LobbyRecord {
	now := d.NowMs()
	r := store.LobbyRecord{
		Id:           ids.NewLobbyId(),
		Name:         name,
		HostPlayerId: playerId,
		PlayerIds:    []ids.PlayerId{playerId},
		CreatedAtMs:  now,
		UpdatedAtMs:  now,
	}
	d.Lobbies.Upsert(r)
	d.publishLobby(r.Id, r)
	return r
}

// JoinLobby adds playerId to lobbyId's roster, up to 4 seats.
func (d *Dispatcher) JoinLobby(lobbyId ids.LobbyId, playerId ids.PlayerId) (store.LobbyRecord, error) {
	r, ok := d.Lobbies.GetById(lobbyId)
	if !ok {
		return store.LobbyRecord{}, ErrLobbyNotFound
	}
	for _, p := range r.PlayerIds {
		if p == playerId {
			return r, nil
		}
	}
	if len(r.PlayerIds) >= 4 {
		return store.LobbyRecord{}, ErrLobbyFull
	}
	r.PlayerIds = append(r.PlayerIds, playerId)
	r.UpdatedAtMs = d.NowMs()
	d.Lobbies.Upsert(r)
	d.publishLobby(lobbyId, r)
	return r, nil
}

// UpdateLobbyName renames lobbyId.
func (d *Dispatcher) UpdateLobbyName(lobbyId ids.LobbyId, name string) (store.LobbyRecord, error) {
	r, ok := d.Lobbies.GetById(lobbyId)
	if !ok {
		return store.LobbyRecord{}, ErrLobbyNotFound
	}
	r.Name = name
	r.UpdatedAtMs = d.NowMs()
	d.Lobbies.Upsert(r)
	d.publishLobby(lobbyId, r)
	return r, nil
}

// StartGame seats the lobby's 4 players north/east/south/west in join
// order, deals the opening hand, and links the new game to the lobby.
func (d *Dispatcher) StartGame(ctx context.Context, lobbyId ids.LobbyId, targetScore int) (store.GameRecord, error) {
	r, ok := d.Lobbies.GetById(lobbyId)
	if !ok {
		return store.GameRecord{}, ErrLobbyNotFound
	}
	if len(r.PlayerIds) != 4 {
		return store.GameRecord{}, ErrNotEnoughPlayers
	}

	now := d.NowMs()
	game := store.GameRecord{
		Id:          ids.NewGameId(),
		LobbyId:     lobbyId,
		CreatedAtMs: now,
		UpdatedAtMs: now,
		State:       euchre.State{TargetScore: targetScore},
	}
	copy(game.SeatPlayerIds[:], r.PlayerIds)
	d.Games.Upsert(game)

	gameId := game.Id
	r.GameId = &gameId
	r.UpdatedAtMs = now
	d.Lobbies.Upsert(r)
	d.publishLobby(lobbyId, r)

	state, rej, err := d.Manager.Submit(ctx, game.Id, "start:"+string(game.Id), euchre.Action{Type: euchre.ActionDealHand})
	if err != nil {
		return store.GameRecord{}, err
	}
	if rej != nil {
		return store.GameRecord{}, rej
	}
	game.State = state
	return game, nil
}

// seatFor resolves which seat playerId occupies in gameId.
func (d *Dispatcher) seatFor(gameId ids.GameId, playerId ids.PlayerId) (euchre.Seat, error) {
	rec, ok := d.Games.GetById(gameId)
	if !ok {
		return 0, ErrGameNotFound
	}
	for seat, p := range rec.SeatPlayerIds {
		if p == playerId {
			return euchre.Seat(seat), nil
		}
	}
	return 0, ErrSeatNotFound
}

// SubmitGameAction resolves playerId's seat, submits the action through
// the game manager's lane, records a completed hand to the history
// recorder, and automatically deals the next hand once scoring leaves
// the game still in progress.
func (d *Dispatcher) SubmitGameAction(ctx context.Context, gameId ids.GameId, playerId ids.PlayerId, requestId string, actionType euchre.ActionType, opts euchre.Action) (euchre.State, *euchre.Reject, error) {
	seat, err := d.seatFor(gameId, playerId)
	if err != nil {
		return euchre.State{}, nil, err
	}
	opts.Type = actionType
	opts.Actor = seat

	state, rej, err := d.Manager.Submit(ctx, gameId, requestId, opts)
	if err != nil || rej != nil {
		return state, rej, err
	}

	if state.Phase == euchre.PhaseScore {
		if d.History != nil {
			rec := history.RecordFromState(gameId, state, d.NowMs())
			_ = d.History.RecordHand(ctx, rec)
		}

		scored, scoreRej, err := d.Manager.Submit(ctx, gameId, requestId+":score", euchre.Action{Type: euchre.ActionScoreHand})
		if err != nil || scoreRej != nil {
			return scored, scoreRej, err
		}
		if scored.Phase == euchre.PhaseScore {
			return d.Manager.Submit(ctx, gameId, requestId+":next-deal", euchre.Action{Type: euchre.ActionDealHand})
		}
		return scored, nil, nil
	}
	return state, rej, nil
}
