package store

import (
	"testing"

	"funeuchre/internal/ids"
)

func TestLobbyStoreReindexesOnPlayerRosterChange(t *testing.T) {
	s := NewLobbyStore()
	player := ids.NewPlayerId()
	lobbyId := ids.NewLobbyId()

	s.Upsert(LobbyRecord{Id: lobbyId, PlayerIds: []ids.PlayerId{player}})
	if got, ok := s.GetByPlayer(player); !ok || got.Id != lobbyId {
		t.Fatalf("expected to find lobby by player, got %v ok=%v", got, ok)
	}

	s.Upsert(LobbyRecord{Id: lobbyId, PlayerIds: nil})
	if _, ok := s.GetByPlayer(player); ok {
		t.Fatalf("player should no longer resolve to the lobby after roster update")
	}
}

func TestLobbyStoreCloneIsolatesCallers(t *testing.T) {
	s := NewLobbyStore()
	id := ids.NewLobbyId()
	s.Upsert(LobbyRecord{Id: id, PlayerIds: []ids.PlayerId{ids.NewPlayerId()}})

	got, _ := s.GetById(id)
	got.PlayerIds[0] = "mutated"

	again, _ := s.GetById(id)
	if again.PlayerIds[0] == "mutated" {
		t.Fatalf("store should not alias its internal slice with the caller's copy")
	}
}

func TestSessionStoreLooksUpByReconnectToken(t *testing.T) {
	s := NewSessionStore()
	token := ids.ReconnectToken("rt1.abc.def")
	sessId := ids.NewSessionId()
	s.Upsert(SessionRecord{Id: sessId, ReconnectToken: token})

	got, ok := s.GetByReconnectToken(token)
	if !ok || got.Id != sessId {
		t.Fatalf("expected session lookup by token to succeed, got %v ok=%v", got, ok)
	}
}

func TestGameStoreDeleteClearsLobbyIndex(t *testing.T) {
	s := NewGameStore()
	lobbyId := ids.NewLobbyId()
	gameId := ids.NewGameId()
	s.Upsert(GameRecord{Id: gameId, LobbyId: lobbyId})

	s.DeleteById(gameId)
	if _, ok := s.GetByLobby(lobbyId); ok {
		t.Fatalf("expected lobby index to be cleared after game delete")
	}
}
