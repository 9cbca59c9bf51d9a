package snapshot

import (
	"path/filepath"
	"testing"

	"funeuchre/internal/ids"
	"funeuchre/internal/store"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(filepath.Join(dir, "snapshot.json"))

	lobbies := store.NewLobbyStore()
	games := store.NewGameStore()
	sessions := store.NewSessionStore()
	lobbies.Upsert(store.LobbyRecord{Id: ids.NewLobbyId(), Name: "table one"})

	doc := Build(1234, lobbies, games, sessions)
	if err := repo.Save(doc); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, ok, err := repo.Load()
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if len(loaded.LobbyRecords) != 1 || loaded.LobbyRecords[0].Name != "table one" {
		t.Fatalf("unexpected loaded lobby records: %+v", loaded.LobbyRecords)
	}

	restoreLobbies := store.NewLobbyStore()
	Restore(loaded, restoreLobbies, store.NewGameStore(), store.NewSessionStore())
	if _, ok := restoreLobbies.GetById(loaded.LobbyRecords[0].Id); !ok {
		t.Fatalf("expected restored lobby to be retrievable")
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing.json"))
	_, ok, err := repo.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for a missing snapshot file")
	}
}
