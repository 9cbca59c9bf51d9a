// Package snapshot persists the runtime's in-memory stores to a single
// JSON file and restores them on startup, grounded on the
// write-temp/fsync/rename pattern the teacher's persistence layer uses
// for crash-safe writes, and path-resolved the way
// auth.authLocalDatabasePathFromEnv resolves its sqlite file.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"funeuchre/internal/store"
)

const schemaName = "fun-euchre.runtime.snapshot"
const schemaVersion = 1

// Document is the exact on-disk shape of one snapshot.
type Document struct {
	Schema        string                `json:"schema"`
	Version       int                   `json:"version"`
	GeneratedAtMs int64                 `json:"generatedAtMs"`
	LobbyRecords  []store.LobbyRecord   `json:"lobbyRecords"`
	GameRecords   []store.GameRecord    `json:"gameRecords"`
	SessionRecords []store.SessionRecord `json:"sessionRecords"`
}

// Repository reads and writes snapshot documents at a fixed path.
type Repository struct {
	Path string
}

func NewRepository(path string) *Repository {
	return &Repository{Path: path}
}

// Save atomically writes doc to the repository's path: it writes to a
// temp file in the same directory, fsyncs it, then renames it over the
// destination so a crash mid-write never leaves a truncated snapshot.
func (r *Repository) Save(doc Document) error {
	doc.Schema = schemaName
	doc.Version = schemaVersion

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.Path), ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.Path); err != nil {
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}
	return nil
}

// Load reads the snapshot at the repository's path. A missing file is
// not an error — it means there is nothing to restore yet.
func (r *Repository) Load() (Document, bool, error) {
	f, err := os.Open(r.Path)
	if os.IsNotExist(err) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("snapshot: open: %w", err)
	}
	defer f.Close()

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return Document{}, false, fmt.Errorf("snapshot: decode: %w", err)
	}
	if doc.Schema != schemaName {
		return Document{}, false, fmt.Errorf("snapshot: unrecognized schema %q", doc.Schema)
	}
	return doc, true, nil
}

// Build collects the current contents of every store into a Document.
func Build(generatedAtMs int64, lobbies *store.LobbyStore, games *store.GameStore, sessions *store.SessionStore) Document {
	return Document{
		Schema:         schemaName,
		Version:        schemaVersion,
		GeneratedAtMs:  generatedAtMs,
		LobbyRecords:   lobbies.ListAll(),
		GameRecords:    games.ListAll(),
		SessionRecords: sessions.ListAll(),
	}
}

// Restore replaces the contents of every store with doc's contents.
func Restore(doc Document, lobbies *store.LobbyStore, games *store.GameStore, sessions *store.SessionStore) {
	lobbies.ReplaceAll(doc.LobbyRecords)
	games.ReplaceAll(doc.GameRecords)
	sessions.ReplaceAll(doc.SessionRecords)
}
