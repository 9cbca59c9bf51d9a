package config

import (
	"os"
	"path/filepath"
)

// defaultSnapshotPath resolves where the single-file snapshot repository
// lives when PERSISTENCE_PATH is unset, following the same
// env-var-candidates-then-UserConfigDir fallback as
// auth.authLocalDatabasePathFromEnv.
func defaultSnapshotPath() (string, error) {
	return defaultDataPath("funeuchre-snapshot.json")
}

func defaultHandHistoryPath() (string, error) {
	return defaultDataPath("funeuchre-hand-history.db")
}

func defaultDataPath(filename string) (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "funeuchre", filename), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "funeuchre", filename), nil
}
