// Package config parses the runtime's environment into a typed Config,
// grounded on auth.authModeFromEnv/NewServiceFromEnv: one FromEnv
// constructor, enumerated recognized string values, and named-constant
// minimums rather than silently clamping bad input.
package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
)

type PersistenceMode string

const (
	PersistenceDisabled PersistenceMode = "disabled"
	PersistenceFile     PersistenceMode = "file"
)

type HandHistoryMode string

const (
	HandHistoryDisabled HandHistoryMode = "disabled"
	HandHistorySQLite   HandHistoryMode = "sqlite"
)

const (
	minReconnectGraceMs = 60_000
	minSweepIntervalMs  = 250
	minGameRetentionMs  = 300_000

	defaultReconnectGraceMs = 60_000
	defaultGameRetentionMs  = 600_000
	defaultSessionTTLMs     = 3_600_000
	defaultLobbyTTLMs       = 3_600_000
	defaultGameTTLMs        = 21_600_000
	defaultSweepIntervalMs  = 1000

	// reconnectTokenSecretSize is the length of the process-random
	// fallback secret generated when RECONNECT_TOKEN_SECRET is unset.
	reconnectTokenSecretSize = 32
)

// Config is the runtime's fully resolved, validated configuration.
type Config struct {
	ReconnectGraceMs       int64
	GameRetentionMs        int64
	SessionTTLMs           int64
	LobbyTTLMs             int64
	GameTTLMs              int64
	LifecycleSweepIntervalMs int64

	PersistenceMode PersistenceMode
	PersistencePath string

	ReconnectTokenSecret []byte

	HandHistoryMode HandHistoryMode
	HandHistoryPath string
}

// FromEnv reads and validates every recognized environment variable,
// applying the documented defaults for anything unset.
func FromEnv() (Config, error) {
	cfg := Config{
		ReconnectGraceMs:         defaultReconnectGraceMs,
		GameRetentionMs:          defaultGameRetentionMs,
		SessionTTLMs:             defaultSessionTTLMs,
		LobbyTTLMs:               defaultLobbyTTLMs,
		GameTTLMs:                defaultGameTTLMs,
		LifecycleSweepIntervalMs: defaultSweepIntervalMs,
		PersistenceMode:          PersistenceDisabled,
		HandHistoryMode:          HandHistoryDisabled,
	}

	var err error
	if cfg.ReconnectGraceMs, err = intEnv("RECONNECT_GRACE_MS", cfg.ReconnectGraceMs); err != nil {
		return Config{}, err
	}
	if cfg.ReconnectGraceMs < minReconnectGraceMs {
		return Config{}, fmt.Errorf("config: RECONNECT_GRACE_MS must be >= %dms", minReconnectGraceMs)
	}
	if cfg.GameRetentionMs, err = intEnv("GAME_RETENTION_MS", cfg.GameRetentionMs); err != nil {
		return Config{}, err
	}
	if cfg.GameRetentionMs < minGameRetentionMs {
		return Config{}, fmt.Errorf("config: GAME_RETENTION_MS must be >= %dms", minGameRetentionMs)
	}
	if cfg.SessionTTLMs, err = intEnv("SESSION_TTL_MS", cfg.SessionTTLMs); err != nil {
		return Config{}, err
	}
	if cfg.LobbyTTLMs, err = intEnv("LOBBY_TTL_MS", cfg.LobbyTTLMs); err != nil {
		return Config{}, err
	}
	if cfg.GameTTLMs, err = intEnv("GAME_TTL_MS", cfg.GameTTLMs); err != nil {
		return Config{}, err
	}
	if cfg.LifecycleSweepIntervalMs, err = intEnv("LIFECYCLE_SWEEP_INTERVAL_MS", cfg.LifecycleSweepIntervalMs); err != nil {
		return Config{}, err
	}
	if cfg.LifecycleSweepIntervalMs < minSweepIntervalMs {
		return Config{}, fmt.Errorf("config: LIFECYCLE_SWEEP_INTERVAL_MS must be >= %dms", minSweepIntervalMs)
	}

	switch mode := os.Getenv("PERSISTENCE_MODE"); mode {
	case "", string(PersistenceDisabled):
		cfg.PersistenceMode = PersistenceDisabled
	case string(PersistenceFile):
		cfg.PersistenceMode = PersistenceFile
		cfg.PersistencePath = os.Getenv("PERSISTENCE_PATH")
		if cfg.PersistencePath == "" {
			path, err := defaultSnapshotPath()
			if err != nil {
				return Config{}, err
			}
			cfg.PersistencePath = path
		}
	default:
		return Config{}, fmt.Errorf("config: unrecognized PERSISTENCE_MODE %q", mode)
	}

	switch mode := os.Getenv("HAND_HISTORY_MODE"); mode {
	case "", string(HandHistoryDisabled):
		cfg.HandHistoryMode = HandHistoryDisabled
	case string(HandHistorySQLite):
		cfg.HandHistoryMode = HandHistorySQLite
		cfg.HandHistoryPath = os.Getenv("HAND_HISTORY_PATH")
		if cfg.HandHistoryPath == "" {
			path, err := defaultHandHistoryPath()
			if err != nil {
				return Config{}, err
			}
			cfg.HandHistoryPath = path
		}
	default:
		return Config{}, fmt.Errorf("config: unrecognized HAND_HISTORY_MODE %q", mode)
	}

	secret := os.Getenv("RECONNECT_TOKEN_SECRET")
	if secret == "" {
		randomSecret := make([]byte, reconnectTokenSecretSize)
		if _, err := rand.Read(randomSecret); err != nil {
			return Config{}, fmt.Errorf("config: generating a random RECONNECT_TOKEN_SECRET: %w", err)
		}
		log.Printf("[config] RECONNECT_TOKEN_SECRET unset, falling back to a process-random secret; reconnect tokens will not survive a restart")
		cfg.ReconnectTokenSecret = randomSecret
	} else {
		cfg.ReconnectTokenSecret = []byte(secret)
	}

	return cfg, nil
}

func intEnv(name string, def int64) (int64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", name, err)
	}
	return v, nil
}
