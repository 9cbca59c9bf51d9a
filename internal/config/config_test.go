package config

import "testing"

func TestFromEnvFallsBackToRandomReconnectSecret(t *testing.T) {
	t.Setenv("RECONNECT_TOKEN_SECRET", "")
	first, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error with RECONNECT_TOKEN_SECRET unset: %v", err)
	}
	if len(first.ReconnectTokenSecret) != reconnectTokenSecretSize {
		t.Fatalf("expected a %d-byte fallback secret, got %d bytes", reconnectTokenSecretSize, len(first.ReconnectTokenSecret))
	}

	second, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if string(first.ReconnectTokenSecret) == string(second.ReconnectTokenSecret) {
		t.Fatalf("expected each fallback secret to be freshly random")
	}
}

func TestFromEnvAppliesDefaults(t *testing.T) {
	t.Setenv("RECONNECT_TOKEN_SECRET", "s3cret")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReconnectGraceMs != defaultReconnectGraceMs {
		t.Fatalf("expected default reconnect grace, got %d", cfg.ReconnectGraceMs)
	}
	if cfg.PersistenceMode != PersistenceDisabled {
		t.Fatalf("expected persistence disabled by default, got %v", cfg.PersistenceMode)
	}
}

func TestFromEnvRejectsUnrecognizedPersistenceMode(t *testing.T) {
	t.Setenv("RECONNECT_TOKEN_SECRET", "s3cret")
	t.Setenv("PERSISTENCE_MODE", "postgres")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected an error for an unrecognized PERSISTENCE_MODE")
	}
}

func TestFromEnvRejectsTooSmallReconnectGrace(t *testing.T) {
	t.Setenv("RECONNECT_TOKEN_SECRET", "s3cret")
	t.Setenv("RECONNECT_GRACE_MS", "10")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected an error for a reconnect grace below the minimum")
	}
}
