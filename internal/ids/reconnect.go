package ids

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// reconnectTokenVersion is the wire prefix for every minted token. A
// version bump lets a future format change reject old tokens instead of
// misparsing them.
const reconnectTokenVersion = "rt1"

// ReconnectClaims is the signed payload carried by a reconnect token.
type ReconnectClaims struct {
	GameId      GameId   `json:"gameId"`
	PlayerId    PlayerId `json:"playerId"`
	SessionId   SessionId `json:"sessionId"`
	IssuedAtMs  int64    `json:"issuedAtMs"`
	ExpiresAtMs int64    `json:"expiresAtMs"`
}

var (
	// ErrMalformedToken covers any token that doesn't parse as
	// rt1.<payload>.<sig>, or whose fields don't decode.
	ErrMalformedToken = errors.New("ids: malformed reconnect token")
	// ErrTokenSignatureMismatch is returned when the HMAC tag does not
	// verify against the configured secret.
	ErrTokenSignatureMismatch = errors.New("ids: reconnect token signature mismatch")
	// ErrTokenExpired is returned once ExpiresAtMs has passed.
	ErrTokenExpired = errors.New("ids: reconnect token expired")
)

// IssueReconnectToken signs claims with HMAC-SHA-256 under secret and
// renders the rt1.<payload>.<sig> wire format. The exact primitive is
// mandated by spec, so stdlib crypto/hmac and crypto/sha256 are used
// directly rather than reaching for a higher-level JWT library the
// corpus doesn't otherwise carry.
func IssueReconnectToken(secret []byte, claims ReconnectClaims) (ReconnectToken, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("ids: marshal reconnect claims: %w", err)
	}
	payloadB64 := base64.RawURLEncoding.EncodeToString(payload)
	sig := signReconnectPayload(secret, payloadB64)
	token := strings.Join([]string{reconnectTokenVersion, payloadB64, sig}, ".")
	return ReconnectToken(token), nil
}

// VerifyReconnectToken checks the token's signature in constant time and
// decodes its claims, rejecting expired tokens.
func VerifyReconnectToken(secret []byte, token ReconnectToken, nowMs int64) (ReconnectClaims, error) {
	parts := strings.Split(string(token), ".")
	if len(parts) != 3 || parts[0] != reconnectTokenVersion {
		return ReconnectClaims{}, ErrMalformedToken
	}
	payloadB64, gotSig := parts[1], parts[2]

	wantSig := signReconnectPayload(secret, payloadB64)
	if subtle.ConstantTimeCompare([]byte(gotSig), []byte(wantSig)) != 1 {
		return ReconnectClaims{}, ErrTokenSignatureMismatch
	}

	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return ReconnectClaims{}, ErrMalformedToken
	}
	var claims ReconnectClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ReconnectClaims{}, ErrMalformedToken
	}
	if nowMs > claims.ExpiresAtMs {
		return ReconnectClaims{}, ErrTokenExpired
	}
	return claims, nil
}

func signReconnectPayload(secret []byte, payloadB64 string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payloadB64))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
