// Package ids defines the runtime's opaque identifier types. Each kind
// of id is a distinct Go string type so a LobbyId can never be passed
// where a GameId is expected — generalized from the teacher's practice
// of keying its maps by plain strings (table/session ids in
// gateway.go), narrowed here into real types instead of bare strings.
package ids

import "github.com/google/uuid"

type LobbyId string
type GameId string
type PlayerId string
type SessionId string
type ReconnectToken string

func NewLobbyId() LobbyId   { return LobbyId(uuid.NewString()) }
func NewGameId() GameId     { return GameId(uuid.NewString()) }
func NewPlayerId() PlayerId { return PlayerId(uuid.NewString()) }
func NewSessionId() SessionId { return SessionId(uuid.NewString()) }
