package httpapi

import (
	"errors"
	"net/http"

	"funeuchre/internal/dispatcher"
	"funeuchre/internal/euchre"
	"funeuchre/internal/ids"
)

// Server wires the dispatcher into an http.Handler. Route registration
// mirrors main.go's withCORS-wrapped mux.Handle sequence.
type Server struct {
	Dispatcher *dispatcher.Dispatcher
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/lobbies/create", s.handleCreateLobby)
	mux.HandleFunc("/lobbies/join", s.handleJoinLobby)
	mux.HandleFunc("/lobbies/update-name", s.handleUpdateLobbyName)
	mux.HandleFunc("/lobbies/start", s.handleStartGame)
	mux.HandleFunc("/actions", s.handleSubmitAction)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET or HEAD")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createLobbyRequest struct {
	PlayerId ids.PlayerId `json:"playerId"`
	Name     string       `json:"name"`
}

func (s *Server) handleCreateLobby(w http.ResponseWriter, r *http.Request) {
	var req createLobbyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lobby := s.Dispatcher.CreateLobby(req.PlayerId, req.Name)
	writeJSON(w, http.StatusOK, lobby)
}

type joinLobbyRequest struct {
	LobbyId  ids.LobbyId  `json:"lobbyId"`
	PlayerId ids.PlayerId `json:"playerId"`
}

func (s *Server) handleJoinLobby(w http.ResponseWriter, r *http.Request) {
	var req joinLobbyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lobby, err := s.Dispatcher.JoinLobby(req.LobbyId, req.PlayerId)
	if err != nil {
		writeLobbyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lobby)
}

type updateLobbyNameRequest struct {
	LobbyId ids.LobbyId `json:"lobbyId"`
	Name    string      `json:"name"`
}

func (s *Server) handleUpdateLobbyName(w http.ResponseWriter, r *http.Request) {
	var req updateLobbyNameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lobby, err := s.Dispatcher.UpdateLobbyName(req.LobbyId, req.Name)
	if err != nil {
		writeLobbyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lobby)
}

type startGameRequest struct {
	LobbyId     ids.LobbyId `json:"lobbyId"`
	TargetScore int         `json:"targetScore"`
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TargetScore <= 0 {
		req.TargetScore = 10
	}
	game, err := s.Dispatcher.StartGame(r.Context(), req.LobbyId, req.TargetScore)
	if err != nil {
		writeLobbyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

type submitActionRequest struct {
	GameId    ids.GameId       `json:"gameId"`
	PlayerId  ids.PlayerId     `json:"playerId"`
	RequestId string           `json:"requestId"`
	Type      string           `json:"type"`
	Alone     bool             `json:"alone"`
	Trump     string           `json:"trump"`
	Card      string           `json:"card"`
}

func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	var req submitActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actionType, action, err := parseAction(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ACTION", err.Error())
		return
	}

	state, rej, err := s.Dispatcher.SubmitGameAction(r.Context(), req.GameId, req.PlayerId, req.RequestId, actionType, action)
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	if rej != nil {
		writeError(w, rejectStatus(rej.Code), string(rej.Code), rej.Message)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeLobbyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dispatcher.ErrLobbyNotFound):
		writeError(w, http.StatusNotFound, "LOBBY_NOT_FOUND", err.Error())
	case errors.Is(err, dispatcher.ErrLobbyFull):
		writeError(w, http.StatusConflict, "LOBBY_FULL", err.Error())
	case errors.Is(err, dispatcher.ErrNotEnoughPlayers):
		writeError(w, http.StatusConflict, "NOT_ENOUGH_PLAYERS", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dispatcher.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "GAME_NOT_FOUND", err.Error())
	case errors.Is(err, dispatcher.ErrSeatNotFound):
		writeError(w, http.StatusForbidden, "UNAUTHORIZED", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func rejectStatus(code euchre.RejectCode) int {
	switch code {
	case euchre.RejectNotYourTurn, euchre.RejectInvalidAction, euchre.RejectInvalidState:
		return http.StatusConflict
	case euchre.RejectUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
