// Package runtime assembles the full server: config, stores, the game
// manager, the broker, the dispatcher, the HTTP and websocket surfaces,
// and the lifecycle sweeper. Wiring order is grounded on main.go's
// auth->ledger->story->npc->lobby->gateway->http-handlers sequence,
// generalized to this runtime's component set.
package runtime

import (
	"log"
	"net/http"
	"time"

	"funeuchre/internal/broker"
	"funeuchre/internal/config"
	"funeuchre/internal/dispatcher"
	"funeuchre/internal/gamemanager"
	"funeuchre/internal/history"
	"funeuchre/internal/httpapi"
	"funeuchre/internal/ids"
	"funeuchre/internal/protocol"
	"funeuchre/internal/snapshot"
	"funeuchre/internal/store"
	"funeuchre/internal/sweeper"
	"funeuchre/internal/wsgateway"
)

type Runtime struct {
	Config  config.Config
	Broker  *broker.Broker
	Manager *gamemanager.Manager
	Sweeper *sweeper.Sweeper
	History history.Service

	Lobbies  *store.LobbyStore
	Games    *store.GameStore
	Sessions *store.SessionStore

	Dispatcher *dispatcher.Dispatcher
	HTTP       *httpapi.Server
	WS         *wsgateway.Gateway

	snapshotRepo *snapshot.Repository
}

// New builds a fully wired Runtime from cfg. nowMs is injected so tests
// (and, later, replay tooling) can control the clock.
func New(cfg config.Config, nowMs func() int64) (*Runtime, error) {
	lobbies := store.NewLobbyStore()
	games := store.NewGameStore()
	sessions := store.NewSessionStore()

	var repo *snapshot.Repository
	if cfg.PersistenceMode == config.PersistenceFile {
		repo = snapshot.NewRepository(cfg.PersistencePath)
		doc, ok, err := repo.Load()
		if err != nil {
			return nil, err
		}
		if ok {
			snapshot.Restore(doc, lobbies, games, sessions)
			log.Printf("[runtime] restored snapshot generated at %d", doc.GeneratedAtMs)
		}
	}

	hist, err := history.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	b := broker.New()
	manager := gamemanager.New(games, protocol.BrokerPublisher{Broker: b, Sessions: sessions})

	d := &dispatcher.Dispatcher{
		Lobbies: lobbies,
		Games:   games,
		Manager: manager,
		Broker:  b,
		History: hist,
		NowMs:   nowMs,
	}

	sw := sweeper.New(time.Duration(cfg.LifecycleSweepIntervalMs)*time.Millisecond, lobbies, games, sessions, manager, repo, nowMs)

	verify := func(token string) (sessionId, playerId string, ok bool) {
		claims, err := ids.VerifyReconnectToken(cfg.ReconnectTokenSecret, ids.ReconnectToken(token), nowMs())
		if err != nil {
			return "", "", false
		}
		return string(claims.SessionId), string(claims.PlayerId), true
	}

	// onDisconnect/onConnect arm and clear a session's reconnect
	// deadline as its socket drops and comes back, so the sweeper's
	// forfeit resolver knows exactly which sessions have run out their
	// grace period.
	onDisconnect := func(sessionId string) {
		sess, ok := sessions.GetById(ids.SessionId(sessionId))
		if !ok {
			return
		}
		sess.ReconnectDeadlineMs = nowMs() + cfg.ReconnectGraceMs
		sessions.Upsert(sess)
	}
	onConnect := func(sessionId string) {
		sess, ok := sessions.GetById(ids.SessionId(sessionId))
		if !ok {
			return
		}
		sess.ReconnectDeadlineMs = 0
		sessions.Upsert(sess)
	}

	return &Runtime{
		Config:     cfg,
		Broker:     b,
		Manager:    manager,
		Sweeper:    sw,
		History:    hist,
		Lobbies:    lobbies,
		Games:      games,
		Sessions:   sessions,
		Dispatcher: d,
		HTTP:       &httpapi.Server{Dispatcher: d},
		WS: &wsgateway.Gateway{
			Broker:       b,
			Verify:       verify,
			OnConnect:    onConnect,
			OnDisconnect: onDisconnect,
		},
		snapshotRepo: repo,
	}, nil
}

// Start launches the sweeper loop in its own goroutine and returns
// immediately, so callers invoke it directly before ListenAndServe.
func (rt *Runtime) Start() {
	go rt.Sweeper.Start()
}

// Stop tears the runtime down, closing the sweeper and the hand
// history recorder.
func (rt *Runtime) Stop() {
	rt.Sweeper.Stop()
	if rt.History != nil {
		_ = rt.History.Close()
	}
}

// Mux returns the combined HTTP+websocket handler.
func (rt *Runtime) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", rt.HTTP.Routes())
	mux.Handle("/ws", rt.WS)
	return mux
}
