// Package sweeper runs the runtime's periodic maintenance cycle:
// forfeiting games whose disconnected seat has run out its reconnect
// grace, pruning expired lobbies/games/sessions, and checkpointing the
// stores to disk. Grounded on lobby.Lobby's cleanupLoop/
// CleanupIdleTables ticker and table.Table.tick's releaseOfflineSeats,
// generalized from a single table's internal tick into a cross-store
// sweep, with a sync.Once-guarded shutdown channel lifted directly from
// lobby.Lobby.Stop.
package sweeper

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"funeuchre/internal/euchre"
	"funeuchre/internal/gamemanager"
	"funeuchre/internal/ids"
	"funeuchre/internal/snapshot"
	"funeuchre/internal/store"
)

type Sweeper struct {
	interval time.Duration
	lobbies  *store.LobbyStore
	games    *store.GameStore
	sessions *store.SessionStore
	manager  *gamemanager.Manager
	repo     *snapshot.Repository // nil when persistence is disabled
	nowMs    func() int64

	done     chan struct{}
	stopOnce sync.Once
}

func New(interval time.Duration, lobbies *store.LobbyStore, games *store.GameStore, sessions *store.SessionStore, manager *gamemanager.Manager, repo *snapshot.Repository, nowMs func() int64) *Sweeper {
	return &Sweeper{
		interval: interval,
		lobbies:  lobbies,
		games:    games,
		sessions: sessions,
		manager:  manager,
		repo:     repo,
		nowMs:    nowMs,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called. Intended to be
// launched with `go sweeper.Start()`.
func (s *Sweeper) Start() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.done:
			return
		}
	}
}

// Stop ends the sweep loop. Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Sweeper) sweepOnce() {
	now := s.nowMs()

	s.resolveForfeits(now)

	for _, id := range s.games.ListExpired(now) {
		s.expireGame(id)
	}
	for _, id := range s.lobbies.ListExpired(now) {
		s.lobbies.DeleteById(id)
	}
	for _, id := range s.sessions.ListExpired(now) {
		s.sessions.DeleteById(id)
	}

	if s.repo != nil {
		doc := snapshot.Build(now, s.lobbies, s.games, s.sessions)
		if err := s.repo.Save(doc); err != nil {
			log.Printf("[sweeper] checkpoint failed: %v", err)
		}
	}
}

// resolveForfeits is the Lifecycle Sweeper's primary responsibility:
// every session whose socket dropped past its reconnect deadline
// forfeits its seat's team in any non-completed game still tied to
// that session, the same way the teacher's releaseOfflineSeats reaps a
// seat that never came back.
func (s *Sweeper) resolveForfeits(now int64) {
	for _, sess := range s.sessions.ListAll() {
		if sess.ReconnectDeadlineMs == 0 || now <= sess.ReconnectDeadlineMs {
			continue
		}
		s.forfeitSession(sess)
	}
}

func (s *Sweeper) forfeitSession(sess store.SessionRecord) {
	deadline := sess.ReconnectDeadlineMs
	sess.ReconnectDeadlineMs = 0
	defer s.sessions.Upsert(sess)

	if sess.GameId == "" || s.manager == nil {
		return
	}
	game, ok := s.games.GetById(sess.GameId)
	if !ok || game.State.Phase == euchre.PhaseCompleted {
		return
	}

	seat, found := seatFor(game, sess.PlayerId)
	if !found {
		return
	}

	requestId := fmt.Sprintf("forfeit:%s:%d", sess.GameId, deadline)
	_, _, _ = s.manager.Submit(context.Background(), sess.GameId, requestId, euchre.Action{
		Type:  euchre.ActionForfeit,
		Actor: seat,
	})
}

func seatFor(game store.GameRecord, playerId ids.PlayerId) (euchre.Seat, bool) {
	for i, p := range game.SeatPlayerIds {
		if p == playerId {
			return euchre.Seat(i), true
		}
	}
	return 0, false
}

func (s *Sweeper) expireGame(id ids.GameId) {
	if s.manager != nil {
		s.manager.StopGame(id)
	}
	s.games.DeleteById(id)
}
