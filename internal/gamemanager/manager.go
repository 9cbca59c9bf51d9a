// Package gamemanager serializes every mutation to a single game behind
// one goroutine "lane" per game id, the same actor shape as the
// teacher's table.Table: one events channel, one run loop, and a reply
// channel per submitted request so callers can await the result without
// sharing a lock.
package gamemanager

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"funeuchre/internal/euchre"
	"funeuchre/internal/ids"
	"funeuchre/internal/store"
)

// requestIdCacheSize bounds how many recent request ids each lane
// remembers for duplicate suppression, per spec.md §4.4.
const requestIdCacheSize = 512

// Publisher is the subset of the realtime broker a lane needs to fan
// out the result of a successful action.
type Publisher interface {
	PublishGameState(gameId ids.GameId, seatPlayerIds [4]ids.PlayerId, state euchre.State)
	PublishForfeit(gameId ids.GameId, message string, state euchre.State)
}

// submission is one request handed to a lane's run loop, with a reply
// channel the caller blocks on.
type submission struct {
	requestId string
	action    euchre.Action
	reply     chan result
}

type result struct {
	state  euchre.State
	reject *euchre.Reject
}

// lane owns exactly one game's state and processes submissions one at a
// time off its events channel, mirroring table.Table.run().
type lane struct {
	gameId ids.GameId
	events chan submission
	done   chan struct{}

	seen *lru.Cache[string, euchre.State]
}

// Manager owns one lane per active game and the shared store/broker
// wiring every lane uses to persist and publish its results.
type Manager struct {
	mu     sync.Mutex
	lanes  map[ids.GameId]*lane
	games  *store.GameStore
	pub    Publisher
	rngSeed func() int64
}

func New(games *store.GameStore, pub Publisher) *Manager {
	return &Manager{
		lanes: make(map[ids.GameId]*lane),
		games: games,
		pub:   pub,
		rngSeed: func() int64 { return 1 },
	}
}

func (m *Manager) laneFor(gameId ids.GameId) *lane {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lanes[gameId]; ok {
		return l
	}
	cache, _ := lru.New[string, euchre.State](requestIdCacheSize)
	l := &lane{
		gameId: gameId,
		events: make(chan submission, 8),
		done:   make(chan struct{}),
		seen:   cache,
	}
	m.lanes[gameId] = l
	go m.run(l)
	return l
}

// run is the lane's single goroutine: it applies one action at a time
// against the game's persisted state, handling request-id dedup,
// persistence, and broadcast — the same read-apply-persist-broadcast
// sequence as table.Table.handleEvent.
func (m *Manager) run(l *lane) {
	for {
		select {
		case sub := <-l.events:
			if _, ok := l.seen.Get(sub.requestId); ok {
				current, _ := m.games.GetById(l.gameId)
				sub.reply <- result{state: current.State, reject: &euchre.Reject{
					Code:    euchre.RejectInvalidAction,
					Message: "Duplicate requestId",
				}}
				continue
			}

			rec, ok := m.games.GetById(l.gameId)
			if !ok {
				sub.reply <- result{reject: &euchre.Reject{
					Code:    euchre.RejectInvalidState,
					Message: fmt.Sprintf("game %s not found", l.gameId),
				}}
				continue
			}

			rng := rand.New(rand.NewSource(m.rngSeed()))
			next, rej := euchre.Apply(rec.State, sub.action, rng)
			if rej != nil {
				sub.reply <- result{reject: rej}
				continue
			}

			rec.State = next
			m.games.Upsert(rec)
			l.seen.Add(sub.requestId, next)

			if m.pub != nil {
				if sub.action.Type == euchre.ActionForfeit {
					winner := "unknown"
					if next.Winner != nil {
						winner = next.Winner.String()
					}
					m.pub.PublishForfeit(l.gameId, fmt.Sprintf("%s wins by forfeit", winner), next)
				} else {
					m.pub.PublishGameState(l.gameId, rec.SeatPlayerIds, next)
				}
			}
			sub.reply <- result{state: next}
		case <-l.done:
			return
		}
	}
}

// Submit applies one action to gameId's current state, deduplicating by
// requestId so a retried network request never double-applies a play.
func (m *Manager) Submit(ctx context.Context, gameId ids.GameId, requestId string, action euchre.Action) (euchre.State, *euchre.Reject, error) {
	l := m.laneFor(gameId)
	reply := make(chan result, 1)

	select {
	case l.events <- submission{requestId: requestId, action: action, reply: reply}:
	case <-ctx.Done():
		return euchre.State{}, nil, ctx.Err()
	}

	select {
	case r := <-reply:
		return r.state, r.reject, nil
	case <-ctx.Done():
		return euchre.State{}, nil, ctx.Err()
	}
}

// StopGame tears down gameId's lane, e.g. once the lifecycle sweeper
// has reaped an expired or completed game.
func (m *Manager) StopGame(gameId ids.GameId) {
	m.mu.Lock()
	l, ok := m.lanes[gameId]
	if ok {
		delete(m.lanes, gameId)
	}
	m.mu.Unlock()
	if ok {
		close(l.done)
	}
}
