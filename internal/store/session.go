package store

import (
	"sync"

	"funeuchre/internal/ids"
)

// SessionRecord is one player's live connection lease: the reconnect
// token that proves ownership, and when it expires without a refresh.
type SessionRecord struct {
	Id             ids.SessionId
	PlayerId       ids.PlayerId
	GameId         ids.GameId
	ReconnectToken ids.ReconnectToken
	CreatedAtMs    int64
	LastSeenAtMs   int64
	ExpiresAtMs    int64

	// ReconnectDeadlineMs is 0 while the session's socket is live. It is
	// set to nowMs+ReconnectGraceMs when the socket drops, and cleared
	// back to 0 once the player reconnects. The Lifecycle Sweeper
	// forfeits any non-completed game still tied to a session whose
	// deadline has passed.
	ReconnectDeadlineMs int64
}

func (r SessionRecord) Clone() SessionRecord { return r }

// SessionStore indexes sessions by id, by owning player, and by
// reconnect token (the lookup a reconnect attempt performs).
type SessionStore struct {
	mu               sync.RWMutex
	byId             map[ids.SessionId]SessionRecord
	sessionByPlayer  map[ids.PlayerId]ids.SessionId
	sessionByToken   map[ids.ReconnectToken]ids.SessionId
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byId:            make(map[ids.SessionId]SessionRecord),
		sessionByPlayer: make(map[ids.PlayerId]ids.SessionId),
		sessionByToken:  make(map[ids.ReconnectToken]ids.SessionId),
	}
}

func (s *SessionStore) Upsert(r SessionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reindexLocked(r.Id)
	s.byId[r.Id] = r.Clone()
	s.sessionByPlayer[r.PlayerId] = r.Id
	s.sessionByToken[r.ReconnectToken] = r.Id
}

func (s *SessionStore) reindexLocked(id ids.SessionId) {
	old, ok := s.byId[id]
	if !ok {
		return
	}
	if s.sessionByPlayer[old.PlayerId] == id {
		delete(s.sessionByPlayer, old.PlayerId)
	}
	if s.sessionByToken[old.ReconnectToken] == id {
		delete(s.sessionByToken, old.ReconnectToken)
	}
}

func (s *SessionStore) GetById(id ids.SessionId) (SessionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byId[id]
	return r.Clone(), ok
}

func (s *SessionStore) GetByPlayer(player ids.PlayerId) (SessionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessionByPlayer[player]
	if !ok {
		return SessionRecord{}, false
	}
	r, ok := s.byId[id]
	return r.Clone(), ok
}

func (s *SessionStore) GetByReconnectToken(token ids.ReconnectToken) (SessionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessionByToken[token]
	if !ok {
		return SessionRecord{}, false
	}
	r, ok := s.byId[id]
	return r.Clone(), ok
}

func (s *SessionStore) DeleteById(id ids.SessionId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reindexLocked(id)
	delete(s.byId, id)
}

func (s *SessionStore) ListExpired(nowMs int64) []ids.SessionId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ids.SessionId
	for id, r := range s.byId {
		if r.ExpiresAtMs > 0 && nowMs > r.ExpiresAtMs {
			out = append(out, id)
		}
	}
	return out
}

func (s *SessionStore) ListAll() []SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SessionRecord, 0, len(s.byId))
	for _, r := range s.byId {
		out = append(out, r.Clone())
	}
	return out
}

func (s *SessionStore) ReplaceAll(records []SessionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byId = make(map[ids.SessionId]SessionRecord, len(records))
	s.sessionByPlayer = make(map[ids.PlayerId]ids.SessionId, len(records))
	s.sessionByToken = make(map[ids.ReconnectToken]ids.SessionId, len(records))
	for _, r := range records {
		s.byId[r.Id] = r.Clone()
		s.sessionByPlayer[r.PlayerId] = r.Id
		s.sessionByToken[r.ReconnectToken] = r.Id
	}
}
