// Package broker fans realtime events out to connected sessions,
// grounded on the teacher's gateway.Gateway: a connections map keyed by
// session, a per-session outbound channel, and a room membership
// structure generalized from the teacher's implicit one-room-per-table
// model into explicit lobby:<id> and game:<id> rooms.
package broker

import (
	"encoding/json"
	"errors"
	"sync"
)

// SourceDomainTransition is the only source permitted to publish:
// broker events only ever originate from a domain state transition
// (the Game Manager, the Runtime Dispatcher, the Lifecycle Sweeper),
// never directly from a client-facing handler.
const SourceDomainTransition = "domain-transition"

// ErrUnauthorizedSource is returned when Publish/PublishToSession is
// called with any source other than SourceDomainTransition.
var ErrUnauthorizedSource = errors.New("UNAUTHORIZED_SOURCE")

// Sink is a connected session's outbound delivery channel — backed by
// a websocket connection's write pump in production, by a test double
// in tests.
type Sink interface {
	Send(frame []byte) error
}

// EventInput is one caller-supplied event awaiting a sequence number,
// the unit a Publish call batches.
type EventInput struct {
	Type string
	Data any
}

// Event is one published message, envelope-stamped with a strictly
// increasing sequence number so a client can detect a dropped message.
type Event struct {
	Room string `json:"room"`
	Seq  uint64 `json:"seq"`
	Type string `json:"type"`
	Data any    `json:"data"`
}

// PublishResult reports what a publish call actually delivered: which
// sessions received frames, and how many individual event deliveries
// went out (events × recipients).
type PublishResult struct {
	DeliveredSessionIds []string
	DeliveredEventCount int
}

// Broker tracks which sessions belong to which rooms and delivers
// published events to every member of a room.
type Broker struct {
	mu  sync.Mutex
	seq uint64

	sinkBySession  map[string]Sink
	membersByRoom  map[string]map[string]struct{}
	roomsBySession map[string]map[string]struct{}
}

func New() *Broker {
	return &Broker{
		sinkBySession:  make(map[string]Sink),
		membersByRoom:  make(map[string]map[string]struct{}),
		roomsBySession: make(map[string]map[string]struct{}),
	}
}

// ConnectSession registers a session's delivery sink. It replaces any
// prior sink for the same session id (a reconnect taking over).
func (b *Broker) ConnectSession(sessionId string, sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinkBySession[sessionId] = sink
	if _, ok := b.roomsBySession[sessionId]; !ok {
		b.roomsBySession[sessionId] = make(map[string]struct{})
	}
}

// DisconnectSession removes a session's sink and its room memberships.
func (b *Broker) DisconnectSession(sessionId string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sinkBySession, sessionId)
	for room := range b.roomsBySession[sessionId] {
		delete(b.membersByRoom[room], sessionId)
		if len(b.membersByRoom[room]) == 0 {
			delete(b.membersByRoom, room)
		}
	}
	delete(b.roomsBySession, sessionId)
}

func (b *Broker) JoinRoom(sessionId, room string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.membersByRoom[room] == nil {
		b.membersByRoom[room] = make(map[string]struct{})
	}
	b.membersByRoom[room][sessionId] = struct{}{}
	if b.roomsBySession[sessionId] == nil {
		b.roomsBySession[sessionId] = make(map[string]struct{})
	}
	b.roomsBySession[sessionId][room] = struct{}{}
}

func (b *Broker) LeaveRoom(sessionId, room string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.membersByRoom[room], sessionId)
	if len(b.membersByRoom[room]) == 0 {
		delete(b.membersByRoom, room)
	}
	delete(b.roomsBySession[sessionId], room)
}

// Publish accepts a batch of events from a domain transition and
// delivers every event to every member of room. Each event in the
// batch gets its own strictly increasing sequence number. Every
// recipient is handed its own independent copy of each event's
// marshaled bytes — a buggy sink mutating its frame in place cannot
// corrupt what another recipient received.
func (b *Broker) Publish(source, room string, events []EventInput) (PublishResult, error) {
	if source != SourceDomainTransition {
		return PublishResult{}, ErrUnauthorizedSource
	}

	frames, err := b.stampAndMarshal(room, events)
	if err != nil {
		return PublishResult{}, err
	}

	b.mu.Lock()
	sinks := make(map[string]Sink, len(b.membersByRoom[room]))
	for sessionId := range b.membersByRoom[room] {
		if sink, ok := b.sinkBySession[sessionId]; ok {
			sinks[sessionId] = sink
		}
	}
	b.mu.Unlock()

	return b.deliver(sinks, frames), nil
}

// PublishToSession delivers a batch of events to exactly one session,
// outside of any room — used for point-to-point fanout such as a
// seat's own private hand, which no other session may see. Stamped and
// copy-isolated the same way Publish is.
func (b *Broker) PublishToSession(source, sessionId string, events []EventInput) (PublishResult, error) {
	if source != SourceDomainTransition {
		return PublishResult{}, ErrUnauthorizedSource
	}

	frames, err := b.stampAndMarshal("", events)
	if err != nil {
		return PublishResult{}, err
	}

	b.mu.Lock()
	sink, ok := b.sinkBySession[sessionId]
	b.mu.Unlock()
	if !ok {
		return PublishResult{}, nil
	}

	return b.deliver(map[string]Sink{sessionId: sink}, frames), nil
}

// stampAndMarshal assigns each event the next sequence number under
// the broker's lock and marshals it once into a canonical frame; the
// caller is responsible for copying that frame per recipient before
// handing it to a sink.
func (b *Broker) stampAndMarshal(room string, events []EventInput) ([][]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	frames := make([][]byte, 0, len(events))
	for _, ev := range events {
		b.seq++
		frame, err := json.Marshal(Event{Room: room, Seq: b.seq, Type: ev.Type, Data: ev.Data})
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func (b *Broker) deliver(sinks map[string]Sink, frames [][]byte) PublishResult {
	delivered := make([]string, 0, len(sinks))
	for sessionId, sink := range sinks {
		for _, frame := range frames {
			_ = sink.Send(append([]byte(nil), frame...))
		}
		delivered = append(delivered, sessionId)
	}
	return PublishResult{DeliveredSessionIds: delivered, DeliveredEventCount: len(delivered) * len(frames)}
}
