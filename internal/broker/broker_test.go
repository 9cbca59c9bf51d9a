package broker

import (
	"encoding/json"
	"sync"
	"testing"
)

type recordingSink struct {
	mu     sync.Mutex
	frames [][]byte
}

func (s *recordingSink) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func TestPublishRejectsUnauthorizedSource(t *testing.T) {
	b := New()
	if _, err := b.Publish("client", "game:1", []EventInput{{Type: "game.state"}}); err != ErrUnauthorizedSource {
		t.Fatalf("expected ErrUnauthorizedSource, got %v", err)
	}
}

func TestPublishDeliversBatchToEveryRoomMember(t *testing.T) {
	b := New()
	a, bb := &recordingSink{}, &recordingSink{}
	b.ConnectSession("A", a)
	b.ConnectSession("B", bb)
	b.JoinRoom("A", "game:1")
	b.JoinRoom("B", "game:1")

	events := []EventInput{{Type: "game.state"}, {Type: "game.state"}, {Type: "game.state"}}
	result, err := b.Publish(SourceDomainTransition, "game:1", events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.DeliveredSessionIds) != 2 {
		t.Fatalf("expected 2 delivered sessions, got %d", len(result.DeliveredSessionIds))
	}
	if result.DeliveredEventCount != 6 {
		t.Fatalf("expected deliveredEventCount=6, got %d", result.DeliveredEventCount)
	}
	if a.count() != 3 || bb.count() != 3 {
		t.Fatalf("expected each sink to receive 3 frames, got %d and %d", a.count(), bb.count())
	}
}

func TestPublishGivesEachRecipientAnIndependentCopy(t *testing.T) {
	b := New()
	a, bb := &recordingSink{}, &recordingSink{}
	b.ConnectSession("A", a)
	b.ConnectSession("B", bb)
	b.JoinRoom("A", "game:1")
	b.JoinRoom("B", "game:1")

	if _, err := b.Publish(SourceDomainTransition, "game:1", []EventInput{{Type: "game.state"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.mu.Lock()
	a.frames[0][0] = 'X'
	a.mu.Unlock()

	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.frames[0][0] == 'X' {
		t.Fatalf("mutating one recipient's frame corrupted another recipient's copy")
	}
}

func TestPublishSequenceIsStrictlyIncreasingAcrossEvents(t *testing.T) {
	b := New()
	sink := &recordingSink{}
	b.ConnectSession("A", sink)
	b.JoinRoom("A", "game:1")

	if _, err := b.Publish(SourceDomainTransition, "game:1", []EventInput{{Type: "a"}, {Type: "b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var first, second Event
	if err := json.Unmarshal(sink.frames[0], &first); err != nil {
		t.Fatalf("decode first frame: %v", err)
	}
	if err := json.Unmarshal(sink.frames[1], &second); err != nil {
		t.Fatalf("decode second frame: %v", err)
	}
	if second.Seq <= first.Seq {
		t.Fatalf("expected strictly increasing sequence, got %d then %d", first.Seq, second.Seq)
	}
}

func TestPublishToSessionDeliversOutsideAnyRoom(t *testing.T) {
	b := New()
	sink := &recordingSink{}
	b.ConnectSession("A", sink)

	result, err := b.PublishToSession(SourceDomainTransition, "A", []EventInput{{Type: "game.private_state"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DeliveredEventCount != 1 || len(result.DeliveredSessionIds) != 1 {
		t.Fatalf("expected one delivery, got %+v", result)
	}
	if sink.count() != 1 {
		t.Fatalf("expected 1 frame delivered, got %d", sink.count())
	}
}

func TestPublishToUnknownSessionDeliversNothing(t *testing.T) {
	b := New()
	result, err := b.PublishToSession(SourceDomainTransition, "ghost", []EventInput{{Type: "game.private_state"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DeliveredEventCount != 0 {
		t.Fatalf("expected no deliveries, got %+v", result)
	}
}
