package widget

import (
	"context"
	"testing"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
)

func newTestSessions(ttl time.Duration) *Sessions {
	return newTestSessionsCap(ttl, 0)
}

func newTestSessionsCap(ttl time.Duration, capacity int) *Sessions {
	return NewSessions(func(string) *Controller {
		return NewController(func(context.Context, string) domain.LookupResult {
			return domain.Failed(domain.TransientFailure)
		}, &ManualScheduler{}, DefaultSettleDelay)
	}, ttl, capacity)
}

func TestSessionsGet(t *testing.T) {
	s := newTestSessions(time.Minute)

	id, c := s.Get("")
	if id == "" {
		t.Fatalf("expected a generated id")
	}

	sameID, same := s.Get(id)
	if sameID != id || same != c {
		t.Errorf("expected the same session back")
	}

	otherID, other := s.Get("not-a-uuid")
	if otherID == "not-a-uuid" || other == c {
		t.Errorf("expected a fresh session for a malformed id")
	}

	if s.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", s.Len())
	}
}

func TestSessionsSweep(t *testing.T) {
	s := newTestSessions(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	idle, _ := s.Get("")
	now = now.Add(45 * time.Second)
	active, _ := s.Get("")
	now = now.Add(30 * time.Second)

	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}

	s.mu.Lock()
	_, idleLeft := s.items[idle]
	_, activeLeft := s.items[active]
	s.mu.Unlock()

	if idleLeft || !activeLeft {
		t.Errorf("expected only the idle session to be swept")
	}
}

func TestSessionsCapacity(t *testing.T) {
	s := newTestSessionsCap(time.Hour, 2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	first, _ := s.Get("")
	now = now.Add(time.Second)
	second, _ := s.Get("")
	now = now.Add(time.Second)

	// touching first makes second the least recently seen
	s.Get(first)
	now = now.Add(time.Second)

	for i := 0; i < 50; i++ {
		s.Get("")
		now = now.Add(time.Second)
	}

	if s.Len() != 2 {
		t.Fatalf("expected registry capped at 2, got %d", s.Len())
	}

	s.mu.Lock()
	_, secondLeft := s.items[second]
	s.mu.Unlock()
	if secondLeft {
		t.Errorf("expected the least recently seen session to be evicted")
	}
}

func TestSessionsGetKeepsUnknownID(t *testing.T) {
	s := newTestSessions(time.Minute)

	buf := []byte("3f0c6f8e-4b9a-4c53-9d2e-2a7f1b8c9d01")
	id, c := s.Get(string(buf))
	if id != string(buf) {
		t.Fatalf("expected a valid unknown id to be adopted, got %q", id)
	}

	again, same := s.Get("3f0c6f8e-4b9a-4c53-9d2e-2a7f1b8c9d01")
	if again != id || same != c {
		t.Errorf("expected the adopted id to resolve to the same session")
	}
}
