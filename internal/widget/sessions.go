package widget

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionCapacity bounds the registry when no capacity is given
const DefaultSessionCapacity = 10000

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Sessions keeps one Controller per browser session
type Sessions struct {
	mu    sync.Mutex
	items map[string]*session

	factory  func(id string) *Controller
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewSessions creates a registry; factory builds the controller for a new id.
// Once capacity sessions are live, the least recently seen one is evicted to
// make room for a new one.
func NewSessions(factory func(id string) *Controller, ttl time.Duration, capacity int) *Sessions {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	return &Sessions{
		items:    make(map[string]*session),
		factory:  factory,
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the controller for id, creating a fresh session when id is
// unknown or malformed. The returned id is the one to hand back to the client.
func (s *Sessions) Get(id string) (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if sess, ok := s.items[id]; ok {
			sess.lastSeen = s.now()
			return id, sess.ctrl
		}
		id = strings.Clone(id)
	} else {
		id = uuid.New().String()
	}

	if len(s.items) >= s.capacity {
		s.evictOldest()
	}

	sess := &session{ctrl: s.factory(id), lastSeen: s.now()}
	s.items[id] = sess
	return id, sess.ctrl
}

func (s *Sessions) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.items {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.items, oldestID)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
func (s *Sessions) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.items {
		if sess.lastSeen.Before(cutoff) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
