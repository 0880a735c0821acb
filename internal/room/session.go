package room

import (
	"sync"
	"time"

	"github.com/thclabs/growroom/internal/domain"
)

// session is one connected grow room: the state plus the bookkeeping the
// service needs around it. All state access goes through mu; the in-flight
// payment guard has its own lock so a duplicate request can be rejected
// immediately instead of queueing behind a pending payment.
type session struct {
	mu    sync.Mutex
	state *domain.RoomState

	// lastTick is when the growth loop last advanced this room.
	lastTick time.Time

	// dirty marks unsaved mutations for the autosave sweep.
	dirty bool

	inflightMu sync.Mutex
	inflight   map[string]bool
}

func newSession(state *domain.RoomState, now time.Time) *session {
	return &session{
		state:    state,
		lastTick: now,
		inflight: make(map[string]bool),
	}
}

// tryBegin marks an action kind as having a payment in flight. It returns
// false if one is already pending for that kind (the double-click guard).
func (s *session) tryBegin(action string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if s.inflight[action] {
		return false
	}
	s.inflight[action] = true
	return true
}

func (s *session) end(action string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	delete(s.inflight, action)
}
