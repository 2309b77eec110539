package app

import (
	"errors"
	"sync"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

var ErrSessionClosed = errors.New("session closed")

type SessionState int

const (
	StateDisconnected SessionState = iota
	StateJoining
	StateJoined
	// StateClosed is terminal: the transport is gone.
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateJoining:
		return "joining"
	case StateJoined:
		return "joined"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session is the presence state of one signal connection. It replaces any
// per-client globals: everything the hub knows about a connection lives here.
//
// Transitions hold the session lock for the duration of their hook, so a
// session never runs two transitions at once.
type Session struct {
	id   core.SessionID
	conn core.SignalConnection

	mu     sync.Mutex
	state  SessionState
	room   domain.RoomID
	member *domain.Member
}

func NewSession(id core.SessionID, conn core.SignalConnection) *Session {
	return &Session{id: id, conn: conn}
}

func (s *Session) ID() core.SessionID             { return s.id }
func (s *Session) Signal() core.SignalConnection { return s.conn }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RoomOf reports the room and member of a joined session.
func (s *Session) RoomOf() (domain.RoomID, *domain.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateJoined {
		return "", nil, false
	}
	return s.room, s.member, true
}

// Join runs Disconnected -> Joining -> Joined. join is called in Joining;
// when it fails the session falls back to Disconnected.
func (s *Session) Join(room domain.RoomID, m *domain.Member, join func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateClosed:
		return ErrSessionClosed
	case StateDisconnected:
	default:
		return domain.ErrAlreadyJoined
	}
	s.state = StateJoining
	if err := join(); err != nil {
		s.state = StateDisconnected
		return err
	}
	s.state, s.room, s.member = StateJoined, room, m
	return nil
}

// Leave runs Joined -> Disconnected, or to Closed when final. leave is only
// called by the call that actually changes a joined session, so it runs at
// most once per join.
func (s *Session) Leave(final bool, leave func(room domain.RoomID, m *domain.Member)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	joined := s.state == StateJoined
	if final {
		s.state = StateClosed
	} else if joined {
		s.state = StateDisconnected
	}
	if !joined {
		return false
	}
	room, m := s.room, s.member
	s.room, s.member = "", nil
	leave(room, m)
	return true
}

// InRoom runs fn while the session is joined. An empty room means the
// current one; any other room must match it or the call fails with
// domain.ErrNotJoined.
func (s *Session) InRoom(room domain.RoomID, fn func(room domain.RoomID, m *domain.Member)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateJoined || (room != "" && room != s.room) {
		return domain.ErrNotJoined
	}
	fn(s.room, s.member)
	return nil
}
