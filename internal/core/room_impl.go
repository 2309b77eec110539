package core

import (
	"sync"

	"github.com/dkeye/Huddle/internal/domain"
)

// room is the per-room state guarded by its own lock.
// Once evicted it is unreachable from the registry and never mutated again.
type room struct {
	id      domain.RoomID
	mu      sync.Mutex
	members map[domain.PeerID]MemberSession
	order   []domain.PeerID
	evicted bool
}

func newRoom(id domain.RoomID) *room {
	return &room{
		id:      id,
		members: make(map[domain.PeerID]MemberSession),
	}
}

func (r *room) addLocked(ms MemberSession) {
	peer := ms.Meta().Peer
	r.members[peer] = ms
	r.order = append(r.order, peer)
}

func (r *room) removeLocked(peer domain.PeerID) {
	delete(r.members, peer)
	for i, p := range r.order {
		if p == peer {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *room) snapshotLocked() []MemberSession {
	out := make([]MemberSession, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.members[p])
	}
	return out
}
