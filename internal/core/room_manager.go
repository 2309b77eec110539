package core

import (
	"fmt"
	"sync"

	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/metrics"
	"github.com/rs/zerolog/log"
)

// roomRegistry is a threadsafe in-memory RoomRegistry.
// Lock order is room.mu before roomRegistry.mu; the registry lock is never
// held while waiting for a room lock.
type roomRegistry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*room
}

func NewRoomRegistry() RoomRegistry {
	return &roomRegistry{rooms: make(map[domain.RoomID]*room)}
}

func (g *roomRegistry) getOrCreate(id domain.RoomID) *room {
	g.mu.RLock()
	r, ok := g.rooms[id]
	g.mu.RUnlock()
	if ok {
		return r
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok = g.rooms[id]; ok {
		return r
	}
	r = newRoom(id)
	g.rooms[id] = r
	metrics.Incr("rooms", 1)
	log.Debug().Str("module", "core.rooms").Str("room", string(id)).Msg("room created")
	return r
}

func (g *roomRegistry) get(id domain.RoomID) (*room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[id]
	return r, ok
}

func (g *roomRegistry) Join(id domain.RoomID, ms MemberSession, onJoined func(others []MemberSession)) error {
	if id == "" {
		return domain.ErrEmptyRoom
	}
	peer := ms.Meta().Peer
	for {
		r := g.getOrCreate(id)
		r.mu.Lock()
		if r.evicted {
			// Lost a race with the last leave; the next lookup sees a fresh room.
			r.mu.Unlock()
			continue
		}
		if _, dup := r.members[peer]; dup {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s in %s", domain.ErrDuplicateMember, peer, id)
		}
		others := r.snapshotLocked()
		r.addLocked(ms)
		metrics.Incr("members", 1)
		if onJoined != nil {
			onJoined(others)
		}
		r.mu.Unlock()
		log.Info().Str("module", "core.rooms").Str("room", string(id)).Str("peer", string(peer)).Msg("member added")
		return nil
	}
}

func (g *roomRegistry) Leave(
	id domain.RoomID,
	peer domain.PeerID,
	conn SignalConnection,
	onLeft func(left MemberSession, remaining []MemberSession),
) bool {
	r, ok := g.get(id)
	if !ok {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ms, ok := r.members[peer]
	if !ok || r.evicted {
		return false
	}
	if conn != nil && ms.Signal() != conn {
		return false
	}
	r.removeLocked(peer)
	metrics.Decr("members", 1)
	if len(r.members) == 0 {
		r.evicted = true
		g.mu.Lock()
		if g.rooms[id] == r {
			delete(g.rooms, id)
			metrics.Decr("rooms", 1)
		}
		g.mu.Unlock()
		log.Debug().Str("module", "core.rooms").Str("room", string(id)).Msg("room evicted")
	}
	if onLeft != nil {
		onLeft(ms, r.snapshotLocked())
	}
	log.Info().Str("module", "core.rooms").Str("room", string(id)).Str("peer", string(peer)).Msg("member removed")
	return true
}

func (g *roomRegistry) Visit(id domain.RoomID, fn func(members []MemberSession)) bool {
	r, ok := g.get(id)
	if !ok {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evicted {
		return false
	}
	fn(r.snapshotLocked())
	return true
}

func (g *roomRegistry) MembersOf(id domain.RoomID) []domain.PeerID {
	r, ok := g.get(id)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evicted {
		return nil
	}
	out := make([]domain.PeerID, len(r.order))
	copy(out, r.order)
	return out
}

func (g *roomRegistry) List() []domain.RoomInfo {
	g.mu.RLock()
	rooms := make([]*room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.mu.RUnlock()

	out := make([]domain.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		if !r.evicted {
			out = append(out, domain.RoomInfo{ID: r.id, MemberCount: len(r.members)})
		}
		r.mu.Unlock()
	}
	return out
}

func (g *roomRegistry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
