package core

import (
	"github.com/dkeye/Huddle/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []MemberSession
}

func (r *PublishResult) Merge(o PublishResult) {
	r.SendTo += o.SendTo
	r.Dropped = append(r.Dropped, o.Dropped...)
}

// RoomRegistry maps room ids to their current members.
// A room present in the registry always has at least one member.
//
// The callbacks of Join, Leave and Visit run while the room is locked, so
// everything they do is ordered with every other operation on that room.
// They must not block and must not call back into the registry.
type RoomRegistry interface {
	// Join adds ms to room, creating the room when absent. It fails with
	// domain.ErrDuplicateMember when the peer id is already present.
	// onJoined receives the members present before the join.
	Join(room domain.RoomID, ms MemberSession, onJoined func(others []MemberSession)) error

	// Leave removes peer from room. It is a no-op returning false when the
	// room or peer is absent, or when conn is non-nil and is not the
	// connection the member joined with. The room is evicted once empty.
	// onLeft runs only when a member was actually removed.
	Leave(room domain.RoomID, peer domain.PeerID, conn SignalConnection,
		onLeft func(left MemberSession, remaining []MemberSession)) bool

	// Visit runs fn with the current members in join order.
	// It returns false when the room does not exist.
	Visit(room domain.RoomID, fn func(members []MemberSession)) bool

	// MembersOf returns a point-in-time copy of peer ids in join order.
	MembersOf(room domain.RoomID) []domain.PeerID

	List() []domain.RoomInfo
	Len() int
}
