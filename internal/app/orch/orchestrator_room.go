package orch

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/proto"
	"github.com/rs/zerolog/log"
)

// Join puts the session's connection into room as peer. The joiner gets a
// room-joined acknowledgement, the members already present get
// user-connected; the joiner never hears about itself.
func (o *Orchestrator) Join(sid core.SessionID, room domain.RoomID, peer domain.PeerID, name string) error {
	sess, err := o.session(sid)
	if err != nil {
		return err
	}
	if room == "" {
		return domain.ErrEmptyRoom
	}
	m, err := domain.NewMember(peer, name)
	if err != nil {
		return err
	}
	joined, err := proto.EncodeEvent(domain.Event{Kind: domain.EventJoined, Room: room, Peer: m.Peer, DisplayName: m.DisplayName})
	if err != nil {
		return err
	}

	ms := core.NewMemberSession(sid, m, sess.Signal())
	var res core.PublishResult
	err = sess.Join(room, m, func() error {
		return o.Rooms.Join(room, ms, func(others []core.MemberSession) {
			metas := make([]domain.Member, 0, len(others))
			for _, other := range others {
				metas = append(metas, *other.Meta())
			}
			if ack, err := proto.EncodeRoomJoined(room, m.Peer, metas); err == nil {
				_ = ms.Signal().TrySend(ack)
			}
			res = deliver(others, joined, "")
		})
	})
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Str("peer", string(peer)).Msg("join rejected")
		return err
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Str("peer", string(peer)).Msg("joined")
	o.settle(room, res)
	return nil
}

// Leave is the explicit leave message; the connection stays open.
func (o *Orchestrator) Leave(sid core.SessionID) error {
	sess, err := o.session(sid)
	if err != nil {
		return err
	}
	var room domain.RoomID
	var res core.PublishResult
	if !sess.Leave(false, func(r domain.RoomID, m *domain.Member) {
		room = r
		res = o.leaveRoom(r, m, sess.Signal())
	}) {
		return domain.ErrNotJoined
	}
	o.settle(room, res)
	return nil
}

// Kick removes a session from its room and closes its transport.
func (o *Orchestrator) Kick(sid core.SessionID) {
	if err := o.Leave(sid); err == nil {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("kicked")
	}
	o.Registry.Cancel(sid)
}

// OnDisconnect is called once the transport is gone. It is safe to call
// after an explicit leave or a kick; only one user-disconnected goes out.
func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	sess, ok := o.Registry.GetSession(sid)
	if !ok {
		return
	}
	var room domain.RoomID
	var res core.PublishResult
	if sess.Leave(true, func(r domain.RoomID, m *domain.Member) {
		room = r
		res = o.leaveRoom(r, m, sess.Signal())
	}) {
		o.settle(room, res)
	}
	o.Registry.Unbind(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected")
}

// leaveRoom removes the member and tells whoever remains. Nothing is sent
// when the registry had already dropped the member.
func (o *Orchestrator) leaveRoom(room domain.RoomID, m *domain.Member, conn core.SignalConnection) core.PublishResult {
	left, err := proto.EncodeEvent(domain.Event{Kind: domain.EventLeft, Room: room, Peer: m.Peer})
	if err != nil {
		return core.PublishResult{}
	}
	var res core.PublishResult
	o.Rooms.Leave(room, m.Peer, conn, func(_ core.MemberSession, remaining []core.MemberSession) {
		res = deliver(remaining, left, "")
	})
	return res
}
