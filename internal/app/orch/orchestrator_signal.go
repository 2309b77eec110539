package orch

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// senderExcluded is the relay exclusion table. Chat is echoed to the sender
// so every client renders messages from the same broadcast.
var senderExcluded = map[domain.EventKind]bool{
	domain.EventChat:        false,
	domain.EventScreenShare: true,
	domain.EventPointer:     true,
	domain.EventEndCall:     true,
}

func exclusion(kind domain.EventKind, sender domain.PeerID) domain.PeerID {
	if senderExcluded[kind] {
		return sender
	}
	return ""
}

// relay broadcasts the event built by build while the session stays in room.
func (o *Orchestrator) relay(sid core.SessionID, room domain.RoomID, build func(room domain.RoomID, m *domain.Member) domain.Event) error {
	sess, err := o.session(sid)
	if err != nil {
		return err
	}
	var cur domain.RoomID
	var res core.PublishResult
	if err := sess.InRoom(room, func(r domain.RoomID, m *domain.Member) {
		cur = r
		ev := build(r, m)
		res = o.publish(r, ev, exclusion(ev.Kind, m.Peer))
	}); err != nil {
		return err
	}
	o.settle(cur, res)
	return nil
}

func (o *Orchestrator) Chat(sid core.SessionID, text string) error {
	if err := domain.ValidateMessage(text); err != nil {
		return err
	}
	return o.relay(sid, "", func(room domain.RoomID, m *domain.Member) domain.Event {
		return domain.Event{Kind: domain.EventChat, Room: room, Peer: m.Peer, Text: text, DisplayName: m.Name()}
	})
}

// ScreenShare announces a screen stream; a nil streamID means it stopped.
func (o *Orchestrator) ScreenShare(sid core.SessionID, room domain.RoomID, streamID *string) error {
	return o.relay(sid, room, func(room domain.RoomID, m *domain.Member) domain.Event {
		return domain.Event{Kind: domain.EventScreenShare, Room: room, Peer: m.Peer, StreamID: streamID}
	})
}

// Pointer relays coordinates untouched; they are fractions of the shared view.
func (o *Orchestrator) Pointer(sid core.SessionID, room domain.RoomID, p domain.Pointer) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return o.relay(sid, room, func(room domain.RoomID, m *domain.Member) domain.Event {
		return domain.Event{Kind: domain.EventPointer, Room: room, Peer: m.Peer, Pointer: p}
	})
}

// EndCall tells the others the sender hung up, then leaves the room.
func (o *Orchestrator) EndCall(sid core.SessionID) error {
	sess, err := o.session(sid)
	if err != nil {
		return err
	}
	var room domain.RoomID
	var res core.PublishResult
	if !sess.Leave(false, func(r domain.RoomID, m *domain.Member) {
		room = r
		ev := domain.Event{Kind: domain.EventEndCall, Room: r, Peer: m.Peer}
		res = o.publish(r, ev, exclusion(ev.Kind, m.Peer))
		res.Merge(o.leaveRoom(r, m, sess.Signal()))
	}) {
		return domain.ErrNotJoined
	}
	o.settle(room, res)
	return nil
}
