package proto

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type peerEvent struct {
	Type        string        `json:"type"`
	Peer        domain.PeerID `json:"peerId"`
	DisplayName string        `json:"displayName,omitempty"`
}

type chatEvent struct {
	Type        string        `json:"type"`
	Text        string        `json:"text"`
	DisplayName string        `json:"displayName"`
	Peer        domain.PeerID `json:"peerId"`
}

type screenShareEvent struct {
	Type     string        `json:"type"`
	Peer     domain.PeerID `json:"peerId"`
	StreamID *string       `json:"streamId"`
}

type pointerEvent struct {
	Type string        `json:"type"`
	Room domain.RoomID `json:"roomId"`
	Peer domain.PeerID `json:"peerId"`
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
}

// EncodeEvent renders a broadcast event as the frame every recipient gets.
func EncodeEvent(ev domain.Event) (core.Frame, error) {
	var v any
	switch ev.Kind {
	case domain.EventJoined:
		v = peerEvent{Type: TypeUserConnected, Peer: ev.Peer, DisplayName: ev.DisplayName}
	case domain.EventLeft:
		v = peerEvent{Type: TypeUserDisconnected, Peer: ev.Peer}
	case domain.EventChat:
		v = chatEvent{Type: TypeCreateMessage, Text: ev.Text, DisplayName: domain.DisplayName(ev.DisplayName), Peer: ev.Peer}
	case domain.EventScreenShare:
		v = screenShareEvent{Type: TypeScreenSharing, Peer: ev.Peer, StreamID: ev.StreamID}
	case domain.EventPointer:
		v = pointerEvent{Type: TypePointer, Room: ev.Room, Peer: ev.Peer, X: ev.Pointer.X, Y: ev.Pointer.Y}
	case domain.EventEndCall:
		v = peerEvent{Type: TypeCallEnded, Peer: ev.Peer}
	default:
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return json.Marshal(v)
}

// RoomJoined acknowledges a join and lists the members already present.
type RoomJoined struct {
	Type    string          `json:"type"`
	Room    domain.RoomID   `json:"roomId"`
	Peer    domain.PeerID   `json:"peerId"`
	Members []domain.Member `json:"members"`
}

func EncodeRoomJoined(room domain.RoomID, peer domain.PeerID, others []domain.Member) (core.Frame, error) {
	if others == nil {
		others = []domain.Member{}
	}
	return json.Marshal(RoomJoined{Type: TypeRoomJoined, Room: room, Peer: peer, Members: others})
}

type Reply struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

func EncodeReply(typ string) core.Frame {
	b, _ := json.Marshal(Reply{Type: typ})
	return b
}

func EncodeError(code string) core.Frame {
	b, _ := json.Marshal(Reply{Type: TypeError, Error: code})
	return b
}
