// Package proto defines the JSON messages exchanged with clients over the
// signal connection. Every message is an object with a "type" field.
package proto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Huddle/internal/domain"
)

// Client to hub.
const (
	TypeJoinRoom    = "join-room"
	TypeLeave       = "leave"
	TypeMessage     = "message"
	TypeScreenShare = "screen-share"
	TypePointer     = "pointer-control"
	TypeEndCall     = "end-call"
	TypePing        = "ping"
)

// Hub to client.
const (
	TypeUserConnected    = "user-connected"
	TypeUserDisconnected = "user-disconnected"
	TypeCreateMessage    = "createMessage"
	TypeScreenSharing    = "user-screen-sharing"
	TypeCallEnded        = "call-ended"
	TypeRoomJoined       = "room-joined"
	TypeLeft             = "left"
	TypePong             = "pong"
	TypeError            = "error"
)

var ErrBadPayload = errors.New("bad payload")

type Envelope struct {
	Type string `json:"type"`
}

type JoinRoom struct {
	RoomID      string `json:"roomId"`
	PeerID      string `json:"peerId"`
	DisplayName string `json:"displayName,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type ScreenShare struct {
	RoomID   string  `json:"roomId"`
	StreamID *string `json:"streamId"`
}

type PointerControl struct {
	RoomID string   `json:"roomId"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
}

func (p PointerControl) Pointer() (domain.Pointer, error) {
	if p.X == nil || p.Y == nil {
		return domain.Pointer{}, fmt.Errorf("%w: pointer needs x and y", ErrBadPayload)
	}
	pt := domain.Pointer{X: *p.X, Y: *p.Y}
	return pt, pt.Validate()
}

// Type reads only the envelope of a raw message.
func Type(data []byte) (string, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if env.Type == "" {
		return "", fmt.Errorf("%w: missing type", ErrBadPayload)
	}
	return env.Type, nil
}

// Decode unmarshals the payload of a message whose type is already known.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return v, nil
}
