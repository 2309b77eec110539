package domain

import (
	"math"
	"unicode/utf8"
)

const MaxMessageLen = 4096

type EventKind string

const (
	EventJoined      EventKind = "membership-joined"
	EventLeft        EventKind = "membership-left"
	EventChat        EventKind = "chat-message"
	EventScreenShare EventKind = "screen-share-update"
	EventPointer     EventKind = "pointer-update"
	EventEndCall     EventKind = "end-of-call"
)

// Event is one broadcast. Only the fields of its Kind are set.
type Event struct {
	Kind EventKind
	Room RoomID
	Peer PeerID

	Text        string
	DisplayName string

	// StreamID nil means the screen share stopped.
	StreamID *string

	Pointer Pointer
}

// Pointer holds room-relative coordinates, both fractions of the shared view.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Pointer) Validate() error {
	if !unit(p.X) || !unit(p.Y) {
		return ErrPointerOutOfRange
	}
	return nil
}

func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func ValidateMessage(text string) error {
	if text == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}
