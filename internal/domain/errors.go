package domain

import "errors"

// Rejected-request conditions. None of them are fatal to the hub.
var (
	ErrDuplicateMember = errors.New("duplicate member")
	ErrAlreadyJoined   = errors.New("already joined")
	ErrNotJoined       = errors.New("not joined")

	ErrEmptyRoom         = errors.New("room id empty")
	ErrEmptyPeer         = errors.New("peer id empty")
	ErrEmptyMessage      = errors.New("message empty")
	ErrMessageTooLong    = errors.New("message too long")
	ErrPointerOutOfRange = errors.New("pointer out of range")
)
