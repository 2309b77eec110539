package proto

import (
	"errors"

	"github.com/dkeye/Huddle/internal/domain"
)

const (
	CodeDuplicateMember = "duplicate_member"
	CodeAlreadyJoined   = "already_joined"
	CodeNotJoined       = "not_joined"
	CodeBadPayload      = "bad_payload"
	CodeUnknownType     = "unknown_type"
	CodeInternal        = "internal"
)

// ErrorCode maps a rejected request to the code reported to the client.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateMember):
		return CodeDuplicateMember
	case errors.Is(err, domain.ErrAlreadyJoined):
		return CodeAlreadyJoined
	case errors.Is(err, domain.ErrNotJoined):
		return CodeNotJoined
	case errors.Is(err, ErrBadPayload),
		errors.Is(err, domain.ErrEmptyRoom),
		errors.Is(err, domain.ErrEmptyPeer),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrMessageTooLong),
		errors.Is(err, domain.ErrPointerOutOfRange):
		return CodeBadPayload
	default:
		return CodeInternal
	}
}
