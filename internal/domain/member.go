// Package domain contains entities without logic, just meta-data
package domain

import "unicode/utf8"

const (
	MaxDisplayNameLen = 64
	AnonymousName     = "Anonymous"
)

// PeerID addresses a participant for media signaling (e.g. a PeerJS id).
type PeerID string

// Member represents one participant inside one room.
// No transport or lifecycle logic here.
type Member struct {
	Peer        PeerID `json:"peerId"`
	DisplayName string `json:"displayName,omitempty"`
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(peer PeerID, name string) (*Member, error) {
	if peer == "" {
		return nil, ErrEmptyPeer
	}
	return &Member{Peer: peer, DisplayName: truncateName(name)}, nil
}

// Name is what other members see.
func (m *Member) Name() string {
	return DisplayName(m.DisplayName)
}

func DisplayName(name string) string {
	if name == "" {
		return AnonymousName
	}
	return name
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= MaxDisplayNameLen {
		return name
	}
	return string([]rune(name)[:MaxDisplayNameLen])
}
