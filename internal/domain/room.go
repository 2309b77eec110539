package domain

// RoomID is minted outside the hub (the HTTP layer hands out fresh ones);
// the hub only compares them.
type RoomID string

type RoomInfo struct {
	ID          RoomID `json:"id"`
	MemberCount int    `json:"member_count"`
}
