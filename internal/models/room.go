package models

// Room is the persisted record of a completed sharing group.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	ServiceType ServiceType

	// LeaderID is the user who supplied the shared account.
	LeaderID int64

	// Credentials are copied from the leader's waiting entry, still sealed.
	Credentials Credentials

	// MemberIDs lists every member's user ID, leader included.
	MemberIDs []int64

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}

// RoomView is a room with its password opened, as returned to members.
type RoomView struct {
	Room
	Password string
}
